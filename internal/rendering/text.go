package rendering

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText returns the visible text of a rendered page, one block per line.
// Used for plain-text previews so they always match what the HTML shows.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &RenderError{Message: "failed to parse rendered HTML", Cause: err}
	}

	var lines []string
	doc.Find(".page").Find("h1, .contact, h2, h3, .sub, .detail, .dates, .body, .skill-head, .empty p").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		switch {
		case s.Is("h2"):
			lines = append(lines, "", strings.ToUpper(text))
		case s.Is("h3"), s.Is("h1"):
			lines = append(lines, text)
		case s.Is(".skill-head"):
			lines = append(lines, fmt.Sprintf("- %s (%s)", s.Find(".skill-name").Text(), s.Find(".skill-level").Text()))
		default:
			lines = append(lines, "  "+text)
		}
	})
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
