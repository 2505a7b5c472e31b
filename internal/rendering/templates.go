package rendering

// Template describes a visual theme offered by the builder.
type Template struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	Accent      string  `json:"-"`
}

// DefaultTemplateID is used when a resume names no template or an unknown one.
const DefaultTemplateID = "modern"

var catalog = []Template{
	{ID: "minimal", Name: "Minimal Clean", Description: "Simple and elegant design that lets your content shine", Category: "Minimal", Rating: 4.7, Accent: "#374151"},
	{ID: "modern", Name: "Modern Professional", Description: "Clean and contemporary design perfect for tech and creative roles", Category: "Professional", Rating: 4.9, Accent: "#2563eb"},
	{ID: "executive", Name: "Executive Elite", Description: "Sophisticated template for senior positions and executive roles", Category: "Executive", Rating: 4.8, Accent: "#1e3a8a"},
	{ID: "creative", Name: "Creative Spark", Description: "Bold and artistic design for designers and creative professionals", Category: "Creative", Rating: 4.9, Accent: "#9333ea"},
	{ID: "academic", Name: "Academic Scholar", Description: "Traditional format perfect for academic and research positions", Category: "Academic", Rating: 4.6, Accent: "#065f46"},
	{ID: "startup", Name: "Startup Spirit", Description: "Dynamic template for startup environments and entrepreneurial roles", Category: "Startup", Rating: 4.8, Accent: "#ea580c"},
}

// Templates returns the template catalog in display order.
func Templates() []Template {
	return append([]Template(nil), catalog...)
}

// LookupTemplate returns the template with the given id, falling back to the default.
func LookupTemplate(id string) Template {
	for _, t := range catalog {
		if t.ID == id {
			return t
		}
	}
	for _, t := range catalog {
		if t.ID == DefaultTemplateID {
			return t
		}
	}
	return catalog[0]
}
