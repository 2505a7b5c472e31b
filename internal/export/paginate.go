package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// PageSpec is a physical page size in millimetres.
type PageSpec struct {
	WidthMM  float64
	HeightMM float64
}

// A4 is the only page size the builder exports.
var A4 = PageSpec{WidthMM: 210, HeightMM: 297}

// HeightPx returns the page height for a bitmap widthPx wide, keeping the page aspect ratio.
func (p PageSpec) HeightPx(widthPx int) int {
	return int(math.Round(float64(widthPx) * p.HeightMM / p.WidthMM))
}

// PageCount returns how many pages a bitmap heightPx tall needs.
// Any remainder starts a new page and there is always at least one page.
func PageCount(heightPx, pageHeightPx int) int {
	if pageHeightPx <= 0 || heightPx <= 0 {
		return 1
	}
	return (heightPx + pageHeightPx - 1) / pageHeightPx
}

// Paginate slices img into page-sized bands, top to bottom.
// The last band is padded with white below the content.
func Paginate(img image.Image, spec PageSpec) []*image.RGBA {
	b := img.Bounds()
	width := b.Dx()
	pageHeight := spec.HeightPx(width)
	count := PageCount(b.Dy(), pageHeight)

	bands := make([]*image.RGBA, 0, count)
	for i := 0; i < count; i++ {
		band := image.NewRGBA(image.Rect(0, 0, width, pageHeight))
		draw.Draw(band, band.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(band, band.Bounds(), img, image.Pt(b.Min.X, b.Min.Y+i*pageHeight), draw.Src)
		bands = append(bands, band)
	}
	return bands
}
