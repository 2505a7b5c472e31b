package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
)

// Assemble writes each band as a full page of a PDF sized by spec.
func Assemble(bands []*image.RGBA, spec PageSpec) ([]byte, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("no pages to assemble")
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: spec.WidthMM, Ht: spec.HeightMM},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, band := range bands {
		var buf bytes.Buffer
		if err := png.Encode(&buf, band); err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page-%d", i+1)
		doc.RegisterImageOptionsReader(name, opts, &buf)
		doc.AddPage()
		doc.ImageOptions(name, 0, 0, spec.WidthMM, spec.HeightMM, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return out.Bytes(), nil
}
