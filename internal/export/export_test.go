package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRasterizer returns a solid bitmap of pages × the page height at scale.
type fakeRasterizer struct {
	pages float64
	scale int
	err   error
	calls int
	html  string
}

func (f *fakeRasterizer) Rasterize(_ context.Context, html string, page rendering.PageOptions) (image.Image, error) {
	f.calls++
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	scale := f.scale
	if scale == 0 {
		scale = 2
	}
	pages := f.pages
	if pages == 0 {
		pages = 1
	}
	width := page.WidthPx * scale
	height := int(pages * float64(A4.HeightPx(width)))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 200}), image.Point{}, draw.Src)
	return img, nil
}

func namedResume(name string) *resume.Resume {
	r := resume.New(resume.NewSequenceGenerator("e"), "")
	r.PersonalInfo.Name = name
	return r
}

func TestHeightPx(t *testing.T) {
	assert.Equal(t, 1123, A4.HeightPx(794))
	assert.Equal(t, 2246, A4.HeightPx(1588))
	assert.Equal(t, 14, A4.HeightPx(10))
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		pageHeight int
		want       int
	}{
		{"exactly one page", 1123, 1123, 1},
		{"shorter than a page", 400, 1123, 1},
		{"one pixel over", 1124, 1123, 2},
		{"exactly two pages", 2246, 1123, 2},
		{"two and a half pages", 2808, 1123, 3},
		{"empty bitmap", 0, 1123, 1},
		{"no page height", 500, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageCount(tt.height, tt.pageHeight))
		})
	}
}

func TestPaginate_PadsLastBandWithWhite(t *testing.T) {
	// 10px wide pages are 14px tall; 35px is two and a half pages.
	img := image.NewRGBA(image.Rect(0, 0, 10, 35))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	bands := Paginate(img, A4)
	require.Len(t, bands, 3)
	for _, b := range bands {
		assert.Equal(t, image.Rect(0, 0, 10, 14), b.Bounds())
	}

	black := color.RGBAModel.Convert(color.Black)
	white := color.RGBAModel.Convert(color.White)
	assert.Equal(t, black, bands[0].At(5, 13))
	assert.Equal(t, black, bands[2].At(5, 6))
	assert.Equal(t, white, bands[2].At(5, 7))
	assert.Equal(t, white, bands[2].At(9, 13))
}

func TestPaginate_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 100, 10, 114))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	bands := Paginate(img, A4)
	require.Len(t, bands, 1)
	assert.Equal(t, color.RGBAModel.Convert(color.Black), bands[0].At(0, 0))
}

func TestAssembleAndCountPages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 70))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	bands := Paginate(img, A4)
	require.Len(t, bands, 3)

	data, err := Assemble(bands, A4)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))

	pages, err := CountPages(data)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	_, err = Assemble(nil, A4)
	assert.Error(t, err)

	_, err = CountPages([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestRun_Transitions(t *testing.T) {
	run := NewRun()
	assert.Equal(t, Idle, run.State())

	run.advance(Rendering)
	run.advance(Rasterizing)
	run.advance(Paginating)
	run.advance(Downloaded)
	assert.True(t, run.State().Terminal())
	assert.Equal(t, []State{Idle, Rendering, Rasterizing, Paginating, Downloaded}, run.History())

	assert.Panics(t, func() { NewRun().advance(Downloaded) })
	assert.Panics(t, func() { run.advance(Rendering) }, "terminal states have no exits")
}

func TestExport_RequiresName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		raster := &fakeRasterizer{}
		run := NewRun()

		result, err := NewPipeline(raster, false).Execute(context.Background(), run, namedResume(name))
		assert.Nil(t, result)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, NameRequiredMessage, validationErr.Message)
		assert.Equal(t, Idle, run.State())
		assert.Zero(t, raster.calls, "nothing is rasterized without a name")
	}

	_, err := NewPipeline(&fakeRasterizer{}, false).Export(context.Background(), nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestExport_NameOnlyIsOnePage(t *testing.T) {
	raster := &fakeRasterizer{pages: 1}
	run := NewRun()

	result, err := NewPipeline(raster, false).Execute(context.Background(), run, namedResume("Alex Lee"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, "Alex_Lee_Resume.pdf", result.FileName)
	assert.Equal(t, Downloaded, run.State())
	assert.Equal(t, []State{Idle, Rendering, Rasterizing, Paginating, Downloaded}, run.History())
	assert.Contains(t, raster.html, "Alex Lee")

	pages, err := CountPages(result.PDF)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestExport_TwoAndAHalfPagesIsThree(t *testing.T) {
	result, err := NewPipeline(&fakeRasterizer{pages: 2.5}, false).Export(context.Background(), namedResume("Alex Lee"))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Pages)
}

func TestExport_RasterFailure(t *testing.T) {
	r := namedResume("Alex Lee")
	before := r.Clone()
	cause := errors.New("chrome crashed")
	run := NewRun()

	result, err := NewPipeline(&fakeRasterizer{err: cause}, false).Execute(context.Background(), run, r)
	assert.Nil(t, result)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, Rasterizing, failure.Stage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, FailureMessage, failure.UserMessage())
	assert.Equal(t, []State{Idle, Rendering, Rasterizing, Failed}, run.History())
	assert.Equal(t, before, r, "a failed export leaves the model untouched")
}

type emptyRasterizer struct{}

func (emptyRasterizer) Rasterize(context.Context, string, rendering.PageOptions) (image.Image, error) {
	return image.NewRGBA(image.Rectangle{}), nil
}

func TestExport_EmptyBitmapFails(t *testing.T) {
	_, err := NewPipeline(emptyRasterizer{}, false).Export(context.Background(), namedResume("Alex Lee"))
	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, Rasterizing, failure.Stage)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alex Lee", "Alex_Lee_Resume.pdf"},
		{"  Alex   Lee  ", "Alex_Lee_Resume.pdf"},
		{"Jane/Doe: PhD", "JaneDoe_PhD_Resume.pdf"},
		{"José Núñez", "José_Núñez_Resume.pdf"},
		{"../..", "Resume.pdf"},
		{"", "Resume.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.in))
		})
	}
}

func TestChromeRasterizer_NameOnlyIsOnePage(t *testing.T) {
	if testing.Short() || !BrowserAvailable() {
		t.Skip("Chrome not available")
	}

	raster := NewChromeRasterizer(DefaultTimeout, false)
	result, err := NewPipeline(raster, false).Export(context.Background(), namedResume("Alex Lee"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pages)
}
