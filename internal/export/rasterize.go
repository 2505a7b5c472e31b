package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// Rasterizer draws a rendered HTML page into a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string, page rendering.PageOptions) (image.Image, error)
}

// DefaultScale is the device scale factor used for screenshots.
const DefaultScale = 2.0

// DefaultTimeout bounds a single browser session.
const DefaultTimeout = 60 * time.Second

// ChromeRasterizer screenshots pages with a headless Chrome driven by chromedp.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRasterizer struct {
	ExecPath string        // browser binary, defaults to $CHROME_PATH then chromedp's lookup
	Scale    float64       // device scale factor, defaults to DefaultScale
	Timeout  time.Duration // defaults to DefaultTimeout
	Verbose  bool
}

// NewChromeRasterizer returns a rasterizer that honours CHROME_PATH.
func NewChromeRasterizer(timeout time.Duration, verbose bool) *ChromeRasterizer {
	return &ChromeRasterizer{
		ExecPath: os.Getenv("CHROME_PATH"),
		Scale:    DefaultScale,
		Timeout:  timeout,
		Verbose:  verbose,
	}
}

// Rasterize loads html from a temporary file and captures the full page as PNG.
func (c *ChromeRasterizer) Rasterize(ctx context.Context, html string, page rendering.PageOptions) (image.Image, error) {
	scale := c.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	if c.Verbose {
		log.Printf("[export] rasterizing %dpx page at scale %.1f", page.WidthPx, scale)
	}

	var shot []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(page.WidthPx), int64(page.HeightPx), chromedp.EmulateScale(scale)),
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rasterization failed: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}

	if c.Verbose {
		b := img.Bounds()
		log.Printf("[export] captured %dx%d bitmap", b.Dx(), b.Dy())
	}
	return img, nil
}

// BrowserAvailable reports whether a Chrome binary can be found.
func BrowserAvailable() bool {
	if p := os.Getenv("CHROME_PATH"); p != "" {
		_, err := os.Stat(p)
		return err == nil
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
