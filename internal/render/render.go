// Package render rasterizes a canvas with the gg software renderer.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"sketch/internal/canvas"
)

// Options controls stroke style and colors of a rendered frame.
type Options struct {
	StrokeWidth float64
	Background  gg.RGBA
	Stroke      gg.RGBA
	Selection   gg.RGBA
	// Dash is the on/off pattern of the selection indicator.
	Dash []float64
}

// DefaultOptions matches the desktop canvas look.
func DefaultOptions() Options {
	return Options{
		StrokeWidth: 2,
		Background:  gg.White,
		Stroke:      gg.Black,
		Selection:   gg.Hex("#1e88e5"),
		Dash:        []float64{5, 3},
	}
}

// EnableLogging routes gg diagnostics to l. Pass nil to silence them.
func EnableLogging(l *slog.Logger) {
	gg.SetLogger(l)
}

// Draw renders the controller's display list at its current zoom. The image
// covers the zoomed canvas bounds.
func Draw(c *canvas.Controller, opts Options) (image.Image, error) {
	w, h := c.Bounds()
	view := c.View()
	pw := max(int(math.Round(w*view.Zoom)), 1)
	ph := max(int(math.Round(h*view.Zoom)), 1)

	dc := gg.NewContext(pw, ph)
	defer dc.Close()
	dc.ClearWithColor(opts.Background)
	dc.Transform(view.Matrix())
	dc.SetLineWidth(opts.StrokeWidth)

	surface := c.Surface()
	overlay := c.Overlay()
	for i := 0; i < surface.Len(); i++ {
		n := surface.At(i)
		if !surface.IsVisible(n) {
			continue
		}
		if overlay.IsOverlayNode(n) {
			if !overlay.Active() {
				continue
			}
			if err := drawIndicator(dc, n.Frame(), opts); err != nil {
				return nil, err
			}
			continue
		}
		s := n.Shape()
		if s == nil {
			continue
		}
		dc.SetColor(opts.Stroke.Color())
		dc.AppendPath(s.Path())
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("stroke shape %d: %w", s.ID, err)
		}
	}
	return dc.Image(), nil
}

func drawIndicator(dc *gg.Context, frame gg.Rect, opts Options) error {
	dc.SetColor(opts.Selection.Color())
	dc.SetLineWidth(1)
	dc.SetDash(opts.Dash...)
	dc.DrawRectangle(frame.Min.X, frame.Min.Y, frame.Width(), frame.Height())
	err := dc.Stroke()
	dc.ClearDash()
	dc.SetLineWidth(opts.StrokeWidth)
	if err != nil {
		return fmt.Errorf("stroke indicator: %w", err)
	}
	return nil
}

// PNG writes the rendered canvas to w.
func PNG(w io.Writer, c *canvas.Controller, opts Options) error {
	img, err := Draw(c, opts)
	if err != nil {
		return err
	}
	return encodePNG(w, img)
}

// Thumbnail scales img down so its longer side is at most maxSide pixels.
// Smaller images are returned unchanged.
func Thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxSide <= 0 || longest <= maxSide {
		return img
	}
	ratio := float64(maxSide) / float64(longest)
	tw := max(int(math.Round(float64(b.Dx())*ratio)), 1)
	th := max(int(math.Round(float64(b.Dy())*ratio)), 1)
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// DataURL renders the canvas, optionally shrunk to maxSide, as a base64 PNG
// data URL the webview can show directly.
func DataURL(c *canvas.Controller, opts Options, maxSide int) (string, error) {
	img, err := Draw(c, opts)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := encodePNG(&buf, Thumbnail(img, maxSide)); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
