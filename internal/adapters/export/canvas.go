// Package export renders a prefix slice of a ranked list into a
// shareable PNG. Layout logic is written against a small Canvas
// capability interface so it stays independent of the raster backend.
package export

import (
	"image"
	"image/color"
	"io"
)

// FontWeight selects between the two embedded typefaces.
type FontWeight int

// Font weights.
const (
	FontRegular FontWeight = iota
	FontBold
)

// Canvas is the raster capability surface the exporter draws against.
// All coordinates are in logical pixels; the backend applies the
// high-DPI scale factor uniformly.
type Canvas interface {
	// SetColor sets the color for subsequent fill and text operations.
	SetColor(c color.Color)

	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64)

	// FillRoundedRect fills a rectangle with rounded corners of radius r.
	FillRoundedRect(x, y, w, h, r float64)

	// SetFont selects the active typeface and size in points.
	SetFont(weight FontWeight, points float64) error

	// MeasureText returns the advance width of s under the active font.
	MeasureText(s string) float64

	// DrawText draws s with its baseline-left anchor at (x, y).
	DrawText(s string, x, y float64)

	// DrawTextCentered draws s horizontally centered on cx with baseline y.
	DrawTextCentered(s string, cx, y float64)

	// DrawImage draws img scaled into the (x, y, w, h) box.
	DrawImage(img image.Image, x, y, w, h float64)

	// EncodePNG writes the canvas contents as PNG.
	EncodePNG(w io.Writer) error
}

// NewCanvasFunc constructs a Canvas of the given logical size with a
// uniform scale factor applied by the backend.
type NewCanvasFunc func(width, height, scale int) (Canvas, error)
