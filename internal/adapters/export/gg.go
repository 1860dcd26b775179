package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// parsed typefaces, shared across canvases.
var (
	fontOnce    sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontErr     error
)

func loadFonts() {
	fontOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
}

// ggCanvas implements Canvas on a fogleman/gg context. The scale
// factor is applied to every coordinate and font size so callers work
// in logical pixels while the bitmap renders sharp on high-DPI
// displays.
type ggCanvas struct {
	dc    *gg.Context
	scale float64
}

// NewGGCanvas creates a gg-backed canvas. It satisfies NewCanvasFunc.
func NewGGCanvas(width, height, scale int) (Canvas, error) {
	loadFonts()
	if fontErr != nil {
		return nil, fontErr
	}
	if scale < 1 {
		scale = 1
	}
	return &ggCanvas{
		dc:    gg.NewContext(width*scale, height*scale),
		scale: float64(scale),
	}, nil
}

func (c *ggCanvas) SetColor(col color.Color) {
	c.dc.SetColor(col)
}

func (c *ggCanvas) FillRect(x, y, w, h float64) {
	s := c.scale
	c.dc.DrawRectangle(x*s, y*s, w*s, h*s)
	c.dc.Fill()
}

func (c *ggCanvas) FillRoundedRect(x, y, w, h, r float64) {
	s := c.scale
	c.dc.DrawRoundedRectangle(x*s, y*s, w*s, h*s, r*s)
	c.dc.Fill()
}

func (c *ggCanvas) SetFont(weight FontWeight, points float64) error {
	f := regularFont
	if weight == FontBold {
		f = boldFont
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points * c.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	c.dc.SetFontFace(face)
	return nil
}

func (c *ggCanvas) MeasureText(s string) float64 {
	w, _ := c.dc.MeasureString(s)
	return w / c.scale
}

func (c *ggCanvas) DrawText(s string, x, y float64) {
	c.dc.DrawString(s, x*c.scale, y*c.scale)
}

func (c *ggCanvas) DrawTextCentered(s string, cx, y float64) {
	c.dc.DrawStringAnchored(s, cx*c.scale, y*c.scale, 0.5, 0)
}

func (c *ggCanvas) DrawImage(img image.Image, x, y, w, h float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	s := c.scale
	sx := w * s / float64(b.Dx())
	sy := h * s / float64(b.Dy())
	c.dc.Push()
	c.dc.Translate(x*s, y*s)
	c.dc.Scale(sx, sy)
	c.dc.DrawImage(img, 0, 0)
	c.dc.Pop()
}

func (c *ggCanvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.dc.Image())
}
