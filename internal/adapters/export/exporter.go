package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ranking"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// Text sizing constants for the shrink-to-fit loop.
const (
	rankFontSize = 26.0
	nameFontSize = 22.0
	minFontSize  = 12.0
	fontStep     = 1.0

	titleFontSize  = 34.0
	footerFontSize = 16.0

	cardRadius  = 10.0
	cardPadding = 14.0
	logoSize    = 48.0
)

// Palette used for every export.
var (
	colorBackground = color.RGBA{R: 0x10, G: 0x14, B: 0x1c, A: 0xff}
	colorCard       = color.RGBA{R: 0x1c, G: 0x23, B: 0x30, A: 0xff}
	colorRank       = color.RGBA{R: 0xf5, G: 0xb8, B: 0x2e, A: 0xff}
	colorText       = color.RGBA{R: 0xf2, G: 0xf4, B: 0xf8, A: 0xff}
	colorFooter     = color.RGBA{R: 0x8a, G: 0x93, B: 0xa5, A: 0xff}
)

// LogoSource hands the exporter pre-fetched bitmaps. Ready is the
// readiness gate: exports are refused, not queued, until it reports
// true.
type LogoSource interface {
	Ready() bool
	Image(url string) (image.Image, bool)
}

// Request describes one export: the top-N slice of a ranked list plus
// the builder's layout and titling.
type Request struct {
	Title   string
	Name    string
	Entries ranking.List
	Layout  Layout
}

// Result is an encoded image plus its suggested download filename.
type Result struct {
	PNG      []byte
	Filename string
	Columns  int
	Width    int
	Height   int
}

// Exporter renders ranked-list slices through a Canvas backend. It
// never touches list state; rendering is a pure read and safe to
// invoke repeatedly.
type Exporter struct {
	newCanvas NewCanvasFunc
	logos     LogoSource
	brandURL  string
	log       logger.Logger
}

// Option applies a configuration option to the Exporter.
type Option func(*Exporter)

// WithCanvasFunc overrides the raster backend. Tests inject a fake.
func WithCanvasFunc(f NewCanvasFunc) Option {
	return func(e *Exporter) {
		if f != nil {
			e.newCanvas = f
		}
	}
}

// WithLogoSource sets the preloaded logo cache.
func WithLogoSource(src LogoSource) Option {
	return func(e *Exporter) {
		e.logos = src
	}
}

// WithBrandURL sets the footer brand line.
func WithBrandURL(u string) Option {
	return func(e *Exporter) {
		if u != "" {
			e.brandURL = u
		}
	}
}

// WithLogger sets a custom logger for the exporter.
func WithLogger(log logger.Logger) Option {
	return func(e *Exporter) {
		if log != nil {
			e.log = log
		}
	}
}

// New constructs an Exporter with the gg backend by default.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		newCanvas: NewGGCanvas,
		brandURL:  "gridiron.example.com",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export renders req to a PNG. It refuses to run while the logo cache
// is still loading so the canvas never draws half-fetched art.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	if e.log == nil {
		e.log = logger.Get()
	}
	if len(req.Entries) == 0 {
		return nil, ErrEmptySlice
	}
	if e.logos != nil && !e.logos.Ready() {
		return nil, ErrLogosNotReady
	}

	start := time.Now()
	g := req.Layout.resolve(len(req.Entries))

	canvas, err := e.newCanvas(g.width, g.height, g.layout.Scale)
	if err != nil {
		metrics.RecordExportError()
		return nil, err
	}

	if err := e.draw(canvas, req, g); err != nil {
		metrics.RecordExportError()
		return nil, err
	}

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		metrics.RecordExportError()
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}

	metrics.RecordExportDuration(float64(time.Since(start).Milliseconds()))
	e.log.Debug(ctx, "export rendered",
		logger.Int("entries", len(req.Entries)),
		logger.Int("columns", g.cols),
		logger.Int("bytes", buf.Len()),
	)

	return &Result{
		PNG:      buf.Bytes(),
		Filename: exportFilename(req.Name),
		Columns:  g.cols,
		Width:    g.width * g.layout.Scale,
		Height:   g.height * g.layout.Scale,
	}, nil
}

// draw paints background, header, entry cards in row-major order, and
// the footer band.
func (e *Exporter) draw(c Canvas, req Request, g grid) error {
	c.SetColor(colorBackground)
	c.FillRect(0, 0, float64(g.width), float64(g.height))

	if err := c.SetFont(FontBold, titleFontSize); err != nil {
		return err
	}
	c.SetColor(colorText)
	c.DrawTextCentered(req.Title, float64(g.width)/2, float64(g.layout.Margin)+titleFontSize+12)

	for i, entry := range req.Entries {
		if err := e.drawCard(c, g, i, entry); err != nil {
			return err
		}
	}

	if err := c.SetFont(FontRegular, footerFontSize); err != nil {
		return err
	}
	c.SetColor(colorFooter)
	footerY := float64(g.height - g.layout.Margin - g.layout.FooterHeight/2)
	c.DrawTextCentered(e.brandURL, float64(g.width)/2, footerY)

	return nil
}

// drawCard paints one rounded entry card: rank on the left, name
// shrunk to fit the remaining width budget, logo right-aligned when
// the cache resolved one.
func (e *Exporter) drawCard(c Canvas, g grid, i int, entry model.RankedEntry) error {
	x, y := g.cardAt(i)
	h := float64(g.layout.RowHeight)

	c.SetColor(colorCard)
	c.FillRoundedRect(x, y, g.cardW, h, cardRadius)

	baseline := y + h/2 + rankFontSize/2 - 4

	if err := c.SetFont(FontBold, rankFontSize); err != nil {
		return err
	}
	c.SetColor(colorRank)
	rankLabel := fmt.Sprintf("%d", entry.Rank)
	c.DrawText(rankLabel, x+cardPadding, baseline)
	rankW := c.MeasureText("00") // fixed two-digit slot keeps names aligned

	logoW := 0.0
	var logo image.Image
	if e.logos != nil && entry.Entity.LogoURL != "" {
		if img, ok := e.logos.Image(entry.Entity.LogoURL); ok {
			logo = img
			logoW = logoSize + cardPadding
		}
	}

	// Shrink the name until it fits the width budget, flooring at the
	// minimum readable size.
	budget := g.cardW - 3*cardPadding - rankW - logoW
	size := nameFontSize
	if err := c.SetFont(FontRegular, size); err != nil {
		return err
	}
	for size > minFontSize && c.MeasureText(entry.Entity.Name) > budget {
		size -= fontStep
		if err := c.SetFont(FontRegular, size); err != nil {
			return err
		}
	}
	c.SetColor(colorText)
	c.DrawText(entry.Entity.Name, x+2*cardPadding+rankW, baseline)

	if logo != nil {
		c.DrawImage(logo, x+g.cardW-cardPadding-logoSize, y+(h-logoSize)/2, logoSize, logoSize)
	}

	return nil
}

func exportFilename(name string) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = "rankings"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return fmt.Sprintf("%s_%d.png", base, time.Now().UnixMilli())
}
