package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ranking"
	"github.com/okian/gridiron/pkg/logger"
)

// fakeCanvas records draw calls so layout behavior is testable without
// rasterizing.
type fakeCanvas struct {
	roundedRects int
	texts        []string
	images       int
	encodeErr    error
}

func (f *fakeCanvas) SetColor(color.Color)                  {}
func (f *fakeCanvas) FillRect(x, y, w, h float64)           {}
func (f *fakeCanvas) FillRoundedRect(x, y, w, h, r float64) { f.roundedRects++ }
func (f *fakeCanvas) SetFont(FontWeight, float64) error     { return nil }
func (f *fakeCanvas) MeasureText(s string) float64          { return float64(len(s)) * 8 }
func (f *fakeCanvas) DrawText(s string, x, y float64)       { f.texts = append(f.texts, s) }
func (f *fakeCanvas) DrawTextCentered(s string, cx, y float64) {
	f.texts = append(f.texts, s)
}
func (f *fakeCanvas) DrawImage(img image.Image, x, y, w, h float64) { f.images++ }
func (f *fakeCanvas) EncodePNG(w io.Writer) error {
	if f.encodeErr != nil {
		return f.encodeErr
	}
	_, err := w.Write([]byte("png"))
	return err
}

// fakeLogos serves a fixed bitmap for a subset of URLs.
type fakeLogos struct {
	ready bool
	urls  map[string]bool
}

func (f *fakeLogos) Ready() bool { return f.ready }
func (f *fakeLogos) Image(url string) (image.Image, bool) {
	if f.urls[url] {
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), true
	}
	return nil, false
}

func teams(n int) ranking.List {
	entities := make([]model.Entity, n)
	for i := range entities {
		entities[i] = model.Entity{
			ID:      fmt.Sprintf("t%d", i+1),
			Kind:    model.KindTeam,
			Name:    fmt.Sprintf("Team %d", i+1),
			LogoURL: fmt.Sprintf("https://logos/t%d.png", i+1),
		}
	}
	return ranking.Reset(entities)
}

func teamLayout() Layout {
	return Layout{
		Breakpoints: []Breakpoint{
			{MaxEntries: 8, Columns: 1},
			{MaxEntries: 16, Columns: 2},
		},
		FallbackColumns: 4,
	}
}

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func TestExportDrawsOneCardPerEntry(t *testing.T) {
	fake := &fakeCanvas{}
	logos := &fakeLogos{ready: true, urls: map[string]bool{
		"https://logos/t1.png": true,
		"https://logos/t3.png": true,
	}}
	e := New(
		WithCanvasFunc(func(w, h, scale int) (Canvas, error) { return fake, nil }),
		WithLogoSource(logos),
		WithBrandURL("gridiron.example.com"),
	)

	list := teams(30)
	res, err := e.Export(context.Background(), Request{
		Title:   "NFL Power Rankings",
		Name:    "my power rankings",
		Entries: list[:5],
		Layout:  teamLayout(),
	})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if res.Columns != 1 {
		t.Errorf("expected 1-column layout for a top-5 team export, got %d", res.Columns)
	}
	if fake.roundedRects != 5 {
		t.Errorf("expected exactly 5 cards drawn, got %d", fake.roundedRects)
	}
	if fake.images != 2 {
		t.Errorf("expected 2 logos drawn (others uncached), got %d", fake.images)
	}
	if len(res.PNG) == 0 {
		t.Error("expected encoded bytes")
	}
	if !strings.HasPrefix(res.Filename, "my_power_rankings_") || !strings.HasSuffix(res.Filename, ".png") {
		t.Errorf("unexpected filename %q", res.Filename)
	}
}

func TestExportReadinessGate(t *testing.T) {
	fake := &fakeCanvas{}
	e := New(
		WithCanvasFunc(func(w, h, scale int) (Canvas, error) { return fake, nil }),
		WithLogoSource(&fakeLogos{ready: false}),
	)

	_, err := e.Export(context.Background(), Request{
		Title:   "Top 100",
		Entries: teams(5),
		Layout:  teamLayout(),
	})
	if err != ErrLogosNotReady {
		t.Fatalf("expected ErrLogosNotReady, got %v", err)
	}
	if fake.roundedRects != 0 {
		t.Error("gate must refuse before any drawing happens")
	}
}

func TestExportEmptySlice(t *testing.T) {
	e := New(WithCanvasFunc(func(w, h, scale int) (Canvas, error) { return &fakeCanvas{}, nil }))
	_, err := e.Export(context.Background(), Request{Title: "x", Layout: teamLayout()})
	if err != ErrEmptySlice {
		t.Fatalf("expected ErrEmptySlice, got %v", err)
	}
}

func TestExportEncodeFailure(t *testing.T) {
	fake := &fakeCanvas{encodeErr: io.ErrClosedPipe}
	e := New(WithCanvasFunc(func(w, h, scale int) (Canvas, error) { return fake, nil }))

	_, err := e.Export(context.Background(), Request{
		Title:   "x",
		Entries: teams(3),
		Layout:  teamLayout(),
	})
	if err == nil || !strings.Contains(err.Error(), ErrEncodeFailed.Error()) {
		t.Fatalf("expected encode failure, got %v", err)
	}
}

func TestExportWithGGBackend(t *testing.T) {
	// Full rasterization smoke test through the real gg canvas.
	e := New(WithLogoSource(&fakeLogos{ready: true}))

	res, err := e.Export(context.Background(), Request{
		Title:   "Top 10 Teams",
		Name:    "smoke",
		Entries: teams(10),
		Layout:  teamLayout(),
	})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(res.PNG) == 0 {
		t.Fatal("expected PNG bytes")
	}
	// PNG magic header.
	if string(res.PNG[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}
	if res.Width != defaultWidth*defaultScale {
		t.Errorf("expected 2x scaled width %d, got %d", defaultWidth*defaultScale, res.Width)
	}
}
