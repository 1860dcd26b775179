package export

// Default layout constants shared by both builders. The per-builder
// column breakpoints and export sizes live in the builder presets, not
// here.
const (
	defaultWidth        = 1080
	defaultScale        = 2
	defaultHeaderHeight = 110
	defaultRowHeight    = 72
	defaultRowGap       = 10
	defaultFooterHeight = 56
	defaultMargin       = 24
	defaultColumnGap    = 16
)

// Breakpoint maps a maximum slice length to a column count.
type Breakpoint struct {
	MaxEntries int
	Columns    int
}

// Layout describes the geometry of an exported image. Zero-valued
// fields fall back to the package defaults so builder presets only set
// what differs.
type Layout struct {
	Width           int
	Scale           int
	HeaderHeight    int
	RowHeight       int
	RowGap          int
	FooterHeight    int
	Margin          int
	ColumnGap       int
	Breakpoints     []Breakpoint
	FallbackColumns int
}

func (l Layout) withDefaults() Layout {
	if l.Width == 0 {
		l.Width = defaultWidth
	}
	if l.Scale == 0 {
		l.Scale = defaultScale
	}
	if l.HeaderHeight == 0 {
		l.HeaderHeight = defaultHeaderHeight
	}
	if l.RowHeight == 0 {
		l.RowHeight = defaultRowHeight
	}
	if l.RowGap == 0 {
		l.RowGap = defaultRowGap
	}
	if l.FooterHeight == 0 {
		l.FooterHeight = defaultFooterHeight
	}
	if l.Margin == 0 {
		l.Margin = defaultMargin
	}
	if l.ColumnGap == 0 {
		l.ColumnGap = defaultColumnGap
	}
	if l.FallbackColumns == 0 {
		l.FallbackColumns = 1
	}
	return l
}

// ColumnsFor picks a column count for a slice of n entries from the
// ordered breakpoints, falling back past the last one.
func (l Layout) ColumnsFor(n int) int {
	for _, bp := range l.Breakpoints {
		if n <= bp.MaxEntries {
			return bp.Columns
		}
	}
	return l.FallbackColumns
}

// grid is the resolved geometry for one export.
type grid struct {
	layout  Layout
	cols    int
	rows    int
	width   int
	height  int
	cardW   float64
	entries int
}

// resolve computes the full pixel geometry for n entries.
func (l Layout) resolve(n int) grid {
	ll := l.withDefaults()
	cols := ll.ColumnsFor(n)
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols
	if rows < 1 {
		rows = 1
	}

	contentW := ll.Width - 2*ll.Margin - (cols-1)*ll.ColumnGap
	cardW := float64(contentW) / float64(cols)

	height := ll.HeaderHeight + rows*ll.RowHeight + (rows-1)*ll.RowGap + ll.FooterHeight + 2*ll.Margin

	return grid{
		layout:  ll,
		cols:    cols,
		rows:    rows,
		width:   ll.Width,
		height:  height,
		cardW:   cardW,
		entries: n,
	}
}

// cardAt returns the top-left corner of the card for entry index i in
// row-major order.
func (g grid) cardAt(i int) (x, y float64) {
	col := i % g.cols
	row := i / g.cols
	x = float64(g.layout.Margin) + float64(col)*(g.cardW+float64(g.layout.ColumnGap))
	y = float64(g.layout.Margin+g.layout.HeaderHeight) + float64(row)*float64(g.layout.RowHeight+g.layout.RowGap)
	return x, y
}
