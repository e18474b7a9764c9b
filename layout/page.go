package layout

import (
	"log/slog"
	"strings"

	"github.com/ByLCY/pitchdeck/binding"
	"github.com/ByLCY/pitchdeck/textenc"
)

// CellPadding is the horizontal inset of text inside its cell, in mm.
const CellPadding = 1.0

type pageAccumulator struct {
	kind   string
	rects  []Rect
	lines  []Line
	images []ImageBox
	texts  []TextBox
}

func (p *pageAccumulator) appendRect(r Rect)      { p.rects = append(p.rects, r) }
func (p *pageAccumulator) appendLine(l Line)      { p.lines = append(p.lines, l) }
func (p *pageAccumulator) appendImage(i ImageBox) { p.images = append(p.images, i) }
func (p *pageAccumulator) appendText(t TextBox)   { p.texts = append(p.texts, t) }

type pageCollector struct {
	width  float64
	height float64
	accs   []*pageAccumulator
}

func (pc *pageCollector) newPage(kind string) *pageAccumulator {
	acc := &pageAccumulator{kind: kind}
	pc.accs = append(pc.accs, acc)
	return acc
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Kind:   acc.kind,
			Width:  pc.width,
			Height: pc.height,
			Rects:  acc.rects,
			Lines:  acc.lines,
			Images: acc.images,
			Texts:  acc.texts,
		}
	}
	return out
}

// cursor is the current write position on a slide.
type cursor struct {
	x, y float64
}

// textStyle selects font, size (pt), colour and alignment for a text box.
type textStyle struct {
	font  string
	size  float64
	color Color
	align string
}

// slideContext is the state shared by the slide composers while building one
// deck.
type slideContext struct {
	theme      Theme
	typesetter Typesetter
	estimator  Estimator
	assets     AssetProber
	data       any
	collector  *pageCollector
	page       *pageAccumulator
	cur        cursor
}

func (ctx *slideContext) newPage(kind string) {
	ctx.page = ctx.collector.newPage(kind)
	ctx.cur = cursor{x: ctx.theme.MarginLeft, y: 0}
}

// setXY moves the cursor.
func (ctx *slideContext) setXY(x, y float64) { ctx.cur = cursor{x: x, y: y} }

// ln returns to the left margin and moves down by h.
func (ctx *slideContext) ln(h float64) {
	ctx.cur.x = ctx.theme.MarginLeft
	ctx.cur.y += h
}

// prepare fills data placeholders and restricts the character set.
func (ctx *slideContext) prepare(s string) string {
	if ctx.data != nil {
		for _, path := range binding.Unresolved(s, ctx.data) {
			slog.Warn("placeholder has no data", "id", path, "page", len(ctx.collector.accs))
		}
	}
	s = binding.Interpolate(s, ctx.data)
	if ctx.theme.Latin1 {
		s = textenc.Latin1(s)
	}
	return s
}

// cellWidth resolves a width of 0 to "up to the right margin".
func (ctx *slideContext) cellWidth(x, w float64) float64 {
	if w > 0 {
		return w
	}
	return ctx.theme.PageWidth - ctx.theme.MarginRight - x
}

// cell draws a single unwrapped row of text at the cursor and advances the
// cursor to the right of it (newline=false) or to the next row (newline=true).
func (ctx *slideContext) cell(w, h float64, text string, st textStyle, newline bool) error {
	x, y := ctx.cur.x, ctx.cur.y
	w = ctx.cellWidth(x, w)
	content := ctx.prepare(text)
	lines, err := ctx.layout(content, 0, st, h)
	if err != nil {
		return err
	}
	ctx.page.appendText(ctx.textBox(content, x, y, w, st, lines))
	if newline {
		ctx.ln(h)
	} else {
		ctx.cur.x = x + w
	}
	return nil
}

// multiCell draws text wrapped to width w in rows of height h starting at the
// cursor, then moves the cursor below it at the left margin.
func (ctx *slideContext) multiCell(w, h float64, text string, st textStyle) error {
	x, y := ctx.cur.x, ctx.cur.y
	w = ctx.cellWidth(x, w)
	content := ctx.prepare(text)
	lines, err := ctx.layout(content, w-2*CellPadding, st, h)
	if err != nil {
		return err
	}
	tb := ctx.textBox(content, x, y, w, st, lines)
	ctx.page.appendText(tb)
	ctx.cur = cursor{x: ctx.theme.MarginLeft, y: y + tb.Height}
	return nil
}

func (ctx *slideContext) layout(content string, width float64, st textStyle, rowHeight float64) ([]TextLine, error) {
	font := ctx.theme.font(st.font)
	lines, err := ctx.typesetter.LayoutLines(content, width, font, toMM(st.size), rowHeight)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = []TextLine{{}}
	}
	for i := range lines {
		lines[i].Height = rowHeight
	}
	return lines, nil
}

func (ctx *slideContext) textBox(content string, x, y, w float64, st textStyle, lines []TextLine) TextBox {
	height := 0.0
	for _, l := range lines {
		height += l.Height
	}
	return TextBox{
		Content:  content,
		X:        x,
		Y:        y,
		Width:    w,
		Font:     ctx.theme.font(st.font).Name,
		FontSize: toMM(st.size),
		Color:    st.color,
		Lines:    lines,
		Height:   height,
		Align:    normalizeAlign(st.align),
	}
}

func (ctx *slideContext) fillRect(x, y, w, h float64, c Color) {
	fill := c
	ctx.page.appendRect(Rect{X: x, Y: y, Width: w, Height: h, FillColor: &fill})
}

func (ctx *slideContext) line(x1, y1, x2, y2, width float64, c Color) {
	ctx.page.appendLine(Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c, Width: width})
}

// image places slot and, for a placeholder, centres its label inside it.
func (ctx *slideContext) image(slot ImageSlot) (Placement, error) {
	p, err := PlaceImage(ctx.assets, slot, ctx.theme.Palette.Placeholder)
	if err != nil {
		return p, err
	}
	switch {
	case p.Image != nil:
		ctx.page.appendImage(*p.Image)
	case p.Placeholder != nil:
		ctx.page.appendRect(*p.Placeholder)
		if p.Label != "" && p.Placeholder.Height > 0 {
			st := textStyle{font: FontItalic, size: 10, color: ctx.theme.Palette.Muted, align: "center"}
			row := 6.0
			saved := ctx.cur
			ctx.setXY(p.Placeholder.X, p.Placeholder.Y+(p.Placeholder.Height-row)/2)
			if err := ctx.cell(p.Placeholder.Width, row, p.Label, st, false); err != nil {
				return p, err
			}
			ctx.cur = saved
		}
	}
	return p, nil
}

func normalizeAlign(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "center", "c", "middle":
		return "center"
	case "right", "r", "end":
		return "right"
	default:
		return ""
	}
}
