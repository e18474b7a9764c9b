package layout

import (
	"fmt"
	"math"
)

// Fixed geometry of the deck, in mm.
const (
	titleY        = 15.0
	titleRow      = 15.0
	ruleY         = 32.0
	ruleSplitX    = 100.0
	ruleWidth     = 1.0
	headerLogoW   = 25.0
	headerLogoY   = 10.0
	headerLogoGap = 7.0 // from the right page edge to the logo's right side

	coverLogoW     = 150.0
	coverLogoY     = 30.0
	coverTitleY    = 120.0
	coverFooterY   = 185.0
	problemTop     = 50.0
	problemIconW   = 30.0
	problemTextGap = 10.0
	solutionTop    = 42.0
	solutionImageW = 180.0
	solutionImageY = 105.0
	bulletsTop     = 45.0
	subBulletX     = 25.0
	statsTop       = 60.0
	statsStep      = 40.0
	statNumberX    = 20.0
	statTextX      = 85.0
	cardsTop       = 45.0
	cardsColumnGap = 8.0
	cardsRowGap    = 6.0
)

// coverSpec is the content of the title page.
type coverSpec struct {
	logo        string
	logoMissing MissingPolicy
	title       string
	subtitle    string
	footer      string
}

// problemBlock is one icon + title + bullets row of a problem slide.
type problemBlock struct {
	icon    string
	title   string
	bullets []string
}

// statItem is one big number with its caption.
type statItem struct {
	number string
	text   string
}

// slideSpec is a content slide read from the deck.
type slideSpec struct {
	kind    string
	title   string
	attrs   map[string]string
	missing MissingPolicy
	lines   []string
	blocks  []problemBlock
	stats   []statItem
}

// chrome draws what every content slide shares: background, corner logo,
// title and the two-colour rule under it.
func (ctx *slideContext) chrome(kind, title string) error {
	t := ctx.theme
	ctx.newPage(kind)
	ctx.fillRect(0, 0, t.PageWidth, t.PageHeight, t.Palette.Background)

	if t.Logo != "" {
		slot := ImageSlot{
			Name:    t.Logo,
			X:       t.PageWidth - headerLogoW - headerLogoGap,
			Y:       headerLogoY,
			Width:   headerLogoW,
			Missing: MissingSkip,
		}
		if _, err := ctx.image(slot); err != nil {
			return err
		}
	}

	ctx.setXY(t.MarginLeft, titleY)
	if err := ctx.cell(0, titleRow, title, textStyle{font: FontBold, size: 24, color: t.Palette.Title}, true); err != nil {
		return err
	}

	ctx.line(t.MarginLeft, ruleY, ruleSplitX, ruleY, ruleWidth, t.Palette.Accent)
	ctx.line(ruleSplitX, ruleY, t.PageWidth-t.MarginRight, ruleY, ruleWidth, t.Palette.Title)
	return nil
}

func composeCover(ctx *slideContext, spec coverSpec) error {
	t := ctx.theme
	ctx.newPage("cover")
	ctx.fillRect(0, 0, t.PageWidth, t.PageHeight, t.Palette.Background)

	logo := spec.logo
	if logo == "" {
		logo = t.Logo
	}
	if logo != "" {
		slot := ImageSlot{
			Name:    logo,
			X:       (t.PageWidth - coverLogoW) / 2,
			Y:       coverLogoY,
			Width:   coverLogoW,
			Missing: spec.logoMissing,
			MaxY:    coverTitleY - 5,
		}
		if _, err := ctx.image(slot); err != nil {
			return err
		}
	}

	ctx.setXY(t.MarginLeft, coverTitleY)
	if spec.title != "" {
		if err := ctx.cell(0, 15, spec.title, textStyle{font: FontBold, size: 24, color: t.Palette.Title, align: "center"}, true); err != nil {
			return err
		}
	}
	if spec.subtitle != "" {
		if err := ctx.cell(0, 10, spec.subtitle, textStyle{font: FontRegular, size: 18, color: t.Palette.Text, align: "center"}, true); err != nil {
			return err
		}
	}
	if spec.footer != "" {
		ctx.setXY(t.MarginLeft, coverFooterY)
		if err := ctx.cell(0, 10, spec.footer, textStyle{font: FontItalic, size: 13, color: t.Palette.Muted, align: "center"}, false); err != nil {
			return err
		}
	}
	return nil
}

// composeProblem lays out rows of icon, bold title and ">" bullets. A row
// ends below whichever is lower, its text or its icon.
func composeProblem(ctx *slideContext, spec slideSpec) error {
	t := ctx.theme
	if err := ctx.chrome(spec.kind, spec.title); err != nil {
		return err
	}
	bullet := textStyle{font: FontRegular, size: 12, color: t.Palette.Text}
	y := problemTop
	for _, block := range spec.blocks {
		if _, err := ctx.image(ImageSlot{
			Name:    block.icon,
			X:       t.MarginLeft,
			Y:       y,
			Width:   problemIconW,
			Height:  problemIconW,
			Missing: MissingPlaceholder,
		}); err != nil {
			return err
		}

		textX := t.MarginLeft + problemIconW + problemTextGap
		ctx.setXY(textX, y)
		if err := ctx.cell(t.PageWidth-textX-t.MarginRight, 10, block.title, textStyle{font: FontBold, size: 16, color: t.Palette.Accent}, true); err != nil {
			return err
		}
		for _, b := range block.bullets {
			ctx.cur.x = textX
			if err := ctx.cell(5, 8, ">", bullet, false); err != nil {
				return err
			}
			if err := ctx.multiCell(t.PageWidth-ctx.cur.x-t.MarginRight, 8, b, bullet); err != nil {
				return err
			}
			ctx.ln(1)
		}
		afterText := ctx.cur.y
		afterImage := y + problemIconW + 5
		y = math.Max(afterText, afterImage) + 10
	}
	return nil
}

// composeSolution lists headings and sub-bullets, then shows one large image
// centred below the text.
func composeSolution(ctx *slideContext, spec slideSpec) error {
	t := ctx.theme
	if err := ctx.chrome(spec.kind, spec.title); err != nil {
		return err
	}
	ctx.setXY(t.MarginLeft, solutionTop)
	for _, line := range spec.lines {
		if heading, ok := cutMarker(line, t.Marker); ok {
			ctx.ln(2)
			if err := ctx.multiCell(0, 8, heading, textStyle{font: FontBold, size: 16, color: t.Palette.Accent}); err != nil {
				return err
			}
			continue
		}
		if sub, ok := cutMarker(line, t.SubMarker); ok {
			st := textStyle{font: FontRegular, size: 12, color: t.Palette.Text}
			ctx.cur.x = t.MarginLeft + 5
			if err := ctx.cell(5, 8, ">", st, false); err != nil {
				return err
			}
			if err := ctx.multiCell(t.PageWidth-ctx.cur.x-t.MarginRight, 8, sub, st); err != nil {
				return err
			}
			continue
		}
		ctx.cur.x = t.MarginLeft
		if err := ctx.multiCell(0, 8, line, textStyle{font: FontRegular, size: 13, color: t.Palette.Text}); err != nil {
			return err
		}
	}

	name := spec.attrs["image"]
	if name == "" {
		return nil
	}
	width := attrLength(spec.attrs, "width", solutionImageW, t.contentWidth())
	top := attrLength(spec.attrs, "y", solutionImageY, t.PageHeight)
	// never draw over the text above
	top = math.Max(top, ctx.cur.y+4)
	_, err := ctx.image(ImageSlot{
		Name:    name,
		X:       (t.PageWidth - width) / 2,
		Y:       top,
		Width:   width,
		Missing: spec.missing,
		MaxY:    t.contentBottom(),
	})
	return err
}

// composeBullets renders a plain list: marker lines get a green ">", sub
// lines are indented with "-".
func composeBullets(ctx *slideContext, spec slideSpec) error {
	t := ctx.theme
	if err := ctx.chrome(spec.kind, spec.title); err != nil {
		return err
	}
	ctx.setXY(t.MarginLeft, bulletsTop)
	text := textStyle{font: FontRegular, size: 14, color: t.Palette.Text}
	for _, line := range spec.lines {
		if item, ok := cutMarker(line, t.Marker); ok {
			ctx.cur.x = t.MarginLeft
			if err := ctx.cell(10, 10, ">", textStyle{font: FontBold, size: 15, color: t.Palette.Accent}, false); err != nil {
				return err
			}
			if err := ctx.multiCell(0, 10, item, text); err != nil {
				return err
			}
			ctx.ln(2)
			continue
		}
		if sub, ok := cutMarker(line, t.SubMarker); ok {
			st := textStyle{font: FontRegular, size: 12, color: t.Palette.Text}
			ctx.cur.x = subBulletX
			if err := ctx.cell(5, 8, "-", st, false); err != nil {
				return err
			}
			if err := ctx.multiCell(0, 8, sub, st); err != nil {
				return err
			}
			continue
		}
		ctx.cur.x = t.MarginLeft
		if err := ctx.multiCell(0, 10, line, text); err != nil {
			return err
		}
		ctx.ln(2)
	}
	return nil
}

// composeStats shows big numbers with a caption to their right.
func composeStats(ctx *slideContext, spec slideSpec) error {
	t := ctx.theme
	if err := ctx.chrome(spec.kind, spec.title); err != nil {
		return err
	}
	y := statsTop
	for _, s := range spec.stats {
		ctx.setXY(statNumberX, y)
		if err := ctx.cell(60, 20, s.number, textStyle{font: FontBold, size: 45, color: t.Palette.Accent}, false); err != nil {
			return err
		}
		ctx.setXY(statTextX, y+5)
		if err := ctx.multiCell(0, 10, s.text, textStyle{font: FontBold, size: 16, color: t.Palette.Text}); err != nil {
			return err
		}
		y += statsStep
	}
	return nil
}

// composeCards puts marker-led content blocks into a two-column grid of cards
// whose heights come from the estimator, so rows stack without overlapping.
// Lines without any marker fall back to a single text column. Rows that do
// not fit start a continuation page with the same title.
func composeCards(ctx *slideContext, spec slideSpec) error {
	t := ctx.theme
	if err := ctx.chrome(spec.kind, spec.title); err != nil {
		return err
	}
	if !HasMarker(spec.lines, t.Marker) {
		ctx.setXY(t.MarginLeft, cardsTop)
		for _, line := range spec.lines {
			ctx.cur.x = t.MarginLeft
			if err := ctx.multiCell(0, 10, line, textStyle{font: FontRegular, size: 14, color: t.Palette.Text}); err != nil {
				return err
			}
			ctx.ln(2)
		}
		return nil
	}

	m := t.Card
	colW := (t.contentWidth() - cardsColumnGap) / 2
	blocks := SplitBlocks(spec.lines, t.Marker)
	y := cardsTop
	for i := 0; i < len(blocks); i += 2 {
		row := blocks[i:min(i+2, len(blocks))]
		estimates := make([]BlockEstimate, len(row))
		rowH := 0.0
		for j, b := range row {
			est, err := ctx.estimator.EstimateBlock(ctx.prepareBlock(b), colW, m, t.Fonts.Bold, t.Fonts.Regular)
			if err != nil {
				return fmt.Errorf("estimate card %q: %w", b.Title, err)
			}
			estimates[j] = est
			rowH = math.Max(rowH, est.Height)
		}
		if y > cardsTop && y+rowH > t.contentBottom() {
			if err := ctx.chrome(spec.kind, spec.title); err != nil {
				return err
			}
			y = cardsTop
		}
		for j, b := range row {
			x := t.MarginLeft + float64(j)*(colW+cardsColumnGap)
			if err := ctx.card(x, y, colW, rowH, b, estimates[j]); err != nil {
				return err
			}
		}
		y += rowH + cardsRowGap
	}
	return nil
}

// card draws one content block at its estimated size.
func (ctx *slideContext) card(x, y, w, h float64, b ContentBlock, est BlockEstimate) error {
	t := ctx.theme
	m := t.Card
	ctx.fillRect(x, y, w, h, t.Palette.Card)
	inner := w - 2*m.Padding
	ctx.setXY(x+m.Padding, y+m.Padding)
	if b.Title != "" {
		if err := ctx.multiCell(inner, m.TitleRow, b.Title, textStyle{font: FontBold, size: m.TitleSize, color: t.Palette.Accent}); err != nil {
			return err
		}
	}
	ctx.setXY(x+m.Padding, y+m.Padding+float64(est.TitleLines)*m.TitleRow+m.Gap)
	if b.Body != "" {
		if err := ctx.multiCell(inner, m.BodyRow, b.Body, textStyle{font: FontRegular, size: m.BodySize, color: t.Palette.Text}); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *slideContext) prepareBlock(b ContentBlock) ContentBlock {
	return ContentBlock{Title: ctx.prepare(b.Title), Body: ctx.prepare(b.Body)}
}

func attrLength(attrs map[string]string, key string, def, reference float64) float64 {
	l, ok := ParseLength(attrs[key])
	if !ok {
		return def
	}
	if v := l.ToMM(reference); v > 0 {
		return v
	}
	return def
}
