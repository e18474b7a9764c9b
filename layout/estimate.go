package layout

import (
	"math"
	"strings"
	"unicode/utf8"
)

// DefaultWrapFudge inflates the width-based line estimate. Breaking at word
// boundaries leaves slack at the end of each line, so the plain ratio of text
// width to box width undercounts the lines the typesetter actually produces.
const DefaultWrapFudge = 1.1

// CardMetrics are the vertical measures of a content card, in mm except for
// the font sizes, which are in pt.
type CardMetrics struct {
	Padding   float64 `json:"padding" yaml:"padding" toml:"padding"`
	TitleRow  float64 `json:"titleRow" yaml:"title_row" toml:"title_row"`
	Gap       float64 `json:"gap" yaml:"gap" toml:"gap"`
	BodyRow   float64 `json:"bodyRow" yaml:"body_row" toml:"body_row"`
	TitleSize float64 `json:"titleSize" yaml:"title_size" toml:"title_size"`
	BodySize  float64 `json:"bodySize" yaml:"body_size" toml:"body_size"`
}

// DefaultCardMetrics match the 15pt/12pt text rows used on content slides.
func DefaultCardMetrics() CardMetrics {
	return CardMetrics{
		Padding:   5,
		TitleRow:  8,
		Gap:       2,
		BodyRow:   6.5,
		TitleSize: 15,
		BodySize:  12,
	}
}

// Estimator predicts how many lines text wraps into without running the
// typesetter. It measures whole strings, not word breaks, so it can be off by
// a line on text with long words or irregular spacing; callers size boxes
// from it and accept that tolerance.
type Estimator struct {
	Measurer Measurer
	Fudge    float64
}

// Lines returns ceil(width(text) / availableWidth * fudge) summed over the
// paragraphs of text. It returns 0 for empty text or a non-positive width and
// at least 1 for any other text.
func (e Estimator) Lines(text string, availableWidth float64, font FontResource, fontSize float64) (int, error) {
	if availableWidth <= 0 || text == "" {
		return 0, nil
	}
	m := e.Measurer
	if m == nil {
		m = RuneMeasurer{}
	}
	fudge := e.Fudge
	if fudge <= 0 {
		fudge = DefaultWrapFudge
	}

	total := 0
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			continue
		}
		w, err := m.TextWidth(para, font, fontSize)
		if err != nil {
			return 0, err
		}
		total += int(math.Ceil(w / availableWidth * fudge))
	}
	if total < 1 {
		total = 1
	}
	return total, nil
}

// EstimateLines is Estimator.Lines with the default fudge factor.
func EstimateLines(text string, availableWidth float64, font FontResource, fontSize float64, m Measurer) (int, error) {
	return Estimator{Measurer: m}.Lines(text, availableWidth, font, fontSize)
}

// BlockHeight is the total height of a card holding titleLines of title text
// and bodyLines of body text.
func BlockHeight(m CardMetrics, titleLines, bodyLines int) float64 {
	return m.Padding*2 + float64(titleLines)*m.TitleRow + m.Gap + float64(bodyLines)*m.BodyRow
}

// BlockEstimate is the predicted shape of one content block.
type BlockEstimate struct {
	TitleLines int     `json:"titleLines"`
	BodyLines  int     `json:"bodyLines"`
	Height     float64 `json:"height"`
}

// EstimateBlock sizes a card of the given outer width for block.
func (e Estimator) EstimateBlock(block ContentBlock, width float64, m CardMetrics, title, body FontResource) (BlockEstimate, error) {
	inner := width - 2*m.Padding
	titleLines, err := e.Lines(block.Title, inner, title, toMM(m.TitleSize))
	if err != nil {
		return BlockEstimate{}, err
	}
	bodyLines, err := e.Lines(block.Body, inner, body, toMM(m.BodySize))
	if err != nil {
		return BlockEstimate{}, err
	}
	return BlockEstimate{
		TitleLines: titleLines,
		BodyLines:  bodyLines,
		Height:     BlockHeight(m, titleLines, bodyLines),
	}, nil
}

// RuneMeasurer approximates text width from the rune count, for use when no
// font metrics are available.
type RuneMeasurer struct{}

// TextWidth assumes an average glyph advance of 0.55em.
func (RuneMeasurer) TextWidth(text string, _ FontResource, fontSize float64) (float64, error) {
	return fontSize * 0.55 * float64(utf8.RuneCountInString(text)), nil
}
