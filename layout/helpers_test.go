package layout

import (
	"unicode/utf8"

	"github.com/ByLCY/pitchdeck/assets"
)

// stubTypesetter gives every rune a width of half the font size, so tests
// can predict wrapping without loading fonts.
type stubTypesetter struct{}

func (stubTypesetter) width(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * 0.5
}

func (s stubTypesetter) TextWidth(text string, _ FontResource, fontSize float64) (float64, error) {
	return s.width(text, fontSize), nil
}

func (s stubTypesetter) LayoutLines(content string, width float64, _ FontResource, fontSize, lineHeight float64) ([]TextLine, error) {
	lines := WrapGreedy(content, width, func(t string) float64 { return s.width(t, fontSize) })
	for i := range lines {
		lines[i].Height = lineHeight
	}
	return lines, nil
}

// fixedMeasurer reports the same width for any non-empty text.
type fixedMeasurer float64

func (f fixedMeasurer) TextWidth(text string, _ FontResource, _ float64) (float64, error) {
	if text == "" {
		return 0, nil
	}
	return float64(f), nil
}

// mapProber serves image sizes from memory; names not in the map are missing.
type mapProber map[string]assets.Info

func (m mapProber) Probe(name string) (assets.Info, error) {
	info, ok := m[name]
	if !ok {
		return assets.Info{}, assets.ErrNotFound
	}
	if info.Path == "" {
		info.Path = "/assets/" + name
	}
	return info, nil
}
