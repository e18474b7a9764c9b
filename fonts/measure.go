package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/ByLCY/pitchdeck/layout"
)

// Measurer measures text with glyph advances read straight from the TrueType
// tables. It needs no PDF backend, which makes it suitable for the estimate
// command and for tests.
type Measurer struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	src  string
	size float64
}

var _ layout.Measurer = (*Measurer)(nil)

// NewMeasurer returns an empty measurer; fonts are parsed on first use.
func NewMeasurer() *Measurer {
	return &Measurer{
		fonts: map[string]*truetype.Font{},
		faces: map[faceKey]font.Face{},
	}
}

// TextWidth returns the advance width of text in mm. fontSize is in mm.
func (m *Measurer) TextWidth(text string, res layout.FontResource, fontSize float64) (float64, error) {
	if text == "" {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(res.Src, fontSize*layout.MmToPt)
	if err != nil {
		return 0, err
	}
	adv := font.MeasureString(face, text)
	pt := float64(adv) / 64
	return pt * layout.PtToMm, nil
}

// face must be called with mu held; truetype faces cache glyphs and are not
// safe for concurrent use.
func (m *Measurer) face(src string, sizePt float64) (font.Face, error) {
	if src == "" {
		src = Regular
	}

	key := faceKey{src: src, size: sizePt}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	ft, ok := m.fonts[src]
	if !ok {
		data, err := Load(src)
		if err != nil {
			return nil, err
		}
		ft, err = truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", src, err)
		}
		m.fonts[src] = ft
	}
	// DPI 72 makes one font unit per point, so advances come back in points.
	f := truetype.NewFace(ft, &truetype.Options{Size: sizePt, DPI: 72, Hinting: font.HintingNone})
	m.faces[key] = f
	return f, nil
}
