package layout

import "github.com/ByLCY/pitchdeck/assets"

// BuildOptions carries the collaborators and settings the builder needs.
type BuildOptions struct {
	Theme      Theme
	Typesetter Typesetter
	// Measurer feeds the height estimator. When nil the builder uses the
	// Typesetter if it can measure, and a character-count heuristic otherwise.
	Measurer Measurer
	// Assets resolves image names; nil resolves against the working directory.
	Assets AssetProber
	// Data fills ${...} placeholders in slide text.
	Data any
}

// Typesetter breaks text into lines that fit a width, using real font metrics.
// fontSize and lineHeight are in mm; every returned line has Height lineHeight.
type Typesetter interface {
	LayoutLines(content string, width float64, font FontResource, fontSize, lineHeight float64) ([]TextLine, error)
}

// Measurer reports the rendered width of a single run of text in mm.
type Measurer interface {
	TextWidth(text string, font FontResource, fontSize float64) (float64, error)
}

// AssetProber checks that an image exists and reports its pixel size.
type AssetProber interface {
	Probe(name string) (assets.Info, error)
}
