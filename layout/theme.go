package layout

// Theme fixes the look shared by every slide.
type Theme struct {
	PageWidth    float64 // mm
	PageHeight   float64 // mm
	MarginLeft   float64 // mm
	MarginRight  float64 // mm
	MarginBottom float64 // mm, lowest y content may reach

	Palette Palette
	Fonts   FontSet

	// Logo is drawn small in the corner of every content slide and large on
	// the cover. It is skipped when the file is missing.
	Logo string

	Marker    string // opens a content block, "•"
	SubMarker string // sub-bullet, "-"
	Latin1    bool   // replace characters outside Latin-1 with '?'

	WrapFudge float64 // estimator correction, see EstimateLines
	Card      CardMetrics
}

// Palette is the deck colour chart.
type Palette struct {
	Background  Color
	Text        Color
	Accent      Color
	Title       Color
	Muted       Color
	Placeholder Color
	Card        Color
}

// FontSet names the three faces slides use.
type FontSet struct {
	Regular FontResource
	Bold    FontResource
	Italic  FontResource
}

// Font names used in TextBox.Font and ResourceSet.Fonts.
const (
	FontRegular = "regular"
	FontBold    = "bold"
	FontItalic  = "italic"
)

// DefaultTheme is the landscape A4 night-blue look of the ReaKt deck.
func DefaultTheme() Theme {
	return Theme{
		PageWidth:    297,
		PageHeight:   210,
		MarginLeft:   15,
		MarginRight:  15,
		MarginBottom: 10,
		Palette: Palette{
			Background:  Color{R: 10, G: 25, B: 40},
			Text:        Color{R: 255, G: 255, B: 255},
			Accent:      Color{R: 0, G: 220, B: 160},
			Title:       Color{R: 0, G: 180, B: 255},
			Muted:       Color{R: 200, G: 200, B: 200},
			Placeholder: Color{R: 50, G: 50, B: 50},
			Card:        Color{R: 22, G: 44, B: 64},
		},
		Fonts: FontSet{
			Regular: FontResource{Name: FontRegular, Src: "embed:Go-Regular", Core: "Helvetica"},
			Bold:    FontResource{Name: FontBold, Src: "embed:Go-Bold", Style: "B", Core: "Helvetica"},
			Italic:  FontResource{Name: FontItalic, Src: "embed:Go-Italic", Style: "I", Core: "Helvetica"},
		},
		Logo:      "logo.png",
		Marker:    "•",
		SubMarker: "-",
		Latin1:    true,
		WrapFudge: DefaultWrapFudge,
		Card:      DefaultCardMetrics(),
	}
}

func (t Theme) contentWidth() float64 {
	return t.PageWidth - t.MarginLeft - t.MarginRight
}

func (t Theme) contentBottom() float64 {
	return t.PageHeight - t.MarginBottom
}

func (t Theme) resources() ResourceSet {
	fonts := map[string]FontResource{}
	for _, f := range []FontResource{t.Fonts.Regular, t.Fonts.Bold, t.Fonts.Italic} {
		fonts[f.Name] = f
	}
	return ResourceSet{Fonts: fonts}
}

func (t Theme) font(name string) FontResource {
	switch name {
	case FontBold:
		return t.Fonts.Bold
	case FontItalic:
		return t.Fonts.Italic
	default:
		return t.Fonts.Regular
	}
}
