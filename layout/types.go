package layout

// This file defines the layout result shared by the builder, the renderers and
// the debug JSON writer. All coordinates and lengths are millimetres measured
// from the top-left corner of the page.

// Result holds the laid-out pages and the resources they reference.
type Result struct {
	Pages     []Page       `json:"pages"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
}

// ResourceSet records the fonts text boxes refer to by name.
type ResourceSet struct {
	Fonts map[string]FontResource `json:"fonts"`
}

// FontResource describes a font. Src is an "embed:" name or a file path and is
// used by renderers that load TrueType data; Core names a standard PDF font
// (Helvetica, Times, Courier) for renderers that can use one directly.
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`
	Style string `json:"style"` // "", "B", "I" or "BI"
	Core  string `json:"core,omitempty"`
}

// Color uses 0-255 RGB components.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Page is one slide. Renderers draw Rects, then Lines, then Images, then Texts.
type Page struct {
	Kind   string     `json:"kind"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Rects  []Rect     `json:"rects,omitempty"`
	Lines  []Line     `json:"lines,omitempty"`
	Images []ImageBox `json:"images,omitempty"`
	Texts  []TextBox  `json:"texts,omitempty"`
}

// TextBox is a block of text whose lines are already broken and positioned.
type TextBox struct {
	Content  string     `json:"content"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Font     string     `json:"font"`
	FontSize float64    `json:"fontSize"` // mm
	Color    Color      `json:"color"`
	Lines    []TextLine `json:"lines"`
	Height   float64    `json:"height"`
	Align    string     `json:"align,omitempty"` // left (default), center, right
}

// TextLine is one rendered line. Its text is vertically centred in a row of
// Height, the way a PDF cell places text.
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// ImageBox places an image file; the renderer scales it to Width x Height.
type ImageBox struct {
	Name   string  `json:"name"`
	Path   string  `json:"path"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Line is a straight segment.
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // lines with Width <= 0 are not drawn
}

// Rect is a filled axis-aligned rectangle. A rect without FillColor is not
// drawn.
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	FillColor   *Color  `json:"fillColor,omitempty"`
	Placeholder bool    `json:"placeholder,omitempty"` // stands in for a missing image
}

// DocumentMeta holds the PDF information dictionary.
type DocumentMeta struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
