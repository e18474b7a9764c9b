package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/pitchdeck/assets"
	"github.com/ByLCY/pitchdeck/dsl"
	"github.com/ByLCY/pitchdeck/fonts"
	"github.com/ByLCY/pitchdeck/layout"
)

var bodyFont = layout.FontResource{Name: layout.FontRegular, Src: fonts.Regular}

// 这里的宽度/字号/行高均为 mm
var (
	fontSizeMM   = 12 * layout.PtToMm
	lineHeightMM = 8.0
)

func TestLayoutLinesGreedyWrapsText(t *testing.T) {
	r := NewRenderer(".")
	lines, err := r.LayoutLines("hello world again", 10, bodyFont, fontSizeMM, lineHeightMM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
	for i, l := range lines {
		if l.Height != lineHeightMM {
			t.Fatalf("line %d height %g, want %g", i, l.Height, lineHeightMM)
		}
	}
}

func TestGreedyWrapHonorsNewlines(t *testing.T) {
	r := NewRenderer(".")
	lines, err := r.LayoutLines("foo\n\nbar", 100, bodyFont, fontSizeMM, lineHeightMM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1].Content != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1].Content)
	}
}

// 当第一行宽度与容器宽度恰好相等且后面紧跟一个显式换行时，不应产生额外的空行。
func TestNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	r := NewRenderer(".")
	first := "SAMPLE-A"
	measured, err := r.LayoutLines(first, 1e6, bodyFont, fontSizeMM, lineHeightMM)
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	if len(measured) != 1 {
		t.Fatalf("unexpected measured lines: %d", len(measured))
	}
	limit := measured[0].Width
	if limit <= 0 {
		t.Fatalf("invalid measured width: %g", limit)
	}

	lines, err := r.LayoutLines(first+"\nSAMPLE-B", limit, bodyFont, fontSizeMM, lineHeightMM)
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if got := len(lines); got != 2 {
		t.Fatalf("expected 2 lines without blank, got %d", got)
	}
	if lines[0].Content != first || lines[1].Content != "SAMPLE-B" {
		t.Fatalf("unexpected lines %q / %q", lines[0].Content, lines[1].Content)
	}
}

func TestTextWidthGrows(t *testing.T) {
	r := NewRenderer(".")
	short, err := r.TextWidth("Boite", bodyFont, fontSizeMM)
	if err != nil {
		t.Fatal(err)
	}
	long, err := r.TextWidth("Boite Noire", bodyFont, fontSizeMM)
	if err != nil {
		t.Fatal(err)
	}
	if short <= 0 || long <= short {
		t.Fatalf("widths not increasing: %g then %g", short, long)
	}
	bigger, err := r.TextWidth("Boite", bodyFont, 2*fontSizeMM)
	if err != nil {
		t.Fatal(err)
	}
	if bigger <= short {
		t.Fatalf("doubling the size did not widen the text: %g vs %g", bigger, short)
	}
	if w, _ := r.TextWidth("", bodyFont, fontSizeMM); w != 0 {
		t.Fatalf("empty text width = %g", w)
	}
}

func TestUnknownFontFallsBack(t *testing.T) {
	r := NewRenderer(t.TempDir())
	font := layout.FontResource{Name: "brand", Src: "Missing.ttf"}
	w, err := r.TextWidth("fallback", font, fontSizeMM)
	if err != nil {
		t.Fatalf("expected fallback font, got %v", err)
	}
	if w <= 0 {
		t.Fatalf("fallback width = %g", w)
	}
}

func TestInjectedFont(t *testing.T) {
	data, err := fonts.Load("embed:Go-Bold")
	if err != nil {
		t.Fatal(err)
	}
	r := NewRendererWithOptions(Options{Fonts: map[string][]byte{"Brand": data}})
	injected := layout.FontResource{Name: "brand", Src: BuiltinPrefix + "Brand", Style: "B"}
	if _, err := r.TextWidth("ReaKt", injected, fontSizeMM); err != nil {
		t.Fatal(err)
	}
	if _, err := r.loadFontBytes(layout.FontResource{Src: BuiltinPrefix + "Other"}); err == nil {
		t.Fatal("expected an error for an unknown injected font")
	}
}

func TestParseFontStyle(t *testing.T) {
	testCases := map[string]canvas.FontStyle{
		"":                canvas.FontRegular,
		"B":               canvas.FontBold,
		"I":               canvas.FontRegular | canvas.FontItalic,
		"BI":              canvas.FontBold | canvas.FontItalic,
		"SemiBold Italic": canvas.FontSemiBold | canvas.FontItalic,
		"light":           canvas.FontLight,
	}
	for in, want := range testCases {
		if got := parseFontStyle(in); got != want {
			t.Errorf("parseFontStyle(%q) = %v, want %v", in, got, want)
		}
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{0, 220, 160, 255})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRenderPrimitives(t *testing.T) {
	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	writePNG(t, logo, 40, 20)

	fill := layout.Color{R: 10, G: 25, B: 40}
	res := &layout.Result{
		Resources: layout.ResourceSet{Fonts: map[string]layout.FontResource{layout.FontRegular: bodyFont}},
		Meta:      layout.DocumentMeta{Title: "T", Keywords: []string{"a", "b"}},
		Pages: []layout.Page{{
			Kind: "cover", Width: 297, Height: 210,
			Rects:  []layout.Rect{{Width: 297, Height: 210, FillColor: &fill}},
			Lines:  []layout.Line{{X1: 15, Y1: 32, X2: 100, Y2: 32, Width: 1, Color: layout.Color{G: 220, B: 160}}},
			Images: []layout.ImageBox{{Name: "logo.png", Path: logo, X: 10, Y: 10, Width: 40, Height: 20}},
			Texts: []layout.TextBox{{
				Content: "ReaKt", X: 15, Y: 120, Width: 267, Font: layout.FontRegular, FontSize: fontSizeMM,
				Color: layout.Color{R: 255, G: 255, B: 255}, Align: "center",
				Lines: []layout.TextLine{{Content: "ReaKt", Height: 10}}, Height: 10,
			}},
		}},
	}
	out, err := NewRenderer(dir).Render(res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 8)])
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer(".")
	if _, err := r.Render(nil); err == nil {
		t.Fatal("expected an error for a nil result")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatal("expected an error for a result without pages")
	}
	bad := &layout.Result{Pages: []layout.Page{{
		Width: 100, Height: 100,
		Images: []layout.ImageBox{{Path: filepath.Join(t.TempDir(), "gone.png"), Width: 10}},
	}}}
	if _, err := r.Render(bad); err == nil {
		t.Fatal("expected an error for an image that vanished after layout")
	}
}

func TestBuildAndRenderDeck(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "example.png"), 300, 150)

	deck, err := dsl.ParseString(`deck Demo {
  cover {
    title: "Demo"
  }
  slide solution "La Solution" image "example.png" {
    "• Au-delà du monitoring"
    "- ReaKt anticipe."
  }
  slide cards "Cartes" {
    "• Un"
    "premier bloc"
    "• Deux"
    "second bloc"
  }
}`)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(dir)
	res, err := layout.Build(deck, layout.BuildOptions{Typesetter: r, Assets: assets.NewResolver(dir)})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(res.Pages))
	}
	if len(res.Pages[1].Images) != 1 {
		t.Fatalf("expected the solution image to be placed, got %d images", len(res.Pages[1].Images))
	}
	out, err := r.Render(res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}
