package layout

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/pitchdeck/assets"
)

var gray = Color{R: 50, G: 50, B: 50}

func TestPlaceImageMissingGivesPlaceholderOfRequestedSize(t *testing.T) {
	slot := ImageSlot{
		Name:    filepath.Join(t.TempDir(), "does-not-exist.png"),
		X:       58.5,
		Y:       105,
		Width:   180,
		Height:  80,
		Missing: MissingPlaceholder,
	}
	p, err := PlaceImage(assets.NewResolver(""), slot, gray)
	if err != nil {
		t.Fatalf("missing image must not be an error: %v", err)
	}
	if p.Image != nil {
		t.Fatal("no image expected for a missing file")
	}
	r := p.Placeholder
	if r == nil {
		t.Fatal("expected a placeholder rect")
	}
	if r.X != 58.5 || r.Y != 105 || r.Width != 180 || r.Height != 80 {
		t.Fatalf("placeholder geometry %+v does not match the slot", *r)
	}
	if !r.Placeholder || r.FillColor == nil || *r.FillColor != gray {
		t.Fatalf("placeholder must be a filled gray rect, got %+v", *r)
	}
	if p.Label != "does-not-exist.png" {
		t.Fatalf("label = %q, want the file name", p.Label)
	}
	if got := p.Bottom(0); got != 185 {
		t.Fatalf("Bottom = %g, want 185", got)
	}
}

func TestPlaceImageMissingDerivesAndClipsHeight(t *testing.T) {
	p, err := PlaceImage(mapProber{}, ImageSlot{Name: "x.png", Width: 100, Y: 150, MaxY: 200, Label: "Schema"}, gray)
	if err != nil {
		t.Fatal(err)
	}
	if p.Placeholder == nil {
		t.Fatal("expected a placeholder")
	}
	// 100 * 0.6 = 60 would reach 210; clipped to MaxY
	if p.Placeholder.Height != 50 {
		t.Fatalf("height = %g, want 50", p.Placeholder.Height)
	}
	if p.Label != "Schema" {
		t.Fatalf("label = %q", p.Label)
	}
}

func TestPlaceImageMissingSkip(t *testing.T) {
	p, err := PlaceImage(mapProber{}, ImageSlot{Name: "logo.png", Width: 150, Missing: MissingSkip}, gray)
	if err != nil {
		t.Fatal(err)
	}
	if p.Image != nil || p.Placeholder != nil {
		t.Fatalf("skip policy must place nothing, got %+v", p)
	}
	if got := p.Bottom(42); got != 42 {
		t.Fatalf("Bottom of an empty placement = %g, want 42", got)
	}
}

func TestPlaceImageKeepsAspectRatio(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "wide.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 400, 100))); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	p, err := PlaceImage(assets.NewResolver(dir), ImageSlot{Name: "wide.png", X: 10, Y: 20, Width: 180, Height: 999}, gray)
	if err != nil {
		t.Fatal(err)
	}
	if p.Image == nil {
		t.Fatal("expected the image to be placed")
	}
	if p.Image.Width != 180 || p.Image.Height != 45 {
		t.Fatalf("scaled to %gx%g, want 180x45", p.Image.Width, p.Image.Height)
	}
	if p.Image.Path != filepath.Join(dir, "wide.png") {
		t.Fatalf("path = %q", p.Image.Path)
	}
}

func TestPlaceImageFromHeight(t *testing.T) {
	prober := mapProber{"icon.png": {Width: 200, Height: 100}}
	p, err := PlaceImage(prober, ImageSlot{Name: "icon.png", Height: 30}, gray)
	if err != nil {
		t.Fatal(err)
	}
	if p.Image == nil || p.Image.Width != 60 || p.Image.Height != 30 {
		t.Fatalf("unexpected placement %+v", p.Image)
	}
}
