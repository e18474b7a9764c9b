package fonts

import (
	"testing"

	"github.com/ByLCY/pitchdeck/layout"
)

func TestLoadBuiltin(t *testing.T) {
	for _, src := range []string{"embed:Go-Regular", "embed:Go-Bold.ttf", Regular} {
		data, err := Load(src)
		if err != nil {
			t.Fatalf("Load(%q): %v", src, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned no data", src)
		}
	}
	if _, err := Load("embed:Helvetica"); err == nil {
		t.Fatal("expected error for unknown built-in font")
	}
}

func TestMeasurerWidthGrowsWithTextAndSize(t *testing.T) {
	m := NewMeasurer()
	font := layout.FontResource{Name: "Body", Src: Regular}
	size := 12 * layout.PtToMm

	short, err := m.TextWidth("Boite Noire", font, size)
	if err != nil {
		t.Fatalf("TextWidth: %v", err)
	}
	long, err := m.TextWidth("Boite Noire : manque de visibilite", font, size)
	if err != nil {
		t.Fatalf("TextWidth: %v", err)
	}
	if short <= 0 || long <= short {
		t.Fatalf("expected 0 < short < long, got short=%g long=%g", short, long)
	}

	bigger, err := m.TextWidth("Boite Noire", font, 2*size)
	if err != nil {
		t.Fatalf("TextWidth: %v", err)
	}
	if bigger <= short {
		t.Fatalf("doubling the size must widen the text: %g <= %g", bigger, short)
	}

	empty, err := m.TextWidth("", font, size)
	if err != nil || empty != 0 {
		t.Fatalf("empty text: width=%g err=%v", empty, err)
	}
}
