package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDebugJSON(t *testing.T) {
	res := buildDeck(t, testDeck, BuildOptions{})
	path := filepath.Join(t.TempDir(), "out", "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Pages []struct {
			Kind string `json:"kind"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("debug output is not JSON: %v", err)
	}
	if len(decoded.Pages) != len(res.Pages) {
		t.Fatalf("decoded %d pages, want %d", len(decoded.Pages), len(res.Pages))
	}
}
