// Package fonts provides the built-in font files and a renderer-independent
// text measurer.
package fonts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// EmbedPrefix marks a font source as one of the built-in fonts.
const EmbedPrefix = "embed:"

// Regular is the source of the fallback font every renderer can rely on.
const Regular = EmbedPrefix + "Go-Regular"

var builtin = map[string][]byte{
	"Go-Regular":    goregular.TTF,
	"Go-Bold":       gobold.TTF,
	"Go-Italic":     goitalic.TTF,
	"Go-BoldItalic": gobolditalic.TTF,
}

// Load returns the font data for src. src is either "embed:<name>" (the ".ttf"
// suffix is optional) or a path on disk.
func Load(src string) ([]byte, error) {
	if strings.HasPrefix(src, EmbedPrefix) {
		name := strings.TrimSuffix(strings.TrimPrefix(src, EmbedPrefix), ".ttf")
		data, ok := builtin[name]
		if !ok {
			return nil, fmt.Errorf("unknown built-in font %q (have %s)", name, strings.Join(Names(), ", "))
		}
		return data, nil
	}
	if src == "" {
		return nil, fmt.Errorf("font source is empty")
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", src, err)
	}
	return data, nil
}

// Names lists the built-in font names.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
