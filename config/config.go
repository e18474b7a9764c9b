// Package config holds the settings a deck is built with: page geometry,
// palette, fonts and renderer choice. Files are YAML, or TOML when the name
// ends in .toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/pitchdeck/layout"
)

// Renderer backends.
const (
	RendererCanvas = "canvas"
	RendererFPDF   = "fpdf"
)

// DefaultOutput is the PDF path used when neither flags nor the config file
// name one.
const DefaultOutput = "pitch_deck.pdf"

// Config is the top-level configuration.
type Config struct {
	Output   string             `yaml:"output" toml:"output"`
	Assets   string             `yaml:"assets,omitempty" toml:"assets,omitempty"`
	Data     string             `yaml:"data,omitempty" toml:"data,omitempty"`
	Renderer string             `yaml:"renderer" toml:"renderer"`
	Page     PageConfig         `yaml:"page" toml:"page"`
	Palette  PaletteConfig      `yaml:"palette" toml:"palette"`
	Fonts    FontsConfig        `yaml:"fonts" toml:"fonts"`
	Text     TextConfig         `yaml:"text" toml:"text"`
	Card     layout.CardMetrics `yaml:"card" toml:"card"`
}

// PageConfig is the page size and margins in mm.
type PageConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	MarginLeft   float64 `yaml:"margin_left" toml:"margin_left"`
	MarginRight  float64 `yaml:"margin_right" toml:"margin_right"`
	MarginBottom float64 `yaml:"margin_bottom" toml:"margin_bottom"`
}

// PaletteConfig holds colours as "#rrggbb" or "#rgb".
type PaletteConfig struct {
	Background  string `yaml:"background" toml:"background"`
	Text        string `yaml:"text" toml:"text"`
	Accent      string `yaml:"accent" toml:"accent"`
	Title       string `yaml:"title" toml:"title"`
	Muted       string `yaml:"muted" toml:"muted"`
	Placeholder string `yaml:"placeholder" toml:"placeholder"`
	Card        string `yaml:"card" toml:"card"`
}

// FontsConfig selects the three faces. Src is an embedded font
// ("embed:Go-Bold") or a TrueType file path; Core is the PDF core font the
// fpdf renderer uses instead when set.
type FontsConfig struct {
	Regular FontConfig `yaml:"regular" toml:"regular"`
	Bold    FontConfig `yaml:"bold" toml:"bold"`
	Italic  FontConfig `yaml:"italic" toml:"italic"`
}

// FontConfig is one face.
type FontConfig struct {
	Src  string `yaml:"src" toml:"src"`
	Core string `yaml:"core,omitempty" toml:"core,omitempty"`
}

// TextConfig controls text handling.
type TextConfig struct {
	Logo      string  `yaml:"logo" toml:"logo"`
	Marker    string  `yaml:"marker" toml:"marker"`
	SubMarker string  `yaml:"sub_marker" toml:"sub_marker"`
	Latin1    bool    `yaml:"latin1" toml:"latin1"`
	WrapFudge float64 `yaml:"wrap_fudge" toml:"wrap_fudge"`
}

// Default returns the configuration that reproduces the stock deck.
func Default() *Config {
	t := layout.DefaultTheme()
	return &Config{
		Output:   DefaultOutput,
		Renderer: RendererCanvas,
		Page: PageConfig{
			Width:        t.PageWidth,
			Height:       t.PageHeight,
			MarginLeft:   t.MarginLeft,
			MarginRight:  t.MarginRight,
			MarginBottom: t.MarginBottom,
		},
		Palette: PaletteConfig{
			Background:  FormatColor(t.Palette.Background),
			Text:        FormatColor(t.Palette.Text),
			Accent:      FormatColor(t.Palette.Accent),
			Title:       FormatColor(t.Palette.Title),
			Muted:       FormatColor(t.Palette.Muted),
			Placeholder: FormatColor(t.Palette.Placeholder),
			Card:        FormatColor(t.Palette.Card),
		},
		Fonts: FontsConfig{
			Regular: FontConfig{Src: t.Fonts.Regular.Src, Core: t.Fonts.Regular.Core},
			Bold:    FontConfig{Src: t.Fonts.Bold.Src, Core: t.Fonts.Bold.Core},
			Italic:  FontConfig{Src: t.Fonts.Italic.Src, Core: t.Fonts.Italic.Core},
		},
		Text: TextConfig{
			Logo:      t.Logo,
			Marker:    t.Marker,
			SubMarker: t.SubMarker,
			Latin1:    t.Latin1,
			WrapFudge: t.WrapFudge,
		},
		Card: t.Card,
	}
}

// Load reads a configuration file. Fields the file leaves out keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns the default if path is
// empty or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration to path in the format its extension selects.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// InitConfig writes the default configuration to path unless a file is
// already there.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	return Default().Save(path)
}

// Validate checks the values Theme cannot fall back on.
func (c *Config) Validate() error {
	switch c.Renderer {
	case RendererCanvas, RendererFPDF:
	default:
		return fmt.Errorf("renderer must be %q or %q, got %q", RendererCanvas, RendererFPDF, c.Renderer)
	}
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		return fmt.Errorf("page size must be positive, got %gx%g", c.Page.Width, c.Page.Height)
	}
	if c.Page.MarginLeft+c.Page.MarginRight >= c.Page.Width {
		return fmt.Errorf("margins leave no room on a %gmm page", c.Page.Width)
	}
	for name, v := range map[string]string{
		"background":  c.Palette.Background,
		"text":        c.Palette.Text,
		"accent":      c.Palette.Accent,
		"title":       c.Palette.Title,
		"muted":       c.Palette.Muted,
		"placeholder": c.Palette.Placeholder,
		"card":        c.Palette.Card,
	} {
		if _, err := ParseColor(v); err != nil {
			return fmt.Errorf("palette %s: %w", name, err)
		}
	}
	return nil
}

// Theme converts the configuration into the layout theme. Colours are
// assumed valid (see Validate); an unparsable one keeps the default.
func (c *Config) Theme() layout.Theme {
	t := layout.DefaultTheme()
	t.PageWidth = c.Page.Width
	t.PageHeight = c.Page.Height
	t.MarginLeft = c.Page.MarginLeft
	t.MarginRight = c.Page.MarginRight
	t.MarginBottom = c.Page.MarginBottom

	setColor(&t.Palette.Background, c.Palette.Background)
	setColor(&t.Palette.Text, c.Palette.Text)
	setColor(&t.Palette.Accent, c.Palette.Accent)
	setColor(&t.Palette.Title, c.Palette.Title)
	setColor(&t.Palette.Muted, c.Palette.Muted)
	setColor(&t.Palette.Placeholder, c.Palette.Placeholder)
	setColor(&t.Palette.Card, c.Palette.Card)

	setFont(&t.Fonts.Regular, c.Fonts.Regular)
	setFont(&t.Fonts.Bold, c.Fonts.Bold)
	setFont(&t.Fonts.Italic, c.Fonts.Italic)

	t.Logo = c.Text.Logo
	t.Marker = c.Text.Marker
	t.SubMarker = c.Text.SubMarker
	t.Latin1 = c.Text.Latin1
	if c.Text.WrapFudge > 0 {
		t.WrapFudge = c.Text.WrapFudge
	}
	t.Card = c.Card
	return t
}

// ParseColor reads "#rrggbb" or "#rgb".
func ParseColor(s string) (layout.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return layout.Color{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return layout.Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return layout.Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// FormatColor writes c as "#rrggbb".
func FormatColor(c layout.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func setColor(dst *layout.Color, s string) {
	if c, err := ParseColor(s); err == nil {
		*dst = c
	}
}

// setFont keeps dst's name and style; those tie the face to the slide text
// styles.
func setFont(dst *layout.FontResource, fc FontConfig) {
	if fc.Src != "" {
		dst.Src = fc.Src
	}
	dst.Core = fc.Core
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
