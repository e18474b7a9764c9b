package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"

	"github.com/ByLCY/pitchdeck/examples"
	"github.com/ByLCY/pitchdeck/layout"
	fpdfrenderer "github.com/ByLCY/pitchdeck/renderer/fpdf"
)

func newTestApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:     "pitchdeck",
		Writer:   out,
		Commands: []*cli.Command{buildCommand, estimateCommand, configCommand},
	}
}

func TestRunBuiltinDeck(t *testing.T) {
	dir := t.TempDir()
	debug := filepath.Join(dir, "debug", "layout.json")
	job := buildJob{
		deckName:  examples.ReaKtName,
		deckSrc:   strings.NewReader(examples.ReaKt),
		assetsDir: dir,
		theme:     layout.DefaultTheme(),
		backend:   fpdfrenderer.NewRenderer(dir),
		debugFile: debug,
	}
	pdf, res, err := job.run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
	if len(res.Pages) != 10 {
		t.Fatalf("expected 10 pages, got %d", len(res.Pages))
	}
	if _, err := os.Stat(debug); err != nil {
		t.Fatalf("debug layout not written: %v", err)
	}
}

func TestBuiltinDecksKeepTheirSlides(t *testing.T) {
	testCases := []struct {
		name  string
		kinds []string
		text  string
	}{
		{
			name:  "reakt",
			kinds: []string{"cover", "problem", "solution", "bullets", "stats", "bullets", "bullets", "bullets", "bullets", "bullets"},
			text:  "Iteration avancee : +20% production.",
		},
		{
			name:  "cards",
			kinds: []string{"cards", "cards"},
			text:  "+20% production.",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			name, src, err := examples.Lookup(tc.name)
			if err != nil {
				t.Fatal(err)
			}
			dir := t.TempDir()
			job := buildJob{
				deckName:  name,
				deckSrc:   strings.NewReader(src),
				assetsDir: dir,
				theme:     layout.DefaultTheme(),
				backend:   fpdfrenderer.NewRenderer(dir),
			}
			_, res, err := job.run()
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			var kinds []string
			found := false
			for _, p := range res.Pages {
				kinds = append(kinds, p.Kind)
				for _, tb := range p.Texts {
					if tb.Content == tc.text {
						found = true
					}
				}
			}
			if diff := cmp.Diff(tc.kinds, kinds); diff != "" {
				t.Errorf("page kinds mismatch (-want +got):\n%s", diff)
			}
			if !found {
				t.Errorf("no text box reads %q", tc.text)
			}
		})
	}
	if _, _, err := examples.Lookup("nope"); err == nil {
		t.Fatal("expected an error for an unknown example")
	}
}

func TestBuildBuiltinDeckDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	var out bytes.Buffer
	if err := newTestApp(&out).Run([]string{"pitchdeck", "build", "--renderer", "fpdf"}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, examples.ReaKtOutput)); err != nil {
		t.Fatalf("built-in deck not written to %s: %v", examples.ReaKtOutput, err)
	}

	out.Reset()
	if err := newTestApp(&out).Run([]string{"pitchdeck", "build", "--renderer", "fpdf", "--example", "cards"}); err != nil {
		t.Fatalf("build cards: %v", err)
	}
	if !strings.Contains(out.String(), "pitch_deck.pdf (2 pages)") {
		t.Fatalf("unexpected build output: %s", out.String())
	}
}

func TestRunRejectsBadDeck(t *testing.T) {
	job := buildJob{
		deckName: "bad.deck",
		deckSrc:  strings.NewReader("deck {"),
		theme:    layout.DefaultTheme(),
		backend:  fpdfrenderer.NewRenderer(""),
	}
	if _, _, err := job.run(); err == nil || !strings.Contains(err.Error(), "bad.deck") {
		t.Fatalf("expected a parse error naming the file, got %v", err)
	}
	job.backend = nil
	if _, _, err := job.run(); err == nil {
		t.Fatal("expected an error without a renderer")
	}
}

func TestLoadData(t *testing.T) {
	data, err := loadData(`{"company":"ReaKt"}`)
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := data.(map[string]any); !ok || m["company"] != "ReaKt" {
		t.Fatalf("inline json: %#v", data)
	}

	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(path, []byte("company: ReaKt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadData(path); err != nil {
		t.Fatalf("yaml file: %v", err)
	}
	if data, err := loadData(""); err != nil || data != nil {
		t.Fatalf("empty: %v, %v", data, err)
	}
	if _, err := loadData("{broken"); err == nil {
		t.Fatal("expected an error for broken json")
	}
}

func TestEstimateCommand(t *testing.T) {
	testCases := []struct {
		args []string
		want string
	}{
		{args: []string{"--width", "0", "hello"}, want: "0"},
		{args: []string{"--width", "1000", "hello"}, want: "1"},
	}
	for _, tc := range testCases {
		var out bytes.Buffer
		args := append([]string{"pitchdeck", "estimate"}, tc.args...)
		if err := newTestApp(&out).Run(args); err != nil {
			t.Fatalf("%v: %v", tc.args, err)
		}
		if got := strings.TrimSpace(out.String()); got != tc.want {
			t.Errorf("%v: got %q, want %q", tc.args, got, tc.want)
		}
	}
}

func TestEstimateCardCommand(t *testing.T) {
	var out bytes.Buffer
	args := []string{"pitchdeck", "estimate", "--width", "130", "--title", "Deep Learning", "Notre reseau predit."}
	if err := newTestApp(&out).Run(args); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "title lines: 1") || !strings.Contains(out.String(), "height:") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestBuildAndConfigCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pitchdeck.toml")
	var out bytes.Buffer
	if err := newTestApp(&out).Run([]string{"pitchdeck", "config", "init", cfgPath}); err != nil {
		t.Fatalf("config init: %v", err)
	}

	pdfPath := filepath.Join(dir, "out", "deck.pdf")
	out.Reset()
	args := []string{"pitchdeck", "build", "--config", cfgPath, "--renderer", "fpdf", "--out", pdfPath, "--assets", dir}
	if err := newTestApp(&out).Run(args); err != nil {
		t.Fatalf("build: %v", err)
	}
	raw, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		t.Fatal("build did not write a PDF")
	}
	if !strings.Contains(out.String(), "(10 pages)") {
		t.Fatalf("unexpected build output: %s", out.String())
	}
}

func TestConfigShowCommand(t *testing.T) {
	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	if err := newTestApp(&out).Run([]string{"pitchdeck", "config", "show", missing}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "output: pitch_deck.pdf") {
		t.Fatalf("expected default output in:\n%s", out.String())
	}
}
