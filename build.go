package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ByLCY/pitchdeck/assets"
	"github.com/ByLCY/pitchdeck/binding"
	"github.com/ByLCY/pitchdeck/config"
	"github.com/ByLCY/pitchdeck/dsl"
	"github.com/ByLCY/pitchdeck/examples"
	"github.com/ByLCY/pitchdeck/layout"
	"github.com/ByLCY/pitchdeck/logging"
	"github.com/ByLCY/pitchdeck/renderer"
	canvasrenderer "github.com/ByLCY/pitchdeck/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/pitchdeck/renderer/fpdf"
)

var buildopts struct {
	configFile string
	output     string
	debugFile  string
	data       string
	assetsDir  string
	renderer   string
	example    string
	dumpAST    bool
}

var buildCommand = &cli.Command{
	Name:      "build",
	Usage:     "Render a deck file to PDF. Without a deck file a built-in example deck is rendered.",
	ArgsUsage: "[DECK]",
	Action:    buildCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "YAML or TOML configuration file",
			Destination: &buildopts.configFile,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "PDF output path (default from config, pitch_deck.pdf)",
			Destination: &buildopts.output,
		},
		&cli.StringFlag{
			Name:        "debug",
			Usage:       "write the computed layout as JSON to this path",
			Destination: &buildopts.debugFile,
		},
		&cli.StringFlag{
			Name:        "data",
			Usage:       "data for ${...} placeholders: a JSON/YAML/TOML file, or inline JSON",
			Destination: &buildopts.data,
		},
		&cli.StringFlag{
			Name:        "assets",
			Usage:       "directory images are resolved against (default: the deck's directory)",
			Destination: &buildopts.assetsDir,
		},
		&cli.StringFlag{
			Name:        "renderer",
			Usage:       "PDF backend, canvas or fpdf (default from config)",
			Destination: &buildopts.renderer,
		},
		&cli.StringFlag{
			Name:        "example",
			Usage:       "built-in deck to render when no deck file is given: reakt or cards",
			Value:       "reakt",
			Destination: &buildopts.example,
		},
		&cli.BoolFlag{
			Name:        "dump-ast",
			Usage:       "log the parsed deck at debug level",
			Destination: &buildopts.dumpAST,
		},
	}, logging.Flags...),
}

func buildCmd(cc *cli.Context) error {
	logging.Setup()

	cfg, err := config.LoadOrDefault(buildopts.configFile)
	if err != nil {
		return err
	}
	if buildopts.output != "" {
		cfg.Output = buildopts.output
	}
	if buildopts.assetsDir != "" {
		cfg.Assets = buildopts.assetsDir
	}
	if buildopts.data != "" {
		cfg.Data = buildopts.data
	}
	if buildopts.renderer != "" {
		cfg.Renderer = buildopts.renderer
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	job := buildJob{
		assetsDir: cfg.Assets,
		debugFile: buildopts.debugFile,
		dumpAST:   buildopts.dumpAST,
	}
	if cc.Args().Present() {
		path := cc.Args().First()
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open deck: %w", err)
		}
		defer f.Close()
		job.deckName = path
		job.deckSrc = f
		if job.assetsDir == "" {
			job.assetsDir = filepath.Dir(path)
		}
	} else {
		name, src, err := examples.Lookup(buildopts.example)
		if err != nil {
			return err
		}
		job.deckName = name
		job.deckSrc = strings.NewReader(src)
		if name == examples.ReaKtName && buildopts.output == "" && cfg.Output == config.DefaultOutput {
			cfg.Output = examples.ReaKtOutput
		}
		slog.Info("no deck given, rendering a built-in example", "deck", name)
	}
	if job.assetsDir == "" {
		job.assetsDir = "."
	}

	if job.data, err = loadData(cfg.Data); err != nil {
		return err
	}
	job.theme = cfg.Theme()
	job.backend = newBackend(cfg.Renderer, job.assetsDir)

	pdf, res, err := job.run()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(cfg.Output, pdf, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	slog.Info("pdf written", "path", cfg.Output, "pages", len(res.Pages), "bytes", len(pdf), "renderer", cfg.Renderer)
	fmt.Fprintf(cc.App.Writer, "%s (%d pages)\n", cfg.Output, len(res.Pages))
	return nil
}

// buildJob is one parse, layout and render pass.
type buildJob struct {
	deckName  string
	deckSrc   io.Reader
	assetsDir string
	data      any
	theme     layout.Theme
	backend   renderer.Backend
	debugFile string
	dumpAST   bool
}

func (j buildJob) run() ([]byte, *layout.Result, error) {
	if j.backend == nil {
		return nil, nil, fmt.Errorf("no renderer")
	}
	deck, err := dsl.Parse(j.deckName, j.deckSrc)
	if err != nil {
		return nil, nil, fmt.Errorf("parse deck: %w", err)
	}
	if j.dumpAST {
		logging.Dump("deck", deck)
	}

	res, err := layout.Build(deck, layout.BuildOptions{
		Theme:      j.theme,
		Typesetter: j.backend,
		Measurer:   j.backend,
		Assets:     assets.NewResolver(j.assetsDir),
		Data:       j.data,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("layout: %w", err)
	}

	if j.debugFile != "" {
		if err := layout.WriteDebugJSON(res, j.debugFile); err != nil {
			return nil, nil, err
		}
		slog.Info("layout written", "path", j.debugFile)
	}

	pdf, err := j.backend.Render(res)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}
	return pdf, res, nil
}

func newBackend(name, baseDir string) renderer.Backend {
	if name == config.RendererFPDF {
		return fpdfrenderer.NewRenderer(baseDir)
	}
	return canvasrenderer.NewRenderer(baseDir)
}

// loadData reads placeholder data from a file, or parses v as JSON when it
// looks like an object.
func loadData(v string) (any, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if strings.HasPrefix(v, "{") {
		var data any
		if err := json.Unmarshal([]byte(v), &data); err != nil {
			return nil, fmt.Errorf("parse data json: %w", err)
		}
		return data, nil
	}
	return binding.LoadFile(v)
}
