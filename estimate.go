package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ByLCY/pitchdeck/config"
	"github.com/ByLCY/pitchdeck/fonts"
	"github.com/ByLCY/pitchdeck/layout"
	"github.com/ByLCY/pitchdeck/logging"
)

var estimateopts struct {
	width      float64
	size       float64
	font       string
	fudge      float64
	title      string
	configFile string
}

var estimateCommand = &cli.Command{
	Name:      "estimate",
	Usage:     "Predict how many lines TEXT wraps into, or the height of a card when --title is given.",
	ArgsUsage: "TEXT...",
	Action:    estimateCmd,
	Flags: append([]cli.Flag{
		&cli.Float64Flag{
			Name:        "width",
			Aliases:     []string{"w"},
			Usage:       "available width in mm (the card width with --title)",
			Value:       120,
			Destination: &estimateopts.width,
		},
		&cli.Float64Flag{
			Name:        "size",
			Aliases:     []string{"s"},
			Usage:       "font size in pt",
			Value:       12,
			Destination: &estimateopts.size,
		},
		&cli.StringFlag{
			Name:        "font",
			Usage:       "font source, embed:<name> or a TrueType file",
			Value:       fonts.Regular,
			Destination: &estimateopts.font,
		},
		&cli.Float64Flag{
			Name:        "fudge",
			Usage:       "wrap correction factor",
			Value:       layout.DefaultWrapFudge,
			Destination: &estimateopts.fudge,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "estimate a content card with this title and TEXT as its body",
			Destination: &estimateopts.title,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "configuration file supplying card metrics and fonts for --title",
			Destination: &estimateopts.configFile,
		},
	}, logging.Flags...),
}

func estimateCmd(cc *cli.Context) error {
	logging.Setup()

	text := strings.Join(cc.Args().Slice(), " ")
	if text == "" && estimateopts.title == "" {
		return fmt.Errorf("nothing to estimate: pass TEXT")
	}
	e := layout.Estimator{Measurer: fonts.NewMeasurer(), Fudge: estimateopts.fudge}

	if estimateopts.title == "" {
		font := layout.FontResource{Name: "estimate", Src: estimateopts.font}
		n, err := e.Lines(text, estimateopts.width, font, estimateopts.size*layout.PtToMm)
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.App.Writer, n)
		return nil
	}

	cfg, err := config.LoadOrDefault(estimateopts.configFile)
	if err != nil {
		return err
	}
	theme := cfg.Theme()
	block := layout.ContentBlock{Title: estimateopts.title, Body: text}
	est, err := e.EstimateBlock(block, estimateopts.width, theme.Card, theme.Fonts.Bold, theme.Fonts.Regular)
	if err != nil {
		return err
	}
	printEstimate(cc.App.Writer, est)
	return nil
}

func printEstimate(w io.Writer, est layout.BlockEstimate) {
	fmt.Fprintf(w, "title lines: %d\nbody lines:  %d\nheight:      %.1fmm\n", est.TitleLines, est.BodyLines, est.Height)
}
