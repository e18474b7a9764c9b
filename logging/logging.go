// Package logging wires the command line verbosity flags to slog.
package logging

import (
	"log/slog"

	"github.com/iand/pontium/hlog"
	"github.com/kortschak/utter"
	"github.com/urfave/cli/v2"
)

var Flags = []cli.Flag{
	&cli.BoolFlag{
		Name:        "verbose",
		Aliases:     []string{"v"},
		Usage:       "Set logging level more verbose to include info level logs",
		Value:       false,
		Destination: &Opts.Verbose,
	},

	&cli.BoolFlag{
		Name:        "veryverbose",
		Aliases:     []string{"vv"},
		Usage:       "Set logging level more verbose to include debug level logs",
		Destination: &Opts.VeryVerbose,
	},

	&cli.StringSliceFlag{
		Name:        "log-ids",
		Usage:       "Always emit debug logging for these slide kinds or image names, comma separated",
		Destination: &Opts.LogIDs,
	},
}

var Opts struct {
	Verbose     bool
	VeryVerbose bool
	LogIDs      cli.StringSlice
}

func Setup() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelWarn)
	if Opts.Verbose {
		logLevel.Set(slog.LevelInfo)
	}
	if Opts.VeryVerbose {
		logLevel.Set(slog.LevelDebug)
	}

	h := new(hlog.Handler)
	h = h.WithLevel(logLevel.Level())
	for _, id := range Opts.LogIDs.Value() {
		h = h.WithAttrLevel(slog.String("id", id), slog.LevelDebug)
	}

	slog.SetDefault(slog.New(h))
}

// Dump logs v at debug level, pretty-printed unless it is a string.
func Dump(msg string, v any) {
	switch vt := v.(type) {
	case string:
		slog.Debug(msg, "value", vt)
	default:
		slog.Debug(msg + "\n" + utter.Sdump(v))
	}
}
