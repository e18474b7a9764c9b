package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/pitchdeck/config"
	"github.com/ByLCY/pitchdeck/logging"
)

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "Manage configuration files.",
	Subcommands: []*cli.Command{
		{
			Name:      "init",
			Usage:     "Write the default configuration to PATH (.yaml, .yml or .toml).",
			ArgsUsage: "[PATH]",
			Flags:     logging.Flags,
			Action:    configInitCmd,
		},
		{
			Name:      "show",
			Usage:     "Print the effective configuration after loading PATH.",
			ArgsUsage: "[PATH]",
			Flags:     logging.Flags,
			Action:    configShowCmd,
		},
	},
}

func configInitCmd(cc *cli.Context) error {
	logging.Setup()
	path := "pitchdeck.yaml"
	if cc.Args().Present() {
		path = cc.Args().First()
	}
	if err := config.InitConfig(path); err != nil {
		return err
	}
	fmt.Fprintf(cc.App.Writer, "wrote %s\n", path)
	return nil
}

func configShowCmd(cc *cli.Context) error {
	logging.Setup()
	cfg, err := config.LoadOrDefault(cc.Args().First())
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = cc.App.Writer.Write(out)
	return err
}
