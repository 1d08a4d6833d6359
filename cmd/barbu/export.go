package main

import (
	"fmt"
	"time"

	"github.com/lox/barbu/cmd/barbu/shared"
	"github.com/lox/barbu/internal/store"
)

type ExportCmd struct {
	Out string `help:"Output file (defaults to barbu-game-<timestamp>.json)" type:"path"`
}

func (c *ExportCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.LogLevel, cli.Debug)
	st := store.New(cfg.SavePath, logger)

	sess, commentary, err := st.Load(logger)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("no saved game at %s", st.Path())
	}

	out := c.Out
	if out == "" {
		out = fmt.Sprintf("barbu-game-%s.json", time.Now().UTC().Format("2006-01-02T15-04-05"))
	}
	if err := st.Export(sess, commentary, out); err != nil {
		return err
	}
	fmt.Printf("Exported game to %s\n", out)
	return nil
}
