package main

import (
	"github.com/lox/barbu/cmd/barbu/shared"
	"github.com/lox/barbu/internal/game"
	"github.com/lox/barbu/internal/store"
	"github.com/lox/barbu/internal/tui"
)

type PlayCmd struct {
	Fresh bool `help:"Ignore any saved game and start from setup"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.LogLevel, cli.Debug)
	st := store.New(cfg.SavePath, logger)

	var sess *game.Session
	commentary := cfg.Commentary.Enabled
	if !c.Fresh {
		loaded, flag, err := st.Load(logger)
		if err != nil {
			return err
		}
		if loaded != nil {
			sess = loaded
			commentary = flag
		}
	}

	return tui.Run(tui.Options{
		Session:     sess,
		Store:       st,
		Logger:      logger,
		Commentary:  commentary,
		LeadMargins: cfg.Commentary.LeadMargins,
	})
}
