package main

import (
	"fmt"

	"github.com/lox/barbu/cmd/barbu/shared"
	"github.com/lox/barbu/internal/store"
)

type ImportCmd struct {
	File string `arg:"" help:"Exported game file to import" type:"existingfile"`
}

func (c *ImportCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.LogLevel, cli.Debug)
	st := store.New(cfg.SavePath, logger)

	// Import is strict and all-or-nothing: the saved game is only replaced
	// once the file has fully validated.
	sess, commentary, err := st.Import(c.File, logger)
	if err != nil {
		return err
	}
	if err := st.Save(sess, commentary); err != nil {
		return err
	}
	fmt.Printf("Imported %s: %d players, %d rounds\n", c.File, len(sess.Players()), len(sess.Rounds()))
	return nil
}
