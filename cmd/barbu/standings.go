package main

import (
	"fmt"

	"github.com/lox/barbu/cmd/barbu/shared"
	"github.com/lox/barbu/internal/store"
)

type StandingsCmd struct{}

func (c *StandingsCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.LogLevel, cli.Debug)
	st := store.New(cfg.SavePath, logger)

	sess, _, err := st.Load(logger)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("no saved game at %s", st.Path())
	}

	fmt.Printf("After %d rounds:\n", len(sess.Rounds()))
	for _, s := range sess.Standings() {
		fmt.Printf("%2d. %-20s %5d\n", s.Rank, s.Player.Name, s.Total)
	}
	if sess.Complete() {
		winner := sess.Standings()[0]
		fmt.Printf("\nGame over: %s wins\n", winner.Player.Name)
	} else {
		fmt.Printf("\nNext dealer: %s\n", sess.CurrentDealer().Name)
	}
	return nil
}
