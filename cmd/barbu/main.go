package main

import (
	"github.com/alecthomas/kong"

	"github.com/lox/barbu/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `help:"Path to config file" type:"path"`
	Debug   bool             `help:"Enable debug logging"`

	Play      PlayCmd      `cmd:"" default:"withargs" help:"Run the interactive scorekeeper"`
	Standings StandingsCmd `cmd:"" help:"Print current standings from the saved game"`
	Export    ExportCmd    `cmd:"" help:"Export the saved game to a file"`
	Import    ImportCmd    `cmd:"" help:"Replace the saved game from an exported file"`
}

// loadConfig resolves the config path and loads it.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.Config
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("barbu"),
		kong.Description("Scorekeeping assistant for the card game Barbu"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
