package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Parse   ParseCmd         `cmd:"" help:"Parse hand history files and print the results"`
	Sync    SyncCmd          `cmd:"" help:"Import new hand history files into the database"`
	Watch   WatchCmd         `cmd:"" help:"Continuously import hand history files as they appear"`
	Serve   ServeCmd         `cmd:"" help:"Run the stats API server"`
	Notes   NotesCmd         `cmd:"" help:"Import and export player notes"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerhub"),
		kong.Description("Hand history parser, collector and stats hub"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
