package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Play     PlayCmd     `cmd:"" default:"1" help:"Play a local game in the terminal"`
	Serve    ServeCmd    `cmd:"" help:"Run the WebSocket game server"`
	Client   ClientCmd   `cmd:"" help:"Play a game hosted by a server"`
	Simulate SimulateCmd `cmd:"" help:"Run automated players against fresh boards"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("concentration"),
		kong.Description("Memory-matching tile game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
