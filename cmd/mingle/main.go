package main

import (
	"context"
	"log"
	"os"

	"github.com/minglehq/mingle/cmd/mingle/commands"
	"github.com/minglehq/mingle/internal/setup"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app, err := setup.InitializeApp()
	if err != nil {
		return err
	}
	defer app.CleanupApp()

	deps := &commands.CLIDependencies{
		Config:    app.Config,
		Session:   app.Session,
		Feed:      app.Feed,
		Mutations: app.Mutations,
		Logger:    app.Logger,
	}

	var cmds []*cli.Command
	cmds = append(cmds, commands.AuthCommands(deps)...)
	cmds = append(cmds, commands.FeedCommands(deps)...)
	cmds = append(cmds, commands.PostCommands(deps)...)
	cmds = append(cmds, commands.FriendCommands(deps)...)
	cmds = append(cmds, commands.UserCommands(deps)...)
	cmds = append(cmds, commands.TUICommands(deps, app)...)

	root := &cli.Command{
		Name:     "mingle",
		Usage:    "Terminal client for the Mingle social network",
		Commands: cmds,
	}

	return root.Run(context.Background(), os.Args)
}
