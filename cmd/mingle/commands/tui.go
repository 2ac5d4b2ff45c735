package commands

import (
	"context"

	"github.com/minglehq/mingle/internal/setup"
	"github.com/minglehq/mingle/internal/tui"
	"github.com/urfave/cli/v3"
)

// TUICommands returns the interactive client command.
func TUICommands(deps *CLIDependencies, app *setup.App) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "tui",
			Usage: "Open the interactive client",
			Action: func(ctx context.Context, _ *cli.Command) error {
				if _, err := deps.requireAuth(); err != nil {
					return err
				}

				return tui.Run(ctx, app)
			},
		},
	}
}
