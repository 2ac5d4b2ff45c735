package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// AuthCommands returns the account and session commands.
func AuthCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login",
			Usage: "Log in and store the session token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Usage:    "Account username",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Usage:    "Account password",
					Required: true,
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				token, err := deps.Feed.Login(ctx, cmd.String("username"), cmd.String("password"))
				if err != nil {
					return fmt.Errorf("login failed: %w", err)
				}

				if err := deps.Session.Login(token); err != nil {
					return fmt.Errorf("failed to store session: %w", err)
				}

				identity, err := deps.Session.Identity()
				if err != nil {
					return fmt.Errorf("failed to read session identity: %w", err)
				}

				deps.Logger.Info("Logged in", zap.String("username", identity.Username))
				fmt.Printf("Logged in as @%s\n", identity.Username)

				return nil
			},
		},
		{
			Name:  "register",
			Usage: "Create a new account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Usage:    "Desired username",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Usage:    "Desired password",
					Required: true,
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := deps.Feed.Register(ctx, cmd.String("username"), cmd.String("password")); err != nil {
					return fmt.Errorf("registration failed: %w", err)
				}

				fmt.Println("Account created. Run `mingle login` to sign in.")

				return nil
			},
		},
		{
			Name:  "logout",
			Usage: "Discard the stored session token",
			Action: func(_ context.Context, _ *cli.Command) error {
				deps.Session.Logout()
				fmt.Println("Logged out.")

				return nil
			},
		},
		{
			Name:  "whoami",
			Usage: "Show the logged-in user",
			Action: func(_ context.Context, _ *cli.Command) error {
				identity, err := deps.requireAuth()
				if err != nil {
					return err
				}

				fmt.Printf("@%s (user %d), session expires %s\n",
					identity.Username, identity.UserID, identity.ExpiresAt.Local().Format("2006-01-02 15:04"))

				return nil
			},
		},
	}
}
