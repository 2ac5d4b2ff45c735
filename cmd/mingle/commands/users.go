package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// UserCommands returns the search and profile commands.
func UserCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "search",
			Usage:     "Search for users by name",
			ArgsUsage: "TERM",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "page",
					Usage: "Result page to show",
					Value: 1,
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if _, err := deps.requireAuth(); err != nil {
					return err
				}

				term := cmd.Args().First()
				if term == "" {
					return ErrTermRequired
				}

				users, err := deps.Feed.SearchUsers(ctx, term, int(cmd.Int("page")), deps.Config.Feed.PageSize)
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}

				if len(users) == 0 {
					fmt.Println("No users found.")
					return nil
				}

				for _, user := range users {
					fmt.Printf("#%d  @%s\n", user.ID, user.Username)
				}

				return nil
			},
		},
		{
			Name:  "profile",
			Usage: "View and update profiles",
			Commands: []*cli.Command{
				{
					Name:      "show",
					Usage:     "Show a user's profile",
					ArgsUsage: "USER_ID",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						userID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						profile, err := deps.Feed.Profile(ctx, userID)
						if err != nil {
							return fmt.Errorf("failed to load profile: %w", err)
						}

						fmt.Printf("@%s\n", profile.Username)

						switch {
						case profile.IsFriend:
							fmt.Println("You are friends.")
						case profile.PendingRequest:
							fmt.Println("Friend request pending.")
						}

						return nil
					},
				},
				{
					Name:      "set-username",
					Usage:     "Change your username",
					ArgsUsage: "USERNAME",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						username := cmd.Args().First()
						if username == "" {
							return ErrContentRequired
						}

						// The backend reissues the token because the name is
						// a claim; store it so the session stays valid.
						token, err := deps.Feed.UpdateProfile(ctx, username)
						if err != nil {
							return fmt.Errorf("failed to update profile: %w", err)
						}

						if err := deps.Session.Login(token); err != nil {
							return fmt.Errorf("failed to store reissued session: %w", err)
						}

						deps.Logger.Info("Updated username", zap.String("username", username))
						fmt.Printf("You are now @%s\n", username)

						return nil
					},
				},
				{
					Name:  "set-password",
					Usage: "Change your password",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:     "old",
							Usage:    "Current password",
							Required: true,
						},
						&cli.StringFlag{
							Name:     "new",
							Usage:    "New password",
							Required: true,
						},
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						if err := deps.Feed.UpdatePassword(ctx, cmd.String("old"), cmd.String("new")); err != nil {
							return fmt.Errorf("failed to update password: %w", err)
						}

						fmt.Println("Password updated.")

						return nil
					},
				},
				{
					Name:      "set-photo",
					Usage:     "Upload a profile photo",
					ArgsUsage: "FILE",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						path := cmd.Args().First()
						if path == "" {
							return ErrContentRequired
						}

						file, err := os.Open(path)
						if err != nil {
							return fmt.Errorf("failed to open photo: %w", err)
						}
						defer file.Close()

						if err := deps.Feed.UploadProfilePhoto(ctx, filepath.Base(path), file); err != nil {
							return fmt.Errorf("failed to upload photo: %w", err)
						}

						fmt.Println("Profile photo updated.")

						return nil
					},
				},
			},
		},
	}
}
