package commands

import (
	"context"
	"fmt"

	"github.com/minglehq/mingle/internal/feed"
	"github.com/urfave/cli/v3"
)

// FriendCommands returns the friendship and friend request commands.
func FriendCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "friends",
			Usage: "Manage friendships and friend requests",
			Commands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List your friends",
					Action: func(ctx context.Context, _ *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						pageSize := deps.Config.Feed.PageSize

						for page := 1; ; page++ {
							friends, err := deps.Feed.Friendships(ctx, page, pageSize)
							if err != nil {
								return fmt.Errorf("failed to load friends: %w", err)
							}

							for _, friend := range friends {
								fmt.Printf("#%d  @%s\n", friend.ID, friend.Username)
							}

							if len(friends) < pageSize {
								return nil
							}
						}
					},
				},
				{
					Name:  "requests",
					Usage: "List received pending friend requests",
					Action: func(ctx context.Context, _ *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						pageSize := deps.Config.Feed.PageSize

						for page := 1; ; page++ {
							requests, err := deps.Feed.ReceivedPendingRequests(ctx, page, pageSize)
							if err != nil {
								return fmt.Errorf("failed to load friend requests: %w", err)
							}

							for _, request := range requests {
								fmt.Printf("#%d  @%s wants to be friends\n", request.ID, request.RequesterUsername)
							}

							if len(requests) < pageSize {
								return nil
							}
						}
					},
				},
				{
					Name:      "accept",
					Usage:     "Accept a received friend request",
					ArgsUsage: "REQUEST_ID",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return respond(ctx, deps, cmd.Args().First(), feed.StatusAccepted)
					},
				},
				{
					Name:      "reject",
					Usage:     "Reject a received friend request",
					ArgsUsage: "REQUEST_ID",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return respond(ctx, deps, cmd.Args().First(), feed.StatusRejected)
					},
				},
				{
					Name:      "add",
					Usage:     "Send a friend request to a user",
					ArgsUsage: "USER_ID",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						userID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						if err := deps.Feed.SendFriendRequest(ctx, userID); err != nil {
							return fmt.Errorf("failed to send friend request: %w", err)
						}

						fmt.Printf("Friend request sent to user %d\n", userID)

						return nil
					},
				},
				{
					Name:      "cancel",
					Usage:     "Cancel your pending request toward a user",
					ArgsUsage: "USER_ID",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						userID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						if err := deps.Feed.CancelFriendRequest(ctx, userID); err != nil {
							return fmt.Errorf("failed to cancel friend request: %w", err)
						}

						fmt.Printf("Cancelled friend request toward user %d\n", userID)

						return nil
					},
				},
				{
					Name:      "remove",
					Usage:     "End a friendship",
					ArgsUsage: "USER_ID",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						userID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						if err := deps.Feed.RemoveFriend(ctx, userID); err != nil {
							return fmt.Errorf("failed to remove friend: %w", err)
						}

						fmt.Printf("Removed user %d from your friends\n", userID)

						return nil
					},
				},
			},
		},
	}
}

func respond(ctx context.Context, deps *CLIDependencies, arg, status string) error {
	if _, err := deps.requireAuth(); err != nil {
		return err
	}

	requestID, err := idArg(arg)
	if err != nil {
		return err
	}

	if err := deps.Feed.RespondFriendRequest(ctx, requestID, status); err != nil {
		return fmt.Errorf("failed to respond to friend request: %w", err)
	}

	fmt.Printf("Request #%d %s\n", requestID, status)

	return nil
}
