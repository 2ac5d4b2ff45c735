package commands

import (
	"context"
	"fmt"

	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/pager"
	"github.com/urfave/cli/v3"
)

// FeedCommands returns the feed browsing commands.
func FeedCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "feed",
			Usage: "Print posts from your friends",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "pages",
					Usage: "Number of pages to load",
					Value: 1,
				},
				&cli.IntFlag{
					Name:  "user",
					Usage: "Show one user's posts instead of the friends feed",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if _, err := deps.requireAuth(); err != nil {
					return err
				}

				pageSize := deps.Config.Feed.PageSize

				query := feed.FriendsFeedQuery(pageSize)
				if userID := cmd.Int("user"); userID != 0 {
					query = feed.UserPostsQuery(userID, pageSize)
				}

				controller := pager.NewController(query, deps.Feed.PostsFetcher(), deps.Logger)

				for i := int64(0); i < cmd.Int("pages"); i++ {
					if err := controller.LoadNext(ctx); err != nil {
						return fmt.Errorf("failed to load feed page: %w", err)
					}

					if controller.Snapshot().Exhausted {
						break
					}
				}

				snap := controller.Snapshot()
				if len(snap.Items) == 0 {
					fmt.Println("Nothing here yet.")
					return nil
				}

				for _, post := range snap.Items {
					printPost(post)
				}

				if !snap.Exhausted {
					fmt.Println("More posts available, pass --pages to load further.")
				}

				return nil
			},
		},
	}
}
