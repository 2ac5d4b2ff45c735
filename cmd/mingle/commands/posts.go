package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// PostCommands returns the post CRUD and like commands.
func PostCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "post",
			Usage:     "Create, inspect and manage posts",
			ArgsUsage: "SUBCOMMAND",
			Commands: []*cli.Command{
				{
					Name:      "create",
					Usage:     "Publish a new post",
					ArgsUsage: "CONTENT",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						content := cmd.Args().First()
						if content == "" {
							return ErrContentRequired
						}

						post, err := deps.Feed.CreatePost(ctx, content)
						if err != nil {
							return fmt.Errorf("failed to create post: %w", err)
						}

						deps.Logger.Info("Created post", zap.Int64("postID", post.ID))
						fmt.Printf("Posted as #%d\n", post.ID)

						return nil
					},
				},
				{
					Name:      "show",
					Usage:     "Show one post with its comments",
					ArgsUsage: "ID",
					Flags: []cli.Flag{
						&cli.IntFlag{
							Name:  "pages",
							Usage: "Number of comment pages to load",
							Value: 1,
						},
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						postID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						post, err := deps.Feed.PostDetail(ctx, postID)
						if err != nil {
							return fmt.Errorf("failed to load post: %w", err)
						}

						printPost(post)

						pageSize := deps.Config.Feed.PageSize
						pages := int(cmd.Int("pages"))

						for page := 1; page <= pages; page++ {
							comments, err := deps.Feed.Comments(ctx, postID, page, pageSize)
							if err != nil {
								return fmt.Errorf("failed to load comments: %w", err)
							}

							for _, comment := range comments {
								printComment(comment)
							}

							if len(comments) < pageSize {
								break
							}
						}

						return nil
					},
				},
				{
					Name:      "edit",
					Usage:     "Replace the content of your post",
					ArgsUsage: "ID CONTENT",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						postID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						content := cmd.Args().Get(1)
						if content == "" {
							return ErrContentRequired
						}

						if _, err := deps.Feed.EditPost(ctx, postID, content); err != nil {
							return fmt.Errorf("failed to edit post: %w", err)
						}

						fmt.Printf("Updated #%d\n", postID)

						return nil
					},
				},
				{
					Name:      "delete",
					Usage:     "Delete your post",
					ArgsUsage: "ID",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						postID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						if err := deps.Feed.DeletePost(ctx, postID); err != nil {
							return fmt.Errorf("failed to delete post: %w", err)
						}

						fmt.Printf("Deleted #%d\n", postID)

						return nil
					},
				},
				{
					Name:      "like",
					Usage:     "Like a post",
					ArgsUsage: "ID",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						postID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						if err := deps.Feed.Like(ctx, postID); err != nil {
							return fmt.Errorf("failed to like post: %w", err)
						}

						fmt.Printf("Liked #%d\n", postID)

						return nil
					},
				},
				{
					Name:      "unlike",
					Usage:     "Remove your like from a post",
					ArgsUsage: "ID",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						postID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						if err := deps.Feed.Unlike(ctx, postID); err != nil {
							return fmt.Errorf("failed to unlike post: %w", err)
						}

						fmt.Printf("Unliked #%d\n", postID)

						return nil
					},
				},
				{
					Name:      "comment",
					Usage:     "Comment on a post, or reply with --reply-to",
					ArgsUsage: "ID CONTENT",
					Flags: []cli.Flag{
						&cli.IntFlag{
							Name:  "reply-to",
							Usage: "Parent comment ID for a reply",
						},
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if _, err := deps.requireAuth(); err != nil {
							return err
						}

						postID, err := idArg(cmd.Args().First())
						if err != nil {
							return err
						}

						content := cmd.Args().Get(1)
						if content == "" {
							return ErrContentRequired
						}

						var parent *int64
						if replyTo := cmd.Int("reply-to"); replyTo != 0 {
							parent = &replyTo
						}

						comment, err := deps.Feed.CreateComment(ctx, postID, content, parent)
						if err != nil {
							return fmt.Errorf("failed to create comment: %w", err)
						}

						fmt.Printf("Commented as #%d\n", comment.ID)

						return nil
					},
				},
			},
		},
	}
}
