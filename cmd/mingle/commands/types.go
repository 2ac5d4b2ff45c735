package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/mutation"
	"github.com/minglehq/mingle/internal/session"
	"github.com/minglehq/mingle/internal/setup/config"
	"go.uber.org/zap"
)

var (
	ErrIDRequired      = errors.New("ID argument required")
	ErrContentRequired = errors.New("CONTENT argument required")
	ErrTermRequired    = errors.New("SEARCH TERM argument required")
	ErrLoginRequired   = errors.New("not logged in, run `mingle login` first")
)

// CLIDependencies holds the common dependencies needed by CLI commands.
type CLIDependencies struct {
	Config    *config.Config
	Session   *session.Store
	Feed      *feed.Service
	Mutations *mutation.Coordinator
	Logger    *zap.Logger
}

// requireAuth returns the current identity or an error telling the user to
// log in. Expired tokens are evicted by the session store, so an expired
// login reads the same as no login.
func (d *CLIDependencies) requireAuth() (session.Identity, error) {
	if !d.Session.IsAuthenticated() {
		return session.Identity{}, ErrLoginRequired
	}

	return d.Session.Identity()
}

// idArg parses the positional ID argument of a command.
func idArg(value string) (int64, error) {
	if value == "" {
		return 0, ErrIDRequired
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q: %w", value, err)
	}

	return id, nil
}

// printPost writes one post to stdout in the list format shared by the feed
// and post commands.
func printPost(post feed.Post) {
	liked := " "
	if post.LikedByMe {
		liked = "♥"
	}

	fmt.Printf("#%d  @%s  %s\n", post.ID, post.Username, post.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("    %s\n", post.Content)
	fmt.Printf("    %s %d likes · %d comments\n\n", liked, post.LikeCount, post.CommentCount)
}

// printComment writes one comment to stdout, indenting replies.
func printComment(comment feed.Comment) {
	indent := ""
	if comment.ParentCommentID != nil {
		indent = "    "
	}

	fmt.Printf("%s#%d  @%s  %s\n", indent, comment.ID, comment.Username, comment.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("%s    %s\n", indent, comment.Content)
}
