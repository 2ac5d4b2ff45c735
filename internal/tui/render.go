package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/tui/styles"
)

// relativeTime formats a timestamp the way the feed shows it.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	elapsed := time.Since(t)

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// renderPost renders one post block for a list.
func renderPost(post feed.Post, selected, pending bool) string {
	like := "♡"
	likeStyle := styles.CountStyle

	if post.LikedByMe {
		like = "♥"
		likeStyle = styles.LikedStyle
	}

	header := styles.UsernameStyle.Render(post.Username) + " " +
		styles.TimestampStyle.Render(relativeTime(post.CreatedAt))

	counts := likeStyle.Render(fmt.Sprintf("%s %d", like, post.LikeCount)) + "  " +
		styles.CountStyle.Render(fmt.Sprintf("💬 %d", post.CommentCount))

	if pending {
		counts += "  " + styles.StatusStyle.Render("…")
	}

	block := header + "\n" + post.Content + "\n" + counts

	return styles.Selection(selected).Render(block)
}

// renderComment renders one comment block, indenting replies.
func renderComment(comment feed.Comment, selected bool) string {
	header := styles.UsernameStyle.Render(comment.Username) + " " +
		styles.TimestampStyle.Render(relativeTime(comment.CreatedAt))

	block := header + "\n" + comment.Content
	if comment.ParentCommentID != nil {
		block = styles.CountStyle.Render("↳ ") + block
	}

	return styles.Selection(selected).Render(block)
}

// renderListStatus renders the shared loading/exhausted/error footer line for
// a paginated list.
func renderListStatus(loading, exhausted bool, count int, err error) string {
	switch {
	case err != nil:
		return styles.ErrorStyle.Render("load failed: " + err.Error() + " (scroll to retry)")
	case loading:
		return styles.StatusStyle.Render("loading…")
	case exhausted && count == 0:
		return styles.StatusStyle.Render("nothing here yet")
	case exhausted:
		return styles.StatusStyle.Render("end of list")
	default:
		return styles.StatusStyle.Render("scroll for more")
	}
}

// ensureVisible scrolls the viewport so the given content line is on screen.
func ensureVisible(vp *viewport.Model, line int) {
	if line < vp.YOffset {
		vp.SetYOffset(line)
	} else if line >= vp.YOffset+vp.Height {
		vp.SetYOffset(line - vp.Height + 1)
	}
}

// blockLines counts the rendered height of a block, including the separator.
func blockLines(block string) int {
	return strings.Count(block, "\n") + 2
}
