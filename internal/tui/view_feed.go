package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/mutation"
	"github.com/minglehq/mingle/internal/pager"
	"github.com/minglehq/mingle/internal/session"
	"github.com/minglehq/mingle/internal/tui/components"
	"github.com/minglehq/mingle/internal/tui/styles"
)

type feedMode int

const (
	feedBrowse feedMode = iota
	feedCompose
	feedEdit
	feedConfirmDelete
)

// feedView is the home feed: an infinite-scrolling list of friends' posts
// with compose, edit, delete and like actions.
type feedView struct {
	ctx       context.Context
	svc       *feed.Service
	coord     *mutation.Coordinator
	identity  session.Identity
	posts     *pager.Controller[feed.Post]
	viewport  viewport.Model
	composer  *components.Composer
	cursor    int
	mode      feedMode
	target    int64
	threshold int
	status    string
}

func newFeedView(
	ctx context.Context, svc *feed.Service, coord *mutation.Coordinator,
	identity session.Identity, posts *pager.Controller[feed.Post], threshold int,
) *feedView {
	return &feedView{
		ctx:       ctx,
		svc:       svc,
		coord:     coord,
		identity:  identity,
		posts:     posts,
		viewport:  viewport.New(80, 20),
		composer:  components.NewComposer("What's on your mind?"),
		threshold: threshold,
	}
}

// Init triggers the first page load.
func (v *feedView) Init() tea.Cmd {
	return loadPageCmd(v.ctx, FeedView, v.posts.LoadNext)
}

// SetSize resizes the scroll area.
func (v *feedView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height - 2
	v.composer.SetWidth(width - 20)
}

// Busy reports whether the view is capturing text input.
func (v *feedView) Busy() bool {
	return v.composer.Active()
}

// Update handles messages for the feed view.
func (v *feedView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.view == FeedView {
			v.clampCursor()
		}

		return nil

	case mutationMsg:
		if msg.view != FeedView {
			return nil
		}

		if msg.result.Err != nil {
			v.status = styles.ErrorStyle.Render(msg.result.Err.Error())
		} else {
			v.status = ""
		}

		return nil

	case tea.KeyMsg:
		if v.composer.Active() {
			return v.updateComposing(msg)
		}

		return v.updateBrowsing(msg)
	}

	return nil
}

func (v *feedView) updateComposing(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		content := strings.TrimSpace(v.composer.Value())
		if content == "" {
			v.status = styles.ErrorStyle.Render("post content cannot be empty")
			return nil
		}

		mode := v.mode
		target := v.target

		v.composer.Close()
		v.mode = feedBrowse

		if mode == feedEdit {
			return mutateCmd(FeedView, func() mutation.Result {
				return feed.EditPost(v.ctx, v.coord, v.svc, v.posts, target, content)
			})
		}

		return mutateCmd(FeedView, func() mutation.Result {
			return feed.CreatePost(v.ctx, v.coord, v.svc, v.posts, content)
		})

	case "esc":
		v.composer.Close()
		v.mode = feedBrowse

		return nil
	}

	return v.composer.Update(msg)
}

func (v *feedView) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	snap := v.posts.Snapshot()

	if v.mode == feedConfirmDelete {
		switch msg.String() {
		case "y":
			target := v.target
			v.mode = feedBrowse

			return mutateCmd(FeedView, func() mutation.Result {
				return feed.DeletePost(v.ctx, v.coord, v.svc, v.posts, target)
			})
		default:
			v.mode = feedBrowse
			v.status = ""

			return nil
		}
	}

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(snap.Items)-1 {
			v.cursor++
		}

		return v.maybeLoadMore(snap)

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

		return nil

	case "l":
		if post, ok := v.selected(snap); ok {
			postID := post.ID

			return mutateCmd(FeedView, func() mutation.Result {
				return feed.ToggleLike(v.ctx, v.coord, v.svc, v.posts, postID)
			})
		}

		return nil

	case "n":
		v.mode = feedCompose
		return v.composer.Open("New post", "")

	case "e":
		post, ok := v.selected(snap)
		if !ok {
			return nil
		}

		if post.AuthorID != v.identity.UserID {
			v.status = styles.ErrorStyle.Render("you can only edit your own posts")
			return nil
		}

		v.mode = feedEdit
		v.target = post.ID

		return v.composer.Open("Edit post", post.Content)

	case "d":
		post, ok := v.selected(snap)
		if !ok {
			return nil
		}

		if post.AuthorID != v.identity.UserID {
			v.status = styles.ErrorStyle.Render("you can only delete your own posts")
			return nil
		}

		v.mode = feedConfirmDelete
		v.target = post.ID
		v.status = styles.PromptStyle.Render("delete this post? (y/n)")

		return nil

	case "enter":
		if post, ok := v.selected(snap); ok {
			return func() tea.Msg { return openDetailMsg{postID: post.ID} }
		}

		return nil

	case "p":
		if post, ok := v.selected(snap); ok {
			return func() tea.Msg { return openProfileMsg{userID: post.AuthorID} }
		}

		return nil

	case "r":
		v.posts.Reset()
		v.cursor = 0

		return loadPageCmd(v.ctx, FeedView, v.posts.LoadNext)
	}

	return nil
}

// maybeLoadMore is the scroll-proximity signal: when the cursor is within the
// threshold of the bottom of the accumulated list, request the next page.
func (v *feedView) maybeLoadMore(snap pager.State[feed.Post]) tea.Cmd {
	if snap.Exhausted || snap.Loading {
		return nil
	}

	if len(snap.Items)-v.cursor <= v.threshold {
		return loadPageCmd(v.ctx, FeedView, v.posts.LoadNext)
	}

	return nil
}

func (v *feedView) selected(snap pager.State[feed.Post]) (feed.Post, bool) {
	if v.cursor < 0 || v.cursor >= len(snap.Items) {
		return feed.Post{}, false
	}

	return snap.Items[v.cursor], true
}

func (v *feedView) clampCursor() {
	snap := v.posts.Snapshot()
	if v.cursor >= len(snap.Items) {
		v.cursor = len(snap.Items) - 1
	}

	if v.cursor < 0 {
		v.cursor = 0
	}
}

// View renders the feed.
func (v *feedView) View() string {
	snap := v.posts.Snapshot()

	var builder strings.Builder

	cursorLine := 0
	lines := 0

	for i, post := range snap.Items {
		pending := v.coord.Pending(mutation.KindLike, post.ID)
		block := renderPost(post, i == v.cursor, pending)

		if i == v.cursor {
			cursorLine = lines
		}

		builder.WriteString(block)
		builder.WriteString("\n\n")

		lines += blockLines(block)
	}

	builder.WriteString(renderListStatus(snap.Loading, snap.Exhausted, len(snap.Items), snap.Err))

	v.viewport.SetContent(builder.String())
	ensureVisible(&v.viewport, cursorLine)

	footer := v.status
	if v.composer.Active() {
		footer = v.composer.View()
	}

	return v.viewport.View() + "\n" + footer
}
