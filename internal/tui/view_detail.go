package tui

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/mutation"
	"github.com/minglehq/mingle/internal/pager"
	"github.com/minglehq/mingle/internal/session"
	"github.com/minglehq/mingle/internal/tui/components"
	"github.com/minglehq/mingle/internal/tui/styles"
)

// detailView shows one post with its paginated comment thread. Comments and
// replies are confirm-first: the composer's text only appears in the thread
// once the backend returns the created entity.
type detailView struct {
	ctx       context.Context
	svc       *feed.Service
	coord     *mutation.Coordinator
	identity  session.Identity
	comments  *pager.Controller[feed.Comment]
	viewport  viewport.Model
	composer  *components.Composer
	postID    int64
	postMu    sync.Mutex
	post      feed.Post
	loaded    bool
	cursor    int
	replyTo   *int64
	pageSize  int
	threshold int
	status    string
}

func newDetailView(
	ctx context.Context, svc *feed.Service, coord *mutation.Coordinator,
	identity session.Identity, comments *pager.Controller[feed.Comment],
	pageSize, threshold int,
) *detailView {
	return &detailView{
		ctx:       ctx,
		svc:       svc,
		coord:     coord,
		identity:  identity,
		comments:  comments,
		viewport:  viewport.New(80, 20),
		composer:  components.NewComposer("Write a comment…"),
		pageSize:  pageSize,
		threshold: threshold,
	}
}

// Open points the view at a post and starts loading it and its comments.
func (v *detailView) Open(postID int64) tea.Cmd {
	v.postID = postID
	v.loaded = false
	v.cursor = 0
	v.replyTo = nil
	v.status = ""
	v.composer.Close()
	v.comments.ResetQuery(feed.CommentsQuery(postID, v.pageSize))

	fetchPost := func() tea.Msg {
		post, err := v.svc.PostDetail(v.ctx, postID)

		return detailLoadedMsg{post: post, err: err}
	}

	return tea.Batch(fetchPost, loadPageCmd(v.ctx, DetailView, v.comments.LoadNext))
}

func (v *detailView) Init() tea.Cmd {
	return nil
}

func (v *detailView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height - 6
	v.composer.SetWidth(width - 20)
}

func (v *detailView) Busy() bool {
	return v.composer.Active()
}

func (v *detailView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.err != nil {
			v.status = styles.ErrorStyle.Render(msg.err.Error())
			return nil
		}

		if msg.post.ID != v.postID {
			return nil
		}

		v.postMu.Lock()
		v.post = msg.post
		v.postMu.Unlock()

		v.loaded = true

		return nil

	case pageLoadedMsg:
		if msg.view == DetailView && v.cursor >= len(v.comments.Snapshot().Items) {
			v.cursor = 0
		}

		return nil

	case mutationMsg:
		if msg.view != DetailView {
			return nil
		}

		if msg.result.Err != nil {
			v.status = styles.ErrorStyle.Render(msg.result.Err.Error())
			return nil
		}

		v.status = ""

		if msg.result.Intent.Kind == mutation.KindCreateComment {
			v.postMu.Lock()
			v.post.CommentCount++
			v.postMu.Unlock()
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

func (v *detailView) updateComposing(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		content := strings.TrimSpace(v.composer.Value())
		if content == "" {
			v.status = styles.ErrorStyle.Render("comment cannot be empty")
			return nil
		}

		parent := v.replyTo

		v.composer.Close()
		v.replyTo = nil

		return mutateCmd(DetailView, func() mutation.Result {
			return feed.AddComment(v.ctx, v.coord, v.svc, v.comments, v.postID, content, parent)
		})

	case "esc":
		v.composer.Close()
		v.replyTo = nil

		return nil
	}

	return v.composer.Update(msg)
}

func (v *detailView) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	snap := v.comments.Snapshot()

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(snap.Items)-1 {
			v.cursor++
		}

		if !snap.Exhausted && !snap.Loading && len(snap.Items)-v.cursor <= v.threshold {
			return loadPageCmd(v.ctx, DetailView, v.comments.LoadNext)
		}

		return nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

		return nil

	case "c":
		v.replyTo = nil
		return v.composer.Open("Comment", "")

	case "R":
		if v.cursor < len(snap.Items) {
			parentID := snap.Items[v.cursor].ID
			v.replyTo = &parentID

			return v.composer.Open("Reply", "")
		}

		return nil

	case "l":
		if !v.loaded {
			return nil
		}

		return mutateCmd(DetailView, func() mutation.Result {
			return v.toggleDetailLike()
		})
	}

	return nil
}

// toggleDetailLike runs the optimistic like protocol against the single post
// this view holds, outside any list controller.
func (v *detailView) toggleDetailLike() mutation.Result {
	v.postMu.Lock()
	snapshot := v.post
	v.postMu.Unlock()

	kind := mutation.KindLike
	if snapshot.LikedByMe {
		kind = mutation.KindUnlike
	}

	intent := mutation.NewIntent(kind, snapshot.ID)

	effect := mutation.Effect{
		Apply: func() {
			v.postMu.Lock()
			defer v.postMu.Unlock()

			if v.post.LikedByMe {
				v.post.LikedByMe = false
				v.post.LikeCount--
			} else {
				v.post.LikedByMe = true
				v.post.LikeCount++
			}
		},
		Revert: func() {
			v.postMu.Lock()
			v.post = snapshot
			v.postMu.Unlock()
		},
		Send: func(ctx context.Context) error {
			if kind == mutation.KindUnlike {
				return v.svc.Unlike(ctx, snapshot.ID)
			}

			return v.svc.Like(ctx, snapshot.ID)
		},
	}

	return v.coord.Dispatch(v.ctx, intent, effect)
}

func (v *detailView) View() string {
	var header string

	if v.loaded {
		v.postMu.Lock()
		post := v.post
		v.postMu.Unlock()

		header = renderPost(post, false, v.coord.Pending(mutation.KindLike, post.ID))
	} else {
		header = styles.StatusStyle.Render("loading post…")
	}

	snap := v.comments.Snapshot()

	var builder strings.Builder

	cursorLine := 0
	lines := 0

	for i, comment := range snap.Items {
		block := renderComment(comment, i == v.cursor)

		if i == v.cursor {
			cursorLine = lines
		}

		builder.WriteString(block)
		builder.WriteString("\n")

		lines += blockLines(block) - 1
	}

	builder.WriteString(renderListStatus(snap.Loading, snap.Exhausted, len(snap.Items), snap.Err))

	v.viewport.SetContent(builder.String())
	ensureVisible(&v.viewport, cursorLine)

	footer := v.status
	if v.composer.Active() {
		footer = v.composer.View()
	}

	return header + "\n\n" + styles.TitleStyle.Render("Comments") + "\n" + v.viewport.View() + "\n" + footer
}
