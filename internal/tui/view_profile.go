package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/mutation"
	"github.com/minglehq/mingle/internal/pager"
	"github.com/minglehq/mingle/internal/tui/styles"
)

// profileView shows one user's profile and their posts. The friendship
// indicators only change after the backend confirms the matching mutation: a
// rejected friend request leaves the pending flag untouched and surfaces the
// backend's message as a non-fatal alert.
type profileView struct {
	ctx       context.Context
	svc       *feed.Service
	coord     *mutation.Coordinator
	posts     *pager.Controller[feed.Post]
	viewport  viewport.Model
	userID    int64
	profile   feed.Profile
	loaded    bool
	cursor    int
	pageSize  int
	threshold int
	status    string
}

func newProfileView(
	ctx context.Context, svc *feed.Service, coord *mutation.Coordinator,
	posts *pager.Controller[feed.Post], pageSize, threshold int,
) *profileView {
	return &profileView{
		ctx:       ctx,
		svc:       svc,
		coord:     coord,
		posts:     posts,
		viewport:  viewport.New(80, 20),
		pageSize:  pageSize,
		threshold: threshold,
	}
}

// Open points the view at a user and starts loading their profile and posts.
func (v *profileView) Open(userID int64) tea.Cmd {
	v.userID = userID
	v.loaded = false
	v.cursor = 0
	v.status = ""
	v.posts.ResetQuery(feed.UserPostsQuery(userID, v.pageSize))

	fetchProfile := func() tea.Msg {
		profile, err := v.svc.Profile(v.ctx, userID)

		return profileLoadedMsg{userID: userID, profile: profile, err: err}
	}

	return tea.Batch(fetchProfile, loadPageCmd(v.ctx, ProfileView, v.posts.LoadNext))
}

func (v *profileView) Init() tea.Cmd {
	return nil
}

func (v *profileView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height - 4
}

func (v *profileView) Busy() bool {
	return false
}

func (v *profileView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		// A stale profile response for a previously viewed user is dropped.
		if msg.userID != v.userID {
			return nil
		}

		if msg.err != nil {
			v.status = styles.ErrorStyle.Render(msg.err.Error())
			return nil
		}

		v.profile = msg.profile
		v.loaded = true

		return nil

	case pageLoadedMsg:
		if msg.view == ProfileView && v.cursor >= len(v.posts.Snapshot().Items) {
			v.cursor = 0
		}

		return nil

	case mutationMsg:
		if msg.view != ProfileView {
			return nil
		}

		return v.reconcile(msg.result)

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	return nil
}

// reconcile applies confirm-first friendship transitions after the backend
// answered.
func (v *profileView) reconcile(result mutation.Result) tea.Cmd {
	if result.Err != nil {
		v.status = styles.ErrorStyle.Render(result.Err.Error())
		return nil
	}

	v.status = ""

	switch result.Intent.Kind {
	case mutation.KindSendFriendRequest:
		v.profile.PendingRequest = true
	case mutation.KindCancelFriendRequest:
		v.profile.PendingRequest = false
	case mutation.KindRemoveFriend:
		v.profile.IsFriend = false
	}

	return nil
}

func (v *profileView) updateKeys(msg tea.KeyMsg) tea.Cmd {
	snap := v.posts.Snapshot()

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(snap.Items)-1 {
			v.cursor++
		}

		if !snap.Exhausted && !snap.Loading && len(snap.Items)-v.cursor <= v.threshold {
			return loadPageCmd(v.ctx, ProfileView, v.posts.LoadNext)
		}

		return nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

		return nil

	case "l":
		if v.cursor < len(snap.Items) {
			postID := snap.Items[v.cursor].ID

			return mutateCmd(ProfileView, func() mutation.Result {
				return feed.ToggleLike(v.ctx, v.coord, v.svc, v.posts, postID)
			})
		}

		return nil

	case "enter":
		if v.cursor < len(snap.Items) {
			postID := snap.Items[v.cursor].ID

			return func() tea.Msg { return openDetailMsg{postID: postID} }
		}

		return nil

	case "f":
		if v.loaded && !v.profile.IsFriend && !v.profile.PendingRequest {
			userID := v.userID

			return mutateCmd(ProfileView, func() mutation.Result {
				return feed.SendFriendRequest(v.ctx, v.coord, v.svc, userID)
			})
		}

		return nil

	case "c":
		if v.loaded && v.profile.PendingRequest {
			userID := v.userID

			return mutateCmd(ProfileView, func() mutation.Result {
				return feed.CancelFriendRequest(v.ctx, v.coord, v.svc, userID)
			})
		}

		return nil

	case "x":
		if v.loaded && v.profile.IsFriend {
			userID := v.userID

			return mutateCmd(ProfileView, func() mutation.Result {
				return feed.RemoveFriend(v.ctx, v.coord, v.svc, nil, userID)
			})
		}

		return nil
	}

	return nil
}

func (v *profileView) header() string {
	if !v.loaded {
		return styles.StatusStyle.Render("loading profile…")
	}

	name := styles.TitleStyle.Render(v.profile.Username)

	var relation string

	switch {
	case v.profile.IsFriend:
		relation = styles.StatusStyle.Render("friends · [x] remove")
	case v.profile.PendingRequest:
		relation = styles.StatusStyle.Render("request pending · [c] cancel")
	default:
		relation = styles.StatusStyle.Render("[f] add friend")
	}

	return name + "\n" + relation
}

func (v *profileView) View() string {
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

	return fmt.Sprintf("%s\n\n%s\n%s", v.header(), v.viewport.View(), v.status)
}
