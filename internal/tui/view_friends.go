package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/mutation"
	"github.com/minglehq/mingle/internal/pager"
	"github.com/minglehq/mingle/internal/tui/styles"
)

// friendsView lists the current user's friends.
type friendsView struct {
	ctx       context.Context
	svc       *feed.Service
	coord     *mutation.Coordinator
	friends   *pager.Controller[feed.UserSummary]
	viewport  viewport.Model
	cursor    int
	threshold int
	confirm   bool
	status    string
}

func newFriendsView(
	ctx context.Context, svc *feed.Service, coord *mutation.Coordinator,
	friends *pager.Controller[feed.UserSummary], threshold int,
) *friendsView {
	return &friendsView{
		ctx:       ctx,
		svc:       svc,
		coord:     coord,
		friends:   friends,
		viewport:  viewport.New(80, 20),
		threshold: threshold,
	}
}

func (v *friendsView) Init() tea.Cmd {
	return loadPageCmd(v.ctx, FriendsView, v.friends.LoadNext)
}

func (v *friendsView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height - 2
}

func (v *friendsView) Busy() bool {
	return false
}

func (v *friendsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.view == FriendsView {
			v.clampCursor()
		}

		return nil

	case mutationMsg:
		if msg.view != FriendsView {
			return nil
		}

		if msg.result.Err != nil {
			v.status = styles.ErrorStyle.Render(msg.result.Err.Error())
		} else {
			v.status = ""
			v.clampCursor()
		}

		return nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	return nil
}

func (v *friendsView) updateKeys(msg tea.KeyMsg) tea.Cmd {
	snap := v.friends.Snapshot()

	if v.confirm {
		v.confirm = false

		if msg.String() == "y" {
			if friend, ok := v.selected(snap); ok {
				userID := friend.ID
				v.status = ""

				return mutateCmd(FriendsView, func() mutation.Result {
					return feed.RemoveFriend(v.ctx, v.coord, v.svc, v.friends, userID)
				})
			}
		}

		v.status = ""

		return nil
	}

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(snap.Items)-1 {
			v.cursor++
		}

		if !snap.Exhausted && !snap.Loading && len(snap.Items)-v.cursor <= v.threshold {
			return loadPageCmd(v.ctx, FriendsView, v.friends.LoadNext)
		}

		return nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

		return nil

	case "x":
		if _, ok := v.selected(snap); ok {
			v.confirm = true
			v.status = styles.PromptStyle.Render("remove this friend? (y/n)")
		}

		return nil

	case "enter":
		if friend, ok := v.selected(snap); ok {
			return func() tea.Msg { return openProfileMsg{userID: friend.ID} }
		}

		return nil

	case "r":
		v.friends.Reset()
		v.cursor = 0

		return loadPageCmd(v.ctx, FriendsView, v.friends.LoadNext)
	}

	return nil
}

func (v *friendsView) selected(snap pager.State[feed.UserSummary]) (feed.UserSummary, bool) {
	if v.cursor < 0 || v.cursor >= len(snap.Items) {
		return feed.UserSummary{}, false
	}

	return snap.Items[v.cursor], true
}

func (v *friendsView) clampCursor() {
	snap := v.friends.Snapshot()
	if v.cursor >= len(snap.Items) {
		v.cursor = len(snap.Items) - 1
	}

	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *friendsView) View() string {
	snap := v.friends.Snapshot()

	var builder strings.Builder

	cursorLine := 0
	lines := 0

	for i, friend := range snap.Items {
		block := styles.Selection(i == v.cursor).Render(styles.UsernameStyle.Render(friend.Username))

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

	return v.viewport.View() + "\n" + v.status
}
