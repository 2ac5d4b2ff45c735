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

// requestsView lists received pending friend requests. Accepting or rejecting
// is confirm-first: the row stays until the backend acknowledges the
// response.
type requestsView struct {
	ctx       context.Context
	svc       *feed.Service
	coord     *mutation.Coordinator
	requests  *pager.Controller[feed.FriendRequest]
	viewport  viewport.Model
	cursor    int
	threshold int
	status    string
}

func newRequestsView(
	ctx context.Context, svc *feed.Service, coord *mutation.Coordinator,
	requests *pager.Controller[feed.FriendRequest], threshold int,
) *requestsView {
	return &requestsView{
		ctx:       ctx,
		svc:       svc,
		coord:     coord,
		requests:  requests,
		viewport:  viewport.New(80, 20),
		threshold: threshold,
	}
}

func (v *requestsView) Init() tea.Cmd {
	return loadPageCmd(v.ctx, RequestsView, v.requests.LoadNext)
}

func (v *requestsView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height - 2
}

func (v *requestsView) Busy() bool {
	return false
}

func (v *requestsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.view == RequestsView {
			v.clampCursor()
		}

		return nil

	case mutationMsg:
		if msg.view != RequestsView {
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

func (v *requestsView) updateKeys(msg tea.KeyMsg) tea.Cmd {
	snap := v.requests.Snapshot()

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(snap.Items)-1 {
			v.cursor++
		}

		if !snap.Exhausted && !snap.Loading && len(snap.Items)-v.cursor <= v.threshold {
			return loadPageCmd(v.ctx, RequestsView, v.requests.LoadNext)
		}

		return nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

		return nil

	case "a":
		return v.respond(snap, feed.StatusAccepted)

	case "x":
		return v.respond(snap, feed.StatusRejected)

	case "enter":
		if request, ok := v.selected(snap); ok {
			return func() tea.Msg { return openProfileMsg{userID: request.RequesterID} }
		}

		return nil

	case "r":
		v.requests.Reset()
		v.cursor = 0

		return loadPageCmd(v.ctx, RequestsView, v.requests.LoadNext)
	}

	return nil
}

func (v *requestsView) respond(snap pager.State[feed.FriendRequest], status string) tea.Cmd {
	request, ok := v.selected(snap)
	if !ok {
		return nil
	}

	requestID := request.ID

	return mutateCmd(RequestsView, func() mutation.Result {
		return feed.RespondFriendRequest(v.ctx, v.coord, v.svc, v.requests, requestID, status)
	})
}

func (v *requestsView) selected(snap pager.State[feed.FriendRequest]) (feed.FriendRequest, bool) {
	if v.cursor < 0 || v.cursor >= len(snap.Items) {
		return feed.FriendRequest{}, false
	}

	return snap.Items[v.cursor], true
}

func (v *requestsView) clampCursor() {
	snap := v.requests.Snapshot()
	if v.cursor >= len(snap.Items) {
		v.cursor = len(snap.Items) - 1
	}

	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *requestsView) View() string {
	snap := v.requests.Snapshot()

	var builder strings.Builder

	cursorLine := 0
	lines := 0

	for i, request := range snap.Items {
		pending := v.coord.Pending(mutation.KindRespondFriendRequest, request.ID)

		row := styles.UsernameStyle.Render(request.RequesterUsername) + " wants to be friends"
		if pending {
			row += "  " + styles.StatusStyle.Render("…")
		} else {
			row += "  " + styles.StatusStyle.Render("[a]ccept [x]reject")
		}

		block := styles.Selection(i == v.cursor).Render(row)

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
