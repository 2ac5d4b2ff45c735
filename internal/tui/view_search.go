package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/feed"
	"github.com/minglehq/mingle/internal/mutation"
	"github.com/minglehq/mingle/internal/pager"
	"github.com/minglehq/mingle/internal/tui/components"
	"github.com/minglehq/mingle/internal/tui/styles"
)

// searchView looks up users by name. Submitting a new term resets the
// controller, which also discards any response still in flight for the
// previous term.
type searchView struct {
	ctx       context.Context
	svc       *feed.Service
	coord     *mutation.Coordinator
	users     *pager.Controller[feed.UserSummary]
	viewport  viewport.Model
	composer  *components.Composer
	cursor    int
	pageSize  int
	threshold int
	term      string
	status    string
}

func newSearchView(
	ctx context.Context, svc *feed.Service, coord *mutation.Coordinator,
	users *pager.Controller[feed.UserSummary], pageSize, threshold int,
) *searchView {
	return &searchView{
		ctx:       ctx,
		svc:       svc,
		coord:     coord,
		users:     users,
		viewport:  viewport.New(80, 20),
		composer:  components.NewComposer("Search for users…"),
		pageSize:  pageSize,
		threshold: threshold,
	}
}

func (v *searchView) Init() tea.Cmd {
	return nil
}

func (v *searchView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height - 2
	v.composer.SetWidth(width - 20)
}

func (v *searchView) Busy() bool {
	return v.composer.Active()
}

func (v *searchView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.view == SearchView && v.cursor >= len(v.users.Snapshot().Items) {
			v.cursor = 0
		}

		return nil

	case mutationMsg:
		if msg.view != SearchView {
			return nil
		}

		if msg.result.Err != nil {
			v.status = styles.ErrorStyle.Render(msg.result.Err.Error())
		} else {
			v.status = styles.StatusStyle.Render("friend request sent")
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

func (v *searchView) updateComposing(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		term := strings.TrimSpace(v.composer.Value())
		if term == "" {
			return nil
		}

		v.term = term
		v.composer.Close()
		v.cursor = 0
		v.users.ResetQuery(feed.SearchQuery(term, v.pageSize))

		return loadPageCmd(v.ctx, SearchView, v.users.LoadNext)

	case "esc":
		v.composer.Close()
		return nil
	}

	return v.composer.Update(msg)
}

func (v *searchView) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	snap := v.users.Snapshot()

	switch msg.String() {
	case "/", "s":
		return v.composer.Open("Search", v.term)

	case "j", "down":
		if v.cursor < len(snap.Items)-1 {
			v.cursor++
		}

		if !snap.Exhausted && !snap.Loading && len(snap.Items)-v.cursor <= v.threshold {
			return loadPageCmd(v.ctx, SearchView, v.users.LoadNext)
		}

		return nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

		return nil

	case "f":
		if user, ok := v.selected(snap); ok {
			userID := user.ID

			return mutateCmd(SearchView, func() mutation.Result {
				return feed.SendFriendRequest(v.ctx, v.coord, v.svc, userID)
			})
		}

		return nil

	case "enter":
		if user, ok := v.selected(snap); ok {
			return func() tea.Msg { return openProfileMsg{userID: user.ID} }
		}

		return nil
	}

	return nil
}

func (v *searchView) selected(snap pager.State[feed.UserSummary]) (feed.UserSummary, bool) {
	if v.cursor < 0 || v.cursor >= len(snap.Items) {
		return feed.UserSummary{}, false
	}

	return snap.Items[v.cursor], true
}

func (v *searchView) View() string {
	snap := v.users.Snapshot()

	var builder strings.Builder

	if v.term == "" && len(snap.Items) == 0 {
		builder.WriteString(styles.StatusStyle.Render("press / to search for users"))
	}

	cursorLine := 0
	lines := 0

	for i, user := range snap.Items {
		block := styles.Selection(i == v.cursor).Render(styles.UsernameStyle.Render(user.Username))

		if i == v.cursor {
			cursorLine = lines
		}

		builder.WriteString(block)
		builder.WriteString("\n")

		lines += blockLines(block) - 1
	}

	if v.term != "" {
		builder.WriteString(renderListStatus(snap.Loading, snap.Exhausted, len(snap.Items), snap.Err))
	}

	v.viewport.SetContent(builder.String())
	ensureVisible(&v.viewport, cursorLine)

	footer := v.status
	if v.composer.Active() {
		footer = v.composer.View()
	}

	return v.viewport.View() + "\n" + footer
}
