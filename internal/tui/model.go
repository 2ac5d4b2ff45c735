package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/tui/components"
	"github.com/minglehq/mingle/internal/tui/styles"
	"go.uber.org/zap"
)

// contentView is what every screen implements. Update returns follow-up work
// as a command; views never mutate each other.
type contentView interface {
	Init() tea.Cmd
	SetSize(width, height int)
	Busy() bool
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Model is the root of the program. It owns tab navigation, routes messages
// to every view so controllers stay current off-screen, and tracks where to
// return to when a detail or profile screen closes.
type Model struct {
	ctx      context.Context
	logger   *zap.Logger
	tabs     *components.Tabs
	views    map[ViewType]contentView
	detailV  *detailView
	profileV *profileView
	current  ViewType
	previous ViewType
	width    int
	height   int
}

func newModel(
	ctx context.Context, logger *zap.Logger,
	feedV *feedView, searchV *searchView, requestsV *requestsView,
	friendsV *friendsView, profileV *profileView, detailV *detailView,
) *Model {
	views := map[ViewType]contentView{
		FeedView:     feedV,
		SearchView:   searchV,
		RequestsView: requestsV,
		FriendsView:  friendsV,
		ProfileView:  profileV,
		DetailView:   detailV,
		HelpView:     newHelpView(),
	}

	return &Model{
		ctx:      ctx,
		logger:   logger,
		tabs:     components.NewTabs(FeedView.String(), SearchView.String(), RequestsView.String(), FriendsView.String()),
		views:    views,
		detailV:  detailV,
		profileV: profileV,
		current:  FeedView,
		previous: FeedView,
	}
}

// Init starts the initial page loads for the tab views.
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.views))

	for _, view := range m.views {
		if cmd := view.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return tea.Batch(cmds...)
}

// Update routes messages. Data messages reach every view so background
// controllers stay current; key presses only reach the active view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		for _, view := range m.views {
			view.SetSize(msg.Width, contentHeight(msg.Height))
		}

		return m, nil

	case openDetailMsg:
		m.switchTo(DetailView)
		return m, m.detailV.Open(msg.postID)

	case openProfileMsg:
		m.switchTo(ProfileView)
		return m, m.profileV.Open(msg.userID)

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}

		return m, m.views[m.current].Update(msg)
	}

	cmds := make([]tea.Cmd, 0, len(m.views))

	for _, view := range m.views {
		if cmd := view.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleGlobalKey handles keys that work on any screen. When a view is
// capturing text input everything except quit is passed through.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}

	if m.views[m.current].Busy() {
		return nil, false
	}

	switch msg.String() {
	case "q":
		return tea.Quit, true

	case "1":
		m.switchTab(FeedView)
		return nil, true

	case "2":
		m.switchTab(SearchView)
		return nil, true

	case "3":
		m.switchTab(RequestsView)
		return nil, true

	case "4":
		m.switchTab(FriendsView)
		return nil, true

	case "?":
		if m.current == HelpView {
			m.current = m.previous
		} else {
			m.switchTo(HelpView)
		}

		return nil, true

	case "esc":
		if m.current == DetailView || m.current == ProfileView || m.current == HelpView {
			m.current = m.previous
			return nil, true
		}

		return nil, false
	}

	return nil, false
}

// switchTo enters an overlay screen, remembering where to return to.
func (m *Model) switchTo(view ViewType) {
	if m.current != DetailView && m.current != ProfileView && m.current != HelpView {
		m.previous = m.current
	}

	m.current = view
}

// switchTab jumps straight to a tab and forgets any overlay history.
func (m *Model) switchTab(view ViewType) {
	m.current = view
	m.previous = view
	m.tabs.SetActive(int(view))
}

// View renders the active screen under the tab bar.
func (m *Model) View() string {
	if isTerminalTooSmall(m.width) {
		return styles.ErrorStyle.Render("Terminal too small. Resize to at least 60 columns.")
	}

	header := m.tabs.View()
	if m.current == DetailView || m.current == ProfileView || m.current == HelpView {
		header += "  " + styles.StatusStyle.Render("["+m.current.String()+" · esc to go back]")
	}

	return header + "\n\n" + m.views[m.current].View()
}
