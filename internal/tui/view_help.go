package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/tui/styles"
)

// helpView is a static keybinding reference.
type helpView struct{}

func newHelpView() *helpView {
	return &helpView{}
}

func (v *helpView) Init() tea.Cmd {
	return nil
}

func (v *helpView) SetSize(int, int) {}

func (v *helpView) Busy() bool {
	return false
}

func (v *helpView) Update(tea.Msg) tea.Cmd {
	return nil
}

func (v *helpView) View() string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{
			title: "Navigation",
			keys: [][2]string{
				{"1-4", "switch between feed, search, requests and friends"},
				{"j/k", "move cursor, loading more near the bottom"},
				{"enter", "open the selected post or user"},
				{"esc", "go back"},
				{"?", "toggle this help"},
				{"q", "quit"},
			},
		},
		{
			title: "Feed",
			keys: [][2]string{
				{"n", "write a new post"},
				{"e", "edit your selected post"},
				{"d", "delete your selected post"},
				{"l", "like or unlike the selected post"},
				{"p", "open the author's profile"},
				{"r", "reload the feed"},
			},
		},
		{
			title: "Post",
			keys: [][2]string{
				{"c", "comment on the post"},
				{"R", "reply to the selected comment"},
				{"l", "like or unlike the post"},
			},
		},
		{
			title: "People",
			keys: [][2]string{
				{"/", "search for users"},
				{"f", "send a friend request"},
				{"c", "cancel your pending request"},
				{"a/x", "accept or reject a received request"},
				{"x", "remove a friend"},
			},
		},
	}

	out := ""

	for _, section := range sections {
		out += styles.TitleStyle.Render(section.title) + "\n"

		for _, key := range section.keys {
			out += "  " + styles.UsernameStyle.Render(key[0]) + "\t" + key[1] + "\n"
		}

		out += "\n"
	}

	return out
}
