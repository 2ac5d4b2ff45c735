package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/mutation"
)

// loadPageCmd runs one LoadNext off the UI loop. The outcome lands on the
// controller's state; the message only tells the view to re-render.
func loadPageCmd(ctx context.Context, view ViewType, load func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		//nolint:errcheck // recorded on the controller state and rendered there
		_ = load(ctx)

		return pageLoadedMsg{view: view}
	}
}

// mutateCmd runs one mutation instance off the UI loop.
func mutateCmd(view ViewType, run func() mutation.Result) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{view: view, result: run()}
	}
}
