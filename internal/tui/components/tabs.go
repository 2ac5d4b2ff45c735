package components

import (
	"strings"

	"github.com/minglehq/mingle/internal/tui/styles"
)

// Tabs renders the navigation tab bar.
type Tabs struct {
	labels []string
	active int
}

// NewTabs creates a tab bar with the given labels.
func NewTabs(labels ...string) *Tabs {
	return &Tabs{labels: labels}
}

// SetActive marks the active tab by index.
func (t *Tabs) SetActive(index int) {
	if index >= 0 && index < len(t.labels) {
		t.active = index
	}
}

// View renders the tab bar.
func (t *Tabs) View() string {
	parts := make([]string, 0, len(t.labels))

	for i, label := range t.labels {
		if i == t.active {
			parts = append(parts, styles.TabActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.TabInactiveStyle.Render(label))
		}
	}

	return strings.Join(parts, "  ")
}
