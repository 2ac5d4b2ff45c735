package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/minglehq/mingle/internal/tui/styles"
)

// Composer is a single-line input used for post content, comments and search
// terms. It is inert until Open is called and swallows key events while
// active, so list keybindings never fire mid-composition.
type Composer struct {
	input  textinput.Model
	label  string
	active bool
}

// NewComposer creates a composer with the given placeholder.
func NewComposer(placeholder string) *Composer {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 500

	return &Composer{input: input}
}

// Open activates the composer with a label and optional prefilled value.
func (c *Composer) Open(label, value string) tea.Cmd {
	c.label = label
	c.active = true
	c.input.SetValue(value)
	c.input.CursorEnd()

	return c.input.Focus()
}

// Close deactivates the composer and clears its value.
func (c *Composer) Close() {
	c.active = false
	c.input.Blur()
	c.input.SetValue("")
}

// Active reports whether the composer is capturing input.
func (c *Composer) Active() bool {
	return c.active
}

// Value returns the current input text.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetWidth adjusts the input width.
func (c *Composer) SetWidth(width int) {
	c.input.Width = width
}

// Update forwards key events to the input.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	if !c.active {
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)

	return cmd
}

// View renders the labeled input line.
func (c *Composer) View() string {
	if !c.active {
		return ""
	}

	return styles.PromptStyle.Render(c.label+": ") + c.input.View()
}
