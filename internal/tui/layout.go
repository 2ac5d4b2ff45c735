package tui

const (
	MinTerminalWidth = 60
	HeaderHeight     = 2
	FooterHeight     = 2
)

// isTerminalTooSmall checks if the terminal is usable.
func isTerminalTooSmall(width int) bool {
	return width < MinTerminalWidth
}

// contentHeight calculates available content height.
func contentHeight(totalHeight int) int {
	content := totalHeight - HeaderHeight - FooterHeight
	if content < 5 {
		return 5
	}

	return content
}
