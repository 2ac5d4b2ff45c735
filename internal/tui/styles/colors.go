package styles

// Colors used throughout the TUI.
const (
	ColorPrimary   = "#5fd7ff"
	ColorSecondary = "#87d787"
	ColorAccent    = "#ffd75f"
	ColorError     = "#ff5f5f"
	ColorMuted     = "#888888"
	ColorBorder    = "#444444"
	ColorWhite     = "#ffffff"
)
