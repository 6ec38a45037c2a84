package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorAccent  = lipgloss.Color("#4F8EF7") // CTA, highlights, focused fields
	ColorOK      = lipgloss.Color("#16EC06") // health up, approval success
	ColorWarn    = lipgloss.Color("#FFDE00") // pending states
	ColorDanger  = lipgloss.Color("#FF0026") // errors, expired session, lock
	ColorMuted   = lipgloss.Color("#7BA1BB") // secondary labels
)

var (
	ColorBgDark  = lipgloss.Color("#101518")
	ColorBgLight = lipgloss.Color("#283339")
)
