package tui

import "github.com/charmbracelet/lipgloss"

// Dark theme colour palette (for dark terminal backgrounds)
const (
	ColourAmber      = lipgloss.Color("214") // #FFB000 - Title, headers, separators in focus
	ColourAmberDim   = lipgloss.Color("136") // #996600 - Separators, help bar
	ColourAmberLight = lipgloss.Color("222") // #FFD966 - Task names, info text
	ColourAmberFaded = lipgloss.Color("178") // #B38F00 - Origins, timestamps
	ColourBackground = lipgloss.Color("0")   // #000000 - Title bar foreground
	ColourSuccess    = lipgloss.Color("82")  // #00FF00 - Success messages, full bars
	ColourWarning    = lipgloss.Color("208") // #FFAA00 - Blocked tasks, pending interrupt
	ColourError      = lipgloss.Color("196") // #FF3300 - Failure messages, halted tasks
)

// Light theme colour palette (for light terminal backgrounds)
const (
	ColourAmberDark       = lipgloss.Color("94")  // #8B6914
	ColourAmberDarkDim    = lipgloss.Color("58")  // #5C4A0A
	ColourAmberDarkMid    = lipgloss.Color("94")  // #6B5A1E
	ColourAmberDarkFaded  = lipgloss.Color("101") // #7A6A30
	ColourBackgroundLight = lipgloss.Color("231") // #FFFFFF
	ColourSuccessDark     = lipgloss.Color("22")  // #008000
	ColourWarningDark     = lipgloss.Color("166") // #CC5500
	ColourErrorDark       = lipgloss.Color("160") // #CC0000
)

// Pane separators.
const (
	InnerHorizontal = "─"
	InnerVertical   = "│"
)

// Progress bar characters
const (
	BarFilled = "█"
	BarEmpty  = "░"
	BarWidth  = 12
)

// Status icons
const (
	IconWarning = "⚠"
	IconBrand   = "◆"
)

// Styles contains all lipgloss styles of the dashboard.
type Styles struct {
	Title     lipgloss.Style // title bar
	Separator lipgloss.Style
	Header    lipgloss.Style // pane headers and info titles

	TaskName lipgloss.Style
	Progress lipgloss.Style
	Blocked  lipgloss.Style
	Halted   lipgloss.Style
	Bar      lipgloss.Style

	Time    lipgloss.Style
	Origin  lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	InfoText lipgloss.Style
	Warning  lipgloss.Style
}

// DarkStyles returns the amber theme optimised for dark terminal backgrounds.
func DarkStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Foreground(ColourBackground).Background(ColourAmber).Bold(true),
		Separator: lipgloss.NewStyle().Foreground(ColourAmberDim),
		Header:    lipgloss.NewStyle().Foreground(ColourAmber).Bold(true),

		TaskName: lipgloss.NewStyle().Foreground(ColourAmberLight),
		Progress: lipgloss.NewStyle().Foreground(ColourAmberFaded),
		Blocked:  lipgloss.NewStyle().Foreground(ColourWarning),
		Halted:   lipgloss.NewStyle().Foreground(ColourError),
		Bar:      lipgloss.NewStyle().Foreground(ColourSuccess),

		Time:    lipgloss.NewStyle().Foreground(ColourAmberFaded),
		Origin:  lipgloss.NewStyle().Foreground(ColourAmberDim),
		Info:    lipgloss.NewStyle().Foreground(ColourAmberLight),
		Success: lipgloss.NewStyle().Foreground(ColourSuccess).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(ColourError).Bold(true),

		InfoText: lipgloss.NewStyle().Foreground(ColourAmberLight),
		Warning:  lipgloss.NewStyle().Foreground(ColourWarning).Bold(true),
	}
}

// LightStyles returns the amber theme optimised for light terminal backgrounds.
func LightStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Foreground(ColourBackgroundLight).Background(ColourAmberDark).Bold(true),
		Separator: lipgloss.NewStyle().Foreground(ColourAmberDarkDim),
		Header:    lipgloss.NewStyle().Foreground(ColourAmberDark).Bold(true),

		TaskName: lipgloss.NewStyle().Foreground(ColourAmberDarkMid),
		Progress: lipgloss.NewStyle().Foreground(ColourAmberDarkFaded),
		Blocked:  lipgloss.NewStyle().Foreground(ColourWarningDark),
		Halted:   lipgloss.NewStyle().Foreground(ColourErrorDark),
		Bar:      lipgloss.NewStyle().Foreground(ColourSuccessDark),

		Time:    lipgloss.NewStyle().Foreground(ColourAmberDarkFaded),
		Origin:  lipgloss.NewStyle().Foreground(ColourAmberDarkDim),
		Info:    lipgloss.NewStyle().Foreground(ColourAmberDarkMid),
		Success: lipgloss.NewStyle().Foreground(ColourSuccessDark).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(ColourErrorDark).Bold(true),

		InfoText: lipgloss.NewStyle().Foreground(ColourAmberDarkMid),
		Warning:  lipgloss.NewStyle().Foreground(ColourWarningDark).Bold(true),
	}
}

// GetStyles returns the Styles for the given theme.
// Falls back to dark theme for unknown theme values.
func GetStyles(theme Theme) Styles {
	switch theme {
	case ThemeLight:
		return LightStyles()
	default:
		return DarkStyles()
	}
}
