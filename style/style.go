// Package style renders text for the CLI and the tile list.
package style

import "github.com/charmbracelet/lipgloss"

// New returns an empty style to build on.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer that paints text in c.
func Fg(c lipgloss.Color) func(string) string {
	return render(New().Foreground(c))
}

func render(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}

// Truncate returns a renderer that fits text into max cells.
func Truncate(max int) func(string) string {
	return func(s string) string { return New().Width(max).Render(s) }
}

var (
	Faint = render(New().Faint(true))
	Bold  = render(New().Bold(true))

	// Success and Failure color outcome markers in CLI output.
	Success = Fg(SuccessColor)
	Failure = Fg(ErrorColor)
	// Key highlights a setting or host name, Value what it is set to.
	Key   = Fg(AccentColor)
	Value = Fg(WarningColor)
	// Header introduces a block of CLI output.
	Header = render(New().Bold(true).Foreground(SecondaryColor))
)

// Title renders a list or view heading.
func Title(s string) string {
	return New().Foreground(Base).Background(AccentColor).Padding(0, 1).Render(s)
}

// ErrorTitle renders the heading of the error view.
func ErrorTitle(s string) string {
	return New().Foreground(Base).Background(ErrorColor).Padding(0, 1).Render(s)
}

// Muted renders the audio state of a tile: individually muted tiles stand out,
// tiles silenced only by mute all stay faint.
func Muted(individual bool) string {
	if individual {
		return Fg(WarningColor)("muted")
	}
	return Fg(FaintColor)("muted by mute all")
}
