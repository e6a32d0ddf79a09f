// Package style holds the colors and icons shared by every shadercell
// terminal surface.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#8B5CF6")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Reload  = "↻"
	Dot     = "●"
)

// Label renders a pipeline name in the accent color.
func Label(name string) string {
	return lipgloss.NewStyle().Foreground(Accent).Bold(true).Render(name)
}
