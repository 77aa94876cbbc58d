package ui

import (
	"github.com/charmbracelet/lipgloss"

	"clubsite/internal/club"
)

// Neutral colors used regardless of the club palette.
const (
	ColorDanger  = "196" // Red - for failure reasons
	ColorMuted   = "241" // Gray - for dimmed text, hints
	ColorText    = "252" // Light gray - for normal text
	ColorDim     = "243" // Darker gray - for footer, borders
	ColorWarning = "208" // Orange - for fallback notices
)

// Theme holds the styles derived from a club palette.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	Brand     lipgloss.Style // navbar club name
	Tab       lipgloss.Style // inactive navbar tab
	ActiveTab lipgloss.Style // current navbar tab
	Kicker    lipgloss.Style // small pill above the hero title
	Title     lipgloss.Style // page and hero titles
	Subtitle  lipgloss.Style
	Card      lipgloss.Style // bordered box for events, members, features
	CardTitle lipgloss.Style
	Tag       lipgloss.Style
	Link      lipgloss.Style // social link pill
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Footer    lipgloss.Style
}

// NewTheme builds the styles for colors.
func NewTheme(colors club.Colors) Theme {
	primary := lipgloss.Color(colors.Primary)
	secondary := lipgloss.Color(colors.Secondary)
	return Theme{
		Primary:   primary,
		Secondary: secondary,
		Brand: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(primary).
			Padding(0, 1),
		Kicker: lipgloss.NewStyle().
			Foreground(secondary).
			Italic(true),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorText)),
		Tag: lipgloss.NewStyle().
			Foreground(secondary),
		Link: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(primary).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorText)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger)),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)),
	}
}
