package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp produces the transient hint bar shown after SPC.
// With a partial sequence in the buffer (e.g. "SPC g") it lists the next level.
func RenderKeybindHelp(h *KeyHandler, page Page, theme Theme) string {
	if h == nil {
		return ""
	}
	currentSeq := strings.Join(h.Buffer, " ")
	hints := h.Registry.LeaderHints(currentSeq, page)
	if len(hints) == 0 {
		return ""
	}

	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, hints[k]),
		))
	}
	bindings = append(bindings, key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	))

	hm := help.New()
	hm.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	hm.Styles.ShortDesc = theme.Muted
	hm.Styles.ShortSeparator = theme.Muted

	prefix := h.LeaderSeq
	if currentSeq != "" {
		prefix = currentSeq
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(0, 1)
	return box.Render(theme.Muted.Render(prefix) + " " + hm.ShortHelpView(bindings))
}
