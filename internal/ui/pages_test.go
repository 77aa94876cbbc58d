package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"clubsite/internal/club"
	"clubsite/internal/remote"
)

func fallbackSite() Site {
	return Site{
		Profile: club.ResolveProfile(remote.Loading[[]club.Profile]()),
		Events:  club.Resolve(remote.Loading[[]club.Event](), club.DefaultEvents()),
		Team:    club.Resolve(remote.Loading[[]club.Member](), club.DefaultTeam()),
		Socials: club.Resolve(remote.Loading[[]club.Social](), club.DefaultSocials()),
		Year:    2026,
	}
}

func TestRenderStatic_Defaults(t *testing.T) {
	out := RenderStatic(fallbackSite(), 100)

	for _, want := range []string{
		"── Home ──", "── About ──", "── Events ──", "── Team ──", "── Contact ──",
		"Your Club Name",
		"Innovate • Inspire • Impact",
		"Community First", "Hands-on", "Industry-ready",
		"Vision", "To cultivate a culture of",
		"Welcome Orientation", "Lab 3", "#Hackathon",
		"Alex Johnson", "(AJ)", "Design Lead",
		"Instagram", "https://linkedin.com",
		"© 2026 Your Club Name. All rights reserved.",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderEvents_TagsCappedAtFour(t *testing.T) {
	s := fallbackSite()
	s.Events = club.Resolve(remote.Loaded([]club.Event{{
		Title: "Tag Soup",
		Date:  "2026-05-01",
		Tags:  []string{"t1", "t2", "t3", "t4", "t5", "t6"},
	}}), club.DefaultEvents())

	out := renderEvents(s, NewTheme(s.Profile.Colors), 80)
	assert.Contains(t, out, "#t1 #t2 #t3 #t4")
	assert.NotContains(t, out, "#t5")
	assert.NotContains(t, out, "Welcome Orientation")
}

func TestRenderEvents_ClampsDescription(t *testing.T) {
	s := fallbackSite()
	long := strings.Repeat("workshop ", 40)
	s.Events = club.Resolve(remote.Loaded([]club.Event{{Title: "Marathon", Date: "2026-06-01", Description: long}}), nil)

	out := renderEvents(s, NewTheme(s.Profile.Colors), 80)
	assert.Contains(t, out, "…")
	assert.Less(t, strings.Count(out, "workshop"), 40)
}

func TestGrid_WrapsToWidth(t *testing.T) {
	cards := []string{"a", "b", "c"}

	wide := grid(cards, 3*(cardWidth+1))
	assert.Equal(t, 1, lipgloss.Height(wide))

	narrow := grid(cards, cardWidth)
	assert.Equal(t, 3, lipgloss.Height(narrow))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AJ", initials("Alex Johnson"))
	assert.Equal(t, "MV", initials("maria von trapp"))
	assert.Equal(t, "C", initials("Cher"))
	assert.Equal(t, "?", initials("  "))
}

func TestSocialGlyph(t *testing.T) {
	tests := map[string]string{
		"Instagram": "◎",
		"twitter":   "✕",
		"X":         "✕",
		"LinkedIn":  "in",
		"email":     "✉",
		"Mastodon":  "↗",
		"":          "↗",
	}
	for platform, want := range tests {
		assert.Equal(t, want, socialGlyph(platform), platform)
	}
}
