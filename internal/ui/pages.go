package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"clubsite/internal/club"
	"clubsite/internal/ui/textutil"
)

const (
	// cardWidth is the outer width of a card, border included.
	cardWidth = 32
	// cardText is the text width inside a card's border and padding.
	cardText = cardWidth - 4
	// clampLines caps descriptions and bios on cards.
	clampLines = 3
	// proseWidth caps the width of running text.
	proseWidth = 72
)

// Site is the content every page renders from, already resolved against the
// fallback policy.
type Site struct {
	Profile club.ResolvedProfile
	Events  club.Resolved[club.Event]
	Team    club.Resolved[club.Member]
	Socials club.Resolved[club.Social]
	Year    int
}

type feature struct {
	title string
	text  string
}

var features = []feature{
	{"Community First", "Peer-led learning with inclusive, beginner-friendly spaces."},
	{"Hands-on", "Workshops, live demos, and projects that ship."},
	{"Industry-ready", "Talks from alumni and pros to stay ahead of the curve."},
}

// renderPage renders the body of page p. selected is the highlighted social
// link on the Contact page.
func renderPage(p Page, s Site, t Theme, width, selected int) string {
	switch p {
	case PageAbout:
		return renderAbout(s, t, width)
	case PageEvents:
		return renderEvents(s, t, width)
	case PageTeam:
		return renderTeam(s, t, width)
	case PageContact:
		return renderContact(s, t, width, selected)
	default:
		return renderHome(s, t, width)
	}
}

func renderHome(s Site, t Theme, width int) string {
	p := s.Profile.Profile
	cards := make([]string, 0, len(features))
	for _, f := range features {
		cards = append(cards, card(t, []string{t.CardTitle.Render(f.title)}, f.text))
	}
	return strings.Join([]string{
		t.Kicker.Render("» " + p.Tagline),
		t.Title.Render(p.Name),
		prose(t, p.About, width),
		"",
		t.Link.Render("3 Explore Events") + "  " + t.Tab.Render("4 Meet the Team"),
		"",
		heading(t, "About Us", "Who we are and what we do"),
		grid(cards, width),
	}, "\n")
}

func renderAbout(s Site, t Theme, width int) string {
	p := s.Profile.Profile
	return strings.Join([]string{
		t.Title.Render("About " + p.Name),
		prose(t, p.About, width),
		"",
		grid([]string{
			card(t, []string{t.CardTitle.Render("Vision")}, p.Vision),
			card(t, []string{t.CardTitle.Render("Mission")}, p.Mission),
		}, width),
	}, "\n")
}

func renderEvents(s Site, t Theme, width int) string {
	cards := make([]string, 0, len(s.Events.Items))
	for _, e := range s.Events.Items {
		head := []string{
			t.Muted.Render("◷ " + e.Date),
			t.CardTitle.Render(textutil.Truncate(e.Title, cardText)),
		}
		if e.Location != "" {
			head = append(head, t.Muted.Render("⌖ "+textutil.Truncate(e.Location, cardText-2)))
		}
		var extra []string
		if tags := e.VisibleTags(); len(tags) > 0 {
			extra = append(extra, t.Tag.Render(tagLine(tags)))
		}
		cards = append(cards, card(t, head, e.Description, extra...))
	}
	return heading(t, "Events", "All our past and upcoming events.") + "\n" + grid(cards, width)
}

func renderTeam(s Site, t Theme, width int) string {
	cards := make([]string, 0, len(s.Team.Items))
	for _, m := range s.Team.Items {
		head := []string{
			t.Selected.Render("(" + initials(m.Name) + ")"),
			t.CardTitle.Render(textutil.Truncate(m.Name, cardText)),
			t.Muted.Render(textutil.Truncate(m.Role, cardText)),
		}
		cards = append(cards, card(t, head, m.Bio))
	}
	return heading(t, "Our Team", "Meet the people who make it happen.") + "\n" + grid(cards, width)
}

func renderContact(s Site, t Theme, width, selected int) string {
	lines := []string{heading(t, "Get in touch", "Follow our socials and say hello."), ""}
	for i, link := range s.Socials.Items {
		label := t.Link.Render(socialGlyph(link.Platform) + " " + link.Platform)
		url := textutil.Truncate(link.URL, max(width-lipgloss.Width(label)-4, 8))
		if i == selected {
			lines = append(lines, t.Selected.Render("› ")+label+" "+t.Normal.Render(url))
		} else {
			lines = append(lines, "  "+label+" "+t.Muted.Render(url))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderStatic renders every page once, for non-interactive output.
func RenderStatic(s Site, width int) string {
	t := NewTheme(s.Profile.Colors)
	var b strings.Builder
	for _, p := range Pages {
		fmt.Fprintf(&b, "── %s ──\n\n", p)
		b.WriteString(renderPage(p, s, t, width, -1))
		b.WriteString("\n\n")
	}
	b.WriteString(footer(s, t, width))
	b.WriteString("\n")
	return b.String()
}

func footer(s Site, t Theme, width int) string {
	text := t.Footer.Render(fmt.Sprintf("© %d %s. All rights reserved.", s.Year, s.Profile.Profile.Name))
	if width <= 0 {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

func heading(t Theme, title, subtitle string) string {
	return t.Title.Render(title) + "\n" + t.Subtitle.Render(subtitle)
}

func prose(t Theme, text string, width int) string {
	return t.Normal.Render(strings.Join(textutil.Wrap(text, min(max(width, 20), proseWidth)), "\n"))
}

// card renders head lines, then body clamped to clampLines, then any extra lines.
func card(t Theme, head []string, body string, extra ...string) string {
	lines := append([]string{}, head...)
	lines = append(lines, textLines(t.Muted, body)...)
	lines = append(lines, extra...)
	return t.Card.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
}

func textLines(style lipgloss.Style, body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	var out []string
	for _, l := range textutil.Clamp(body, cardText, clampLines) {
		out = append(out, style.Render(l))
	}
	return out
}

// grid lays cards out left to right, wrapping to fit width.
func grid(cards []string, width int) string {
	cols := max(1, (width+1)/(cardWidth+1))
	var rows []string
	for i := 0; i < len(cards); i += cols {
		row := cards[i:min(i+cols, len(cards))]
		cells := make([]string, 0, 2*len(row))
		for j, c := range row {
			if j > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func tagLine(tags []string) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "#" + tag
	}
	return textutil.Truncate(strings.Join(parts, " "), cardText)
}

// initials returns up to two uppercase initials of name.
func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// socialGlyph picks a glyph by platform name, case-insensitively.
func socialGlyph(platform string) string {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "instagram":
		return "◎"
	case "twitter", "x":
		return "✕"
	case "linkedin":
		return "in"
	case "email":
		return "✉"
	default:
		return "↗"
	}
}
