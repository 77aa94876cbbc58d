package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"clubsite/internal/api"
	"clubsite/internal/club"
	"clubsite/internal/remote"
)

// NavigateMsg switches to Page.
type NavigateMsg struct {
	Page Page
}

// CycleMsg moves Delta pages along the navbar, wrapping around.
type CycleMsg struct {
	Delta int
}

// ReloadMsg re-requests the resource shown on the current page.
type ReloadMsg struct{}

// LinkCopiedMsg reports the outcome of copying a contact link.
type LinkCopiedMsg struct {
	URL string
	Err error
}

// chromeHeight is the number of lines around the page body: navbar and rule,
// status line, blank line and footer.
const chromeHeight = 5

// defaultWidth is used until the terminal reports its size.
const defaultWidth = 80

// Fetchers supplies the four site resources.
type Fetchers struct {
	Club    remote.Fetcher[[]club.Profile]
	Events  remote.Fetcher[[]club.Event]
	Team    remote.Fetcher[[]club.Member]
	Socials remote.Fetcher[[]club.Social]
}

// NewFetchers returns JSON fetchers backed by c.
func NewFetchers(c *api.Client) Fetchers {
	return Fetchers{
		Club:    api.JSON[[]club.Profile](c),
		Events:  api.JSON[[]club.Event](c),
		Team:    api.JSON[[]club.Member](c),
		Socials: api.JSON[[]club.Social](c),
	}
}

// resource is the part of remote.Loader the app drives without knowing T.
type resource interface {
	Activate(key string) tea.Cmd
	Reload() tea.Cmd
	Deactivate()
	Update(msg tea.Msg) bool
	Pending() bool
}

// AppModel is the root model. It owns the loaders and the current page.
type AppModel struct {
	Page       Page
	Club       *remote.Loader[[]club.Profile]
	Events     *remote.Loader[[]club.Event]
	Team       *remote.Loader[[]club.Member]
	Socials    *remote.Loader[[]club.Social]
	KeyHandler *KeyHandler
	Now        func() time.Time
	// Copy puts text on the system clipboard.
	Copy func(string) error

	logger   zerolog.Logger
	spinner  spinner.Model
	ticking  bool
	body     viewport.Model
	width    int
	sized    bool
	selected int    // highlighted link on the Contact page
	notice   string // outcome of the last copy, cleared on navigation
}

// NewAppModel creates the root model. Nothing is fetched until Init.
func NewAppModel(f Fetchers, logger zerolog.Logger) *AppModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &AppModel{
		Page:    PageHome,
		Club:    remote.New(f.Club, remote.WithName("club"), remote.WithLogger(logger)),
		Events:  remote.New(f.Events, remote.WithName("events"), remote.WithLogger(logger)),
		Team:    remote.New(f.Team, remote.WithName("team"), remote.WithLogger(logger)),
		Socials: remote.New(f.Socials, remote.WithName("socials"), remote.WithLogger(logger)),
		Now:     time.Now,
		Copy:    clipboard.WriteAll,
		logger:  logger,
		spinner: s,
		width:   defaultWidth,
	}
	m.KeyHandler = NewKeyHandler(newRegistry())
	return m
}

func newRegistry() *KeybindRegistry {
	navigate := func(p Page) tea.Cmd {
		return func() tea.Msg { return NavigateMsg{Page: p} }
	}
	next := func() tea.Msg { return CycleMsg{Delta: 1} }
	prev := func() tea.Msg { return CycleMsg{Delta: -1} }
	reload := func() tea.Msg { return ReloadMsg{} }

	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	for _, k := range []string{"tab", "l", "right"} {
		reg.Bind(k, next)
	}
	for _, k := range []string{"shift+tab", "h", "left"} {
		reg.Bind(k, prev)
	}
	for i, p := range Pages {
		reg.Bind(fmt.Sprint(i+1), navigate(p))
	}
	reg.Bind("r", reload)

	reg.BindWithDesc("SPC g h", navigate(PageHome), "Home")
	reg.BindWithDesc("SPC g a", navigate(PageAbout), "About")
	reg.BindWithDesc("SPC g e", navigate(PageEvents), "Events")
	reg.BindWithDesc("SPC g t", navigate(PageTeam), "Team")
	reg.BindWithDesc("SPC g c", navigate(PageContact), "Contact")
	reg.BindWithDesc("SPC r", reload, "Reload")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	return reg
}

// Init activates the club loader and the current page's loader.
func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.Club.Activate(club.PathClub)}
	if r, key, ok := m.pageResource(m.Page); ok {
		cmds = append(cmds, r.Activate(key))
	}
	cmds = append(cmds, m.startSpinner())
	m.refresh()
	return tea.Batch(cmds...)
}

// Update applies msg and returns the follow-up command.
func (m *AppModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil
	case remote.SettledMsg:
		for _, r := range m.resources() {
			if r.Update(msg) {
				m.moveSelection(0)
				m.refresh()
				break
			}
		}
		return nil
	case spinner.TickMsg:
		if !m.loading() {
			m.ticking = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case NavigateMsg:
		return m.navigate(msg.Page)
	case CycleMsg:
		return m.navigate(m.Page.Cycle(msg.Delta))
	case ReloadMsg:
		return m.reload()
	case LinkCopiedMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Str("url", msg.URL).Msg("copy link")
			m.notice = "Copy failed: " + msg.Err.Error()
		} else {
			m.notice = "Copied " + msg.URL
		}
		return nil
	case tea.KeyMsg:
		if m.KeyHandler != nil {
			if consumed, cmd := m.KeyHandler.Handle(msg); consumed {
				return cmd
			}
		}
		return m.handlePageKey(msg)
	case tea.MouseMsg:
		if !m.sized {
			return nil
		}
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return cmd
	}
	return nil
}

func (m *AppModel) handlePageKey(msg tea.KeyMsg) tea.Cmd {
	if m.Page == PageContact {
		switch msg.String() {
		case "j", "down":
			m.moveSelection(1)
			m.refresh()
			return nil
		case "k", "up":
			m.moveSelection(-1)
			m.refresh()
			return nil
		case "enter", "y":
			return m.copySelected()
		}
	}
	if !m.sized {
		return nil
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return cmd
}

// navigate tears down the current page's loader and activates the next one.
func (m *AppModel) navigate(p Page) tea.Cmd {
	if p == m.Page {
		return nil
	}
	if r, _, ok := m.pageResource(m.Page); ok {
		r.Deactivate()
	}
	m.logger.Debug().Stringer("from", m.Page).Stringer("to", p).Msg("navigate")
	m.Page = p
	m.selected = 0
	m.notice = ""
	m.body.GotoTop()

	var cmd tea.Cmd
	if r, key, ok := m.pageResource(p); ok {
		cmd = r.Activate(key)
	}
	m.refresh()
	return tea.Batch(cmd, m.startSpinner())
}

// reload re-requests the current page's own resource, or the club profile on
// pages without one.
func (m *AppModel) reload() tea.Cmd {
	var cmd tea.Cmd
	if r, _, ok := m.pageResource(m.Page); ok {
		cmd = r.Reload()
	} else {
		cmd = m.Club.Reload()
	}
	m.refresh()
	return tea.Batch(cmd, m.startSpinner())
}

func (m *AppModel) pageResource(p Page) (resource, string, bool) {
	switch p {
	case PageEvents:
		return m.Events, club.PathEvents, true
	case PageTeam:
		return m.Team, club.PathTeam, true
	case PageContact:
		return m.Socials, club.PathSocials, true
	}
	return nil, "", false
}

func (m *AppModel) resources() []resource {
	return []resource{m.Club, m.Events, m.Team, m.Socials}
}

func (m *AppModel) loading() bool {
	for _, r := range m.resources() {
		if r.Pending() {
			return true
		}
	}
	return false
}

func (m *AppModel) startSpinner() tea.Cmd {
	if m.ticking || !m.loading() {
		return nil
	}
	m.ticking = true
	return m.spinner.Tick
}

// moveSelection moves the contact highlight, keeping it on an existing link.
func (m *AppModel) moveSelection(delta int) {
	n := len(m.Site().Socials.Items)
	m.selected = min(max(m.selected+delta, 0), max(n-1, 0))
}

func (m *AppModel) copySelected() tea.Cmd {
	links := m.Site().Socials.Items
	if m.selected >= len(links) || m.Copy == nil {
		return nil
	}
	url, copyFn := links[m.selected].URL, m.Copy
	return func() tea.Msg {
		return LinkCopiedMsg{URL: url, Err: copyFn(url)}
	}
}

func (m *AppModel) resize(width, height int) {
	m.width = width
	bodyHeight := max(height-chromeHeight, 1)
	if !m.sized {
		m.body = viewport.New(width, bodyHeight)
		m.sized = true
	} else {
		m.body.Width = width
		m.body.Height = bodyHeight
	}
	m.refresh()
}

// refresh re-renders the page body into the viewport.
func (m *AppModel) refresh() {
	if !m.sized {
		return
	}
	site := m.Site()
	m.body.SetContent(renderPage(m.Page, site, NewTheme(site.Profile.Colors), m.width, m.selected))
}

// Site resolves the loaders' current states into renderable content.
func (m *AppModel) Site() Site {
	return Site{
		Profile: club.ResolveProfile(m.Club.State()),
		Events:  club.Resolve(m.Events.State(), club.DefaultEvents()),
		Team:    club.Resolve(m.Team.State(), club.DefaultTeam()),
		Socials: club.Resolve(m.Socials.State(), club.DefaultSocials()),
		Year:    m.Now().Year(),
	}
}

// View renders the navbar, page body, status line and footer.
func (m *AppModel) View() string {
	site := m.Site()
	theme := NewTheme(site.Profile.Colors)

	var b strings.Builder
	b.WriteString(m.navbar(site, theme))
	b.WriteString("\n")
	if m.sized {
		b.WriteString(m.body.View())
	} else {
		b.WriteString(renderPage(m.Page, site, theme, m.width, m.selected))
	}
	b.WriteString("\n")
	b.WriteString(m.status(site, theme))
	if m.KeyHandler != nil && m.KeyHandler.LeaderWaiting {
		b.WriteString("\n")
		b.WriteString(RenderKeybindHelp(m.KeyHandler, m.Page, theme))
	}
	b.WriteString("\n\n")
	b.WriteString(footer(site, theme, m.width))
	return b.String()
}

func (m *AppModel) navbar(site Site, t Theme) string {
	tabs := []string{t.Brand.Render(site.Profile.Profile.Name), "  "}
	for i, p := range Pages {
		label := fmt.Sprintf("%d %s", i+1, p)
		if p == m.Page {
			tabs = append(tabs, t.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, t.Tab.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return bar + "\n" + t.Footer.Render(strings.Repeat("─", max(m.width, lipgloss.Width(bar))))
}

// status reports whether the current page shows live data, is loading, or
// fell back to defaults and why.
func (m *AppModel) status(site Site, t Theme) string {
	label, origin, reason := pageStatus(m.Page, site)
	var line string
	switch {
	case reason == club.ReasonLoading:
		line = m.spinner.View() + " " + t.Muted.Render("Loading "+label+"…")
	case origin == club.OriginFallback && reason == club.ReasonEmpty:
		line = t.Warning.Render("Showing default " + label + ": nothing published yet")
	case origin == club.OriginFallback:
		line = t.Danger.Render("Showing default " + label + ": " + reason)
	default:
		line = t.Muted.Render("● live " + label)
	}
	if m.notice != "" {
		return line + t.Muted.Render("  ·  "+m.notice)
	}
	hints := "  ·  tab next · r reload · SPC menu · q quit"
	if m.Page == PageContact {
		hints = "  ·  j/k select · enter copy · r reload · q quit"
	}
	return line + t.Muted.Render(hints)
}

func pageStatus(p Page, s Site) (label string, origin club.Origin, reason string) {
	switch p {
	case PageEvents:
		return "events", s.Events.Origin, s.Events.Reason
	case PageTeam:
		return "team", s.Team.Origin, s.Team.Reason
	case PageContact:
		return "socials", s.Socials.Origin, s.Socials.Reason
	default:
		return "club profile", s.Profile.Origin, s.Profile.Reason
	}
}

// Ensure appModelAdapter can be used as tea.Model.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, a.AppModel.Update(msg)
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
