package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("SPC q", tea.Quit)
	reg.Bind("space g e", tea.Quit)

	if reg.Lookup("q") == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup("SPC q") == nil {
		t.Error("expected SPC q to be bound")
	}
	if reg.Lookup("SPC g e") == nil {
		t.Error("expected space to normalize to SPC")
	}
	if reg.Lookup("unknown") != nil {
		t.Error("expected unknown to be unbound")
	}
	if !reg.HasPrefix("SPC g") {
		t.Error("expected SPC g to be a prefix")
	}
	if reg.HasPrefix("SPC q") {
		t.Error("SPC q is a complete binding, not a prefix")
	}
}

func TestKeybindRegistry_LeaderHints(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC g e", tea.Quit, "Events")
	reg.BindWithDesc("SPC g t", tea.Quit, "Team")
	reg.BindWithDesc("SPC r", tea.Quit, "Reload")
	reg.BindForPages("SPC o", tea.Quit, "Open link", []Page{PageContact})

	top := reg.LeaderHints("", PageHome)
	if top["g"] != "Go to" {
		t.Errorf("g hint = %q, want submenu label", top["g"])
	}
	if top["r"] != "Reload" {
		t.Errorf("r hint = %q", top["r"])
	}
	if _, ok := top["o"]; ok {
		t.Error("contact-only binding shown on Home")
	}
	if reg.LeaderHints("", PageContact)["o"] != "Open link" {
		t.Error("contact-only binding missing on Contact")
	}

	sub := reg.LeaderHints("SPC g", PageHome)
	if len(sub) != 2 || sub["e"] != "Events" || sub["t"] != "Team" {
		t.Errorf("SPC g hints = %v", sub)
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("SPC x", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg(" "))
	if !consumed || cmd != nil {
		t.Errorf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Error("expected leader waiting after space")
	}

	consumed, cmd = h.Handle(keyMsg("x"))
	if !consumed || cmd == nil {
		t.Fatalf("x: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	cmd()
	if !executed {
		t.Error("expected command to execute")
	}
}

func TestKeyHandler_MultiKeySequence(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC g e", func() tea.Msg { return NavigateMsg{Page: PageEvents} })
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("g"))
	if !consumed || cmd != nil {
		t.Errorf("g: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting || len(h.Buffer) != 2 {
		t.Fatalf("expected to wait for the rest of SPC g, buffer=%v", h.Buffer)
	}

	_, cmd = h.Handle(keyMsg("e"))
	if cmd == nil {
		t.Fatal("expected SPC g e to resolve")
	}
	if msg, ok := cmd().(NavigateMsg); !ok || msg.Page != PageEvents {
		t.Errorf("got %#v", msg)
	}
}

func TestKeyHandler_UnknownSequenceLeavesLeaderMode(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC q", tea.Quit)
	reg.Bind("z", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("z"))
	if !consumed || cmd != nil {
		t.Errorf("SPC z: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting || h.Buffer != nil {
		t.Error("unknown sequence should reset leader state")
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"))
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}

	consumed, _ = h.Handle(keyMsg("esc"))
	if consumed {
		t.Error("esc outside leader mode should fall through")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("shift+tab", tea.Quit)
	h := NewKeyHandler(reg)

	for _, k := range []string{"q", "shift+tab"} {
		consumed, cmd := h.Handle(keyMsg(k))
		if !consumed || cmd == nil {
			t.Errorf("%s: consumed=%v cmd=%v", k, consumed, cmd)
		}
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, _ := h.Handle(keyMsg("j"))
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	m := newTestApp(t)
	m.Update(keyMsg(" "))

	out := m.View()
	for _, want := range []string{"Go to", "Reload", "Quit", "cancel"} {
		if !contains(out, want) {
			t.Errorf("leader hint bar missing %q", want)
		}
	}

	m.Update(keyMsg("g"))
	out = RenderKeybindHelp(m.KeyHandler, m.Page, NewTheme(m.Site().Profile.Colors))
	for _, want := range []string{"SPC g", "Events", "Contact"} {
		if !contains(out, want) {
			t.Errorf("SPC g hint bar missing %q", want)
		}
	}

	if RenderKeybindHelp(nil, PageHome, Theme{}) != "" {
		t.Error("nil handler renders nothing")
	}
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
