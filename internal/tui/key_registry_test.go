package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRegistryRespectsViewModes(t *testing.T) {
	r := NewHandlerRegistry()
	var hits []string
	r.RegisterKeys([]string{"x"}, "timer x", []int{ModeTimer}, func(m Model, key string) (Model, tea.Cmd, bool) {
		hits = append(hits, "timer")
		return m, nil, true
	})
	r.RegisterKeys([]string{"x"}, "history x", []int{ModeHistory}, func(m Model, key string) (Model, tea.Cmd, bool) {
		hits = append(hits, "history")
		return m, nil, true
	})

	m := Model{tab: TabHistory}
	if _, _, handled := r.Handle(m, "x"); !handled {
		t.Fatalf("expected x handled in history")
	}
	if _, _, handled := r.Handle(m, "y"); handled {
		t.Fatalf("expected y unhandled")
	}
	if len(hits) != 1 || hits[0] != "history" {
		t.Fatalf("unexpected dispatch %v", hits)
	}
}

func TestRegistryFallsThroughUnhandled(t *testing.T) {
	r := NewHandlerRegistry()
	r.Register(KeyBinding{Key: "z", Priority: 1, Handler: func(m Model, key string) (Model, tea.Cmd, bool) {
		return m, nil, false
	}})
	called := false
	r.Register(KeyBinding{Key: "z", Handler: func(m Model, key string) (Model, tea.Cmd, bool) {
		called = true
		return m, nil, true
	}})
	if _, _, handled := r.Handle(Model{}, "z"); !handled || !called {
		t.Fatalf("expected lower priority binding to run")
	}
}

func TestDefaultHelpPerMode(t *testing.T) {
	r := defaultKeyRegistry()
	timerHelp := r.HelpForView(ModeTimer)
	for _, want := range []string{"[space]start/pause", "[r]reset", "[+]+1 min", "[1]presets", "[q]quit"} {
		if !strings.Contains(timerHelp, want) {
			t.Fatalf("timer help missing %q: %s", want, timerHelp)
		}
	}
	if strings.Contains(timerHelp, "[=]") {
		t.Fatalf("alias keys should not appear in help: %s", timerHelp)
	}
	historyHelp := r.HelpForView(ModeHistory)
	if !strings.Contains(historyHelp, "[p]pdf report") || strings.Contains(historyHelp, "start/pause") {
		t.Fatalf("unexpected history help: %s", historyHelp)
	}
	if !strings.Contains(r.HelpForView(ModeGuidedTimer), "[esc]back") {
		t.Fatalf("guided timer help should offer esc")
	}
}
