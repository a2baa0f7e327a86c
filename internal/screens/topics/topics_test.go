package topics

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/mathforge/mathforge/internal/auth"
	"github.com/mathforge/mathforge/internal/catalog"
	"github.com/mathforge/mathforge/internal/router"
	"github.com/mathforge/mathforge/internal/screen"
	"github.com/mathforge/mathforge/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "mathforge.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testTopicsScreen(t *testing.T, identity auth.Identity) (*TopicsScreen, *store.Store) {
	t.Helper()
	st := openStore(t)
	s := New(screen.Deps{
		Catalog:  catalog.Default(),
		Events:   st.EventRepo(),
		Progress: st.ProgressRepo(),
		Identity: identity,
	})
	return s, st
}

// load runs the screen's load command synchronously.
func load(s *TopicsScreen, cmd tea.Cmd) {
	s.Update(cmd())
}

func TestTopicsScreen_LoadsAggregatedProgress(t *testing.T) {
	user := auth.Identity{UserID: "u1"}
	s, st := testTopicsScreen(t, user)

	ctx := context.Background()
	for _, id := range []string{"differentiation-1", "differentiation-2"} {
		if _, err := st.ProgressRepo().RecordCompletion(ctx, store.CompletionData{UserID: "u1", SubtopicID: "calculus-differentiation", ProblemID: id}); err != nil {
			t.Fatal(err)
		}
	}

	load(s, s.Init())
	if !s.loaded || s.errMsg != "" {
		t.Fatalf("loaded=%v err=%q", s.loaded, s.errMsg)
	}

	calc := s.reports[0]
	if calc.ID != "calculus" || calc.Counts.Completed != 2 {
		t.Errorf("calculus report = %+v", calc.Counts)
	}
	if calc.Children[0].Counts.Completed != 2 || calc.Children[0].Counts.Total != 3 {
		t.Errorf("differentiation counts = %+v", calc.Children[0].Counts)
	}
	if s.overall <= 0 {
		t.Errorf("overall = %v, want > 0", s.overall)
	}

	view := ansi.Strip(s.View(120, 40))
	for _, want := range []string{"Overall progress", "Calculus", "Differentiation", "2/3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTopicsScreen_ExpandCollapse(t *testing.T) {
	s, _ := testTopicsScreen(t, auth.Identity{UserID: "u1"})
	load(s, s.Init())

	expandedRows := len(s.rows)
	if s.rows[0].report.ID != "calculus" {
		t.Fatalf("first row = %q", s.rows[0].report.ID)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.expanded["calculus"] {
		t.Fatal("enter on a topic should collapse it")
	}
	if len(s.rows) != expandedRows-3 {
		t.Errorf("rows = %d, want %d", len(s.rows), expandedRows-3)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if !s.expanded["calculus"] {
		t.Error("right should expand")
	}

	// Left on a subtopic collapses its parent and selects it.
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.expanded["calculus"] || s.cursor != 0 {
		t.Errorf("expanded=%v cursor=%d", s.expanded["calculus"], s.cursor)
	}
}

func TestTopicsScreen_SignInGate(t *testing.T) {
	s, _ := testTopicsScreen(t, auth.Anonymous())
	load(s, s.Init())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("anonymous learner must not start practice")
	}
	if !strings.Contains(s.notice, "Sign in") {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestTopicsScreen_StartPractice(t *testing.T) {
	s, _ := testTopicsScreen(t, auth.Identity{UserID: "u1"})
	load(s, s.Init())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Differentiation" {
		t.Errorf("pushed %q", msg.Screen.Title())
	}
}

func TestTopicsScreen_ResumeReloads(t *testing.T) {
	s, st := testTopicsScreen(t, auth.Identity{UserID: "u1"})
	load(s, s.Init())
	before := s.overall

	_, err := st.ProgressRepo().RecordCompletion(context.Background(), store.CompletionData{UserID: "u1", SubtopicID: "algebra-quadratics", ProblemID: "quadratics-1"})
	if err != nil {
		t.Fatal(err)
	}
	load(s, s.Resume())
	if s.overall <= before {
		t.Errorf("overall %v did not increase from %v", s.overall, before)
	}
}

func TestTopicsScreen_HistoryKey(t *testing.T) {
	s, _ := testTopicsScreen(t, auth.Identity{UserID: "u1"})
	load(s, s.Init())

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok || msg.Screen.Title() != "History" {
		t.Errorf("got %#v", cmd())
	}
}
