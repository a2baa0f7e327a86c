package history

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

func seededDeps(t *testing.T, identity auth.Identity) screen.Deps {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	events := []store.SessionEventData{
		{SessionID: "s1", UserID: "u1", SubtopicID: "calculus-differentiation", Action: store.ActionStart, Problems: 3},
		{SessionID: "s1", UserID: "u1", SubtopicID: "calculus-differentiation", Action: store.ActionComplete, Problems: 3, Answered: 3, Correct: 2, MarksEarned: 5, MarksAvailable: 8, DurationSecs: 125},
		{SessionID: "s2", UserID: "u1", SubtopicID: "algebra-quadratics", Action: store.ActionAbandon, Problems: 2, Answered: 1},
		{SessionID: "s3", UserID: "someone-else", SubtopicID: "algebra-quadratics", Action: store.ActionComplete, Problems: 2},
	}
	for _, ev := range events {
		if err := st.EventRepo().AppendSessionEvent(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	return screen.Deps{Catalog: catalog.Default(), Events: st.EventRepo(), Identity: identity}
}

func TestHistoryScreen_ShowsFinishedSessions(t *testing.T) {
	s := New(seededDeps(t, auth.Identity{UserID: "u1"}))
	s.Update(s.Init()())

	if len(s.sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(s.sessions))
	}
	if s.sessions[0].SessionID != "s2" {
		t.Errorf("newest first: got %q", s.sessions[0].SessionID)
	}

	view := ansi.Strip(s.View(120, 30))
	for _, want := range []string{"Quadratics", "abandoned", "Differentiation", "2/3 correct", "5/8 marks"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(ansi.Strip(s.View(120, 30)), "time 2:05") {
		t.Error("expanded details missing duration")
	}
}

func TestHistoryScreen_Anonymous(t *testing.T) {
	s := New(seededDeps(t, auth.Anonymous()))
	s.Update(s.Init()())
	if len(s.sessions) != 0 {
		t.Errorf("anonymous sessions = %d", len(s.sessions))
	}
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "Sign in") {
		t.Error("expected sign-in message")
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := New(seededDeps(t, auth.Identity{UserID: "u1"}))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestFinished(t *testing.T) {
	recs := []store.SessionRecord{
		{SessionEventData: store.SessionEventData{Action: store.ActionStart}},
		{SessionEventData: store.SessionEventData{Action: store.ActionComplete}},
		{SessionEventData: store.SessionEventData{Action: store.ActionAbandon}},
	}
	if got := Finished(recs); len(got) != 2 {
		t.Errorf("Finished = %d records, want 2", len(got))
	}
}
