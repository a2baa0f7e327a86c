package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.ProgressRepo().RecordCompletion(ctx, CompletionData{UserID: "u", SubtopicID: "s", ProblemID: "p"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	counts, err := s.ProgressRepo().CompletedCounts(ctx, "u")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts["s"] != 1 {
		t.Errorf("counts[s] = %d, want 1", counts["s"])
	}
}

func TestSequenceMonotonicAcrossTypes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if seq <= last {
			t.Fatalf("sequence %d not greater than %d", seq, last)
		}
		last = seq
	}
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "s1", UserID: "u1", SubtopicID: "calculus-differentiation", Action: ActionStart, Problems: 3},
		{SessionID: "s1", UserID: "u1", SubtopicID: "calculus-differentiation", Action: ActionComplete,
			Problems: 3, Answered: 3, Correct: 2, HintsUsed: 1, MarksEarned: 5, MarksAvailable: 8, DurationSecs: 120},
		{SessionID: "s2", UserID: "u2", SubtopicID: "algebra-functions", Action: ActionStart, Problems: 3},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.RecentSessions(ctx, "u1", QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Action != ActionComplete {
		t.Errorf("newest action = %q, want complete", got[0].Action)
	}
	if got[0].Correct != 2 || got[0].MarksEarned != 5 || got[0].DurationSecs != 120 {
		t.Errorf("unexpected record: %+v", got[0])
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("expected newest first, got sequences %d, %d", got[0].Sequence, got[1].Sequence)
	}
	if time.Since(got[0].Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", got[0].Timestamp)
	}

	limited, err := repo.RecentSessions(ctx, "u1", QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited len = %d, want 1", len(limited))
	}

	after, err := repo.RecentSessions(ctx, "u1", QueryOpts{After: got[1].Sequence})
	if err != nil {
		t.Fatalf("recent after: %v", err)
	}
	if len(after) != 1 || after[0].Action != ActionComplete {
		t.Errorf("after = %+v", after)
	}
}

func TestAnswerAndHintEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", UserID: "u1", ProblemID: "p1", LearnerAnswer: "6x", Correct: false},
		{SessionID: "s1", UserID: "u1", ProblemID: "p1", LearnerAnswer: "6x+2", Correct: true},
		{SessionID: "s1", UserID: "u2", ProblemID: "p1", LearnerAnswer: "6x+2", Correct: true},
	}
	for _, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}
	err := repo.AppendHintEvent(ctx, HintEventData{SessionID: "s1", UserID: "u1", ProblemID: "p1", HintIndex: 0, HintText: "power rule"})
	if err != nil {
		t.Fatalf("append hint: %v", err)
	}

	stats, err := repo.AnswerStats(ctx, "u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Attempts != 2 || stats.Correct != 1 {
		t.Errorf("stats = %+v, want 2 attempts 1 correct", stats)
	}

	var hints int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM hint_events").Scan(&hints); err != nil {
		t.Fatalf("count hints: %v", err)
	}
	if hints != 1 {
		t.Errorf("hint rows = %d, want 1", hints)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku", Purpose: "draft",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 800, Success: true,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "draft", Success: false, ErrorMessage: "rate limited",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Provider != "openai" || got[0].Success || got[0].ErrorMessage != "rate limited" {
		t.Errorf("newest = %+v", got[0])
	}
	if got[1].InputTokens != 100 || !got[1].Success {
		t.Errorf("oldest = %+v", got[1])
	}
}

func TestCompletions(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	record := func(user, sub, prob string) bool {
		t.Helper()
		added, err := repo.RecordCompletion(ctx, CompletionData{UserID: user, SubtopicID: sub, ProblemID: prob})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		return added
	}

	if !record("u1", "calculus-integration", "integration-1") {
		t.Error("first completion should be new")
	}
	if record("u1", "calculus-integration", "integration-1") {
		t.Error("repeated completion should not be new")
	}
	record("u1", "calculus-integration", "integration-2")
	record("u1", "algebra-functions", "functions-1")
	record("u2", "algebra-functions", "functions-1")

	counts, err := repo.CompletedCounts(ctx, "u1")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts["calculus-integration"] != 2 || counts["algebra-functions"] != 1 {
		t.Errorf("counts = %v", counts)
	}

	done, err := repo.CompletedProblems(ctx, "u1", "calculus-integration")
	if err != nil {
		t.Fatalf("completed problems: %v", err)
	}
	if !done["integration-1"] || !done["integration-2"] || len(done) != 2 {
		t.Errorf("done = %v", done)
	}

	n, err := repo.Reset(ctx, "u1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n != 3 {
		t.Errorf("reset removed %d, want 3", n)
	}
	counts, err = repo.CompletedCounts(ctx, "u1")
	if err != nil {
		t.Fatalf("counts after reset: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("counts after reset = %v", counts)
	}
	other, err := repo.CompletedCounts(ctx, "u2")
	if err != nil {
		t.Fatalf("counts u2: %v", err)
	}
	if other["algebra-functions"] != 1 {
		t.Errorf("u2 progress was touched: %v", other)
	}
}
