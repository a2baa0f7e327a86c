package session

import (
	"errors"
	"testing"

	"github.com/mathforge/mathforge/internal/answer"
)

func derivativeProblem() Problem {
	return Problem{
		ID:         "prob-1",
		Prompt:     "Find the derivative of f(x) = 3x² + 2x - 5",
		Difficulty: DifficultyEasy,
		Marks:      3,
		Hints: []string{
			"Remember the power rule for differentiation.",
			"For a term ax^n, the derivative is nax^(n-1).",
		},
		Solution: "f'(x) = 6x + 2",
	}
}

func threeProblems() []Problem {
	return []Problem{
		{ID: "A", Prompt: "1+1", Difficulty: DifficultyEasy, Marks: 1, Solution: "2"},
		{ID: "B", Prompt: "2+2", Difficulty: DifficultyMedium, Marks: 2, Hints: []string{"double 2"}, Solution: "4"},
		{ID: "C", Prompt: "3+3", Difficulty: DifficultyHard, Marks: 3, Solution: "6"},
	}
}

type fakeIdentity bool

func (f fakeIdentity) SignedIn() bool { return bool(f) }

func newSession(t *testing.T, problems []Problem, opts ...Option) *Session {
	t.Helper()
	s, err := New(problems, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_FreshState(t *testing.T) {
	s := newSession(t, threeProblems())

	if s.Index() != 0 {
		t.Errorf("Index = %d, want 0", s.Index())
	}
	if s.Complete() {
		t.Error("fresh session should not be complete")
	}
	for _, p := range threeProblems() {
		if s.Feedback(p.ID) != FeedbackNone {
			t.Errorf("Feedback(%s) = %v, want none", p.ID, s.Feedback(p.ID))
		}
		if s.Revealed(p.ID) != 0 {
			t.Errorf("Revealed(%s) = %d, want 0", p.ID, s.Revealed(p.ID))
		}
		if _, ok := s.Answer(p.ID); ok {
			t.Errorf("Answer(%s) present on a fresh session", p.ID)
		}
	}
	if s.ID() == "" {
		t.Error("expected a generated session id")
	}
}

func TestNew_InvalidArgument(t *testing.T) {
	tests := []struct {
		name     string
		problems []Problem
	}{
		{"empty", nil},
		{"empty id", []Problem{{Difficulty: DifficultyEasy, Marks: 1}}},
		{"duplicate id", []Problem{
			{ID: "a", Difficulty: DifficultyEasy, Marks: 1},
			{ID: "a", Difficulty: DifficultyEasy, Marks: 1},
		}},
		{"zero marks", []Problem{{ID: "a", Difficulty: DifficultyEasy}}},
		{"bad difficulty", []Problem{{ID: "a", Difficulty: "trivial", Marks: 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.problems)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("New err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestStart_RequiresSignedIn(t *testing.T) {
	if _, err := Start(nil, threeProblems()); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("nil identity: err = %v, want ErrNotSignedIn", err)
	}
	if _, err := Start(fakeIdentity(false), threeProblems()); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("anonymous: err = %v, want ErrNotSignedIn", err)
	}
	s, err := Start(fakeIdentity(true), threeProblems())
	if err != nil {
		t.Fatalf("signed in: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestAdvance_CompletesExactlyOnce(t *testing.T) {
	calls := 0
	s := newSession(t, threeProblems(), WithOnComplete(func(Summary) { calls++ }))

	s.Advance()
	s.Advance()
	if s.Index() != 2 || s.Complete() {
		t.Fatalf("after two advances: index=%d complete=%v", s.Index(), s.Complete())
	}
	if calls != 0 {
		t.Fatalf("callback fired early: %d", calls)
	}

	s.Advance()
	if !s.Complete() {
		t.Fatal("expected complete after advancing past last problem")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	s.Advance()
	s.Advance()
	if calls != 1 {
		t.Errorf("callback fired again: calls = %d", calls)
	}
	if s.Index() != 2 {
		t.Errorf("Index = %d, want 2", s.Index())
	}
}

func TestRetreat_Boundaries(t *testing.T) {
	s := newSession(t, threeProblems())

	s.Retreat()
	if s.Index() != 0 {
		t.Errorf("Retreat at 0: index = %d", s.Index())
	}

	s.Advance()
	s.Advance()
	s.Retreat()
	if s.Index() != 1 {
		t.Errorf("Index = %d, want 1", s.Index())
	}

	s.Advance()
	s.Advance()
	s.Retreat()
	if s.Index() != 2 || !s.Complete() {
		t.Errorf("Retreat after complete changed state: index=%d complete=%v", s.Index(), s.Complete())
	}
}

func TestIndexAlwaysInRange(t *testing.T) {
	s := newSession(t, threeProblems())
	moves := []func(){s.Advance, s.Retreat, s.Retreat, s.Advance, s.Advance, s.Advance, s.Advance, s.Retreat}
	for i, m := range moves {
		m()
		if s.Index() < 0 || s.Index() >= s.Len() {
			t.Fatalf("move %d: index %d out of range", i, s.Index())
		}
	}
}

func TestRevealNextHint_Capped(t *testing.T) {
	s := newSession(t, []Problem{derivativeProblem()})

	revealedCount := 0
	for i := 0; i < 5; i++ {
		if s.RevealNextHint() {
			revealedCount++
		}
	}
	if revealedCount != 2 {
		t.Errorf("revealed %d hints, want 2", revealedCount)
	}
	if got := s.Revealed("prob-1"); got != 2 {
		t.Errorf("Revealed = %d, want 2", got)
	}
	hints := s.VisibleHints()
	if len(hints) != 2 || hints[0] != "Remember the power rule for differentiation." {
		t.Errorf("VisibleHints = %v", hints)
	}
}

func TestRevealNextHint_NoHints(t *testing.T) {
	s := newSession(t, threeProblems())
	if s.RevealNextHint() {
		t.Error("expected no-op on a problem without hints")
	}
	if len(s.VisibleHints()) != 0 {
		t.Error("expected no visible hints")
	}
}

func TestHintsPersistAcrossNavigation(t *testing.T) {
	s := newSession(t, threeProblems())
	s.Advance()
	s.RevealNextHint()
	s.Advance()
	s.Retreat()

	if s.Revealed("B") != 1 {
		t.Errorf("Revealed(B) = %d, want 1", s.Revealed("B"))
	}
	if len(s.VisibleHints()) != 1 {
		t.Errorf("VisibleHints = %v", s.VisibleHints())
	}
}

func TestRecordAnswer_ResetsFeedback(t *testing.T) {
	s := newSession(t, []Problem{derivativeProblem()})

	s.RecordAnswer("6x + 2")
	if fb := s.CheckAnswer(); fb != FeedbackCorrect {
		t.Fatalf("CheckAnswer = %v, want correct", fb)
	}

	s.RecordAnswer("6x")
	if fb := s.Feedback("prob-1"); fb != FeedbackNone {
		t.Errorf("Feedback after edit = %v, want none", fb)
	}
	if fb := s.CheckAnswer(); fb != FeedbackIncorrect {
		t.Errorf("CheckAnswer = %v, want incorrect", fb)
	}
}

func TestCheckAnswer_Deterministic(t *testing.T) {
	s := newSession(t, []Problem{derivativeProblem()})
	s.RecordAnswer("f'(x) = 6x + 2")

	for i := 0; i < 20; i++ {
		if fb := s.CheckAnswer(); fb != FeedbackCorrect {
			t.Fatalf("check %d = %v, want correct", i, fb)
		}
	}
}

func TestCheckAnswer_Unanswered(t *testing.T) {
	s := newSession(t, threeProblems())
	if fb := s.CheckAnswer(); fb != FeedbackIncorrect {
		t.Errorf("CheckAnswer with no answer = %v, want incorrect", fb)
	}
}

func TestRecordAnswer_EmptyIsPresent(t *testing.T) {
	s := newSession(t, threeProblems())
	s.RecordAnswer("")

	a, ok := s.Answer("A")
	if !ok || a != "" {
		t.Errorf("Answer = %q, %v; want empty, present", a, ok)
	}
	if fb := s.CheckAnswer(); fb != FeedbackIncorrect {
		t.Errorf("empty answer checked as %v", fb)
	}
}

func TestAnswersPersistAcrossNavigation(t *testing.T) {
	s := newSession(t, threeProblems())
	s.RecordAnswer("2")
	s.CheckAnswer()
	s.Advance()
	s.RecordAnswer("5")
	s.Retreat()

	if a, _ := s.Answer("A"); a != "2" {
		t.Errorf("Answer(A) = %q, want 2", a)
	}
	if s.Feedback("A") != FeedbackCorrect {
		t.Errorf("Feedback(A) = %v, want correct", s.Feedback("A"))
	}
	if a, _ := s.Answer("B"); a != "5" {
		t.Errorf("Answer(B) = %q, want 5", a)
	}
}

func TestWithChecker(t *testing.T) {
	always := answer.CheckerFunc(func(string, string) bool { return true })
	s := newSession(t, threeProblems(), WithChecker(always))
	s.RecordAnswer("anything")
	if fb := s.CheckAnswer(); fb != FeedbackCorrect {
		t.Errorf("CheckAnswer = %v, want correct", fb)
	}
}

func TestActionsAfterComplete(t *testing.T) {
	s := newSession(t, threeProblems())
	s.Advance()
	s.Advance()
	s.Advance()

	s.RecordAnswer("6")
	if fb := s.CheckAnswer(); fb != FeedbackCorrect {
		t.Errorf("CheckAnswer on last problem after complete = %v", fb)
	}
}

func TestPosition(t *testing.T) {
	s := newSession(t, threeProblems())
	if got := s.PositionLabel(); got != "Problem 1 of 3" {
		t.Errorf("PositionLabel = %q", got)
	}
	s.Advance()
	want := 2.0 / 3.0 * 100
	if got := s.Position(); got != want {
		t.Errorf("Position = %v, want %v", got, want)
	}
}

func TestProblemsAreCopied(t *testing.T) {
	problems := []Problem{derivativeProblem()}
	s := newSession(t, problems)
	problems[0].Hints[0] = "mutated"

	s.RevealNextHint()
	if got := s.VisibleHints()[0]; got == "mutated" {
		t.Error("session hints changed after caller mutated input")
	}
}

func TestSummary(t *testing.T) {
	var got Summary
	s := newSession(t, threeProblems(), WithID("sess-1"), WithOnComplete(func(sum Summary) { got = sum }))

	s.RecordAnswer("2")
	s.CheckAnswer()
	s.Advance()
	s.RevealNextHint()
	s.RecordAnswer("5")
	s.CheckAnswer()
	s.Advance()
	s.Advance()

	if got.SessionID != "sess-1" {
		t.Errorf("SessionID = %q", got.SessionID)
	}
	if got.Problems != 3 || got.Answered != 2 || got.Correct != 1 || got.Incorrect != 1 {
		t.Errorf("counts = %+v", got)
	}
	if got.HintsUsed != 1 {
		t.Errorf("HintsUsed = %d, want 1", got.HintsUsed)
	}
	if got.MarksEarned != 1 || got.MarksAvailable != 6 {
		t.Errorf("marks = %d/%d, want 1/6", got.MarksEarned, got.MarksAvailable)
	}
	if len(got.CorrectIDs) != 1 || got.CorrectIDs[0] != "A" {
		t.Errorf("CorrectIDs = %v", got.CorrectIDs)
	}
	if got.Accuracy() != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", got.Accuracy())
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, err := ParseDifficulty("hard"); err != nil || d != DifficultyHard {
		t.Errorf("ParseDifficulty(hard) = %v, %v", d, err)
	}
	if _, err := ParseDifficulty("extreme"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseDifficulty(extreme) err = %v", err)
	}
}
