package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mathforge/mathforge/internal/answer"
)

// Phase represents where a session is in its lifecycle.
type Phase int

const (
	PhaseInProgress Phase = iota // Working through problems
	PhaseComplete                // Advanced past the last problem
)

// Identity is the capability a caller must hold to start a session.
type Identity interface {
	SignedIn() bool
}

// Option configures a Session.
type Option func(*Session)

// WithChecker sets the answer comparator. Defaults to answer.Default.
func WithChecker(c answer.Checker) Option {
	return func(s *Session) {
		if c != nil {
			s.checker = c
		}
	}
}

// WithOnComplete registers a callback fired exactly once when the learner
// advances past the last problem.
func WithOnComplete(fn func(Summary)) Option {
	return func(s *Session) { s.onComplete = fn }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session walks a learner through an ordered problem set. It holds the
// answer, revealed hint count and feedback of every problem.
//
// A Session is not safe for concurrent use.
type Session struct {
	id         string
	problems   []Problem
	index      int
	phase      Phase
	answers    map[string]string
	revealed   map[string]int
	feedback   map[string]Feedback
	checker    answer.Checker
	onComplete func(Summary)
	startTime  time.Time
}

// Start opens a session for a signed-in learner.
func Start(identity Identity, problems []Problem, opts ...Option) (*Session, error) {
	if identity == nil || !identity.SignedIn() {
		return nil, ErrNotSignedIn
	}
	return New(problems, opts...)
}

// New creates a session positioned on the first problem with no answers,
// no revealed hints and no feedback.
func New(problems []Problem, opts ...Option) (*Session, error) {
	if err := ValidateProblems(problems); err != nil {
		return nil, err
	}

	s := &Session{
		id:        uuid.New().String(),
		problems:  cloneProblems(problems),
		answers:   make(map[string]string),
		revealed:  make(map[string]int),
		feedback:  make(map[string]Feedback),
		checker:   answer.Default,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// StartTime returns when the session was created.
func (s *Session) StartTime() time.Time { return s.startTime }

// Len returns the number of problems in the session.
func (s *Session) Len() int { return len(s.problems) }

// Index returns the position of the current problem.
func (s *Session) Index() int { return s.index }

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Complete reports whether the learner has advanced past the last problem.
func (s *Session) Complete() bool { return s.phase == PhaseComplete }

// Current returns the problem being worked on. After completion this is the
// last problem.
func (s *Session) Current() Problem { return s.problems[s.index] }

// Problems returns a copy of the problem list.
func (s *Session) Problems() []Problem { return cloneProblems(s.problems) }

// RecordAnswer sets the current problem's answer and clears its feedback.
func (s *Session) RecordAnswer(text string) {
	id := s.Current().ID
	s.answers[id] = text
	s.feedback[id] = FeedbackNone
}

// Answer returns the recorded answer for a problem and whether one exists.
func (s *Session) Answer(id string) (string, bool) {
	a, ok := s.answers[id]
	return a, ok
}

// RevealNextHint reveals one more hint of the current problem. It returns
// false without changing anything when every hint is already visible.
func (s *Session) RevealNextHint() bool {
	p := s.Current()
	if s.revealed[p.ID] >= len(p.Hints) {
		return false
	}
	s.revealed[p.ID]++
	return true
}

// Revealed returns how many hints of a problem are visible.
func (s *Session) Revealed(id string) int { return s.revealed[id] }

// VisibleHints returns the revealed hints of the current problem, in order.
func (s *Session) VisibleHints() []string {
	p := s.Current()
	return append([]string(nil), p.Hints[:s.revealed[p.ID]]...)
}

// CheckAnswer compares the current answer with the solution and records
// the verdict. An unanswered problem is incorrect.
func (s *Session) CheckAnswer() Feedback {
	p := s.Current()
	fb := FeedbackIncorrect
	if a, ok := s.answers[p.ID]; ok && s.checker.Check(a, p.Solution) {
		fb = FeedbackCorrect
	}
	s.feedback[p.ID] = fb
	return fb
}

// Feedback returns the verdict currently shown for a problem.
func (s *Session) Feedback(id string) Feedback { return s.feedback[id] }

// Advance moves to the next problem. On the last problem it completes the
// session and fires the completion callback. Once complete it does nothing.
func (s *Session) Advance() {
	if s.phase == PhaseComplete {
		return
	}
	if s.index < len(s.problems)-1 {
		s.index++
		return
	}
	s.phase = PhaseComplete
	if s.onComplete != nil {
		s.onComplete(s.Summary())
	}
}

// Retreat moves to the previous problem. It does nothing on the first
// problem or once the session is complete.
func (s *Session) Retreat() {
	if s.phase == PhaseComplete || s.index == 0 {
		return
	}
	s.index--
}

// Position returns the "problem i of n" progress as a percentage.
func (s *Session) Position() float64 {
	return float64(s.index+1) / float64(len(s.problems)) * 100
}

// PositionLabel renders the position as shown in the session header.
func (s *Session) PositionLabel() string {
	return fmt.Sprintf("Problem %d of %d", s.index+1, len(s.problems))
}
