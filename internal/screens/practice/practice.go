// Package practice runs a problem session for one subtopic.
package practice

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/mathforge/mathforge/internal/logging"
	"github.com/mathforge/mathforge/internal/progress"
	"github.com/mathforge/mathforge/internal/router"
	"github.com/mathforge/mathforge/internal/screen"
	"github.com/mathforge/mathforge/internal/screens/summary"
	sess "github.com/mathforge/mathforge/internal/session"
	"github.com/mathforge/mathforge/internal/store"
	"github.com/mathforge/mathforge/internal/ui/components"
	"github.com/mathforge/mathforge/internal/ui/layout"
)

const persistTimeout = 5 * time.Second

// PracticeScreen implements screen.Screen for an active session.
type PracticeScreen struct {
	deps        screen.Deps
	subtopic    progress.TopicNode
	session     *sess.Session
	input       components.TextInput
	quitConfirm bool
	result      *result
	errMsg      string
}

// result is filled in by the completion callback.
type result struct {
	summary   sess.Summary
	newlyDone int
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a practice screen for a subtopic. Failures such as an
// anonymous identity or an unknown subtopic are shown on the screen.
func New(deps screen.Deps, subtopicID string) *PracticeScreen {
	deps.Logger = logging.OrNop(deps.Logger)
	s := &PracticeScreen{
		deps:  deps,
		input: components.NewTextInput("Type your answer...", 120),
	}

	problems, err := deps.Catalog.Problems(subtopicID)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.subtopic, _ = deps.Catalog.Topic(subtopicID)

	s.session, err = sess.Start(deps.Identity, problems, sess.WithOnComplete(s.complete))
	switch {
	case errors.Is(err, sess.ErrNotSignedIn):
		s.errMsg = "Sign in to practise: set MATHFORGE_AUTH_TOKEN to your MathForge token."
	case err != nil:
		s.errMsg = err.Error()
	}
	return s
}

// Session exposes the underlying session.
func (s *PracticeScreen) Session() *sess.Session { return s.session }

func (s *PracticeScreen) Init() tea.Cmd {
	if s.session == nil {
		return nil
	}
	s.persist("session start", func(ctx context.Context) error {
		return s.deps.Events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:  s.session.ID(),
			UserID:     s.deps.Identity.UserID,
			SubtopicID: s.subtopic.ID,
			Action:     store.ActionStart,
			Problems:   s.session.Len(),
		})
	})
	return s.input.Init()
}

func (s *PracticeScreen) Title() string {
	if s.subtopic.Title == "" {
		return "Practice"
	}
	return s.subtopic.Title
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.session == nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	next := "Next"
	if s.session.Index() == s.session.Len()-1 {
		next = "Complete"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Ctrl+G", Description: "Hint"},
		{Key: "Ctrl+P", Description: "Previous"},
		{Key: "Ctrl+N", Description: next},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return s.handleKey(kmsg)
	}
	if s.session != nil && !s.quitConfirm {
		var cmd tea.Cmd
		s.input, _, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.session == nil {
		return s, router.PopCmd
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.abandon()
			return s, router.PopCmd
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		s.check()
		return s, nil
	case "ctrl+g":
		s.revealHint()
		return s, nil
	case "ctrl+p", "pgup":
		s.session.Retreat()
		s.syncInput()
		return s, nil
	case "ctrl+n", "pgdown":
		return s, s.advance()
	}

	var changed bool
	var cmd tea.Cmd
	s.input, changed, cmd = s.input.Update(msg)
	if changed {
		s.session.RecordAnswer(s.input.Value())
		s.input.Unmark()
	}
	return s, cmd
}

func (s *PracticeScreen) check() {
	p := s.session.Current()
	fb := s.session.CheckAnswer()
	s.input.Mark(fb == sess.FeedbackCorrect)

	learner, _ := s.session.Answer(p.ID)
	s.persist("answer", func(ctx context.Context) error {
		return s.deps.Events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     s.session.ID(),
			UserID:        s.deps.Identity.UserID,
			ProblemID:     p.ID,
			LearnerAnswer: learner,
			Correct:       fb == sess.FeedbackCorrect,
		})
	})
}

func (s *PracticeScreen) revealHint() {
	if !s.session.RevealNextHint() {
		return
	}
	p := s.session.Current()
	idx := s.session.Revealed(p.ID) - 1
	s.persist("hint", func(ctx context.Context) error {
		return s.deps.Events.AppendHintEvent(ctx, store.HintEventData{
			SessionID: s.session.ID(),
			UserID:    s.deps.Identity.UserID,
			ProblemID: p.ID,
			HintIndex: idx,
			HintText:  p.Hints[idx],
		})
	})
}

// advance moves on, or swaps to the summary once the session completes.
func (s *PracticeScreen) advance() tea.Cmd {
	s.session.Advance()
	if !s.session.Complete() || s.result == nil {
		s.syncInput()
		return nil
	}

	deps, subtopicID := s.deps, s.subtopic.ID
	sum := summary.New(summary.Params{
		Title:          s.subtopic.Title,
		Summary:        s.result.summary,
		NewlyCompleted: s.result.newlyDone,
		Again:          func() screen.Screen { return New(deps, subtopicID) },
	})
	return router.ReplaceCmd(sum)
}

// complete records correct problems as completions and closes the session
// in the event log.
func (s *PracticeScreen) complete(sum sess.Summary) {
	res := &result{summary: sum}
	userID := s.deps.Identity.UserID

	for _, id := range sum.CorrectIDs {
		s.persist("completion", func(ctx context.Context) error {
			added, err := s.deps.Progress.RecordCompletion(ctx, store.CompletionData{
				UserID:     userID,
				SubtopicID: s.subtopic.ID,
				ProblemID:  id,
			})
			if added {
				res.newlyDone++
			}
			return err
		})
	}
	s.appendOutcome(store.ActionComplete, sum)
	s.result = res

	s.deps.Logger.Info("session complete",
		zap.String("session_id", sum.SessionID),
		zap.String("subtopic", s.subtopic.ID),
		zap.Int("correct", sum.Correct),
		zap.Int("problems", sum.Problems),
		zap.Int("newly_completed", res.newlyDone))
}

func (s *PracticeScreen) abandon() {
	sum := s.session.Summary()
	s.appendOutcome(store.ActionAbandon, sum)
	s.deps.Logger.Info("session abandoned",
		zap.String("session_id", sum.SessionID),
		zap.String("subtopic", s.subtopic.ID),
		zap.Int("answered", sum.Answered))
}

func (s *PracticeScreen) appendOutcome(action string, sum sess.Summary) {
	s.persist("session "+action, func(ctx context.Context) error {
		return s.deps.Events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      sum.SessionID,
			UserID:         s.deps.Identity.UserID,
			SubtopicID:     s.subtopic.ID,
			Action:         action,
			Problems:       sum.Problems,
			Answered:       sum.Answered,
			Correct:        sum.Correct,
			HintsUsed:      sum.HintsUsed,
			MarksEarned:    sum.MarksEarned,
			MarksAvailable: sum.MarksAvailable,
			DurationSecs:   int(sum.Duration.Seconds()),
		})
	})
}

// persist runs a store write, logging instead of interrupting practice when
// it fails.
func (s *PracticeScreen) persist(what string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		s.deps.Logger.Warn("persist "+what, zap.Error(err))
	}
}

// syncInput loads the current problem's answer and verdict into the input.
func (s *PracticeScreen) syncInput() {
	id := s.session.Current().ID
	answer, _ := s.session.Answer(id)
	s.input.SetValue(answer)
	switch s.session.Feedback(id) {
	case sess.FeedbackCorrect:
		s.input.Mark(true)
	case sess.FeedbackIncorrect:
		s.input.Mark(false)
	default:
		s.input.Unmark()
	}
}
