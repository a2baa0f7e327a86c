package authoring

import (
	"fmt"

	"github.com/mathforge/mathforge/internal/answer"
	"github.com/mathforge/mathforge/internal/session"
)

const (
	maxPromptLen   = 600
	maxSolutionLen = 200
	maxMarks       = 12
	maxHints       = 3
)

// StructuralValidator checks required fields, length limits and ranges.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *session.Problem, _ Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), ProblemID: p.ID, Message: fmt.Sprintf(format, args...)}
	}

	switch {
	case p.Prompt == "":
		return fail("prompt is empty")
	case len(p.Prompt) > maxPromptLen:
		return fail("prompt exceeds %d characters", maxPromptLen)
	case answer.Normalize(p.Solution) == "":
		return fail("solution is empty")
	case len(p.Solution) > maxSolutionLen:
		return fail("solution exceeds %d characters", maxSolutionLen)
	case !p.Difficulty.Valid():
		return fail("difficulty %q must be easy, medium or hard", p.Difficulty)
	case p.Marks < 1 || p.Marks > maxMarks:
		return fail("marks must be between 1 and %d", maxMarks)
	case len(p.Hints) > maxHints:
		return fail("at most %d hints allowed", maxHints)
	}
	for i, h := range p.Hints {
		if h == "" {
			return fail("hint %d is empty", i+1)
		}
	}
	return nil
}
