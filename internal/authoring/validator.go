package authoring

import (
	"fmt"

	"github.com/mathforge/mathforge/internal/session"
)

// Validator checks a drafted problem before it is accepted.
type Validator interface {
	// Name identifies the validator in errors and logs, e.g. "structural".
	Name() string

	// Validate returns nil if the problem passes.
	Validate(p *session.Problem, in Input) *ValidationError
}

// ValidationError describes why a drafted problem was rejected.
type ValidationError struct {
	Validator string
	ProblemID string
	Message   string
}

func (e *ValidationError) Error() string {
	if e.ProblemID == "" {
		return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
	}
	return fmt.Sprintf("validator %q: problem %s: %s", e.Validator, e.ProblemID, e.Message)
}
