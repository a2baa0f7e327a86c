package authoring

import (
	"fmt"
	"strings"

	"github.com/mathforge/mathforge/internal/session"
)

// DuplicateValidator rejects a problem whose prompt matches one already in
// the bank or earlier in the same batch, ignoring case and spacing.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(p *session.Problem, in Input) *ValidationError {
	key := promptKey(p.Prompt)
	for _, e := range in.Existing {
		if promptKey(e.Prompt) == key {
			return &ValidationError{
				Validator: v.Name(),
				ProblemID: p.ID,
				Message:   fmt.Sprintf("prompt duplicates existing problem %s", e.ID),
			}
		}
	}
	return nil
}

func promptKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// buildExisting formats the most recent existing prompts for the model,
// or "None" if there are none.
func buildExisting(existing []session.Problem, max int) string {
	if len(existing) == 0 {
		return "None"
	}
	if max > 0 && len(existing) > max {
		existing = existing[len(existing)-max:]
	}

	var b strings.Builder
	for i, p := range existing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Prompt)
	}
	return strings.TrimRight(b.String(), "\n")
}
