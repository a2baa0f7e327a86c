package session

import "fmt"

// Difficulty is the author-assigned difficulty of a problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty converts a string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidArgument, s)
	}
	return d, nil
}

// Problem is a single practice question. Problems are immutable for the
// lifetime of a session.
type Problem struct {
	ID         string
	Prompt     string
	Difficulty Difficulty
	Marks      int
	Hints      []string
	Solution   string
}

// Feedback is the verdict shown for a problem's current answer.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	default:
		return "none"
	}
}

// ValidateProblems checks a problem list for use in a session.
func ValidateProblems(problems []Problem) error {
	if len(problems) == 0 {
		return fmt.Errorf("%w: problem list is empty", ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(problems))
	for i, p := range problems {
		if p.ID == "" {
			return fmt.Errorf("%w: problem %d has an empty id", ErrInvalidArgument, i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate problem id %q", ErrInvalidArgument, p.ID)
		}
		seen[p.ID] = true
		if p.Marks <= 0 {
			return fmt.Errorf("%w: problem %q has non-positive marks %d", ErrInvalidArgument, p.ID, p.Marks)
		}
		if !p.Difficulty.Valid() {
			return fmt.Errorf("%w: problem %q has unknown difficulty %q", ErrInvalidArgument, p.ID, p.Difficulty)
		}
	}
	return nil
}

func cloneProblems(problems []Problem) []Problem {
	out := make([]Problem, len(problems))
	for i, p := range problems {
		p.Hints = append([]string(nil), p.Hints...)
		out[i] = p
	}
	return out
}
