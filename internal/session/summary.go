package session

import "time"

// Summary holds the outcome of a session.
type Summary struct {
	SessionID      string
	Problems       int
	Answered       int
	Correct        int
	Incorrect      int
	HintsUsed      int
	MarksEarned    int
	MarksAvailable int
	Duration       time.Duration

	// CorrectIDs lists the problems whose last check was correct, in
	// session order.
	CorrectIDs []string
}

// Accuracy returns correct answers over checked answers, or 0 if nothing
// was checked.
func (s Summary) Accuracy() float64 {
	checked := s.Correct + s.Incorrect
	if checked == 0 {
		return 0
	}
	return float64(s.Correct) / float64(checked)
}

// Summary builds the session outcome from the current state.
func (s *Session) Summary() Summary {
	sum := Summary{
		SessionID: s.id,
		Problems:  len(s.problems),
		Duration:  time.Since(s.startTime),
	}
	for _, p := range s.problems {
		sum.MarksAvailable += p.Marks
		sum.HintsUsed += s.revealed[p.ID]
		if _, ok := s.answers[p.ID]; ok {
			sum.Answered++
		}
		switch s.feedback[p.ID] {
		case FeedbackCorrect:
			sum.Correct++
			sum.MarksEarned += p.Marks
			sum.CorrectIDs = append(sum.CorrectIDs, p.ID)
		case FeedbackIncorrect:
			sum.Incorrect++
		}
	}
	return sum
}
