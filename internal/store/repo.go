package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session lifecycle actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

// SessionEventData captures a practice session lifecycle event. Counts are
// only meaningful on complete and abandon.
type SessionEventData struct {
	SessionID      string
	UserID         string
	SubtopicID     string
	Action         string
	Problems       int
	Answered       int
	Correct        int
	HintsUsed      int
	MarksEarned    int
	MarksAvailable int
	DurationSecs   int
}

// AnswerEventData records one answer check.
type AnswerEventData struct {
	SessionID     string
	UserID        string
	ProblemID     string
	LearnerAnswer string
	Correct       bool
}

// HintEventData records one hint reveal. HintIndex is zero-based.
type HintEventData struct {
	SessionID string
	UserID    string
	ProblemID string
	HintIndex int
	HintText  string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// SessionRecord is a stored session event.
type SessionRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// AnswerStats summarizes a user's answer checks.
type AnswerStats struct {
	Attempts int
	Correct  int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendHintEvent(ctx context.Context, data HintEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentSessions returns session events for a user, newest first.
	RecentSessions(ctx context.Context, userID string, opts QueryOpts) ([]SessionRecord, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// AnswerStats counts a user's checked answers.
	AnswerStats(ctx context.Context, userID string) (AnswerStats, error)
}

// CompletionData identifies a problem a user has answered correctly.
type CompletionData struct {
	UserID     string
	SubtopicID string
	ProblemID  string
}

// ProgressRepo stores which problems each user has completed.
type ProgressRepo interface {
	// RecordCompletion stores a completion. It reports false if the
	// problem was already completed.
	RecordCompletion(ctx context.Context, data CompletionData) (bool, error)

	// CompletedCounts returns the number of completed problems per subtopic.
	CompletedCounts(ctx context.Context, userID string) (map[string]int, error)

	// CompletedProblems returns the completed problem ids in a subtopic.
	CompletedProblems(ctx context.Context, userID, subtopicID string) (map[string]bool, error)

	// Reset deletes all of a user's completions and returns how many were
	// removed.
	Reset(ctx context.Context, userID string) (int, error)
}
