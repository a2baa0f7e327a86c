package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table layouts follow ent's migrate conventions: an auto-increment id, then
// the shared event columns (sequence, timestamp), then the event fields.

const (
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
	tableHintEvents    = "hint_events"
	tableLLMEvents     = "llm_request_events"
	tableCompletions   = "completions"
)

func eventColumns(cols ...*schema.Column) []*schema.Column {
	base := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(base, cols...)
}

var (
	sessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "user_id", Type: field.TypeString},
		&schema.Column{Name: "subtopic_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "problems", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "answered", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "hints_used", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "marks_earned", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "marks_available", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)
	sessionEventsTable = &schema.Table{
		Name:       tableSessionEvents,
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_timestamp", Columns: []*schema.Column{sessionEventsColumns[2]}},
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventsColumns[3]}},
			{Name: "sessionevent_user_id", Columns: []*schema.Column{sessionEventsColumns[4]}},
		},
	}

	answerEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "user_id", Type: field.TypeString},
		&schema.Column{Name: "problem_id", Type: field.TypeString},
		&schema.Column{Name: "learner_answer", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "correct", Type: field.TypeBool},
	)
	answerEventsTable = &schema.Table{
		Name:       tableAnswerEvents,
		Columns:    answerEventsColumns,
		PrimaryKey: []*schema.Column{answerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{answerEventsColumns[3]}},
			{Name: "answerevent_user_id", Columns: []*schema.Column{answerEventsColumns[4]}},
		},
	}

	hintEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "user_id", Type: field.TypeString},
		&schema.Column{Name: "problem_id", Type: field.TypeString},
		&schema.Column{Name: "hint_index", Type: field.TypeInt},
		&schema.Column{Name: "hint_text", Type: field.TypeString, Size: 2147483647},
	)
	hintEventsTable = &schema.Table{
		Name:       tableHintEvents,
		Columns:    hintEventsColumns,
		PrimaryKey: []*schema.Column{hintEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "hintevent_session_id", Columns: []*schema.Column{hintEventsColumns[3]}},
		},
	}

	llmEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmEventsTable = &schema.Table{
		Name:       tableLLMEvents,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
		},
	}

	completionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "subtopic_id", Type: field.TypeString},
		{Name: "problem_id", Type: field.TypeString},
		{Name: "completed_at", Type: field.TypeTime},
	}
	completionsTable = &schema.Table{
		Name:       tableCompletions,
		Columns:    completionsColumns,
		PrimaryKey: []*schema.Column{completionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "completion_user_id_subtopic_id_problem_id", Unique: true, Columns: []*schema.Column{completionsColumns[1], completionsColumns[2], completionsColumns[3]}},
		},
	}

	tables = []*schema.Table{
		sessionEventsTable,
		answerEventsTable,
		hintEventsTable,
		llmEventsTable,
		completionsTable,
	}
)
