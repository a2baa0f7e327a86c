package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the SQL driver and the global sequence
// counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// appendEvent stamps an event with the next sequence number and the
// current time and inserts it.
func (r *eventRepo) appendEvent(ctx context.Context, table string, cols []string, vals []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seqNum, time.Now().UTC()}, vals...)...).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.appendEvent(ctx, tableSessionEvents,
		[]string{"session_id", "user_id", "subtopic_id", "action", "problems", "answered",
			"correct", "hints_used", "marks_earned", "marks_available", "duration_secs"},
		[]any{data.SessionID, data.UserID, data.SubtopicID, data.Action, data.Problems, data.Answered,
			data.Correct, data.HintsUsed, data.MarksEarned, data.MarksAvailable, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.appendEvent(ctx, tableAnswerEvents,
		[]string{"session_id", "user_id", "problem_id", "learner_answer", "correct"},
		[]any{data.SessionID, data.UserID, data.ProblemID, data.LearnerAnswer, data.Correct},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	err := r.appendEvent(ctx, tableHintEvents,
		[]string{"session_id", "user_id", "problem_id", "hint_index", "hint_text"},
		[]any{data.SessionID, data.UserID, data.ProblemID, data.HintIndex, data.HintText},
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, userID string, opts QueryOpts) ([]SessionRecord, error) {
	t := builder().Table(tableSessionEvents)
	sel := builder().Select(
		t.C("sequence"), t.C("timestamp"), t.C("session_id"), t.C("user_id"), t.C("subtopic_id"),
		t.C("action"), t.C("problems"), t.C("answered"), t.C("correct"), t.C("hints_used"),
		t.C("marks_earned"), t.C("marks_available"), t.C("duration_secs"),
	).From(t)
	applyOpts(sel, t, opts, entsql.EQ(t.C("user_id"), userID))

	var out []SessionRecord
	err := query(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var rec SessionRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.UserID, &rec.SubtopicID,
			&rec.Action, &rec.Problems, &rec.Answered, &rec.Correct, &rec.HintsUsed,
			&rec.MarksEarned, &rec.MarksAvailable, &rec.DurationSecs); err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return out, nil
}

func (r *eventRepo) AnswerStats(ctx context.Context, userID string) (AnswerStats, error) {
	t := builder().Table(tableAnswerEvents)
	sel := builder().Select(entsql.Count("*"), t.C("correct")).
		From(t).
		Where(entsql.EQ(t.C("user_id"), userID)).
		GroupBy(t.C("correct"))

	var stats AnswerStats
	err := query(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var n int
		var correct bool
		if err := rows.Scan(&n, &correct); err != nil {
			return err
		}
		stats.Attempts += n
		if correct {
			stats.Correct += n
		}
		return nil
	})
	if err != nil {
		return AnswerStats{}, fmt.Errorf("query answer stats: %w", err)
	}
	return stats, nil
}

// applyOpts adds QueryOpts filters, newest-first ordering and the limit to
// sel. Extra predicates are ANDed in.
func applyOpts(sel *entsql.Selector, t *entsql.SelectTable, opts QueryOpts, preds ...*entsql.Predicate) {
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
