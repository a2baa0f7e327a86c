package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type progressRepo struct {
	drv *entsql.Driver
}

func (r *progressRepo) RecordCompletion(ctx context.Context, data CompletionData) (bool, error) {
	q, args := builder().Insert(tableCompletions).
		Columns("user_id", "subtopic_id", "problem_id", "completed_at").
		Values(data.UserID, data.SubtopicID, data.ProblemID, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id", "subtopic_id", "problem_id"),
			entsql.DoNothing(),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return false, fmt.Errorf("save completion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save completion: %w", err)
	}
	return n > 0, nil
}

func (r *progressRepo) CompletedCounts(ctx context.Context, userID string) (map[string]int, error) {
	t := builder().Table(tableCompletions)
	sel := builder().Select(t.C("subtopic_id"), entsql.Count("*")).
		From(t).
		Where(entsql.EQ(t.C("user_id"), userID)).
		GroupBy(t.C("subtopic_id"))

	counts := make(map[string]int)
	err := query(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var sub string
		var n int
		if err := rows.Scan(&sub, &n); err != nil {
			return err
		}
		counts[sub] = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query completed counts: %w", err)
	}
	return counts, nil
}

func (r *progressRepo) CompletedProblems(ctx context.Context, userID, subtopicID string) (map[string]bool, error) {
	t := builder().Table(tableCompletions)
	sel := builder().Select(t.C("problem_id")).
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C("user_id"), userID),
			entsql.EQ(t.C("subtopic_id"), subtopicID),
		))

	done := make(map[string]bool)
	err := query(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		done[id] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query completed problems: %w", err)
	}
	return done, nil
}

func (r *progressRepo) Reset(ctx context.Context, userID string) (int, error) {
	q, args := builder().Delete(tableCompletions).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return 0, fmt.Errorf("reset progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset progress: %w", err)
	}
	return int(n), nil
}
