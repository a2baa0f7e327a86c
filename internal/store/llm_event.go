package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.appendEvent(ctx, tableLLMEvents,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error) {
	t := builder().Table(tableLLMEvents)
	sel := builder().Select(
		t.C("sequence"), t.C("timestamp"), t.C("provider"), t.C("model"), t.C("purpose"),
		t.C("input_tokens"), t.C("output_tokens"), t.C("latency_ms"), t.C("success"), t.C("error_message"),
	).From(t)
	applyOpts(sel, t, opts)

	var out []LLMRequestRecord
	err := query(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var rec LLMRequestRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage); err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}
