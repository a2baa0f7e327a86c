// Package authoring drafts new practice problems with a language model.
// Drafts are validated and written as bank files for review; they never
// reach a learner until loaded through the catalog.
package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mathforge/mathforge/internal/catalog"
	"github.com/mathforge/mathforge/internal/llm"
	"github.com/mathforge/mathforge/internal/logging"
	"github.com/mathforge/mathforge/internal/progress"
	"github.com/mathforge/mathforge/internal/session"
)

// ErrNoValidProblems is returned when every drafted problem was rejected.
var ErrNoValidProblems = errors.New("no drafted problem passed validation")

// Input is the context a batch is drafted and validated against.
type Input struct {
	Subtopic   progress.TopicNode
	TopicTitle string

	// Existing holds the subtopic's current problems plus those accepted
	// earlier in the same batch.
	Existing []session.Problem
}

// Drafter produces new problems for a subtopic.
type Drafter struct {
	provider llm.Provider
	catalog  *catalog.Catalog
	config   Config
	logger   *zap.Logger
}

// New creates a Drafter. A nil logger disables logging.
func New(provider llm.Provider, cat *catalog.Catalog, cfg Config, logger *zap.Logger) *Drafter {
	return &Drafter{provider: provider, catalog: cat, config: cfg, logger: logging.OrNop(logger)}
}

type batchOutput struct {
	Problems []struct {
		Prompt     string   `json:"prompt"`
		Difficulty string   `json:"difficulty"`
		Marks      int      `json:"marks"`
		Hints      []string `json:"hints"`
		Solution   string   `json:"solution"`
	} `json:"problems"`
}

// Draft asks the model for n problems on a subtopic and returns those that
// pass every validator. Rejected problems are logged. If none pass, the
// returned error wraps ErrNoValidProblems and each rejection.
func (d *Drafter) Draft(ctx context.Context, subtopicID string, n int) ([]session.Problem, error) {
	if n < 1 {
		return nil, fmt.Errorf("draft count must be positive, got %d", n)
	}
	if d.config.MaxBatch > 0 && n > d.config.MaxBatch {
		return nil, fmt.Errorf("draft count %d exceeds batch limit %d", n, d.config.MaxBatch)
	}

	existing, err := d.catalog.Problems(subtopicID)
	if err != nil {
		return nil, err
	}
	leaf, _ := d.catalog.Topic(subtopicID)
	in := Input{Subtopic: leaf, Existing: existing}
	if parent, ok := d.catalog.Topic(d.catalog.Parent(subtopicID)); ok {
		in.TopicTitle = parent.Title
	}

	ctx = llm.WithPurpose(ctx, "problem-draft")
	resp, err := d.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in, n, d.config)}},
		Schema:      ProblemBatchSchema,
		MaxTokens:   d.config.MaxTokens,
		Temperature: d.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	var accepted []session.Problem
	var rejected []error
	for _, r := range raw.Problems {
		p := session.Problem{
			ID:         fmt.Sprintf("%s-%s", subtopicID, uuid.NewString()[:8]),
			Prompt:     r.Prompt,
			Difficulty: session.Difficulty(r.Difficulty),
			Marks:      r.Marks,
			Hints:      r.Hints,
			Solution:   r.Solution,
		}
		if verr := d.validate(&p, in); verr != nil {
			d.logger.Info("drafted problem rejected",
				zap.String("subtopic", subtopicID),
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message))
			rejected = append(rejected, verr)
			continue
		}
		accepted = append(accepted, p)
		in.Existing = append(in.Existing, p)
	}

	d.logger.Info("draft complete",
		zap.String("subtopic", subtopicID),
		zap.String("model", resp.Model),
		zap.Int("requested", n),
		zap.Int("accepted", len(accepted)),
		zap.Int("rejected", len(rejected)))

	if len(accepted) == 0 {
		return nil, errors.Join(append([]error{ErrNoValidProblems}, rejected...)...)
	}
	if len(accepted) > n {
		accepted = accepted[:n]
	}
	return accepted, nil
}

func (d *Drafter) validate(p *session.Problem, in Input) *ValidationError {
	for _, v := range d.config.Validators {
		if verr := v.Validate(p, in); verr != nil {
			return verr
		}
	}
	return nil
}
