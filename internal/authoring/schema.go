package authoring

import "github.com/mathforge/mathforge/internal/llm"

// ProblemBatchSchema is the response shape requested from the model.
var ProblemBatchSchema = &llm.Schema{
	Name:        "problem-batch",
	Description: "A batch of A-Level practice problems with hints and a final answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner, in plain text with ^ for powers",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"marks": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"description": "Exam marks the question is worth",
						},
						"hints": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Up to three hints, each revealing a little more of the method",
						},
						"solution": map[string]any{
							"type":        "string",
							"description": "The final answer only, in its simplest form",
						},
					},
					"required":             []any{"prompt", "difficulty", "marks", "hints", "solution"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"problems"},
		"additionalProperties": false,
	},
}
