package authoring

// Config controls the behavior of the Drafter.
type Config struct {
	// Validators run in order on every drafted problem. The first
	// failure rejects the problem.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxExisting caps how many existing prompts are sent to the model.
	MaxExisting int

	// MaxBatch caps the number of problems requested in one call.
	MaxBatch int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
		MaxExisting: 20,
		MaxBatch:    10,
	}
}
