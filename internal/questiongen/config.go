package questiongen

// Config controls the behavior of the generators.
type Config struct {
	// Validators run in order on every post-processed item; the first
	// failure rejects it.
	Validators []Validator

	// PackAttempts is the per-slot attempt ceiling in a pack.
	PackAttempts int

	// BatchTemperature is the sampling temperature of batch calls.
	BatchTemperature float64

	// BatchTokensPerQuestion sizes the token budget of a batch call.
	BatchTokensPerQuestion int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&WordRangeValidator{},
		},
		PackAttempts:           2,
		BatchTemperature:       0.2,
		BatchTokensPerQuestion: 700,
	}
}
