package questiongen

import "github.com/eduexcel/icfesgen/internal/llm"

// BatchSchema is the outer shape of a batch reply: {"preguntas":[...]}.
// Entries are not constrained here; each one is coerced on its own so a
// single imperfect entry does not discard the rest.
var BatchSchema = &llm.Schema{
	Name:        "icfes-batch",
	Description: "A list of Saber 11 multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"preguntas": map[string]any{
				"type":     "array",
				"minItems": 1,
			},
		},
		"required": []any{"preguntas"},
	},
}
