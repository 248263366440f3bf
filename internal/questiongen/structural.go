package questiongen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/eduexcel/icfesgen/internal/coerce"
	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/postprocess"
)

// StructuralValidator re-checks the item contract after post-processing:
// a question of at least coerce.MinQuestionChars, four options, a valid
// answer label and a non-empty explanation.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(it *item.Item, _ normalize.Request) *CheckError {
	if utf8.RuneCountInString(strings.TrimSpace(it.Pregunta)) < coerce.MinQuestionChars {
		return &CheckError{
			Validator: v.Name(),
			Message:   "Pregunta generada no cumple con el mínimo de caracteres",
		}
	}
	if err := it.Check(); err != nil {
		return &CheckError{
			Validator: v.Name(),
			Message:   "Faltan opciones en la respuesta generada: " + err.Error(),
		}
	}
	if strings.TrimSpace(it.Explicacion) == "" {
		return &CheckError{
			Validator: v.Name(),
			Message:   "explicacion is empty",
		}
	}
	return nil
}

// WordRangeValidator enforces the requested word ceiling on the question.
// The floor is only enforced with RequireMin, since padding draws from a
// finite pool and may legitimately stop short.
type WordRangeValidator struct {
	RequireMin bool
}

func (v *WordRangeValidator) Name() string { return "word-range" }

func (v *WordRangeValidator) Validate(it *item.Item, req normalize.Request) *CheckError {
	w := postprocess.WordCount(it.Pregunta)
	if req.MaxWords > 0 && w > req.MaxWords {
		return &CheckError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("pregunta has %d words, above the maximum of %d", w, req.MaxWords),
		}
	}
	if v.RequireMin && w < req.MinWords {
		return &CheckError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("pregunta has %d words, below the minimum of %d", w, req.MinWords),
		}
	}
	return nil
}
