package normalize

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eduexcel/icfesgen/internal/catalog"
)

// Request field bounds and defaults.
const (
	DefaultMinWords    = 200
	DefaultMaxWords    = 350
	DefaultMaxTokens   = 600
	DefaultTemperature = 0.2
	MinMaxTokens       = 100
)

// Request is a generation request as received from a caller.
type Request struct {
	Area        string  `json:"area" validate:"required,min=3,max=50"`
	Subtema     string  `json:"subtema" validate:"required,min=5,max=200"`
	Estilo      string  `json:"estilo_kolb,omitempty" validate:"max=20"`
	MinWords    int     `json:"longitud_min" validate:"gte=50,lte=500"`
	MaxWords    int     `json:"longitud_max" validate:"gte=100,lte=1000"`
	MaxTokens   int     `json:"max_tokens_item" validate:"lte=4000"`
	Temperature float64 `json:"temperatura"`
}

// DefaultRequest returns a Request with every optional field defaulted.
// Decode caller JSON into it so absent fields keep their defaults.
func DefaultRequest() Request {
	return Request{
		MinWords:    DefaultMinWords,
		MaxWords:    DefaultMaxWords,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// ValidationError carries every problem found in a request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Messages, "; ")
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate normalizes req against the catalog and checks numeric ranges.
// All problems are collected in one pass. On success the canonical request
// and a nil slice are returned; otherwise req is returned unchanged with
// the messages.
func (n *Normalizer) Validate(req Request) (Request, []string) {
	var errs []string
	bad := map[string]bool{}

	if err := validate.Struct(req); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return req, []string{err.Error()}
		}
		for _, fe := range ves {
			bad[fe.Field()] = true
			errs = append(errs, fieldMessage(fe))
		}
	}

	out := req

	areaOK := false
	rawArea := strings.TrimSpace(req.Area)
	switch {
	case !bad["area"]:
		area, err := n.Area(rawArea)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			out.Area, areaOK = area, true
		}
	case rawArea != "":
		// Out of length bounds; still point at the closest area.
		best, score := n.Scorer.BestMatch(rawArea, catalog.Areas())
		errs = append(errs, (&MatchError{Field: "area", Input: rawArea, Suggestion: best, Score: score}).Error())
	}

	// Subtemas are only checked against a resolved area.
	if areaOK && !bad["subtema"] {
		sub, err := n.Subtema(out.Area, strings.TrimSpace(req.Subtema))
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			out.Subtema = sub
		}
	}

	if !bad["estilo_kolb"] {
		style, err := n.Style(req.Estilo)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			out.Estilo = style
		}
	}

	if req.MinWords >= req.MaxWords {
		errs = append(errs, fmt.Sprintf("longitud_min (%d) debe ser menor que longitud_max (%d)", req.MinWords, req.MaxWords))
	}
	if req.MaxTokens < MinMaxTokens {
		errs = append(errs, fmt.Sprintf("max_tokens_item (%d) debe ser al menos %d", req.MaxTokens, MinMaxTokens))
	}
	if req.Temperature < 0 || req.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("temperatura (%g) debe estar entre 0 y 2", req.Temperature))
	}

	if len(errs) > 0 {
		return req, errs
	}
	return out, nil
}

// ValidateErr is Validate with the messages folded into a *ValidationError.
func (n *Normalizer) ValidateErr(req Request) (Request, error) {
	out, msgs := n.Validate(req)
	if len(msgs) > 0 {
		return out, &ValidationError{Messages: msgs}
	}
	return out, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", fe.Field())
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s caracteres", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s (%v) debe ser al menos %s", fe.Field(), fe.Value(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s (%v) debe ser como máximo %s", fe.Field(), fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s no cumple la regla %q", fe.Field(), fe.Tag())
	}
}
