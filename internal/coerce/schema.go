package coerce

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/eduexcel/icfesgen/internal/item"
)

// MinQuestionChars is the shortest acceptable trimmed question.
const MinQuestionChars = 10

// Enforce checks obj against the item contract and builds the closed item.
// Any violation rejects the whole object.
func Enforce(obj map[string]any) (*item.Item, error) {
	if obj == nil {
		return nil, &SchemaError{Reason: "output is not a JSON object"}
	}
	for _, k := range []string{"pregunta", "opciones", "respuesta_correcta"} {
		v, ok := obj[k]
		if !ok {
			return nil, &SchemaError{Field: k, Reason: "required field missing"}
		}
		if v == nil {
			return nil, &SchemaError{Field: k, Reason: "must not be null"}
		}
	}

	pregunta, ok := obj["pregunta"].(string)
	if !ok {
		return nil, &SchemaError{Field: "pregunta", Reason: "must be a string"}
	}
	if utf8.RuneCountInString(strings.TrimSpace(pregunta)) < MinQuestionChars {
		return nil, &SchemaError{Field: "pregunta", Reason: fmt.Sprintf("must have at least %d characters", MinQuestionChars)}
	}

	opts, err := enforceOptions(obj["opciones"])
	if err != nil {
		return nil, err
	}

	label, err := item.ParseLabel(fmt.Sprint(obj["respuesta_correcta"]))
	if err != nil {
		return nil, &SchemaError{Field: "respuesta_correcta", Reason: err.Error()}
	}

	var expl string
	switch v := obj["explicacion"].(type) {
	case nil:
	case string:
		expl = v
	default:
		return nil, &SchemaError{Field: "explicacion", Reason: "must be a string"}
	}

	meta := map[string]any{}
	if v, present := obj["meta"]; present && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &SchemaError{Field: "meta", Reason: "must be an object"}
		}
		meta = m
	}

	return &item.Item{
		Pregunta:          pregunta,
		Opciones:          opts,
		RespuestaCorrecta: label,
		Explicacion:       expl,
		Meta:              meta,
	}, nil
}

func enforceOptions(v any) (item.Options, error) {
	var opts item.Options
	m, ok := v.(map[string]any)
	if !ok {
		return opts, &SchemaError{Field: "opciones", Reason: "must be an object"}
	}

	var missing, extra []string
	for _, l := range item.Labels {
		if _, ok := m[l.String()]; !ok {
			missing = append(missing, l.String())
		}
	}
	for k := range m {
		if _, err := item.ParseLabel(k); err != nil || k != strings.ToUpper(strings.TrimSpace(k)) {
			extra = append(extra, k)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		slices.Sort(extra)
		var b strings.Builder
		b.WriteString("must have exactly the keys A, B, C, D")
		if len(missing) > 0 {
			fmt.Fprintf(&b, "; missing %s", strings.Join(missing, ", "))
		}
		if len(extra) > 0 {
			fmt.Fprintf(&b, "; unexpected %s", strings.Join(extra, ", "))
		}
		return opts, &SchemaError{Field: "opciones", Reason: b.String()}
	}

	for _, l := range item.Labels {
		s, ok := m[l.String()].(string)
		if !ok {
			return opts, &SchemaError{Field: "opciones." + l.String(), Reason: "must be a string"}
		}
		if strings.TrimSpace(s) == "" {
			return opts, &SchemaError{Field: "opciones." + l.String(), Reason: "must not be empty"}
		}
		opts[l] = s
	}
	return opts, nil
}
