// Package item defines the closed shape of a generated multiple-choice
// question: exactly four labelled options and one correct label.
package item

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Label is one of the four option labels.
type Label int

const (
	A Label = iota
	B
	C
	D
)

// Labels lists the labels in their fixed order.
var Labels = [4]Label{A, B, C, D}

func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return string(rune('A' + l))
}

// Valid reports whether l is A, B, C or D.
func (l Label) Valid() bool { return l >= A && l <= D }

// ParseLabel accepts "A".."D" in any case, surrounding space ignored.
func ParseLabel(s string) (Label, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'D' {
		return Label(s[0] - 'A'), nil
	}
	return 0, fmt.Errorf("invalid label %q: must be A, B, C or D", s)
}

func (l Label) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid label %d", int(l))
	}
	return json.Marshal(l.String())
}

func (l *Label) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseLabel(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Options holds the four option texts indexed by Label.
type Options [4]string

// Get returns the text for a label.
func (o Options) Get(l Label) string { return o[l] }

// Distinct reports whether all four trimmed texts differ.
func (o Options) Distinct() bool {
	seen := make(map[string]bool, 4)
	for _, t := range o {
		seen[strings.TrimSpace(t)] = true
	}
	return len(seen) == 4
}

// Lines renders the options as "A. text" lines in label order.
func (o Options) Lines() []string {
	out := make([]string, 4)
	for _, l := range Labels {
		out[l] = l.String() + ". " + o[l]
	}
	return out
}

func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"A": o[A], "B": o[B], "C": o[C], "D": o[D]})
}

func (o *Options) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if len(m) != 4 {
		return fmt.Errorf("options must have exactly 4 entries, got %d", len(m))
	}
	for _, l := range Labels {
		v, ok := m[l.String()]
		if !ok {
			return fmt.Errorf("options missing label %s", l)
		}
		o[l] = v
	}
	return nil
}

// Item is one validated question.
type Item struct {
	Area              string         `json:"area"`
	Subtema           string         `json:"subtema"`
	Estilo            string         `json:"estilo_kolb"`
	Pregunta          string         `json:"pregunta"`
	Opciones          Options        `json:"opciones"`
	RespuestaCorrecta Label          `json:"respuesta_correcta"`
	Explicacion       string         `json:"explicacion"`
	Meta              map[string]any `json:"meta"`
}

// CorrectText returns the text of the correct option.
func (it *Item) CorrectText() string {
	return it.Opciones[it.RespuestaCorrecta]
}

// Check verifies the item invariants: a question, four non-empty
// options, and a correct label pointing at one of them.
func (it *Item) Check() error {
	if strings.TrimSpace(it.Pregunta) == "" {
		return fmt.Errorf("pregunta is empty")
	}
	for _, l := range Labels {
		if strings.TrimSpace(it.Opciones[l]) == "" {
			return fmt.Errorf("option %s is empty", l)
		}
	}
	if !it.RespuestaCorrecta.Valid() {
		return fmt.Errorf("respuesta_correcta %d out of range", int(it.RespuestaCorrecta))
	}
	return nil
}

// Meta keys stamped by the generators.
const (
	MetaModel         = "modelo"
	MetaSeed          = "seed"
	MetaSeedRandomize = "seed_randomize"
	MetaTokens        = "tokens_usados"
	MetaSource        = "source"
	MetaGenerationID  = "generation_id"
	MetaAnswerGuessed = "respuesta_inferida"
)

// Provenance values for MetaSource.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)
