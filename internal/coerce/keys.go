package coerce

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/eduexcel/icfesgen/internal/item"
)

// Accepted spellings, in priority order.
var (
	questionKeys = []string{"pregunta", "enunciado", "statement", "prompt", "stem", "question", "texto", "planteamiento"}
	optionKeys   = []string{"opciones", "alternativas", "choices", "options", "respuestas"}
	answerKeys   = []string{"respuesta_correcta", "respuesta", "correcta", "answer", "ans", "correct_option", "correct", "solucion", "solution"}
)

var leadingLabelRe = regexp.MustCompile(`^\(?([ABCD])(?:[).:\-\s]|$)`)

// NormalizeKeys renames question, option and answer synonyms to pregunta,
// opciones and respuesta_correcta. Options given as a list are re-keyed
// A-D by position; options under a synonym key given as an object are
// read from letter, lowercase, digit or option_x keys. An opciones object
// is re-keyed the same way only when it lacks one of A-D, so Enforce still
// sees extra keys next to a full set. A respuesta_correcta that is not a
// bare letter is resolved when a label can be read from it and otherwise
// left for Enforce to reject. meta is forced to an object and explicacion
// defaults to "".
func NormalizeKeys(obj map[string]any) map[string]any {
	for _, k := range questionKeys {
		if v, ok := obj[k]; ok {
			delete(obj, k)
			obj["pregunta"] = v
			break
		}
	}

	if v, ok := obj["opciones"]; ok {
		switch val := v.(type) {
		case []any:
			obj["opciones"] = optionsFromList(val)
		case map[string]any:
			if !hasAllLabels(val) {
				obj["opciones"] = optionsFromMap(val)
			}
		}
	} else {
		for _, k := range optionKeys[1:] {
			v, ok := obj[k]
			if !ok {
				continue
			}
			delete(obj, k)
			switch val := v.(type) {
			case map[string]any:
				obj["opciones"] = optionsFromMap(val)
			case []any:
				obj["opciones"] = optionsFromList(val)
			default:
				obj["opciones"] = map[string]any{"A": "", "B": "", "C": "", "D": ""}
			}
			break
		}
	}

	if v, ok := obj["respuesta_correcta"]; ok && v != nil {
		if _, err := item.ParseLabel(fmt.Sprint(v)); err != nil {
			if label, guessed := answerLabel(v); !guessed {
				obj["respuesta_correcta"] = label.String()
			}
		}
	} else if !ok {
		for _, k := range answerKeys[1:] {
			v, ok := obj[k]
			if !ok {
				continue
			}
			delete(obj, k)
			label, guessed := answerLabel(v)
			obj["respuesta_correcta"] = label.String()
			if guessed {
				meta := metaOf(obj)
				meta[item.MetaAnswerGuessed] = true
				obj["meta"] = meta
			}
			break
		}
	}

	if _, ok := obj["explicacion"]; !ok {
		obj["explicacion"] = ""
	}
	obj["meta"] = metaOf(obj)
	return obj
}

func metaOf(obj map[string]any) map[string]any {
	if m, ok := obj["meta"].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func hasAllLabels(m map[string]any) bool {
	for _, l := range item.Labels {
		if _, ok := m[l.String()]; !ok {
			return false
		}
	}
	return true
}

func optionsFromMap(val map[string]any) map[string]any {
	out := make(map[string]any, 4)
	for _, l := range item.Labels {
		up := l.String()
		low := strings.ToLower(up)
		out[up] = firstTruthy(val, up, low, fmt.Sprint(int(l)+1), "option_"+low)
	}
	return out
}

func optionsFromList(list []any) map[string]any {
	out := make(map[string]any, 4)
	for _, l := range item.Labels {
		if int(l) < len(list) {
			out[l.String()] = list[l]
		} else {
			out[l.String()] = ""
		}
	}
	return out
}

func firstTruthy(m map[string]any, keys ...string) any {
	for _, k := range keys {
		switch v := m[k].(type) {
		case nil:
		case string:
			if v != "" {
				return v
			}
		default:
			return v
		}
	}
	return ""
}

// answerLabel extracts a label from a free-form answer value. guessed is
// true when nothing usable was found and A was assumed.
func answerLabel(v any) (label item.Label, guessed bool) {
	raw := strings.ToUpper(strings.TrimSpace(fmt.Sprint(v)))
	if l, err := item.ParseLabel(raw); err == nil {
		return l, false
	}
	switch raw {
	case "1", "2", "3", "4":
		return item.Label(raw[0] - '1'), false
	}
	if m := leadingLabelRe.FindStringSubmatch(raw); m != nil {
		return item.Label(m[1][0] - 'A'), false
	}
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	// "Corresponde a la opción C": the last standalone letter wins over
	// the Spanish preposition "a".
	for i := len(tokens) - 1; i >= 0; i-- {
		if l, err := item.ParseLabel(tokens[i]); err == nil {
			return l, false
		}
	}
	for _, tok := range tokens {
		switch tok {
		case "1", "2", "3", "4":
			return item.Label(tok[0] - '1'), false
		}
	}
	return item.A, true
}
