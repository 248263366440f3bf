// Package coerce turns raw model text into a validated item: tolerant JSON
// extraction, single-item unwrapping, key normalization and strict schema
// enforcement.
package coerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/eduexcel/icfesgen/internal/item"
)

var (
	fenceRe         = regexp.MustCompile("```(?:json)?\\s*")
	objectSpanRe    = regexp.MustCompile(`(?s)\{.*\}`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	curlyQuotes     = strings.NewReplacer("“", `"`, "”", `"`)
)

// ExtractJSON recovers a JSON object from model text. Fences are removed
// and curly double quotes straightened. Text framed by braces is parsed
// directly; on failure, or when prose surrounds the object, the widest
// {...} span is taken, trailing commas are dropped and it is parsed again.
func ExtractJSON(text string) (map[string]any, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, &ParseError{Reason: "empty model output"}
	}
	s = fenceRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(curlyQuotes.Replace(s))

	var first error
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		obj, err := decodeObject(s)
		if err == nil {
			return obj, nil
		}
		first = err
	} else {
		first = errors.New("output is not framed by '{' and '}'")
	}

	blob := objectSpanRe.FindString(s)
	if blob == "" {
		return nil, &ParseError{Reason: "no JSON object found in model output", First: first}
	}
	blob = trailingCommaRe.ReplaceAllString(blob, "$1")
	obj, err := decodeObject(blob)
	if err != nil {
		return nil, &ParseError{Reason: "invalid JSON even after repair", First: first, Second: err}
	}
	return obj, nil
}

func decodeObject(s string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("JSON value is %T, not an object", v)
	}
	return obj, nil
}

// SingleItem unwraps {"items":[{...}, ...]} to its first object.
func SingleItem(obj map[string]any) map[string]any {
	list, ok := obj["items"].([]any)
	if !ok || len(list) == 0 {
		return obj
	}
	if first, ok := list[0].(map[string]any); ok {
		return first
	}
	return obj
}

// Parse runs the whole pipeline on raw model text.
func Parse(text string) (*item.Item, error) {
	obj, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	return Enforce(NormalizeKeys(SingleItem(obj)))
}
