// Package normalize maps user-supplied area, subtema and style strings onto
// canonical catalog entries and validates generation requests.
package normalize

import (
	"fmt"

	"github.com/eduexcel/icfesgen/internal/catalog"
)

// MatchError reports an input that does not resolve to a catalog entry.
// Suggestion is advisory only; it is never substituted for the input.
type MatchError struct {
	Field      string // "area", "subtema" or "estilo_kolb"
	Input      string
	Area       string // set for subtema errors
	Suggestion string
	Score      float64
}

func (e *MatchError) Error() string {
	switch e.Field {
	case "area":
		return fmt.Sprintf("Área no permitida: '%s'. ¿Quisiste decir '%s'?", e.Input, e.Suggestion)
	case "subtema":
		return fmt.Sprintf("Subtema no permitido para %s: '%s'. Sugerencia: '%s'.", e.Area, e.Input, e.Suggestion)
	default:
		return fmt.Sprintf("Estilo Kolb no reconocido: '%s'. Sugerencia: '%s'.", e.Input, e.Suggestion)
	}
}

// Normalizer resolves inputs in three tiers: exact, folded, then a
// suggestion-bearing error.
type Normalizer struct {
	Scorer Scorer
}

// New returns a Normalizer backed by LevenshteinScorer.
func New() *Normalizer {
	return &Normalizer{Scorer: LevenshteinScorer{}}
}

// Area resolves raw to a catalog area.
func (n *Normalizer) Area(raw string) (string, error) {
	if catalog.HasArea(raw) {
		return raw, nil
	}
	areas := catalog.Areas()
	if m, ok := foldedMatch(raw, areas); ok {
		return m, nil
	}
	best, score := n.Scorer.BestMatch(raw, areas)
	return "", &MatchError{Field: "area", Input: raw, Suggestion: best, Score: score}
}

// Subtema resolves raw within area's subtemas. area must already be
// canonical; otherwise the error wraps catalog.ErrUnknownArea.
func (n *Normalizer) Subtema(area, raw string) (string, error) {
	subs, err := catalog.Subtemas(area)
	if err != nil {
		return "", fmt.Errorf("Área inválida: '%s': %w", area, err)
	}
	for _, s := range subs {
		if s == raw {
			return s, nil
		}
	}
	if m, ok := foldedMatch(raw, subs); ok {
		return m, nil
	}
	best, score := n.Scorer.BestMatch(raw, subs)
	return "", &MatchError{Field: "subtema", Input: raw, Area: area, Suggestion: best, Score: score}
}

// Style resolves raw to a Kolb style. Blank input yields the default.
func (n *Normalizer) Style(raw string) (string, error) {
	if Fold(raw) == "" {
		return catalog.DefaultStyle, nil
	}
	styles := catalog.Styles()
	if m, ok := foldedMatch(raw, styles); ok {
		return m, nil
	}
	best, score := n.Scorer.BestMatch(raw, styles)
	return "", &MatchError{Field: "estilo_kolb", Input: raw, Suggestion: best, Score: score}
}

func foldedMatch(raw string, candidates []string) (string, bool) {
	key := Fold(raw)
	for _, c := range candidates {
		if Fold(c) == key {
			return c, true
		}
	}
	return "", false
}
