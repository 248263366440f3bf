package postprocess

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/eduexcel/icfesgen/internal/catalog"
	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/normalize"
)

// MinExplanationChars is the shortest explanation kept as written.
const MinExplanationChars = 12

type explanationSet struct {
	match string
	lines [4]string
}

// Matched against the folded area name, first hit wins.
var explanationSets = []explanationSet{
	{"matem", [4]string{
		"A: Aplica correctamente las operaciones requeridas.",
		"B: Presenta error de signos u orden de operaciones.",
		"C: Confunde la relación de proporcionalidad o el cálculo intermedio.",
		"D: Conclusión que no se deduce del enunciado.",
	}},
	{"lenguaj", [4]string{
		"A: Resume la idea central con soporte textual.",
		"B: Confunde un detalle local con la tesis del texto.",
		"C: Generaliza más allá de la evidencia.",
		"D: Atribuye una intención no respaldada.",
	}},
	{"sociales", [4]string{
		"A: Sintetiza finalidad/alcance con coherencia histórica.",
		"B: Confunde propósito con procedimiento o episodio aislado.",
		"C: Reduce el análisis a un caso puntual sin generalidad.",
		"D: Contradice la evidencia del proceso descrito.",
	}},
	{"ciencias", [4]string{
		"A: Identifica variables y controles coherentes con el método.",
		"B: Intercambia VI y VD o ignora controles.",
		"C: Toma un control como variable principal.",
		"D: Conclusión no sustentada por el diseño.",
	}},
	{"ingl", [4]string{
		"A: Respeta la regla gramatical objetivo (forma/concordancia).",
		"B: Error de concordancia sujeto–verbo o uso incorrecto del tiempo verbal.",
		"C: Tiempo verbal incorrecto o forma no válida según el contexto.",
		"D: Pronombre/posesivo mal seleccionado o estructura gramatical incorrecta.",
	}},
}

var defaultExplanation = [4]string{
	"A: Respeta la regla objetivo (forma/concordancia).",
	"B: Error de concordancia sujeto–verbo.",
	"C: Tiempo verbal incorrecto o forma no válida.",
	"D: Pronombre/posesivo mal seleccionado.",
}

// AreaExplanation builds the canned Spanish explanation for area with the
// given correct label.
func AreaExplanation(area string, correct item.Label) string {
	lines := defaultExplanation
	folded := normalize.Fold(area)
	for _, set := range explanationSets {
		if strings.Contains(folded, set.match) {
			lines = set.lines
			break
		}
	}
	parts := make([]string, 0, 5)
	parts = append(parts, "Correcta ("+correct.String()+").")
	parts = append(parts, lines[:]...)
	return strings.Join(parts, " ")
}

// An explanation claiming some letter is the correct one.
var claimRe = regexp.MustCompile(
	`(?:(?i:la\s+respuesta\s+correcta\s+es)\s+\(?|(?i:the\s+correct\s+answer\s+is)\s+\(?|\b(?i:correcta)\s*\(?\s*)([ABCD])\b`)

var (
	spanishMarkers = []string{"correcta", "porque", "debido", "explicacion", "opcion", "respuesta"}
	englishMarkers = []string{"correct", "because", "due", "explanation", "option", "answer"}
)

// looksEnglish reports whether more English than Spanish marker words
// occur in s.
func looksEnglish(s string) bool {
	words := make(map[string]bool)
	for _, w := range wordRe.FindAllString(normalize.Fold(s), -1) {
		words[w] = true
	}
	es, en := 0, 0
	for _, m := range spanishMarkers {
		if words[m] {
			es++
		}
	}
	for _, m := range englishMarkers {
		if words[m] {
			en++
		}
	}
	return en > es
}

// RepairExplanation keeps expl consistent with the final correct label.
// It is replaced by the canned area explanation when it is in English for
// the foreign-language area, when it claims a different letter is correct,
// or when it is too short. An explanation that never mentions the label
// gets a "Correcta (X). " header.
func RepairExplanation(expl string, correct item.Label, area string) string {
	if normalize.Fold(area) == normalize.Fold(catalog.ForeignLanguageArea) &&
		expl != "" && looksEnglish(expl) {
		return AreaExplanation(area, correct)
	}

	for _, m := range claimRe.FindAllStringSubmatch(expl, -1) {
		if m[1] != correct.String() {
			return AreaExplanation(area, correct)
		}
	}

	trimmed := strings.TrimSpace(expl)
	if utf8.RuneCountInString(trimmed) < MinExplanationChars {
		return AreaExplanation(area, correct)
	}

	if !mentionsLabel(trimmed, correct) {
		return "Correcta (" + correct.String() + "). " + trimmed
	}
	return expl
}

// mentionsLabel reports whether the uppercase letter for l appears as a
// standalone token.
func mentionsLabel(s string, l item.Label) bool {
	want := l.String()
	for _, tok := range wordRe.FindAllString(s, -1) {
		if tok == want {
			return true
		}
	}
	return false
}
