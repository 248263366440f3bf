package normalize

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduexcel/icfesgen/internal/catalog"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Matemáticas ", "matematicas"},
		{"INGLÉS", "ingles"},
		{"Ecuaciones lineales y sistemas 2×2", "ecuaciones lineales y sistemas 2x2"},
		{"Ciencias   \t Naturales", "ciencias naturales"},
		{"Genética y herencia", "genetica y herencia"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "Fold(%q)", tt.in)
	}
}

func TestLevenshteinScorer(t *testing.T) {
	s := LevenshteinScorer{}

	best, score := s.BestMatch("Matematicaz", catalog.Areas())
	assert.Equal(t, catalog.AreaMatematicas, best)
	assert.Greater(t, score, 0.5)

	best, score = s.BestMatch("x", nil)
	assert.Equal(t, "", best)
	assert.Equal(t, 0.0, score)
}

type fixedScorer struct{ pick string }

func (f fixedScorer) BestMatch(string, []string) (string, float64) { return f.pick, 1 }

func TestNormalizer_ScorerIsPluggable(t *testing.T) {
	n := &Normalizer{Scorer: fixedScorer{pick: "Lenguaje"}}
	_, err := n.Area("zzz")
	var me *MatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Lenguaje", me.Suggestion)
}

func TestNormalizer_Area(t *testing.T) {
	n := New()

	got, err := n.Area("Matemáticas")
	require.NoError(t, err)
	assert.Equal(t, "Matemáticas", got)

	got, err = n.Area("  matematicas ")
	require.NoError(t, err)
	assert.Equal(t, "Matemáticas", got)

	got, err = n.Area("SOCIALES")
	require.NoError(t, err)
	assert.Equal(t, "sociales", got)

	_, err = n.Area("Matemátics")
	var me *MatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Matemáticas", me.Suggestion)
	assert.Contains(t, err.Error(), "¿Quisiste decir 'Matemáticas'?")
}

func TestNormalizer_Subtema(t *testing.T) {
	n := New()

	got, err := n.Subtema("Matemáticas", "ecuaciones lineales y sistemas 2x2")
	require.NoError(t, err)
	assert.Equal(t, "Ecuaciones lineales y sistemas 2×2", got)

	_, err = n.Subtema("Matemáticas", "Regla de tres")
	var me *MatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Regla de tres simple y compuesta", me.Suggestion)
	assert.True(t, strings.HasPrefix(err.Error(), "Subtema no permitido para Matemáticas"))

	_, err = n.Subtema("Filosofía", "Lógica")
	assert.True(t, errors.Is(err, catalog.ErrUnknownArea))
}

func TestNormalizer_Style(t *testing.T) {
	n := New()

	got, err := n.Style("")
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultStyle, got)

	got, err = n.Style("  ")
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultStyle, got)

	got, err = n.Style("asimilador")
	require.NoError(t, err)
	assert.Equal(t, "Asimilador", got)

	_, err = n.Style("Divergent")
	var me *MatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Divergente", me.Suggestion)
}

func validRequest() Request {
	r := DefaultRequest()
	r.Area = "Matemáticas"
	r.Subtema = "Porcentajes y tasas (aumento, descuento, interés simple)"
	r.Estilo = "Convergente"
	return r
}

func TestValidate_AllCanonicalCombinations(t *testing.T) {
	n := New()
	for _, area := range catalog.Areas() {
		subs, _ := catalog.Subtemas(area)
		for _, sub := range subs {
			for _, style := range catalog.Styles() {
				r := DefaultRequest()
				r.Area, r.Subtema, r.Estilo = area, sub, style
				out, errs := n.Validate(r)
				if len(errs) != 0 {
					t.Fatalf("%s/%s/%s: unexpected errors %v", area, sub, style, errs)
				}
				if out != r {
					t.Fatalf("%s/%s/%s: canonical request changed: %+v", area, sub, style, out)
				}
			}
		}
	}
}

func TestValidate_Idempotent(t *testing.T) {
	n := New()
	r := validRequest()
	r.Area = " matematicas"
	r.Subtema = "porcentajes y tasas (aumento, descuento, interes simple)"
	r.Estilo = ""

	once, errs := n.Validate(r)
	require.Empty(t, errs)
	twice, errs := n.Validate(once)
	require.Empty(t, errs)
	assert.Equal(t, once, twice)
	assert.Equal(t, "Matemáticas", once.Area)
	assert.Equal(t, catalog.DefaultStyle, once.Estilo)
}

func TestValidate_MalformedAreaSuggestsValidArea(t *testing.T) {
	n := New()
	for _, bad := range []string{
		"Matematicaz", "Cienciaz Naturales", "Ingles!!", "Lenguage", "socials", "zzzzz",
		"Ma", // below the length floor
		"Matemáticas" + strings.Repeat("s", 44), // above the length ceiling
	} {
		r := validRequest()
		r.Area = bad
		_, errs := n.Validate(r)
		require.NotEmpty(t, errs, bad)

		found := false
		for _, e := range errs {
			for _, area := range catalog.Areas() {
				if strings.Contains(e, "'"+area+"'") {
					found = true
				}
			}
		}
		assert.True(t, found, "no valid suggestion in %v", errs)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	n := New()
	r := validRequest()
	r.Area = "Matematicaz"
	r.Estilo = "Divergent"
	r.MinWords = 400
	r.MaxWords = 300
	r.MaxTokens = 50
	r.Temperature = 2.5

	got, errs := n.Validate(r)
	assert.Equal(t, r, got, "raw request must be returned on error")
	assert.Len(t, errs, 5)
	joined := strings.Join(errs, "\n")
	assert.Contains(t, joined, "Área no permitida")
	assert.Contains(t, joined, "Estilo Kolb no reconocido")
	assert.Contains(t, joined, "longitud_min (400) debe ser menor que longitud_max (300)")
	assert.Contains(t, joined, "max_tokens_item (50) debe ser al menos 100")
	assert.Contains(t, joined, "temperatura (2.5) debe estar entre 0 y 2")
	assert.NotContains(t, joined, "Subtema")
}

func TestValidate_FieldBounds(t *testing.T) {
	n := New()
	r := validRequest()
	r.Subtema = "abc"
	r.MaxWords = 5000

	_, errs := n.Validate(r)
	joined := strings.Join(errs, "\n")
	assert.Contains(t, joined, "subtema debe tener al menos 5 caracteres")
	assert.Contains(t, joined, "longitud_max (5000) debe ser como máximo 1000")
}

func TestValidate_MissingArea(t *testing.T) {
	n := New()
	r := validRequest()
	r.Area = ""
	_, errs := n.Validate(r)
	assert.True(t, slices.Contains(errs, "area es requerido"), "%v", errs)
}

func TestValidateErr(t *testing.T) {
	n := New()
	r := validRequest()
	r.Temperature = -1
	_, err := n.ValidateErr(r)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Messages, 1)

	_, err = n.ValidateErr(validRequest())
	assert.NoError(t, err)
}
