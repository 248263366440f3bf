package postprocess

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/eduexcel/icfesgen/internal/item"
)

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Hola, mundo.", 2},
		{"El área de 3,5 m² — ¿cuánto?", 7},
		{"señal_de_prueba café", 2},
	}
	for _, tt := range tests {
		if got := WordCount(tt.in); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "palabra"
	}
	return strings.Join(parts, " ")
}

func TestShapeWords_PadsShortText(t *testing.T) {
	// 180 words in nine sentences.
	var sentences []string
	for range 9 {
		sentences = append(sentences, words(20)+".")
	}
	text := strings.Join(sentences, " ")
	if WordCount(text) != 180 {
		t.Fatalf("fixture has %d words", WordCount(text))
	}

	got := ShapeWords(text, 200, 350)
	n := WordCount(got)
	if n < 200 || n > 350 {
		t.Fatalf("expected 200..350 words, got %d", n)
	}
	if !strings.HasPrefix(got, text) {
		t.Fatal("padding must keep the original text as prefix")
	}
	if !strings.Contains(got, bridges[0]) {
		t.Fatal("expected first bridge sentence")
	}
	if !strings.HasSuffix(got, ".") {
		t.Fatalf("padded text should end in a period: %q", got[len(got)-20:])
	}
}

func TestShapeWords_PadInsertsPunctuation(t *testing.T) {
	got := ShapeWords("Texto sin punto", 8, 100)
	want := "Texto sin punto. " + bridges[0] + "."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShapeWords_PoolExhausted(t *testing.T) {
	got := ShapeWords("Corto.", 500, 1000)
	for _, b := range bridges {
		if !strings.Contains(got, b) {
			t.Fatalf("expected every bridge, missing %q", b)
		}
	}
	if WordCount(got) >= 500 {
		t.Fatal("pool is finite, should stay below the minimum")
	}
}

func TestShapeWords_TrimsBySentence(t *testing.T) {
	text := words(10) + ". " + words(10) + ". " + words(10) + "."
	got := ShapeWords(text, 1, 25)
	want := words(10) + ". " + words(10) + "."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !strings.HasPrefix(text, got) {
		t.Fatal("trimmed text must be a prefix of the input")
	}
}

func TestShapeWords_SingleLongSentence(t *testing.T) {
	got := ShapeWords(words(40)+".", 1, 30)
	if WordCount(got) != 30 {
		t.Fatalf("expected cut at 30 words, got %d", WordCount(got))
	}
}

func TestShapeWords_InRangeUnchanged(t *testing.T) {
	text := words(5) + "."
	if got := ShapeWords(text, 3, 10); got != text {
		t.Fatalf("got %q", got)
	}
}

func TestStripPlusSigns(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"+5 manzanas y +10 peras", "5 manzanas y 10 peras"},
		{"-5 y +3.5", "-5 y 3.5"},
		{"(+2) y [+7,25]", "(2) y [7,25]"},
		{"3+4 = 7", "3+4 = 7"},
		{"a+b", "a+b"},
		{"C++ y +x", "C++ y +x"},
	}
	for _, tt := range tests {
		if got := StripPlusSigns(tt.in); got != tt.want {
			t.Errorf("StripPlusSigns(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripOptionSigns(t *testing.T) {
	got := StripOptionSigns(item.Options{"+1", "+2", "-3", "4"})
	want := item.Options{"1", "2", "-3", "4"}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestShuffleOptions_PreservesCorrectText(t *testing.T) {
	opts := item.Options{"diez", "veinte", "treinta", "cuarenta"}
	for seed := range uint64(50) {
		rng := rand.New(rand.NewPCG(seed, seed+1))
		for _, correct := range item.Labels {
			got, label := ShuffleOptions(opts, correct, rng)
			if got[label] != opts[correct] {
				t.Fatalf("seed %d: correct text %q moved to %s holding %q", seed, opts[correct], label, got[label])
			}
			a, b := slices.Clone(opts[:]), slices.Clone(got[:])
			slices.Sort(a)
			slices.Sort(b)
			if !slices.Equal(a, b) {
				t.Fatalf("seed %d: %v is not a permutation of %v", seed, got, opts)
			}
		}
	}
}

func TestShuffleOptions_DuplicatesUnchanged(t *testing.T) {
	opts := item.Options{"igual", "otra", " igual ", "distinta"}
	got, label := ShuffleOptions(opts, item.C, rand.New(rand.NewPCG(1, 2)))
	if got != opts || label != item.C {
		t.Fatalf("expected unchanged input, got %v %s", got, label)
	}
}

func TestShuffleOptions_NilRNG(t *testing.T) {
	opts := item.Options{"1", "2", "3", "4"}
	got, label := ShuffleOptions(opts, item.D, nil)
	if got[label] != "4" {
		t.Fatalf("correct text lost: %v %s", got, label)
	}
}

func TestAreaExplanation(t *testing.T) {
	got := AreaExplanation("Matemáticas", item.C)
	if !strings.HasPrefix(got, "Correcta (C). A: Aplica correctamente") {
		t.Fatalf("unexpected explanation: %q", got)
	}
	if !strings.Contains(AreaExplanation("Ciencias Naturales", item.A), "VI y VD") {
		t.Fatal("expected science lines")
	}
	if !strings.Contains(AreaExplanation("Inglés", item.B), "regla gramatical objetivo") {
		t.Fatal("expected english-area lines")
	}
	if !strings.Contains(AreaExplanation("Otra", item.B), "Respeta la regla objetivo") {
		t.Fatal("expected default lines")
	}
}

func TestRepairExplanation(t *testing.T) {
	tests := []struct {
		name    string
		expl    string
		correct item.Label
		area    string
		want    string
	}{
		{
			name:    "stale letter",
			expl:    "Correcta (B). El descuento se aplica sobre el precio inicial.",
			correct: item.D,
			area:    "Matemáticas",
			want:    AreaExplanation("Matemáticas", item.D),
		},
		{
			name:    "stale phrase",
			expl:    "La respuesta correcta es A porque conserva la proporción.",
			correct: item.C,
			area:    "Matemáticas",
			want:    AreaExplanation("Matemáticas", item.C),
		},
		{
			name:    "matching letter kept",
			expl:    "Correcta (D). El descuento se aplica sobre el precio inicial.",
			correct: item.D,
			area:    "Matemáticas",
			want:    "Correcta (D). El descuento se aplica sobre el precio inicial.",
		},
		{
			name:    "too short",
			expl:    "Porque sí.",
			correct: item.A,
			area:    "Lenguaje",
			want:    AreaExplanation("Lenguaje", item.A),
		},
		{
			name:    "label never mentioned",
			expl:    "  El texto sostiene una tesis central con evidencia.  ",
			correct: item.B,
			area:    "Lenguaje",
			want:    "Correcta (B). El texto sostiene una tesis central con evidencia.",
		},
		{
			name:    "english explanation in english area",
			expl:    "Option C is correct because the subject is plural, so the answer needs are.",
			correct: item.C,
			area:    "Inglés",
			want:    AreaExplanation("Inglés", item.C),
		},
		{
			name:    "spanish explanation in english area",
			expl:    "La opción C es correcta porque el sujeto es plural.",
			correct: item.C,
			area:    "Inglés",
			want:    "La opción C es correcta porque el sujeto es plural.",
		},
		{
			name:    "word starting with a label letter is not a claim",
			expl:    "Es correcta Dado que el texto lo afirma en B.",
			correct: item.B,
			area:    "Lenguaje",
			want:    "Es correcta Dado que el texto lo afirma en B.",
		},
		{
			name:    "incorrecta before a letter is not a claim",
			expl:    "La opción C conserva la proporción; la opción incorrecta (B) invierte la razón.",
			correct: item.C,
			area:    "Matemáticas",
			want:    "La opción C conserva la proporción; la opción incorrecta (B) invierte la razón.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairExplanation(tt.expl, tt.correct, tt.area); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	it := &item.Item{
		Pregunta:          "Si a +5 se le suman +10 unidades, ¿cuál es el total",
		Opciones:          item.Options{"+15", "5", "10", "50"},
		RespuestaCorrecta: item.A,
		Explicacion:       "Correcta (A). Se suman ambas cantidades.",
	}
	Apply(it, Params{Area: "Matemáticas", MinWords: 15, MaxWords: 60}, rand.New(rand.NewPCG(7, 7)))

	if strings.Contains(it.Pregunta, "+") {
		t.Fatalf("plus signs left in question: %q", it.Pregunta)
	}
	if WordCount(it.Pregunta) < 15 {
		t.Fatalf("question not padded: %q", it.Pregunta)
	}
	if it.CorrectText() != "15" {
		t.Fatalf("correct text changed: %q", it.CorrectText())
	}
	if !strings.Contains(it.Explicacion, "("+it.RespuestaCorrecta.String()+")") {
		t.Fatalf("explanation does not name final label %s: %q", it.RespuestaCorrecta, it.Explicacion)
	}
}
