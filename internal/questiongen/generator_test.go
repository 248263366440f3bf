package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/eduexcel/icfesgen/internal/coerce"
	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/postprocess"
	"github.com/eduexcel/icfesgen/internal/prompt"
)

const mathSubtema = "Porcentajes y tasas (aumento, descuento, interés simple)"

func mathRequest() normalize.Request {
	req := normalize.DefaultRequest()
	req.Area = "Matemáticas"
	req.Subtema = mathSubtema
	req.Estilo = "Convergente"
	return req
}

// longQuestion returns a question of sentences*11 words whose first
// sentence carries tag.
func longQuestion(tag string, sentences int) string {
	parts := []string{fmt.Sprintf("Caso %s sobre el precio de un televisor en una tienda.", tag)}
	for i := 1; i < sentences; i++ {
		parts = append(parts, fmt.Sprintf("Dato %d del caso describe el precio y el descuento aplicado.", i))
	}
	return strings.Join(parts, " ") + " ¿Cuál es el precio final?"
}

func itemJSON(pregunta, answer string) string {
	b, _ := json.Marshal(map[string]any{
		"pregunta": pregunta,
		"opciones": map[string]string{
			"A": "$120.000",
			"B": "$126.000",
			"C": "$132.000",
			"D": "$140.000",
		},
		"respuesta_correcta": answer,
		"explicacion":        "Correcta (" + answer + "). Se aplica el descuento y luego el impuesto.",
	})
	return string(b)
}

func newStrict(mock *llm.MockProvider) *StrictGenerator {
	gw := llm.NewGateway(mock, llm.GatewayConfig{SeedRandomize: true}, nil)
	return NewStrict(gw, DefaultConfig(), rand.New(rand.NewPCG(3, 9)), nil)
}

func TestGenerateOne_MathEndToEnd(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(itemJSON(longQuestion("uno", 20), "B"), 300, 200))
	gen := newStrict(mock)
	req := mathRequest()

	it, usage, err := gen.GenerateOne(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 model call, got %d", mock.CallCount())
	}

	if err := it.Check(); err != nil {
		t.Fatalf("item invariant broken: %v", err)
	}
	if it.CorrectText() != "$126.000" {
		t.Fatalf("correct answer text lost in shuffle: %q", it.CorrectText())
	}
	if w := postprocess.WordCount(it.Pregunta); w < 200 || w > 350 {
		t.Fatalf("word count %d outside [200,350]", w)
	}
	if it.Area != "Matemáticas" || it.Subtema != mathSubtema || it.Estilo != "Convergente" {
		t.Fatalf("request fields not stamped: %q %q %q", it.Area, it.Subtema, it.Estilo)
	}
	if !strings.Contains(it.Explicacion, "("+it.RespuestaCorrecta.String()+")") {
		t.Fatalf("explanation names a stale label: %q", it.Explicacion)
	}

	if usage.TotalTokens != 500 {
		t.Fatalf("expected 500 tokens, got %d", usage.TotalTokens)
	}
	if it.Meta[item.MetaModel] != "mock" || it.Meta[item.MetaSource] != item.SourceModel {
		t.Fatalf("unexpected meta: %v", it.Meta)
	}
	if it.Meta[item.MetaTokens] != usage {
		t.Fatalf("expected tokens_usados %v, got %v", usage, it.Meta[item.MetaTokens])
	}
	if it.Meta[item.MetaSeedRandomize] != true {
		t.Fatalf("expected seed_randomize true, got %v", it.Meta[item.MetaSeedRandomize])
	}
	if _, ok := it.Meta[item.MetaGenerationID].(string); !ok {
		t.Fatal("expected a generation id")
	}

	call := mock.Calls[0]
	if len(call.Messages) != 2 || call.Messages[0].Role != llm.RoleSystem {
		t.Fatalf("unexpected messages: %+v", call.Messages)
	}
	if !strings.Contains(call.Messages[1].Content, mathSubtema) {
		t.Fatal("user prompt does not carry the exact subtema")
	}
	if call.MaxTokens != req.MaxTokens || call.Temperature != req.Temperature {
		t.Fatalf("unexpected call params: %d %v", call.MaxTokens, call.Temperature)
	}
}

func TestGenerateOne_SeedOnlyStampedWhenSent(t *testing.T) {
	for _, tt := range []struct {
		model    string
		wantSeed bool
	}{
		{"gpt-4o-mini", true},
		{"claude-3-5-haiku-latest", false},
	} {
		t.Run(tt.model, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockText(itemJSON(longQuestion("uno", 20), "B"), 1, 1)).WithModel(tt.model)
			it, _, err := newStrict(mock).GenerateOne(context.Background(), mathRequest())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, stamped := it.Meta[item.MetaSeed]
			if stamped != tt.wantSeed {
				t.Fatalf("meta seed stamped = %v, want %v (meta %v)", stamped, tt.wantSeed, it.Meta)
			}
			if sent := mock.Calls[0].Seed != nil; sent != tt.wantSeed {
				t.Fatalf("seed sent = %v, want %v", sent, tt.wantSeed)
			}
		})
	}
}

func TestGenerateOne_CorrectivePrompt(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText("Claro, aquí tienes una pregunta sobre porcentajes.", 100, 20),
		llm.MockText(itemJSON(longQuestion("dos", 20), "C"), 120, 200),
	)
	gen := newStrict(mock)

	it, usage, err := gen.GenerateOne(context.Background(), mathRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
	second := mock.Calls[1]
	if second.Temperature != 0 {
		t.Fatalf("corrective call must use temperature 0, got %v", second.Temperature)
	}
	if len(second.Messages) != 3 || second.Messages[2].Content != prompt.Corrective {
		t.Fatalf("corrective message missing: %+v", second.Messages)
	}
	want := llm.Usage{PromptTokens: 220, CompletionTokens: 220, TotalTokens: 440}
	if usage != want {
		t.Fatalf("usage = %+v, want %+v", usage, want)
	}
	if it.CorrectText() != "$132.000" {
		t.Fatalf("unexpected correct text %q", it.CorrectText())
	}
}

func TestGenerateOne_ParseErrorIsNotRetried(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText(`{"pregunta": "¿Cuál es el precio?", "opciones": [`, 50, 10),
		llm.MockText(itemJSON(longQuestion("tres", 20), "A"), 1, 1),
	)
	gen := newStrict(mock)

	_, usage, err := gen.GenerateOne(context.Background(), mathRequest())
	var perr *coerce.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T (%v)", err, err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected no retry, got %d calls", mock.CallCount())
	}
	if usage.TotalTokens != 60 {
		t.Fatalf("usage must be reported on failure, got %+v", usage)
	}
}

func TestGenerateOne_SchemaError(t *testing.T) {
	bad := `{"pregunta":"¿Cuál es el precio final del producto?","opciones":{"A":"1","B":"2","C":"3"},"respuesta_correcta":"A","explicacion":"x"}`
	gen := newStrict(llm.NewMockProvider(llm.MockText(bad, 1, 1)))

	_, _, err := gen.GenerateOne(context.Background(), mathRequest())
	var serr *coerce.SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SchemaError, got %T (%v)", err, err)
	}
}

func TestGenerateOne_GatewayError(t *testing.T) {
	gen := newStrict(llm.NewMockProvider())

	_, _, err := gen.GenerateOne(context.Background(), mathRequest())
	var gwErr *llm.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %T (%v)", err, err)
	}
}

type rejectAll struct{}

func (rejectAll) Name() string { return "reject-all" }

func (rejectAll) Validate(*item.Item, normalize.Request) *CheckError {
	return &CheckError{Validator: "reject-all", Message: "no"}
}

func TestGenerateOne_ValidatorChain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(itemJSON(longQuestion("cuatro", 20), "A"), 1, 1))
	gw := llm.NewGateway(mock, llm.GatewayConfig{}, nil)
	cfg := DefaultConfig()
	cfg.Validators = append(cfg.Validators, rejectAll{})
	gen := NewStrict(gw, cfg, nil, nil)

	_, _, err := gen.GenerateOne(context.Background(), mathRequest())
	var cerr *CheckError
	if !errors.As(err, &cerr) || cerr.Validator != "reject-all" {
		t.Fatalf("expected reject-all CheckError, got %v", err)
	}
}

func TestGeneratePack_IdenticalQuestions(t *testing.T) {
	same := itemJSON(longQuestion("igual", 20), "B")
	mock := llm.NewMockProvider()
	// Slot 0 takes one call, slots 1-4 two each.
	for range 9 {
		mock.AddResponse(llm.MockText(same, 100, 50))
	}
	gen := newStrict(mock)

	pack, err := gen.GeneratePack(context.Background(), mathRequest(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.OK() {
		t.Fatal("pack with duplicates must not be ok")
	}
	if pack.Generated() != 1 {
		t.Fatalf("expected 1 accepted item, got %d", pack.Generated())
	}
	if len(pack.Errors) != 4 {
		t.Fatalf("expected 4 slot errors, got %d", len(pack.Errors))
	}
	for i, se := range pack.Errors {
		if se.Index != i+1 || se.Attempts != 2 {
			t.Errorf("slot error %d: index %d attempts %d", i, se.Index, se.Attempts)
		}
		var dup *DuplicateError
		if !errors.As(se, &dup) {
			t.Errorf("slot %d: expected DuplicateError, got %v", se.Index, se.Err)
		}
	}
	if pack.Usage.TotalTokens != 9*150 {
		t.Fatalf("usage must include failed attempts: got %d", pack.Usage.TotalTokens)
	}
	if pack.AveragePerItem() != 1350 {
		t.Fatalf("unexpected average %v", pack.AveragePerItem())
	}
}

func TestGeneratePack_AllUnique(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText(itemJSON(longQuestion("a", 20), "A"), 100, 100),
		llm.MockText(itemJSON(longQuestion("b", 20), "B"), 100, 100),
		llm.MockText(itemJSON(longQuestion("c", 20), "C"), 100, 101),
	)
	gen := newStrict(mock)

	pack, err := gen.GeneratePack(context.Background(), mathRequest(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pack.OK() || pack.Generated() != 3 {
		t.Fatalf("expected a full pack, got %d items and %v", pack.Generated(), pack.Errors)
	}
	if pack.AveragePerItem() != 200.33 {
		t.Fatalf("expected average 200.33, got %v", pack.AveragePerItem())
	}
}

func TestGeneratePack_RetryRecoversSlot(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText(`{"pregunta": roto`, 10, 10),
		llm.MockText(itemJSON(longQuestion("ok", 20), "D"), 10, 10),
	)
	gen := newStrict(mock)

	pack, err := gen.GeneratePack(context.Background(), mathRequest(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pack.OK() {
		t.Fatalf("expected the second attempt to fill the slot: %v", pack.Errors)
	}
	if pack.Usage.TotalTokens != 40 {
		t.Fatalf("expected 40 tokens, got %d", pack.Usage.TotalTokens)
	}
}

func TestGeneratePack_InvalidCount(t *testing.T) {
	gen := newStrict(llm.NewMockProvider())
	for _, n := range []int{0, -1, 101} {
		_, err := gen.GeneratePack(context.Background(), mathRequest(), n)
		var ce *ErrInvalidCount
		if !errors.As(err, &ce) {
			t.Errorf("count %d: expected ErrInvalidCount, got %v", n, err)
		}
	}
}

func TestGeneratePack_CanceledContext(t *testing.T) {
	gen := newStrict(llm.NewMockProvider())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pack, err := gen.GeneratePack(ctx, mathRequest(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.OK() || len(pack.Errors) != 1 || !errors.Is(pack.Errors[0], context.Canceled) {
		t.Fatalf("expected a single cancellation error, got %v", pack.Errors)
	}
}

func TestStrictGenerate_BatchShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(itemJSON(longQuestion("x", 20), "A"), 1, 1))
	var gen Generator = newStrict(mock)

	res, err := gen.Generate(context.Background(), mathRequest(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.Policy() != PolicyStrict || !res.OK() {
		t.Fatalf("unexpected result: %+v", res)
	}
	q := res.Questions[0]
	if q.Orden != 1 || len(q.OpcionesArray) != 4 || !strings.HasPrefix(q.OpcionesArray[0], "A. ") {
		t.Fatalf("unexpected transformed question: %+v", q)
	}
}

func TestRaw(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText("sin json", 10, 5),
		llm.MockText(`{"pregunta":"x"}`, 12, 6),
	)
	gen := newStrict(mock)

	out, err := gen.Raw(context.Background(), mathRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Corrected || out.Raw1 != "sin json" || out.Raw2 != `{"pregunta":"x"}` {
		t.Fatalf("unexpected raw output: %+v", out)
	}
	if out.Total().TotalTokens != 33 {
		t.Fatalf("expected 33 total tokens, got %d", out.Total().TotalTokens)
	}

	mock.AddResponse(llm.MockText(`{"pregunta":"y"}`, 1, 1))
	out, err = gen.Raw(context.Background(), mathRequest())
	if err != nil || out.Corrected || out.Raw2 != "" {
		t.Fatalf("expected a single call, got %+v (%v)", out, err)
	}
}

func TestWordRangeValidator(t *testing.T) {
	req := mathRequest()
	it := &item.Item{Pregunta: longQuestion("w", 40)}
	if err := (&WordRangeValidator{}).Validate(it, req); err == nil {
		t.Fatal("expected a ceiling violation")
	}
	it.Pregunta = "Pregunta corta de prueba."
	if err := (&WordRangeValidator{}).Validate(it, req); err != nil {
		t.Fatalf("floor must not be enforced by default: %v", err)
	}
	if err := (&WordRangeValidator{RequireMin: true}).Validate(it, req); err == nil {
		t.Fatal("expected a floor violation")
	}
}

func TestStructuralValidator(t *testing.T) {
	it := &item.Item{
		Pregunta:          "¿Corta?",
		Opciones:          item.Options{"a", "b", "c", "d"},
		RespuestaCorrecta: item.A,
		Explicacion:       "Correcta (A).",
	}
	if err := (&StructuralValidator{}).Validate(it, mathRequest()); err == nil {
		t.Fatal("expected short question to be rejected")
	}
	it.Pregunta = "¿Cuál es el precio final del producto?"
	if err := (&StructuralValidator{}).Validate(it, mathRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it.Opciones[item.C] = " "
	if err := (&StructuralValidator{}).Validate(it, mathRequest()); err == nil {
		t.Fatal("expected empty option to be rejected")
	}
}
