package preview

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/screen"
)

type stubGenerator struct {
	item  *item.Item
	err   error
	calls int
}

func (g *stubGenerator) GenerateOne(context.Context, normalize.Request) (*item.Item, llm.Usage, error) {
	g.calls++
	if g.err != nil {
		return nil, llm.Usage{}, g.err
	}
	it := *g.item
	return &it, llm.Usage{TotalTokens: 420}, nil
}

func sampleItem() *item.Item {
	return &item.Item{
		Pregunta:          "Una tienda aplica un descuento del 20% y luego un aumento del 10%. ¿Cuál es el cambio neto?",
		Opciones:          item.Options{"-10%", "-12%", "+10%", "-8%"},
		RespuestaCorrecta: item.B,
		Explicacion:       "Correcta (B). 0,8 por 1,1 es 0,88.",
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// load runs Init and feeds the generated item back to the screen.
func load(t *testing.T, s *Screen) {
	t.Helper()
	if s.Init() == nil {
		t.Fatal("expected Init to return a command")
	}
	if !s.loading {
		t.Fatal("expected loading state after Init")
	}
	s.Update(s.generate()())
}

func TestAnswerCorrect(t *testing.T) {
	gen := &stubGenerator{item: sampleItem()}
	s := New(gen, normalize.Request{Area: "Matemáticas", Subtema: "Porcentajes", Estilo: "Convergente"})
	load(t, s)

	if s.loading || s.item == nil {
		t.Fatal("expected item to be shown")
	}
	if !strings.Contains(s.View(100, 30), "Porcentajes") {
		t.Error("expected subtema in view")
	}

	_, cmd := s.Update(keyPress('b'))
	if cmd == nil {
		t.Fatal("expected a score command")
	}
	score, ok := cmd().(screen.ScoreMsg)
	if !ok || !score.Correct {
		t.Fatalf("expected correct ScoreMsg, got %#v", score)
	}
	if s.answered != 1 || s.correct != 1 {
		t.Errorf("expected 1/1, got %d/%d", s.correct, s.answered)
	}
	if !strings.Contains(s.View(100, 30), "¡Correcto!") {
		t.Error("expected feedback in view")
	}
}

func TestAnswerWrongThenNext(t *testing.T) {
	gen := &stubGenerator{item: sampleItem()}
	s := New(gen, normalize.Request{Area: "Matemáticas"})
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // cursor starts on A
	if !s.mc.Submitted || s.mc.IsCorrect() {
		t.Fatal("expected a wrong submitted answer")
	}
	if !strings.Contains(s.View(100, 30), "La respuesta es B") {
		t.Error("expected the correct label in the feedback")
	}

	if _, cmd := s.Update(keyPress('n')); cmd == nil {
		t.Fatal("expected next to start a new generation")
	}
	if !s.loading {
		t.Error("expected loading state after next")
	}
}

func TestGenerationError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model timeout")}
	s := New(gen, normalize.Request{Area: "Matemáticas"})
	load(t, s)

	if !strings.Contains(s.View(100, 30), "model timeout") {
		t.Error("expected error in view")
	}
	if _, cmd := s.Update(keyPress('r')); cmd == nil {
		t.Fatal("expected retry command")
	}
	if gen.calls != 1 {
		t.Errorf("generation runs only when the command executes, got %d calls", gen.calls)
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	s := New(&stubGenerator{item: sampleItem()}, normalize.Request{})
	s.Init()
	if _, cmd := s.Update(keyPress('a')); cmd != nil {
		t.Error("expected no command while loading")
	}
}
