package item

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in      string
		want    Label
		wantErr bool
	}{
		{"A", A, false},
		{" d ", D, false},
		{"c", C, false},
		{"E", 0, true},
		{"AB", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLabel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLabel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseLabel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptions_JSONShape(t *testing.T) {
	o := Options{"uno", "dos", "tres", "cuatro"}
	b, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"A":"uno","B":"dos","C":"tres","D":"cuatro"}` {
		t.Fatalf("unexpected JSON: %s", b)
	}
}

func TestOptions_UnmarshalRejectsWrongKeys(t *testing.T) {
	var o Options
	if err := json.Unmarshal([]byte(`{"A":"1","B":"2","C":"3"}`), &o); err == nil {
		t.Fatal("expected error for three options")
	}
	if err := json.Unmarshal([]byte(`{"A":"1","B":"2","C":"3","E":"4"}`), &o); err == nil {
		t.Fatal("expected error for label E")
	}
}

func TestOptions_Distinct(t *testing.T) {
	if !(Options{"a", "b", "c", "d"}).Distinct() {
		t.Fatal("expected distinct")
	}
	if (Options{"a", "b ", " b", "d"}).Distinct() {
		t.Fatal("trimmed duplicates should not be distinct")
	}
}

func TestItem_Check(t *testing.T) {
	it := Item{Pregunta: "¿Cuál?", Opciones: Options{"a", "b", "c", "d"}, RespuestaCorrecta: B}
	if err := it.Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.CorrectText() != "b" {
		t.Fatalf("expected b, got %q", it.CorrectText())
	}
	it.Opciones[C] = "  "
	if err := it.Check(); err == nil || !strings.Contains(err.Error(), "C") {
		t.Fatalf("expected empty option C error, got %v", err)
	}
}

func TestItem_MarshalLabel(t *testing.T) {
	it := Item{Opciones: Options{"a", "b", "c", "d"}, RespuestaCorrecta: D}
	b, _ := json.Marshal(it)
	if !strings.Contains(string(b), `"respuesta_correcta":"D"`) {
		t.Fatalf("unexpected JSON: %s", b)
	}
}

func TestViews(t *testing.T) {
	qs := []Transformed{{
		Orden:             1,
		Pregunta:          "¿Qué?",
		Opciones:          Options{"a", "b", "c", "d"},
		OpcionesArray:     Options{"a", "b", "c", "d"}.Lines(),
		RespuestaCorrecta: "A",
		Area:              "Lenguaje",
	}}
	stored := ForStorage(qs)
	if len(stored) != 1 || stored[0].RespuestaCorrecta != "A" {
		t.Fatalf("unexpected storage view: %+v", stored)
	}
	mobile := ForMobile(qs)
	if mobile[0].ID != nil || mobile[0].Enunciado != "¿Qué?" {
		t.Fatalf("unexpected mobile view: %+v", mobile[0])
	}
	if mobile[0].Opciones[2] != "C. c" {
		t.Fatalf("expected 'C. c', got %q", mobile[0].Opciones[2])
	}
	b, _ := json.Marshal(mobile[0])
	if strings.Contains(string(b), "respuesta") {
		t.Fatal("mobile view must not leak the answer")
	}
}

func TestTransform(t *testing.T) {
	it := &Item{
		Area:              "Matemáticas",
		Subtema:           "Porcentajes y proporcionalidad",
		Estilo:            "Convergente",
		Pregunta:          "¿Cuál es el 20% de 150?",
		Opciones:          Options{"20", "30", "40", "50"},
		RespuestaCorrecta: B,
		Explicacion:       "Correcta (B).",
	}
	q := Transform(it, 3)
	if q.Orden != 3 || q.RespuestaCorrecta != "B" {
		t.Fatalf("unexpected transform: %+v", q)
	}
	if q.OpcionesArray[1] != "B. 30" {
		t.Fatalf("expected 'B. 30', got %q", q.OpcionesArray[1])
	}
}
