package item

// Transformed is a question in the array-of-options shape used by the
// batch path. Opciones keeps the label map for storage and OpcionesArray
// the "A. text" lines shown on mobile.
type Transformed struct {
	Orden             int            `json:"orden"`
	Pregunta          string         `json:"pregunta"`
	Opciones          Options        `json:"opciones"`
	OpcionesArray     []string       `json:"opcionesArray"`
	RespuestaCorrecta string         `json:"respuesta_correcta"`
	Explicacion       string         `json:"explicacion"`
	Area              string         `json:"area"`
	Subtema           string         `json:"subtema"`
	Estilo            string         `json:"estilo_kolb"`
	Meta              map[string]any `json:"meta,omitempty"`
}

// Stored is the JSONB-ready view of a Transformed question.
type Stored struct {
	Orden             int     `json:"orden"`
	Pregunta          string  `json:"pregunta"`
	Opciones          Options `json:"opciones"`
	RespuestaCorrecta string  `json:"respuesta_correcta"`
	Explicacion       string  `json:"explicacion"`
	Area              string  `json:"area"`
	Subtema           string  `json:"subtema"`
	Estilo            string  `json:"estilo_kolb"`
}

// Mobile is the client view: no answer, no explanation.
type Mobile struct {
	ID        *int64   `json:"id_pregunta"`
	Area      string   `json:"area"`
	Subtema   string   `json:"subtema"`
	Enunciado string   `json:"enunciado"`
	Opciones  []string `json:"opciones"`
}

// ForStorage converts questions to their storage view.
func ForStorage(qs []Transformed) []Stored {
	out := make([]Stored, 0, len(qs))
	for _, q := range qs {
		out = append(out, Stored{
			Orden:             q.Orden,
			Pregunta:          q.Pregunta,
			Opciones:          q.Opciones,
			RespuestaCorrecta: q.RespuestaCorrecta,
			Explicacion:       q.Explicacion,
			Area:              q.Area,
			Subtema:           q.Subtema,
			Estilo:            q.Estilo,
		})
	}
	return out
}

// ForMobile converts questions to the mobile view. Generated questions
// have no database id yet, so ID is always nil.
func ForMobile(qs []Transformed) []Mobile {
	out := make([]Mobile, 0, len(qs))
	for _, q := range qs {
		out = append(out, Mobile{
			Area:      q.Area,
			Subtema:   q.Subtema,
			Enunciado: q.Pregunta,
			Opciones:  q.OpcionesArray,
		})
	}
	return out
}

// Transform converts a validated item to the batch shape at position orden.
func Transform(it *Item, orden int) Transformed {
	return Transformed{
		Orden:             orden,
		Pregunta:          it.Pregunta,
		Opciones:          it.Opciones,
		OpcionesArray:     it.Opciones.Lines(),
		RespuestaCorrecta: it.RespuestaCorrecta.String(),
		Explicacion:       it.Explicacion,
		Area:              it.Area,
		Subtema:           it.Subtema,
		Estilo:            it.Estilo,
		Meta:              it.Meta,
	}
}
