package questiongen

import (
	"math/rand/v2"

	"github.com/eduexcel/icfesgen/internal/catalog"
	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/postprocess"
)

const fallbackQuestion = "Un caso práctico presenta datos y condiciones para analizar la relación central del problema. " +
	"Evita sesgos de interpretación y valora la evidencia disponible antes de decidir."

var fallbackOptions = item.Options{
	"Conclusión coherente con la relación pedida.",
	"Error por focalizar un detalle local.",
	"Generalización sin soporte.",
	"Afirmación no derivada de la evidencia.",
}

// FallbackItem builds the rule-based item used when the model path is
// unavailable. It is padded, shuffled and explained like a model item and
// tagged with meta.source = "fallback".
func FallbackItem(req normalize.Request, model string, rng *rand.Rand) *item.Item {
	opts, correct := postprocess.ShuffleOptions(fallbackOptions, item.A, rng)
	estilo := req.Estilo
	if estilo == "" {
		estilo = catalog.DefaultStyle
	}
	return &item.Item{
		Area:              req.Area,
		Subtema:           req.Subtema,
		Estilo:            estilo,
		Pregunta:          postprocess.ShapeWords(fallbackQuestion, req.MinWords, req.MaxWords),
		Opciones:          opts,
		RespuestaCorrecta: correct,
		Explicacion:       postprocess.AreaExplanation(req.Area, correct),
		Meta: map[string]any{
			item.MetaSource: item.SourceFallback,
			item.MetaModel:  model,
		},
	}
}
