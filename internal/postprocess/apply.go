package postprocess

import (
	"math/rand/v2"

	"github.com/eduexcel/icfesgen/internal/item"
)

// Params carries the request fields the transforms depend on.
type Params struct {
	Area     string
	MinWords int
	MaxWords int
}

// Apply runs the full chain on it in place: word shaping, sign cleanup,
// shuffle, then explanation repair against the post-shuffle label.
func Apply(it *item.Item, p Params, rng *rand.Rand) {
	it.Pregunta = ShapeWords(it.Pregunta, p.MinWords, p.MaxWords)
	it.Pregunta = StripPlusSigns(it.Pregunta)
	it.Opciones = StripOptionSigns(it.Opciones)
	it.Opciones, it.RespuestaCorrecta = ShuffleOptions(it.Opciones, it.RespuestaCorrecta, rng)
	it.Explicacion = RepairExplanation(it.Explicacion, it.RespuestaCorrecta, p.Area)
}
