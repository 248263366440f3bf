// Package prompt builds the model instructions for single items and for
// batches.
package prompt

import (
	"fmt"
	"strings"

	"github.com/eduexcel/icfesgen/internal/catalog"
	"github.com/eduexcel/icfesgen/internal/normalize"
)

const systemBase = `Eres un generador experto de ÍTEMS tipo ICFES para el examen Saber 11. ` +
	`Todas las preguntas deben estar alineadas con la documentación oficial del ICFES: ` +
	`competencias, componentes temáticos y niveles cognitivos (comprender, aplicar, analizar, evaluar). ` +
	`DEVUELVES EXCLUSIVAMENTE JSON VÁLIDO (sin Markdown ni texto fuera del JSON). ` +
	`Esquema por ítem: {"area":"","subtema":"","estilo_kolb":"","pregunta":"",` +
	`"opciones":{"A":"","B":"","C":"","D":""},"respuesta_correcta":"","explicacion":"","meta":{}} ` +
	`Para varias preguntas: {"items":[OBJ1,...,OBJN]}. ` +
	`LONG_MIN..LONG_MAX palabras, 4 opciones A–D y única correcta, ` +
	`explicación breve y coherente con 'respuesta_correcta'. ` +
	`No contradigas la 'respuesta_correcta' en la explicación; si detectas inconsistencia, ajusta la explicación.`

const foreignRules = "\n\nREGLAS ESPECIALES PARA ÁREA INGLÉS: " +
	"- La PREGUNTA debe estar COMPLETAMENTE en INGLÉS. " +
	"- Las OPCIONES (A, B, C, D) deben estar COMPLETAMENTE en INGLÉS. " +
	"- La EXPLICACIÓN debe estar COMPLETAMENTE en ESPAÑOL, explicando por qué la respuesta es correcta y por qué las otras son incorrectas."

const localRules = " Reglas: Todo en ESPAÑOL (pregunta, opciones y explicación)."

// Corrective is the single follow-up sent when the first reply does not
// look like an item.
const Corrective = "RECUERDA: devuelve SOLO UN OBJETO JSON EXACTO del esquema indicado. " +
	"No escribas nada fuera del JSON. No uses 'items'. Incluye la clave 'pregunta'."

// Area-specific caveats appended to the user instruction.
const (
	socialesNote = " Evita anacronismos y atribuciones erróneas de actores/fechas. " +
		"No confundas 'Frente Nacional' con procesos posteriores; conserva coherencia histórica."
	mathNote    = " No uses el signo '+' delante de enteros positivos en enunciado u opciones."
	foreignNote = " IMPORTANTE: La pregunta y TODAS las opciones (A, B, C, D) deben estar en INGLÉS. " +
		"La explicación debe estar en ESPAÑOL, explicando por qué la opción correcta es la adecuada y por qué las otras son incorrectas."
)

func isForeign(area string) bool {
	return normalize.Fold(area) == normalize.Fold(catalog.ForeignLanguageArea)
}

// System returns the system instruction for a single item in area.
func System(area string) string {
	if isForeign(area) {
		return systemBase + foreignRules
	}
	return systemBase + localRules
}

// User returns the user instruction for a validated request.
func User(req normalize.Request) string {
	style := req.Estilo
	if style == "" {
		style = catalog.DefaultStyle
	}

	var notes strings.Builder
	switch area := normalize.Fold(req.Area); {
	case area == normalize.Fold(catalog.AreaSociales):
		notes.WriteString(socialesNote)
	case area == normalize.Fold(catalog.AreaMatematicas):
		notes.WriteString(mathNote)
	case isForeign(req.Area):
		notes.WriteString(foreignNote)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Genera UNA pregunta del área %s, subtema EXACTO %s. ", req.Area, req.Subtema)
	fmt.Fprintf(&b, "Estilo Kolb: %s. ", style)
	fmt.Fprintf(&b, "Usa este enfoque: %s%s ", catalog.Guidance(req.Area, req.Subtema), notes.String())
	b.WriteString("Alinea la competencia, el componente temático y el nivel cognitivo con las especificaciones oficiales del examen Saber 11 del ICFES. ")
	fmt.Fprintf(&b, "IMPORTANTE: La pregunta debe tener entre %d y %d palabras (longitud típica de ICFES). ", req.MinWords, req.MaxWords)
	b.WriteString("Texto extenso con contexto completo; evita preguntas cortas o de una sola frase. ")
	fmt.Fprintf(&b, "LONG_MIN %d palabras, LONG_MAX %d palabras. ", req.MinWords, req.MaxWords)
	b.WriteString("Devuelve SOLO el JSON del esquema indicado; sin texto adicional. ")
	b.WriteString("Varía números, nombres y contexto; evita repetir patrones.")
	return b.String()
}
