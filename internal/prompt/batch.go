package prompt

import (
	"fmt"
	"strings"

	"github.com/eduexcel/icfesgen/internal/catalog"
)

// Headings used when listing the catalog in the batch instruction, in
// the order they are presented to the model.
var batchHeadings = []struct {
	area    string
	heading string
}{
	{catalog.AreaMatematicas, "📐 MATEMÁTICAS:"},
	{catalog.AreaLenguaje, "📚 LENGUAJE (LECTURA CRÍTICA):"},
	{catalog.AreaSociales, "🌍 SOCIALES Y CIUDADANAS:"},
	{catalog.AreaCiencias, "🔬 CIENCIAS NATURALES:"},
	{catalog.AreaIngles, "🌐 INGLÉS:"},
}

const batchIntro = `Eres un experto generador de preguntas tipo ICFES (examen de estado colombiano) para estudiantes de grado 11.

CONTEXTO EDUCATIVO COLOMBIANO:
El ICFES (Instituto Colombiano para la Evaluación de la Educación) evalúa competencias en 5 áreas fundamentales.
Debes generar preguntas que evalúen competencias, no solo memorización.

ÁREAS Y SUBTEMAS OFICIALES:
`

const batchRules = `
CARACTERÍSTICAS DE LAS PREGUNTAS:
- Nivel: Educación media (grado 10-11)
- Formato: Pregunta tipo ICFES (opción múltiple con única respuesta)
- Opciones: Exactamente 4 opciones (A, B, C, D)
- Longitud: 200-350 caracteres por pregunta
- Distracción: Las opciones incorrectas deben ser plausibles pero claramente erróneas
- Explicación: Breve justificación de por qué la respuesta es correcta
- Contexto colombiano: Usa nombres, lugares y situaciones relevantes para Colombia

FORMATO DE RESPUESTA (JSON estricto):
{
  "preguntas": [
    {
      "pregunta": "Texto de la pregunta aquí",
      "opciones": {
        "A": "Primera opción",
        "B": "Segunda opción",
        "C": "Tercera opción",
        "D": "Cuarta opción"
      },
      "respuesta_correcta": "A",
      "explicacion": "Breve explicación de por qué A es correcta"
    }
  ]
}

IMPORTANTE:
- Devuelve SOLO JSON válido, sin texto adicional
- Todas las preguntas deben estar en español
- respuesta_correcta debe ser exactamente "A", "B", "C" o "D"
- Cada pregunta debe ser única y relevante al área/subtema solicitado
- Usa el subtema EXACTO que se te solicita (respétalo literalmente)`

// BatchSystem returns the system instruction for a batch request. It
// lists the catalog, characterises the learning style and appends the
// official reference of the area when one exists.
func BatchSystem(area, style string) string {
	var b strings.Builder
	b.WriteString(batchIntro)
	for _, h := range batchHeadings {
		subs, err := catalog.Subtemas(h.area)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", h.heading)
		for _, s := range subs {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	fmt.Fprintf(&b, "\nESTILO DE APRENDIZAJE KOLB: %s\n", style)
	b.WriteString(catalog.StylePromptTraits(style))
	b.WriteString("\n")
	b.WriteString(batchRules)
	b.WriteString(OfficialContext(area))
	return b.String()
}

// OfficialContext renders the official ICFES reference of area, or "" if
// there is none.
func OfficialContext(area string) string {
	name := catalog.OfficialArea(area)
	info, ok := catalog.Official(name)
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n\nINFORMACIÓN OFICIAL DEL ÁREA %q SEGÚN ICFES SABER 11°:\n", name)
	fmt.Fprintf(&b, "- Código de área: %s\n", info.Code)
	fmt.Fprintf(&b, "- Descripción general: %s\n", info.Description)

	if len(info.Competencies) > 0 {
		b.WriteString("\nCOMPETENCIAS PRINCIPALES QUE DEBEN EVALUARSE:\n")
		for _, c := range info.Competencies {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
		}
	}

	if len(info.Components) > 0 {
		b.WriteString("\nCOMPONENTES CLAVE DEL ÁREA:\n")
		for _, c := range info.Components {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}

	if tt := info.TextTypes; tt != nil && (len(tt.Continuous) > 0 || len(tt.Discontinuous) > 0) {
		b.WriteString("\nTIPOS DE TEXTOS QUE PUEDEN APARECER EN LAS PREGUNTAS:\n")
		if len(tt.Continuous) > 0 {
			b.WriteString("- Textos continuos:\n")
			for _, t := range tt.Continuous {
				fmt.Fprintf(&b, "  * %s\n", t)
			}
		}
		if len(tt.Discontinuous) > 0 {
			b.WriteString("- Textos discontinuos:\n")
			for _, t := range tt.Discontinuous {
				fmt.Fprintf(&b, "  * %s\n", t)
			}
		}
	}

	if tools := info.Tools; tools != nil {
		b.WriteString("\nHERRAMIENTAS MATEMÁTICAS A CONSIDERAR:\n")
		if tools.Generic != "" {
			fmt.Fprintf(&b, "- Herramientas genéricas: %s\n", tools.Generic)
		}
		if tools.NonGeneric != "" {
			fmt.Fprintf(&b, "- Herramientas no genéricas: %s\n", tools.NonGeneric)
		}
	}

	if st := info.Structure; st != nil {
		b.WriteString("\nESTRUCTURA TÍPICA DE LA PRUEBA EN ESTA ÁREA:\n")
		if st.Summary != "" {
			fmt.Fprintf(&b, "- Resumen: %s\n", st.Summary)
		}
		if len(st.Parts) > 0 {
			b.WriteString("- Partes:\n")
			for _, p := range st.Parts {
				fmt.Fprintf(&b, "  * %s\n", p)
			}
		}
	}

	if len(info.Sources) > 0 {
		b.WriteString("\nFUENTES OFICIALES DE REFERENCIA (ÚSALAS SOLO COMO CONTEXTO, NO LAS MENCIONES EN LOS ENUNCIADOS):\n")
		for _, s := range info.Sources {
			fmt.Fprintf(&b, "- %s (%s): %s\n", s.Title, s.URL, s.Description)
		}
	}
	return b.String()
}

// BatchUser returns the user instruction asking for count questions.
func BatchUser(area, subtema string, count int) string {
	name := catalog.OfficialArea(area)

	var b strings.Builder
	fmt.Fprintf(&b, "Genera %d preguntas tipo ICFES sobre:\n\n", count)
	fmt.Fprintf(&b, "Área interna (app): %s\n", area)
	fmt.Fprintf(&b, "Área oficial ICFES Saber 11°: %s\n", name)
	fmt.Fprintf(&b, "Subtema específico: %s\n\n", subtema)
	b.WriteString("Recuerda:\n")
	fmt.Fprintf(&b, "- %d preguntas diferentes\n", count)
	fmt.Fprintf(&b, "- Todas sobre el subtema: %q\n", subtema)
	b.WriteString("- Nivel de grado 11 (educación media colombiana)\n")
	b.WriteString("- Formato JSON como especificado\n")
	b.WriteString("- Adapta el enfoque según el estilo de aprendizaje Kolb indicado\n")
	fmt.Fprintf(&b, "- Asegúrate de que cada pregunta sea coherente con la descripción, competencias y estructura oficial del área %q proporcionadas en el contexto del sistema.\n", name)
	return b.String()
}
