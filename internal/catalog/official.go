package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed official.json
var officialJSON []byte

//go:embed justificacion.md
var justification string

// Competency is one competency assessed by an official test.
type Competency struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// TextTypes lists the continuous and discontinuous texts a test uses.
type TextTypes struct {
	Continuous    []string `json:"continuos,omitempty"`
	Discontinuous []string `json:"discontinuos,omitempty"`
}

// Tools describes the mathematical tools a test expects.
type Tools struct {
	Generic    string `json:"genericas,omitempty"`
	NonGeneric string `json:"no_genericas,omitempty"`
}

// Structure describes how a test is split into parts.
type Structure struct {
	Summary string   `json:"resumen,omitempty"`
	Parts   []string `json:"partes,omitempty"`
}

// Source is a reference document published by ICFES.
type Source struct {
	Kind        string `json:"tipo"`
	Title       string `json:"titulo"`
	URL         string `json:"url"`
	Description string `json:"descripcion"`
}

// OfficialInfo is the official ICFES description of one Saber 11° test.
type OfficialInfo struct {
	Code         string       `json:"codigo_area"`
	Description  string       `json:"descripcion"`
	Competencies []Competency `json:"competencias,omitempty"`
	Components   []string     `json:"componentes,omitempty"`
	TextTypes    *TextTypes   `json:"tipos_textos,omitempty"`
	Tools        *Tools       `json:"herramientas,omitempty"`
	Structure    *Structure   `json:"estructura,omitempty"`
	Sources      []Source     `json:"fuentes"`
}

// officialAlias maps catalog areas to the official test name.
var officialAlias = map[string]string{
	AreaLenguaje:    "Lectura Crítica",
	AreaMatematicas: "Matemáticas",
	AreaCiencias:    "Ciencias Naturales",
	AreaIngles:      "Inglés",
	AreaSociales:    "Sociales y Ciudadanas",
}

var official map[string]OfficialInfo

func init() {
	if err := json.Unmarshal(officialJSON, &official); err != nil {
		panic(fmt.Sprintf("catalog: invalid official.json: %v", err))
	}
}

// OfficialArea returns the official test name for a catalog area. Areas
// without an alias are returned unchanged.
func OfficialArea(area string) string {
	if name, ok := officialAlias[area]; ok {
		return name
	}
	return area
}

// Official returns the official description for an official test name.
func Official(name string) (OfficialInfo, bool) {
	info, ok := official[name]
	return info, ok
}

// Justification returns the markdown document explaining why generation
// is grounded on the official ICFES material.
func Justification() string {
	return justification
}
