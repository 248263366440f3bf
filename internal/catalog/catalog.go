// Package catalog holds the read-only reference data for Saber 11° items:
// areas, subtemas per area, Kolb learning styles, per-subtema prompt
// guidance, and the official ICFES description of each test.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Area keys accepted by the generator. The casing is deliberate and must
// match what clients already send.
const (
	AreaSociales    = "sociales"
	AreaCiencias    = "Ciencias Naturales"
	AreaIngles      = "Inglés"
	AreaLenguaje    = "Lenguaje"
	AreaMatematicas = "Matemáticas"
)

// ForeignLanguageArea is the area whose question and options are written
// in English while the explanation stays in Spanish.
const ForeignLanguageArea = AreaIngles

// DefaultStyle is used when a request omits the learning style.
const DefaultStyle = "Convergente"

// DefaultGuidance is returned for subtemas without specific guidance.
const DefaultGuidance = "Incluye un mini-caso realista de 2–3 frases."

// ErrUnknownArea is returned when an area is not in the catalog.
var ErrUnknownArea = errors.New("unknown area")

// catalog is the package-level singleton, set by init() in seed.go.
type catalog struct {
	areas    []string
	subtemas map[string][]string
	guidance map[string]map[string]string
	styles   []string
	styleDoc map[string]string
	traits   map[string]string
}

var c *catalog

// Areas returns the area keys in display order.
func Areas() []string {
	return slices.Clone(c.areas)
}

// HasArea reports whether area is an exact catalog key.
func HasArea(area string) bool {
	_, ok := c.subtemas[area]
	return ok
}

// Subtemas returns the ordered subtemas for an area.
func Subtemas(area string) ([]string, error) {
	list, ok := c.subtemas[area]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArea, area)
	}
	return slices.Clone(list), nil
}

// Styles returns the four Kolb learning styles.
func Styles() []string {
	return slices.Clone(c.styles)
}

// StyleDescriptions returns the short description of every style.
func StyleDescriptions() map[string]string {
	return maps.Clone(c.styleDoc)
}

// StylePromptTraits returns the longer characterisation of a style used
// when briefing the model. Unknown styles yield "".
func StylePromptTraits(style string) string {
	return c.traits[style]
}

// Guidance returns the prompt guidance for a subtema, or DefaultGuidance.
func Guidance(area, subtema string) string {
	if g, ok := c.guidance[area][subtema]; ok {
		return g
	}
	return DefaultGuidance
}

// Snapshot is the full catalog as served to clients.
type Snapshot struct {
	Areas             []string            `json:"areas"`
	SubtemasByArea    map[string][]string `json:"subtemas_por_area"`
	Styles            []string            `json:"estilos_kolb"`
	StyleDescriptions map[string]string   `json:"kolb_descripcion"`
}

// Current returns a copy of the catalog.
func Current() Snapshot {
	subs := make(map[string][]string, len(c.subtemas))
	for area, list := range c.subtemas {
		subs[area] = slices.Clone(list)
	}
	return Snapshot{
		Areas:             Areas(),
		SubtemasByArea:    subs,
		Styles:            Styles(),
		StyleDescriptions: StyleDescriptions(),
	}
}
