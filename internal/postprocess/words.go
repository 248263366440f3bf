// Package postprocess applies the deterministic text transforms run on a
// validated item: word-count shaping, plus-sign cleanup, option shuffling
// and explanation repair.
package postprocess

import (
	"regexp"
	"strings"
	"unicode"
)

var wordRe = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// WordCount counts Unicode word runs in s.
func WordCount(s string) int {
	return len(wordRe.FindAllStringIndex(s, -1))
}

// bridges pad short questions, always in this order.
var bridges = []string{
	"Lee cuidadosamente los indicios antes de decidir",
	"Contrasta propósito, procedimientos y evidencias del caso",
	"Evita confundir ejemplos con definiciones generales",
	"Verifica coherencia entre datos y conclusión elegida",
	"Selecciona la alternativa que mejor sintetiza la idea central",
}

func endsSentence(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") ||
		strings.HasSuffix(s, "!") || strings.HasSuffix(s, "…")
}

// ShapeWords pads text with bridge sentences until it has at least minWords
// words or the pool runs out, then trims it by whole sentences so it has
// at most maxWords words.
func ShapeWords(text string, minWords, maxWords int) string {
	text = strings.TrimSpace(text)
	w := WordCount(text)

	padded := false
	for k := 0; w < minWords && k < len(bridges); k++ {
		switch {
		case text == "":
		case endsSentence(text):
			text += " "
		default:
			text += ". "
		}
		text += bridges[k]
		padded = true
		w = WordCount(text)
	}
	if padded && !endsSentence(text) {
		text += "."
	}

	if w <= maxWords {
		return text
	}

	sentences := splitSentences(text)
	var kept []string
	count := 0
	for _, s := range sentences {
		sw := WordCount(s)
		if count+sw > maxWords {
			break
		}
		kept = append(kept, s)
		count += sw
	}
	if len(kept) == 0 {
		// A single sentence longer than maxWords: cut it at the word limit.
		return truncateWords(sentences[0], maxWords)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// splitSentences breaks text after '.', '!' or '?' followed by whitespace.
func splitSentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			out = append(out, string(runes[start:i+1]))
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

func truncateWords(s string, n int) string {
	if n <= 0 {
		return ""
	}
	locs := wordRe.FindAllStringIndex(s, n+1)
	if len(locs) <= n {
		return s
	}
	return strings.TrimSpace(s[:locs[n-1][1]])
}
