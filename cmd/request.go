package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eduexcel/icfesgen/internal/normalize"
)

// addRequestFlags registers the generation request flags on cmd.
func addRequestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("area", "a", "", "Área ICFES (accents and case are ignored)")
	f.StringP("subtema", "s", "", "Subtema within the area")
	f.StringP("estilo", "e", "", "Kolb learning style (default Convergente)")
	f.Int("min-words", normalize.DefaultMinWords, "Minimum words in the question")
	f.Int("max-words", normalize.DefaultMaxWords, "Maximum words in the question")
	f.Int("max-tokens", normalize.DefaultMaxTokens, "Token budget per item")
	f.Float64("temperature", normalize.DefaultTemperature, "Sampling temperature")
}

// requestFromFlags builds an unvalidated request from the flags. Flags
// cmd does not define keep their defaults.
func requestFromFlags(cmd *cobra.Command) normalize.Request {
	f := cmd.Flags()
	req := normalize.DefaultRequest()
	if v, err := f.GetString("area"); err == nil {
		req.Area = v
	}
	if v, err := f.GetString("subtema"); err == nil {
		req.Subtema = v
	}
	if v, err := f.GetString("estilo"); err == nil {
		req.Estilo = v
	}
	if v, err := f.GetInt("min-words"); err == nil {
		req.MinWords = v
	}
	if v, err := f.GetInt("max-words"); err == nil {
		req.MaxWords = v
	}
	if v, err := f.GetInt("max-tokens"); err == nil {
		req.MaxTokens = v
	}
	if v, err := f.GetFloat64("temperature"); err == nil {
		req.Temperature = v
	}
	return req
}

// normalizedRequest validates the flags against the catalog.
func normalizedRequest(cmd *cobra.Command) (normalize.Request, error) {
	req, errs := normalize.New().Validate(requestFromFlags(cmd))
	if len(errs) > 0 {
		return req, fmt.Errorf("invalid request:\n  %s", strings.Join(errs, "\n  "))
	}
	return req, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
