package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/postprocess"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Normalize a request against the catalog without calling the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := normalizedRequest(cmd)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"ok": true, "normalized": req})
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one question and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := normalizedRequest(cmd)
		if err != nil {
			return err
		}
		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		gen, err := rt.requireStrict()
		if err != nil {
			return err
		}

		it, usage, err := gen.GenerateOne(cmd.Context(), req)
		if err != nil {
			printUsage(rt.model, usage)
			return fmt.Errorf("generate: %w", err)
		}
		rt.log.Info("item generated", "area", req.Area, "words", postprocess.WordCount(it.Pregunta))
		printUsage(rt.model, usage)
		return printJSON(map[string]any{"ok": true, "item": it, "tokens": usage})
	},
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Generate a pack of distinct questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		req, err := normalizedRequest(cmd)
		if err != nil {
			return err
		}
		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		gen, err := rt.requireStrict()
		if err != nil {
			return err
		}

		pack, err := gen.GeneratePack(cmd.Context(), req, count)
		if err != nil {
			return err
		}
		printUsage(rt.model, pack.Usage)

		slotErrs := make([]map[string]any, 0, len(pack.Errors))
		for _, se := range pack.Errors {
			slotErrs = append(slotErrs, map[string]any{
				"index": se.Index, "message": se.Err.Error(), "attempts": se.Attempts,
			})
		}
		if err := printJSON(map[string]any{
			"ok":        pack.OK(),
			"requested": pack.Requested,
			"generated": pack.Generated(),
			"items":     pack.Items,
			"errors":    slotErrs,
			"tokens": map[string]any{
				"prompt_tokens":     pack.Usage.PromptTokens,
				"completion_tokens": pack.Usage.CompletionTokens,
				"total_tokens":      pack.Usage.TotalTokens,
				"average_per_item":  pack.AveragePerItem(),
			},
		}); err != nil {
			return err
		}
		if !pack.OK() {
			return fmt.Errorf("pack incomplete: %d of %d items", pack.Generated(), pack.Requested)
		}
		return nil
	},
}

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Print the unprocessed model output for a request",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := normalizedRequest(cmd)
		if err != nil {
			return err
		}
		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		gen, err := rt.requireStrict()
		if err != nil {
			return err
		}

		out, err := gen.Raw(cmd.Context(), req)
		if err != nil {
			return err
		}
		printUsage(rt.model, out.Total())

		fmt.Println(out.Raw1)
		if out.Corrected {
			fmt.Println("--- corrective reply ---")
			fmt.Println(out.Raw2)
		}
		return nil
	},
}

// printUsage reports token usage and estimated cost on stderr, keeping
// stdout for the JSON result.
func printUsage(model string, u llm.Usage) {
	if u.TotalTokens == 0 {
		return
	}
	cost := "?"
	if c, ok := llm.EstimateCost(model, u); ok {
		cost = formatCost(c)
	}
	fmt.Fprintf(os.Stderr, "tokens: %d in / %d out (%s)\n", u.PromptTokens, u.CompletionTokens, cost)
}

func init() {
	for _, c := range []*cobra.Command{validateCmd, generateCmd, packCmd, rawCmd} {
		addRequestFlags(c)
	}
	packCmd.Flags().IntP("count", "n", 5, "Number of questions (1-100)")
}
