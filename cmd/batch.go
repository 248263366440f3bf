package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/normalize"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate questions in one call, falling back to canned items",
	Long: `Generate questions with a single model call.

Unlike pack, batch never fails on a bad model reply: it substitutes canned
questions and reports why. Area and subtema are used as given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		var req normalize.Request
		req.Area, _ = cmd.Flags().GetString("area")
		req.Subtema, _ = cmd.Flags().GetString("subtema")
		req.Estilo, _ = cmd.Flags().GetString("estilo")
		if req.Area == "" || req.Subtema == "" {
			return errors.New("--area and --subtema are required")
		}

		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.batch.Generate(cmd.Context(), req, count)
		if err != nil {
			return err
		}
		printUsage(rt.model, res.Usage)

		return printJSON(map[string]any{
			"ok":              len(res.Questions) > 0,
			"enabled":         rt.batch.Enabled(),
			"fallback_reason": res.FallbackReason,
			"preguntas":       res.Questions,
			"storage":         item.ForStorage(res.Questions),
			"mobile":          item.ForMobile(res.Questions),
			"tokens":          res.Usage,
		})
	},
}

func init() {
	batchCmd.Flags().StringP("area", "a", "", "Área")
	batchCmd.Flags().StringP("subtema", "s", "", "Subtema")
	batchCmd.Flags().StringP("estilo", "e", "", "Kolb learning style")
	batchCmd.Flags().IntP("count", "n", 5, "Number of questions (1-100)")
}
