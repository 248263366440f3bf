package cmd

import (
	"github.com/spf13/cobra"

	"github.com/eduexcel/icfesgen/internal/app"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate and answer questions interactively",
	Long: `Generate questions one at a time and answer them in the terminal.

With --area and --subtema the session starts on the first question;
otherwise pick them from the catalog.`,
	RunE: runPreview,
}

func init() {
	addRequestFlags(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	opts := app.Options{Request: requestFromFlags(cmd)}
	if opts.Request.Area != "" {
		req, err := normalizedRequest(cmd)
		if err != nil {
			return err
		}
		opts.Request = req
	}

	rt, err := newRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	gen, err := rt.requireStrict()
	if err != nil {
		return err
	}
	opts.Generator = gen
	return app.Run(opts)
}
