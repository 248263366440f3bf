package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eduexcel",
	Short: "Saber 11 (ICFES) question generator",
	Long: `eduexcel generates Saber 11 multiple-choice questions with an LLM.

Run without a subcommand to open the interactive preview.`,
	SilenceUsage: true,
	RunE:         runPreview,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUEXCEL_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
