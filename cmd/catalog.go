package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eduexcel/icfesgen/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the areas, subtemas and learning styles",
	RunE: func(cmd *cobra.Command, args []string) error {
		if doc, _ := cmd.Flags().GetBool("justification"); doc {
			fmt.Println(catalog.Justification())
			return nil
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(catalog.Current())
		}

		for _, area := range catalog.Areas() {
			fmt.Println(area)
			subtemas, _ := catalog.Subtemas(area)
			for _, s := range subtemas {
				fmt.Println("  -", s)
			}
		}
		fmt.Println()
		fmt.Println("Estilos Kolb")
		descs := catalog.StyleDescriptions()
		for _, st := range catalog.Styles() {
			fmt.Printf("  %-12s %s\n", st, descs[st])
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().Bool("json", false, "Print the catalog as JSON")
	catalogCmd.Flags().Bool("justification", false, "Print the official taxonomy justification (markdown)")
}
