package main

import (
	"os"

	"github.com/eduexcel/icfesgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
