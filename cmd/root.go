// Package cmd implements the budgetable CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "budgetable",
	Short: "Budget tracker with an editable table UI",
	Long:  "Track purchasable items with price, link, note and paid status.\nRun `budgetable serve` for the HTTP API and `budgetable tui` for the client.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
