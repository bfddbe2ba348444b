package cmd

import (
	"fmt"
	"strings"

	"budgetable/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:    %s\n", cfg.Server.Addr)
	fmt.Printf("    Collection: %s\n", config.GetCollection(cfg))
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Backend: %s\n", cfg.Store.Backend)
	if cfg.Store.DBPath != "" {
		fmt.Printf("    DB path: %s\n", cfg.Store.DBPath)
	}
	fmt.Println()

	fmt.Println("  [PocketBase]")
	if url := config.GetPocketBaseURL(cfg); url != "" {
		fmt.Printf("    URL:   %s\n", url)
	} else {
		fmt.Println("    URL:   not configured")
	}
	if email := config.GetEmail(cfg); email != "" {
		fmt.Printf("    Email: %s\n", email)
	} else {
		fmt.Println("    Email: not configured")
	}
	if pw := config.GetPassword(cfg); pw != "" {
		fmt.Printf("    Password: %s\n", maskSecret(pw))
	} else {
		fmt.Println("    Password: not configured")
	}
	fmt.Println()

	fmt.Println("  [Client]")
	fmt.Printf("    Base URL: %s\n", cfg.Client.BaseURL)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)

	return nil
}
