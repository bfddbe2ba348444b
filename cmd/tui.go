package cmd

import (
	"fmt"

	"budgetable/internal/client"
	"budgetable/internal/config"
	"budgetable/internal/tui"
	"budgetable/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagTUIServer string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive budget table",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&flagTUIServer, "server", "", "Base URL of the budgetable server (overrides config)")

	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	baseURL := cfg.Client.BaseURL
	if flagTUIServer != "" {
		baseURL = flagTUIServer
	}

	app := tui.NewApp(client.New(baseURL))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
