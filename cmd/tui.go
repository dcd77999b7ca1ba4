package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/engine"
	"github.com/planwise/planwise/internal/store"
	"github.com/planwise/planwise/internal/tui"
	"github.com/planwise/planwise/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Load config for theme
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	tables, err := loadTables()
	if err != nil {
		return err
	}
	prof, err := resolveProfile(tables)
	if err != nil {
		return err
	}

	// The dashboard still works without the store; edits just stay
	// in-memory for the session.
	st, err := store.Open(store.DefaultPath(), tables)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: profile store unavailable: %v\n", err)
		st = nil
	} else {
		defer st.Close()
	}

	app := tui.NewApp(engine.New(tables), st, prof)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
