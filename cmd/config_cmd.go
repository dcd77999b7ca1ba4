// Package cmd implements the planwise CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
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

	fmt.Println("  [General]")
	fmt.Printf("    Default profile: %s\n", cfg.General.Profile)
	if cfg.General.Year != 0 {
		fmt.Printf("    Tax year:        %d\n", cfg.General.Year)
	} else {
		fmt.Println("    Tax year:        latest built-in")
	}
	fmt.Printf("    Scottish rates:  %v\n", cfg.General.Scotland)
	if rates := config.RatesPath(cfg); rates != "" {
		fmt.Printf("    Rates override:  %s\n", rates)
	} else {
		fmt.Println("    Rates override:  none (built-in tables)")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("  Profile store: %s", store.DefaultPath())
	// Counting rows never decodes documents, so no rate tables needed.
	if st, err := store.Open(store.DefaultPath(), nil); err == nil {
		if n, err := st.Count(); err == nil {
			fmt.Printf(" (%d saved)", n)
		}
		st.Close()
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("  Run `planwise setup` to reconfigure.")
	return nil
}
