package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	tables, err := loadTables()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  Welcome to planwise!")
	fmt.Println()

	// 1. Region
	fmt.Println("  1. Income tax region")
	fmt.Println("     (1) England, Wales, or Northern Ireland [default]")
	fmt.Println("     (2) Scotland")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	cfg.General.Scotland = strings.TrimSpace(choice) == "2"
	fmt.Println()

	// 2. Tax year
	latest := tables.LatestYear()
	fmt.Println("  2. Default tax year")
	fmt.Printf("     Available: %v [default %d]\n", tables.Years(), latest)
	fmt.Print("     > ")
	yearRaw, _ := reader.ReadString('\n')
	yearRaw = strings.TrimSpace(yearRaw)
	if yearRaw == "" {
		cfg.General.Year = 0 // track the latest built-in year
	} else if y, err := strconv.Atoi(yearRaw); err == nil {
		cfg.General.Year = y
	} else {
		fmt.Printf("     Not a year, keeping %d\n", latest)
		cfg.General.Year = 0
	}
	fmt.Println()

	// 3. Theme
	names := theme.Names()
	fmt.Println("  3. Color theme")
	for i, name := range names {
		suffix := ""
		if i == 0 {
			suffix = " [default]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, name, suffix)
	}
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	cfg.Appearance.Theme = names[0]
	if n, err := strconv.Atoi(strings.TrimSpace(themeChoice)); err == nil && n >= 1 && n <= len(names) {
		cfg.Appearance.Theme = names[n-1]
	}
	fmt.Println()

	// 4. Default profile name
	fmt.Println("  4. Default profile name")
	fmt.Printf("     Loaded when no --profile is given [%s]\n", cfg.General.Profile)
	fmt.Print("     > ")
	name, _ := reader.ReadString('\n')
	if name = strings.TrimSpace(name); name != "" {
		cfg.General.Profile = name
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `planwise tui` to build your plan, or `planwise setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
