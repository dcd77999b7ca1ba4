package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/profile"
	"github.com/planwise/planwise/internal/store"
	"github.com/planwise/planwise/internal/tax"
)

var (
	flagYear     int
	flagScotland bool
	flagRates    string
	flagProfile  string
)

var rootCmd = &cobra.Command{
	Use:   "planwise",
	Short: "UK retirement savings projector",
	Long:  "Project UK retirement savings year by year: income tax, NI, LISA/ISA/pension allocation, growth, and drawdown.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an
	// initialization cycle (runProject refers back to rootCmd).
	rootCmd.RunE = runProject
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Tax year by start year, e.g. 2025 for 2025/26")
	rootCmd.PersistentFlags().BoolVar(&flagScotland, "scotland", false, "Use Scottish income tax bands")
	rootCmd.PersistentFlags().StringVar(&flagRates, "rates", "", "YAML file overriding the built-in rate tables")
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "Profile name from the store, or path to a plan file")
}

var cachedCfg *config.Config

// loadConfig never fails; a broken config file falls back to defaults
// with a warning.
func loadConfig() config.Config {
	if cachedCfg == nil {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: %v (using default config)\n", err)
			cfg = config.DefaultConfig()
		}
		cachedCfg = &cfg
	}
	return *cachedCfg
}

// loadTables builds the rate tables. --rates wins over the configured
// override file; with neither, the built-in years apply.
func loadTables() (*tax.Tables, error) {
	path := flagRates
	if path == "" {
		path = config.RatesPath(loadConfig())
	}
	if path == "" {
		return tax.DefaultTables(), nil
	}

	tables, err := tax.LoadTables(path)
	if err != nil {
		return nil, fmt.Errorf("loading rates from %s: %w", path, err)
	}
	return tables, nil
}

// resolveProfile loads the plan to project: an explicit plan file, a
// named profile from the store, the configured default profile, or the
// built-in defaults, in that order. Flag overrides apply last.
func resolveProfile(tables *tax.Tables) (model.Profile, error) {
	p, err := baseProfile(tables)
	if err != nil {
		return model.Profile{}, err
	}
	applyOverrides(&p)
	return p, nil
}

func baseProfile(tables *tax.Tables) (model.Profile, error) {
	if flagProfile != "" {
		if isPlanFile(flagProfile) {
			return profile.Load(flagProfile, tables)
		}
		return storeLoad(flagProfile, tables)
	}

	cfg := loadConfig()
	if name := cfg.General.Profile; name != "" {
		p, err := storeLoad(name, tables)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return model.Profile{}, err
		}
		// Configured profile was never saved; fall through to defaults.
	}

	p, err := profile.Default(tables)
	if err != nil {
		return model.Profile{}, err
	}
	if cfg.General.Year != 0 {
		p.Year = cfg.General.Year
	}
	if cfg.General.Scotland {
		p.Scotland = true
	}
	return p, nil
}

// isPlanFile says whether a --profile value names a YAML plan file
// rather than a stored profile.
func isPlanFile(s string) bool {
	return strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml") ||
		strings.ContainsRune(s, os.PathSeparator)
}

func storeLoad(name string, tables *tax.Tables) (model.Profile, error) {
	st, err := store.Open(store.DefaultPath(), tables)
	if err != nil {
		return model.Profile{}, fmt.Errorf("opening profile store: %w", err)
	}
	defer st.Close()
	return st.Load(name)
}

func applyOverrides(p *model.Profile) {
	if flagYear != 0 {
		p.Year = flagYear
	}
	if rootCmd.PersistentFlags().Changed("scotland") {
		p.Scotland = flagScotland
	}
}

// yearArg resolves the effective tax year for the table commands:
// --year, then the configured year, then the latest built-in year.
func yearArg(tables *tax.Tables) int {
	if flagYear != 0 {
		return flagYear
	}
	if y := loadConfig().General.Year; y != 0 {
		return y
	}
	return tables.LatestYear()
}

// regionArg resolves the effective region for the table commands.
func regionArg() tax.Region {
	if rootCmd.PersistentFlags().Changed("scotland") {
		if flagScotland {
			return tax.RegionScotland
		}
		return tax.RegionUK
	}
	if loadConfig().General.Scotland {
		return tax.RegionScotland
	}
	return tax.RegionUK
}
