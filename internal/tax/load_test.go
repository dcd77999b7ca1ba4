package tax

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRates(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing rates file: %v", err)
	}
	return path
}

func TestLoadTablesOverride(t *testing.T) {
	path := writeRates(t, `
tax:
  2025:
    uk:
      personal_allowance: 10000
      bands:
        - threshold: 20000
          rate: 0.10
        - threshold: "inf"
          rate: 0.50
`)

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	got, err := tables.IncomeTax(30000, RegionUK, 2025)
	if err != nil {
		t.Fatalf("IncomeTax: %v", err)
	}
	approx(t, "overridden uk tax", got, 10000*0.10+10000*0.50, 1e-9)

	// Entries the file does not mention keep their defaults.
	scot, err := tables.TaxTable(RegionScotland, 2025)
	if err != nil {
		t.Fatalf("TaxTable scotland: %v", err)
	}
	if scot.Bands[0].Rate != 0.19 {
		t.Errorf("scotland starter rate = %v, want 0.19", scot.Bands[0].Rate)
	}
	if _, err := tables.LimitsFor(2025); err != nil {
		t.Errorf("LimitsFor 2025 after override: %v", err)
	}
}

func TestLoadTablesNewYear(t *testing.T) {
	path := writeRates(t, `
tax:
  2026:
    uk:
      personal_allowance: 12570
      bands:
        - threshold: 50270
          rate: 0.20
        - threshold: inf
          rate: 0.45
state_pension:
  2026:
    age: 67
    per_year: 12300
`)

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	if got := tables.LatestYear(); got != 2026 {
		t.Errorf("LatestYear = %d, want 2026", got)
	}
	sp, err := tables.StatePensionFor(2026)
	if err != nil {
		t.Fatalf("StatePensionFor 2026: %v", err)
	}
	if sp.PerYear != 12300 {
		t.Errorf("state pension per year = %v, want 12300", sp.PerYear)
	}
	// Limits were not supplied for the new year.
	if _, err := tables.LimitsFor(2026); !errors.Is(err, ErrNotFound) {
		t.Errorf("LimitsFor 2026: err = %v, want ErrNotFound", err)
	}
}

func TestLoadTablesInfForms(t *testing.T) {
	tests := []struct {
		name string
		form string
	}{
		{"quoted string", `"inf"`},
		{"bare word", `inf`},
		{"yaml float", `.inf`},
		{"mixed case", `"Inf"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRates(t, `
ni:
  2025:
    category_a:
      bands:
        - threshold: 12570
          rate: 0
        - threshold: `+tt.form+`
          rate: 0.02
`)
			tables, err := LoadTables(path)
			if err != nil {
				t.Fatalf("LoadTables: %v", err)
			}
			bt, err := tables.NITable(DefaultNICategory, 2025)
			if err != nil {
				t.Fatalf("NITable: %v", err)
			}
			last := bt.Bands[len(bt.Bands)-1]
			if !math.IsInf(last.Threshold, 1) {
				t.Errorf("final threshold = %v, want +Inf", last.Threshold)
			}
		})
	}
}

func TestLoadTablesValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"no bands",
			`
tax:
  2025:
    uk:
      personal_allowance: 12570
      bands: []
`,
			"no bands",
		},
		{
			"thresholds out of order",
			`
tax:
  2025:
    uk:
      personal_allowance: 12570
      bands:
        - threshold: 50000
          rate: 0.2
        - threshold: 40000
          rate: 0.4
        - threshold: inf
          rate: 0.45
`,
			"not above previous",
		},
		{
			"finite final band",
			`
ni:
  2025:
    category_a:
      bands:
        - threshold: 12570
          rate: 0
        - threshold: 50270
          rate: 0.08
`,
			"must be inf",
		},
		{
			"negative rate",
			`
tax:
  2025:
    uk:
      personal_allowance: 12570
      bands:
        - threshold: 50270
          rate: -0.2
        - threshold: inf
          rate: 0.45
`,
			"negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRates(t, tt.content)
			_, err := LoadTables(path)
			if err == nil {
				t.Fatal("LoadTables succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	if _, err := LoadTables(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadTables on missing file succeeded, want error")
	}
}

func TestLoadTablesKeepsDefaultsIsolated(t *testing.T) {
	path := writeRates(t, `
tax:
  2025:
    uk:
      personal_allowance: 0
      bands:
        - threshold: inf
          rate: 0.99
`)
	if _, err := LoadTables(path); err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	// The built-in tables must be untouched by a previous load.
	got, err := DefaultTables().IncomeTax(60000, RegionUK, 2025)
	if err != nil {
		t.Fatalf("IncomeTax: %v", err)
	}
	approx(t, "default uk tax after load", got, 11432, 1e-9)
}
