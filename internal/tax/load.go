package tax

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ratesFile is the YAML shape of a user-supplied rates override. Every
// section is keyed by tax year; entries replace or extend the built-in
// data for that year. Band thresholds accept the string "inf" for the
// open-ended top band.
type ratesFile struct {
	Tax          map[int]map[string]taxTableSpec `yaml:"tax"`
	NI           map[int]map[string]niTableSpec  `yaml:"ni"`
	Limits       map[int]limitsSpec              `yaml:"limits"`
	StatePension map[int]statePensionSpec        `yaml:"state_pension"`
}

type taxTableSpec struct {
	PersonalAllowance float64    `yaml:"personal_allowance"`
	Bands             []bandSpec `yaml:"bands"`
}

type niTableSpec struct {
	Bands []bandSpec `yaml:"bands"`
}

type bandSpec struct {
	Threshold bound   `yaml:"threshold"`
	Rate      float64 `yaml:"rate"`
}

type limitsSpec struct {
	QualifyingLower        float64 `yaml:"qualifying_lower"`
	QualifyingUpper        float64 `yaml:"qualifying_upper"`
	BonusAccountLimit      float64 `yaml:"bonus_account_limit"`
	BonusCutoffAge         int     `yaml:"bonus_cutoff_age"`
	BonusUnlockAge         int     `yaml:"bonus_unlock_age"`
	StandardSavingsLimit   float64 `yaml:"standard_savings_limit"`
	PensionAnnualAllowance float64 `yaml:"pension_annual_allowance"`
	PensionUnlockAge       int     `yaml:"pension_unlock_age"`
}

type statePensionSpec struct {
	Age     int     `yaml:"age"`
	PerYear float64 `yaml:"per_year"`
}

// bound is a band threshold that may be written as the string "inf".
type bound float64

func (b *bound) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		if strings.EqualFold(strings.TrimSpace(s), "inf") {
			*b = bound(math.Inf(1))
			return nil
		}
	}
	var f float64
	if err := value.Decode(&f); err != nil {
		return fmt.Errorf("band threshold %q: %w", value.Value, err)
	}
	*b = bound(f)
	return nil
}

// LoadTables reads a YAML rates file and merges its entries over the
// built-in tables. Each entry fully replaces the matching built-in one;
// years and regions the file does not mention keep their defaults.
func LoadTables(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rates file: %w", err)
	}

	var file ratesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing rates file %s: %w", path, err)
	}

	t := &Tables{
		tax:          make(map[int]map[Region]BandTable, len(defaultTaxBands)),
		ni:           make(map[int]map[string]BandTable, len(defaultNIBands)),
		limits:       make(map[int]Limits, len(defaultLimits)),
		statePension: make(map[int]StatePension, len(defaultStatePension)),
	}
	for year, regions := range defaultTaxBands {
		t.tax[year] = make(map[Region]BandTable, len(regions))
		for region, bt := range regions {
			t.tax[year][region] = bt
		}
	}
	for year, categories := range defaultNIBands {
		t.ni[year] = make(map[string]BandTable, len(categories))
		for category, bt := range categories {
			t.ni[year][category] = bt
		}
	}
	for year, l := range defaultLimits {
		t.limits[year] = l
	}
	for year, sp := range defaultStatePension {
		t.statePension[year] = sp
	}

	for year, regions := range file.Tax {
		if t.tax[year] == nil {
			t.tax[year] = make(map[Region]BandTable, len(regions))
		}
		for region, spec := range regions {
			bands, err := specBands(spec.Bands)
			if err != nil {
				return nil, fmt.Errorf("tax bands for %q in %d: %w", region, year, err)
			}
			t.tax[year][Region(region)] = BandTable{
				Allowance: spec.PersonalAllowance,
				Bands:     bands,
			}
		}
	}
	for year, categories := range file.NI {
		if t.ni[year] == nil {
			t.ni[year] = make(map[string]BandTable, len(categories))
		}
		for category, spec := range categories {
			bands, err := specBands(spec.Bands)
			if err != nil {
				return nil, fmt.Errorf("national insurance bands for %q in %d: %w", category, year, err)
			}
			t.ni[year][category] = BandTable{Bands: bands}
		}
	}
	for year, spec := range file.Limits {
		t.limits[year] = Limits{
			QualifyingLower:        spec.QualifyingLower,
			QualifyingUpper:        spec.QualifyingUpper,
			BonusAccountLimit:      spec.BonusAccountLimit,
			BonusCutoffAge:         spec.BonusCutoffAge,
			BonusUnlockAge:         spec.BonusUnlockAge,
			StandardSavingsLimit:   spec.StandardSavingsLimit,
			PensionAnnualAllowance: spec.PensionAnnualAllowance,
			PensionUnlockAge:       spec.PensionUnlockAge,
		}
	}
	for year, spec := range file.StatePension {
		t.statePension[year] = StatePension{Age: spec.Age, PerYear: spec.PerYear}
	}

	return t, nil
}

// specBands converts and validates a parsed band list: at least one band,
// strictly increasing thresholds, non-negative rates, and an infinite
// final threshold so the walk always terminates.
func specBands(specs []bandSpec) ([]Band, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no bands given")
	}
	bands := make([]Band, len(specs))
	prev := math.Inf(-1)
	for i, s := range specs {
		threshold := float64(s.Threshold)
		if threshold <= prev {
			return nil, fmt.Errorf("band %d threshold %v not above previous %v", i, threshold, prev)
		}
		if s.Rate < 0 {
			return nil, fmt.Errorf("band %d rate %v is negative", i, s.Rate)
		}
		bands[i] = Band{Threshold: threshold, Rate: s.Rate}
		prev = threshold
	}
	if !math.IsInf(prev, 1) {
		return nil, fmt.Errorf("final band threshold must be inf, got %v", prev)
	}
	return bands, nil
}
