package tax

import (
	"fmt"
	"math"
	"sort"
)

// Region selects which income-tax banding applies. National Insurance is
// UK-wide and ignores the region.
type Region string

const (
	// RegionUK is England, Wales and Northern Ireland.
	RegionUK Region = "uk"
	// RegionScotland uses the Scottish income-tax bands.
	RegionScotland Region = "scotland"
)

// DefaultNICategory is the employee Class 1 letter used when no category
// is named. It is the only category the built-in tables carry.
const DefaultNICategory = "category_a"

// Limits are the contribution caps and age gates in force for one tax year.
type Limits struct {
	// QualifyingLower and QualifyingUpper bound the qualifying-earnings
	// band used when workplace contributions are taken on banded pay.
	QualifyingLower float64
	QualifyingUpper float64

	// BonusAccountLimit caps net contributions into the bonus savings
	// account each year. BonusCutoffAge is the age at which contributions
	// stop; BonusUnlockAge is the age penalty-free withdrawals begin.
	BonusAccountLimit float64
	BonusCutoffAge    int
	BonusUnlockAge    int

	// StandardSavingsLimit is the shared annual cap across both savings
	// accounts, measured against the bonus account's gross contribution.
	StandardSavingsLimit float64

	// PensionAnnualAllowance caps combined gross pension contributions.
	// PensionUnlockAge is the earliest drawdown age for private pensions.
	PensionAnnualAllowance float64
	PensionUnlockAge       int
}

// StatePension is the flat entitlement for one tax year: paid from Age at
// PerYear pounds, uprated by inflation inside the drawdown projection.
type StatePension struct {
	Age     int
	PerYear float64
}

// Tables is the immutable set of rate tables keyed by tax year. Construct
// once with DefaultTables or LoadTables and pass by reference; lookups
// never mutate, so a single value is safe to share across goroutines.
type Tables struct {
	tax          map[int]map[Region]BandTable
	ni           map[int]map[string]BandTable
	limits       map[int]Limits
	statePension map[int]StatePension
}

// Years are labelled by the calendar year the tax year starts in, so 2025
// means 2025/26. Figures are the published HMRC bands and the Scottish
// Government's rates.

var defaultTaxBands = map[int]map[Region]BandTable{
	2023: {
		RegionUK: {
			Allowance: 12570,
			Bands: []Band{
				{Threshold: 50270, Rate: 0.20},
				{Threshold: 125140, Rate: 0.40},
				{Threshold: math.Inf(1), Rate: 0.45},
			},
		},
		RegionScotland: {
			Allowance: 12570,
			Bands: []Band{
				{Threshold: 14732, Rate: 0.19},
				{Threshold: 25688, Rate: 0.20},
				{Threshold: 43662, Rate: 0.21},
				{Threshold: 125140, Rate: 0.42},
				{Threshold: math.Inf(1), Rate: 0.47},
			},
		},
	},
	2024: {
		RegionUK: {
			Allowance: 12570,
			Bands: []Band{
				{Threshold: 50270, Rate: 0.20},
				{Threshold: 125140, Rate: 0.40},
				{Threshold: math.Inf(1), Rate: 0.45},
			},
		},
		RegionScotland: {
			Allowance: 12570,
			Bands: []Band{
				{Threshold: 14876, Rate: 0.19},
				{Threshold: 26561, Rate: 0.20},
				{Threshold: 43662, Rate: 0.21},
				{Threshold: 75000, Rate: 0.42},
				{Threshold: 125140, Rate: 0.45},
				{Threshold: math.Inf(1), Rate: 0.48},
			},
		},
	},
	2025: {
		RegionUK: {
			Allowance: 12570,
			Bands: []Band{
				{Threshold: 50270, Rate: 0.20},
				{Threshold: 125140, Rate: 0.40},
				{Threshold: math.Inf(1), Rate: 0.45},
			},
		},
		RegionScotland: {
			Allowance: 12570,
			Bands: []Band{
				{Threshold: 15397, Rate: 0.19},
				{Threshold: 27491, Rate: 0.20},
				{Threshold: 43662, Rate: 0.21},
				{Threshold: 75000, Rate: 0.42},
				{Threshold: 125140, Rate: 0.45},
				{Threshold: math.Inf(1), Rate: 0.48},
			},
		},
	},
}

var defaultNIBands = map[int]map[string]BandTable{
	2023: {
		DefaultNICategory: {
			Bands: []Band{
				{Threshold: 12570, Rate: 0},
				{Threshold: 50270, Rate: 0.12},
				{Threshold: math.Inf(1), Rate: 0.02},
			},
		},
	},
	2024: {
		DefaultNICategory: {
			Bands: []Band{
				{Threshold: 12570, Rate: 0},
				{Threshold: 50270, Rate: 0.08},
				{Threshold: math.Inf(1), Rate: 0.02},
			},
		},
	},
	2025: {
		DefaultNICategory: {
			Bands: []Band{
				{Threshold: 12570, Rate: 0},
				{Threshold: 50270, Rate: 0.08},
				{Threshold: math.Inf(1), Rate: 0.02},
			},
		},
	},
}

var defaultLimits = map[int]Limits{
	2023: {
		QualifyingLower:        6240,
		QualifyingUpper:        50270,
		BonusAccountLimit:      4000,
		BonusCutoffAge:         50,
		BonusUnlockAge:         60,
		StandardSavingsLimit:   20000,
		PensionAnnualAllowance: 60000,
		PensionUnlockAge:       55,
	},
	2024: {
		QualifyingLower:        6240,
		QualifyingUpper:        50270,
		BonusAccountLimit:      4000,
		BonusCutoffAge:         50,
		BonusUnlockAge:         60,
		StandardSavingsLimit:   20000,
		PensionAnnualAllowance: 60000,
		PensionUnlockAge:       55,
	},
	2025: {
		QualifyingLower:        6240,
		QualifyingUpper:        50270,
		BonusAccountLimit:      4000,
		BonusCutoffAge:         50,
		BonusUnlockAge:         60,
		StandardSavingsLimit:   20000,
		PensionAnnualAllowance: 60000,
		// Anyone projecting forward reaches their pension after the
		// 2028 rise in the normal minimum pension age.
		PensionUnlockAge: 57,
	},
}

var defaultStatePension = map[int]StatePension{
	2023: {Age: 66, PerYear: 10600},
	2024: {Age: 66, PerYear: 11502},
	2025: {Age: 67, PerYear: 11973},
}

// DefaultTables returns the built-in rate tables.
func DefaultTables() *Tables {
	return &Tables{
		tax:          defaultTaxBands,
		ni:           defaultNIBands,
		limits:       defaultLimits,
		statePension: defaultStatePension,
	}
}

// LatestYear is the most recent tax year with income-tax bands.
func (t *Tables) LatestYear() int {
	latest := 0
	for y := range t.tax {
		if y > latest {
			latest = y
		}
	}
	return latest
}

// Years lists the tax years with income-tax bands, ascending.
func (t *Tables) Years() []int {
	years := make([]int, 0, len(t.tax))
	for y := range t.tax {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// TaxTable returns the income-tax bands for a region and year.
func (t *Tables) TaxTable(region Region, year int) (BandTable, error) {
	bt, ok := t.tax[year][region]
	if !ok {
		return BandTable{}, fmt.Errorf("income tax bands for %q in %d: %w", region, year, ErrNotFound)
	}
	return bt, nil
}

// NITable returns the National Insurance bands for a category letter and year.
func (t *Tables) NITable(category string, year int) (BandTable, error) {
	bt, ok := t.ni[year][category]
	if !ok {
		return BandTable{}, fmt.Errorf("national insurance bands for %q in %d: %w", category, year, ErrNotFound)
	}
	return bt, nil
}

// LimitsFor returns the contribution limits for a year.
func (t *Tables) LimitsFor(year int) (Limits, error) {
	l, ok := t.limits[year]
	if !ok {
		return Limits{}, fmt.Errorf("limits for %d: %w", year, ErrNotFound)
	}
	return l, nil
}

// StatePensionFor returns the state pension entitlement for a year.
func (t *Tables) StatePensionFor(year int) (StatePension, error) {
	sp, ok := t.statePension[year]
	if !ok {
		return StatePension{}, fmt.Errorf("state pension for %d: %w", year, ErrNotFound)
	}
	return sp, nil
}
