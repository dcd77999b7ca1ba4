// Package tax evaluates UK income tax and National Insurance from banded
// marginal-rate tables, and carries the versioned rate data (bands, limits,
// state pension) that the projection engine depends on.
package tax

import "errors"

// ErrNotFound reports a missing year, region, category, or limits entry.
// Lookups wrap it with the missing key; callers test with errors.Is.
var ErrNotFound = errors.New("rate table not found")

// Band is one marginal-rate step. Threshold is the band's upper edge in
// pounds; the final band of every table uses +Inf so any income terminates
// the walk at the top rate.
type Band struct {
	Threshold float64
	Rate      float64
}

// BandTable is an ordered run of bands plus the allowance exempted before
// the first band applies. Income-tax tables carry the personal allowance;
// National Insurance tables carry a zero allowance and instead open with an
// explicit zero-rate band up to the primary threshold.
type BandTable struct {
	Allowance float64
	Bands     []Band
}

// Due returns the amount owed on income under the table. Zero or negative
// income owes nothing.
func (t BandTable) Due(income float64) float64 {
	if income <= 0 {
		return 0
	}

	taxable := income - t.Allowance
	if taxable < 0 {
		taxable = 0
	}

	var due float64
	prev := t.Allowance
	for _, b := range t.Bands {
		if taxable <= 0 {
			break
		}
		slice := taxable
		if width := b.Threshold - prev; width < slice {
			slice = width
		}
		due += slice * b.Rate
		taxable -= slice
		prev = b.Threshold
	}
	return due
}

// BandSlice records how much of an income fell into one band, for
// per-band breakdowns in the CLI.
type BandSlice struct {
	From   float64
	To     float64
	Rate   float64
	Amount float64
	Due    float64
}

// Breakdown returns the per-band slices of income under the table, skipping
// bands the income never reaches. The sum of the Due fields equals Due(income).
func (t BandTable) Breakdown(income float64) []BandSlice {
	if income <= 0 {
		return nil
	}

	taxable := income - t.Allowance
	if taxable < 0 {
		taxable = 0
	}

	var slices []BandSlice
	prev := t.Allowance
	for _, b := range t.Bands {
		if taxable <= 0 {
			break
		}
		slice := taxable
		if width := b.Threshold - prev; width < slice {
			slice = width
		}
		slices = append(slices, BandSlice{
			From:   prev,
			To:     b.Threshold,
			Rate:   b.Rate,
			Amount: slice,
			Due:    slice * b.Rate,
		})
		taxable -= slice
		prev = b.Threshold
	}
	return slices
}
