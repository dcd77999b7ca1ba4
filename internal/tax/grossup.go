package tax

// grossTolerance is the convergence width, in pounds, for the gross-up
// binary search.
const grossTolerance = 0.001

// GrossFromTakeHome inverts the tax calculation: it returns the gross
// income needed to land on takeHome after income tax. statePension is
// taxable income already using up the personal allowance, so a non-zero
// value shrinks the allowance available to the remainder (floored at
// zero). National Insurance is not considered; drawdown income is not
// subject to it.
func (t *Tables) GrossFromTakeHome(takeHome float64, region Region, year int, statePension float64) (float64, error) {
	bt, err := t.TaxTable(region, year)
	if err != nil {
		return 0, err
	}
	if takeHome <= 0 {
		return 0, nil
	}
	if statePension > 0 {
		bt.Allowance -= statePension
		if bt.Allowance < 0 {
			bt.Allowance = 0
		}
	}

	low, high := 0.0, takeHome*2
	for i := 0; i < 20 && high-low > grossTolerance; i++ {
		mid := (low + high) / 2
		if mid-bt.Due(mid) < takeHome {
			low = mid
		} else {
			high = mid
		}
	}
	return (low + high) / 2, nil
}
