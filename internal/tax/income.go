package tax

// IncomeTax returns the income tax due on a gross annual income.
func (t *Tables) IncomeTax(income float64, region Region, year int) (float64, error) {
	bt, err := t.TaxTable(region, year)
	if err != nil {
		return 0, err
	}
	return bt.Due(income), nil
}

// NationalInsurance returns the employee Class 1 contribution due on a
// gross annual income under the given category letter.
func (t *Tables) NationalInsurance(income float64, category string, year int) (float64, error) {
	bt, err := t.NITable(category, year)
	if err != nil {
		return 0, err
	}
	return bt.Due(income), nil
}

// TakeHome returns gross income less income tax and employee National
// Insurance, before any pension or savings contributions.
func (t *Tables) TakeHome(income float64, region Region, year int) (float64, error) {
	bt, err := t.TaxTable(region, year)
	if err != nil {
		return 0, err
	}
	ni, err := t.NITable(DefaultNICategory, year)
	if err != nil {
		return 0, err
	}
	return income - bt.Due(income) - ni.Due(income), nil
}
