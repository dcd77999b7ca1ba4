package engine

import (
	"math"

	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tax"
)

// Allocate splits one year's contributions for a profile at the given
// age: the bonus-account age gate and cap, the shared savings limit,
// relief-at-source grossing, the pension annual allowance, and the
// marginal-rate refund.
func (e *Engine) Allocate(p model.Profile, age int) (model.Allocation, error) {
	if err := e.Validate(p); err != nil {
		return model.Allocation{}, err
	}
	takeHome, err := e.tables.TakeHome(p.Salary, region(p), p.Year)
	if err != nil {
		return model.Allocation{}, err
	}
	return e.allocate(p, age, takeHome)
}

func (e *Engine) allocate(p model.Profile, age int, takeHome float64) (model.Allocation, error) {
	limits, err := e.tables.LimitsFor(p.Year)
	if err != nil {
		return model.Allocation{}, err
	}
	amt := resolveAmounts(p, limits, takeHome)

	var a model.Allocation

	// The bonus account takes net contributions up to its annual limit
	// until the holder ages out; past that age the configured amount,
	// uncapped, is redirected per the plan's fractions.
	var bonusNet, redirectStandard, redirectPersonal float64
	if age < limits.BonusCutoffAge {
		bonusNet = math.Min(amt.bonus, limits.BonusAccountLimit)
	} else {
		redirectStandard = p.Contributions.RedirectToStandard * amt.bonus
		redirectPersonal = p.Contributions.RedirectToPersonal * amt.bonus
	}
	a.Bonus = bonusNet * 0.25
	bonusGross := bonusNet + a.Bonus

	// Standard savings share the annual savings limit with the bonus
	// account's gross contribution.
	standardNet := amt.standard + redirectStandard
	if limit := limits.StandardSavingsLimit - bonusGross; standardNet > limit {
		standardNet = math.Max(limit, 0)
	}

	personalEEGross := grossUp(amt.personalEE + redirectPersonal)
	employerEEGross := grossUp(amt.employerEE)

	// The annual allowance counts every pension leg. Excess comes out
	// of the personal employee leg first, then the workplace employee
	// leg; employer amounts are never reduced.
	excess := personalEEGross + employerEEGross + amt.personalER + amt.employerER - limits.PensionAnnualAllowance
	if excess > 0 {
		cut := math.Min(excess, personalEEGross)
		personalEEGross -= cut
		excess -= cut
		employerEEGross -= math.Min(excess, employerEEGross)
	}

	a.Net[model.BonusSavings] = bonusNet
	a.Gross[model.BonusSavings] = bonusGross
	a.Net[model.StandardSavings] = standardNet
	a.Gross[model.StandardSavings] = standardNet
	a.Net[model.PersonalPension] = personalEEGross * 0.8
	a.Gross[model.PersonalPension] = personalEEGross
	a.Employer[model.PersonalPension] = amt.personalER
	a.Net[model.EmployerPension] = employerEEGross * 0.8
	a.Gross[model.EmployerPension] = employerEEGross
	a.Employer[model.EmployerPension] = amt.employerER

	// Relief beyond the 20% granted at source comes back as a refund
	// against the year's income tax.
	eeGross := personalEEGross + employerEEGross
	a.Relief = eeGross * 0.20
	taxBefore, err := e.tables.IncomeTax(p.Salary, region(p), p.Year)
	if err != nil {
		return model.Allocation{}, err
	}
	taxAfter, err := e.tables.IncomeTax(p.Salary-eeGross, region(p), p.Year)
	if err != nil {
		return model.Allocation{}, err
	}
	a.Refund = math.Max(taxBefore-taxAfter-a.Relief, 0)
	a.NetCost = a.Net.Total() - a.Refund
	return a, nil
}

// amounts are the resolved pound figures for one year, before caps.
type amounts struct {
	bonus      float64
	standard   float64
	personalEE float64
	personalER float64
	employerEE float64
	employerER float64
}

// resolveAmounts turns the plan's figures into pounds. Amount mode
// passes them through. Rate mode multiplies employee rates by salary or
// take-home pay per the basis; workplace scheme rates always apply to
// salary, banded to qualifying earnings when enabled; employer rates
// always apply to salary.
func resolveAmounts(p model.Profile, limits tax.Limits, takeHome float64) amounts {
	c := p.Contributions
	if c.Mode == model.ModeAmount {
		return amounts{
			bonus:      c.Bonus,
			standard:   c.Standard,
			personalEE: c.PersonalPension.Employee,
			personalER: c.PersonalPension.Employer,
			employerEE: c.EmployerPension.Employee,
			employerER: c.EmployerPension.Employer,
		}
	}

	employeeBase := p.Salary
	if c.Basis == model.BasisTakeHome {
		employeeBase = takeHome
	}
	schemeBase := p.Salary
	if c.QualifyingEarnings {
		schemeBase = qualifyingBase(p.Salary, limits)
	}
	return amounts{
		bonus:      c.Bonus * employeeBase,
		standard:   c.Standard * employeeBase,
		personalEE: c.PersonalPension.Employee * employeeBase,
		personalER: c.PersonalPension.Employer * p.Salary,
		employerEE: c.EmployerPension.Employee * schemeBase,
		employerER: c.EmployerPension.Employer * schemeBase,
	}
}

// qualifyingBase clips salary to the qualifying-earnings band.
func qualifyingBase(salary float64, limits tax.Limits) float64 {
	base := math.Min(salary, limits.QualifyingUpper) - limits.QualifyingLower
	if base < 0 {
		return 0
	}
	return base
}

// grossUp converts an employee net pension contribution into the gross
// invested amount under relief at source.
func grossUp(net float64) float64 {
	if net <= 0 {
		return 0
	}
	return net / 0.8
}
