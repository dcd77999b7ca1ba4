package model

// ValueMode says how the figures in a ContributionPlan are expressed.
type ValueMode string

const (
	// ModeRate reads contribution figures as decimal fractions of pay.
	ModeRate ValueMode = "rate"
	// ModeAmount reads contribution figures as pounds per year.
	ModeAmount ValueMode = "amount"
)

// RateBasis picks the pay base for rate-mode employee contributions.
// Employer contributions and workplace scheme rates are always fractions
// of gross salary regardless of basis.
type RateBasis string

const (
	BasisSalary   RateBasis = "salary"
	BasisTakeHome RateBasis = "take_home"
)

// PensionRates is the employee and employer legs of one pension scheme.
type PensionRates struct {
	Employee float64
	Employer float64
}

// RateOf expresses amount as a fraction of base. A zero or negative
// base yields 0, never an error.
func RateOf(amount, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return amount / base
}

// ContributionPlan sets what goes into each account every year of the
// saving phase, plus where the bonus-account amount is redirected once
// the holder ages out of contributing to it.
type ContributionPlan struct {
	Mode  ValueMode
	Basis RateBasis

	Bonus           float64
	Standard        float64
	PersonalPension PensionRates
	EmployerPension PensionRates

	// QualifyingEarnings applies the workplace scheme's rates to the
	// banded qualifying-earnings slice of salary instead of the whole.
	QualifyingEarnings bool

	// RedirectToStandard and RedirectToPersonal split the stopped
	// bonus-account amount between the standard savings account and the
	// personal pension. They must sum to 1.
	RedirectToStandard float64
	RedirectToPersonal float64
}

// Returns are the annual growth assumptions as decimal fractions.
type Returns struct {
	Growth    PerAccount // while contributing
	Drawdown  PerAccount // after retirement
	Inflation float64
}

// DrawdownPlan controls the retirement phase: a constant income target in
// today's money, each account's share of that target, the age each
// account opens for withdrawals, and the age the projection stops.
type DrawdownPlan struct {
	TargetIncome float64
	Shares       PerAccount
	UnlockAges   [NumAccounts]int
	EndAge       int
}

// Profile is one complete retirement plan: who the saver is, what they
// put away, what they assume about markets, and how they draw down.
type Profile struct {
	Name          string
	Age           int
	RetirementAge int
	Salary        float64
	Scotland      bool
	Year          int

	Balances      PerAccount // opening balances
	Contributions ContributionPlan
	Returns       Returns
	Drawdown      DrawdownPlan
}
