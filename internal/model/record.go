package model

// Allocation is the outcome of splitting one year's contributions across
// the four accounts. Net is what the saver pays in, Gross adds the
// government bonus or at-source relief, Employer is the employer-paid
// amount (never grossed up). The invested amount for an account is
// Gross + Employer.
type Allocation struct {
	Net      PerAccount
	Gross    PerAccount
	Employer PerAccount

	Bonus   float64 // government bonus on the bonus account
	Relief  float64 // 20% at-source relief across employee pension legs
	Refund  float64 // additional marginal-rate refund, floored at 0
	NetCost float64 // sum of nets minus the refund
}

// Invested returns the amount landing in each account this year.
func (a Allocation) Invested() PerAccount {
	var p PerAccount
	for k := range p {
		p[k] = a.Gross[k] + a.Employer[k]
	}
	return p
}

// ContributionYear is one simulated year of the saving phase. Salary,
// tax and take-home repeat the constant inputs for tabular output;
// cumulative figures run from the start of the projection.
type ContributionYear struct {
	Age               int
	Salary            float64
	TakeHome          float64
	IncomeTax         float64
	NationalInsurance float64

	Allocation

	Balances        PerAccount // after growth and this year's investment
	CumulativeNet   PerAccount
	CumulativeGross PerAccount
}

// RetirementYear is one simulated year of the drawdown phase. All money
// fields are nominal for that year; divide by Factor (or use Today) for
// the today's-money view.
type RetirementYear struct {
	Age    int
	Factor float64 // cumulative inflation factor since retirement

	Target       float64    // nominal withdrawal target
	Withdrawals  PerAccount // nominal, capped at balances
	StatePension float64    // nominal, zero before state pension age
	Shortfall    float64    // unmet part of the target, never negative

	TaxableIncome   float64 // pension withdrawals plus state pension
	IncomeTax       float64
	TotalWithdrawal float64 // account withdrawals plus state pension
	AfterTax        float64 // total withdrawal minus income tax

	Balances PerAccount // after withdrawal and growth
}

// Today converts a nominal figure from this year into today's money.
func (y RetirementYear) Today(nominal float64) float64 {
	return nominal / y.Factor
}

// TodayWithdrawals is the withdrawal set in today's money.
func (y RetirementYear) TodayWithdrawals() PerAccount {
	var p PerAccount
	for k, v := range y.Withdrawals {
		p[k] = v / y.Factor
	}
	return p
}

// TodayBalances is the balance set in today's money.
func (y RetirementYear) TodayBalances() PerAccount {
	var p PerAccount
	for k, v := range y.Balances {
		p[k] = v / y.Factor
	}
	return p
}
