package engine

import (
	"math"

	"github.com/planwise/planwise/internal/model"
)

// drawdown runs the retirement phase from retirement age to the plan's
// end age. Targets and the state pension are escalated by inflation
// from the start of retirement; tax is charged on nominal income.
func (e *Engine) drawdown(p model.Profile, opening model.PerAccount) ([]model.RetirementYear, error) {
	reg := region(p)
	statePension, err := e.tables.StatePensionFor(p.Year)
	if err != nil {
		return nil, err
	}

	years := p.Drawdown.EndAge - p.RetirementAge
	records := make([]model.RetirementYear, 0, years)
	balances := opening
	for i := 0; i < years; i++ {
		age := p.RetirementAge + i
		factor := math.Pow(1+p.Returns.Inflation, float64(i))
		target := p.Drawdown.TargetIncome * factor

		withdrawals, shortfall := withdraw(target, age, p.Drawdown, balances)

		var pension float64
		if age >= statePension.Age {
			pension = statePension.PerYear * factor
		}

		// Pension withdrawals and the state pension are taxable income;
		// the savings accounts come out tax free.
		taxable := withdrawals[model.PersonalPension] + withdrawals[model.EmployerPension] + pension
		due, err := e.tables.IncomeTax(taxable, reg, p.Year)
		if err != nil {
			return nil, err
		}

		total := withdrawals.Total() + pension
		for k := range balances {
			balances[k] = (balances[k] - withdrawals[k]) * (1 + p.Returns.Drawdown[k])
		}

		records = append(records, model.RetirementYear{
			Age:             age,
			Factor:          factor,
			Target:          target,
			Withdrawals:     withdrawals,
			StatePension:    pension,
			Shortfall:       shortfall,
			TaxableIncome:   taxable,
			IncomeTax:       due,
			TotalWithdrawal: total,
			AfterTax:        total - due,
			Balances:        balances,
		})
	}
	return records, nil
}

// withdraw splits a nominal target across the accounts for one year.
// Each unlocked account takes its configured share capped at its
// balance; any shortfall is then spread evenly across unlocked accounts
// with balance remaining, capped again. What is still unmet after that
// single pass is returned as the year's shortfall. Shares summing over
// 1 withdraw more than the target and leave a zero shortfall; the
// excess is never clawed back.
func withdraw(target float64, age int, plan model.DrawdownPlan, balances model.PerAccount) (model.PerAccount, float64) {
	var w model.PerAccount
	unlocked := func(k int) bool { return age >= plan.UnlockAges[k] }

	for k := range w {
		if !unlocked(k) {
			continue
		}
		w[k] = math.Min(plan.Shares[k]*target, balances[k])
	}

	shortfall := target - w.Total()
	if shortfall > 0 {
		var open []int
		for k := range w {
			if unlocked(k) && balances[k]-w[k] > 0 {
				open = append(open, k)
			}
		}
		if len(open) > 0 {
			each := shortfall / float64(len(open))
			for _, k := range open {
				w[k] += math.Min(each, balances[k]-w[k])
			}
			shortfall = target - w.Total()
		}
	}
	if shortfall < 0 {
		shortfall = 0
	}
	return w, shortfall
}
