package engine

import (
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tax"
)

// accumulate runs the saving phase from the current age to the year
// before retirement. Each balance grows first and then receives the
// year's invested amount. Salary is held constant across years; anyone
// modelling pay growth re-runs with adjusted profiles.
func (e *Engine) accumulate(p model.Profile) ([]model.ContributionYear, error) {
	reg := region(p)
	incomeTax, err := e.tables.IncomeTax(p.Salary, reg, p.Year)
	if err != nil {
		return nil, err
	}
	ni, err := e.tables.NationalInsurance(p.Salary, tax.DefaultNICategory, p.Year)
	if err != nil {
		return nil, err
	}
	takeHome := p.Salary - incomeTax - ni

	years := p.RetirementAge - p.Age
	records := make([]model.ContributionYear, 0, years)
	balances := p.Balances
	var cumNet, cumGross model.PerAccount
	for i := 0; i < years; i++ {
		age := p.Age + i
		alloc, err := e.allocate(p, age, takeHome)
		if err != nil {
			return nil, err
		}
		invested := alloc.Invested()
		for k := range balances {
			balances[k] = balances[k]*(1+p.Returns.Growth[k]) + invested[k]
			cumNet[k] += alloc.Net[k]
			cumGross[k] += invested[k]
		}
		records = append(records, model.ContributionYear{
			Age:               age,
			Salary:            p.Salary,
			TakeHome:          takeHome,
			IncomeTax:         incomeTax,
			NationalInsurance: ni,
			Allocation:        alloc,
			Balances:          balances,
			CumulativeNet:     cumNet,
			CumulativeGross:   cumGross,
		})
	}
	return records, nil
}
