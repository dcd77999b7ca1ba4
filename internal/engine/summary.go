package engine

import "github.com/planwise/planwise/internal/model"

// Summary condenses a full projection into headline figures.
type Summary struct {
	RetirementAge      int
	RetirementBalances model.PerAccount // pot at the start of drawdown
	RetirementTotal    float64

	NetContribution   float64 // employee net paid in over the saving phase
	GrossContribution float64 // invested, including bonuses, relief, employer
	TotalRefund       float64

	// GrowthMultiple is the saving-phase gain per net pound paid in,
	// floored at 1 when anything was paid in. With no net contribution
	// it is +Inf or NaN; renderers print those as "inf" and "NaN".
	GrowthMultiple float64

	FinalBalances  model.PerAccount // at the end of drawdown
	FinalTotal     float64
	TotalShortfall float64 // unmet target across retirement, today's money
	DepletedAge    int     // first year with nothing left and an unmet target; 0 if never
}

// Summarize reduces the two phase sequences of one profile to a Summary.
func Summarize(p model.Profile, contributions []model.ContributionYear, retirement []model.RetirementYear) Summary {
	s := Summary{RetirementAge: p.RetirementAge}

	s.RetirementBalances = p.Balances
	if n := len(contributions); n > 0 {
		last := contributions[n-1]
		s.RetirementBalances = last.Balances
		s.NetContribution = last.CumulativeNet.Total()
		s.GrossContribution = last.CumulativeGross.Total()
	}
	for _, y := range contributions {
		s.TotalRefund += y.Refund
	}
	s.RetirementTotal = s.RetirementBalances.Total()

	s.GrowthMultiple = (s.RetirementTotal - p.Balances.Total()) / s.NetContribution
	if s.NetContribution > 0 && s.GrowthMultiple < 1 {
		s.GrowthMultiple = 1
	}

	s.FinalBalances = s.RetirementBalances
	for _, y := range retirement {
		s.TotalShortfall += y.Shortfall / y.Factor
		if s.DepletedAge == 0 && y.Shortfall > 0 && y.Balances.Total() <= 0 {
			s.DepletedAge = y.Age
		}
	}
	if n := len(retirement); n > 0 {
		s.FinalBalances = retirement[n-1].Balances
	}
	s.FinalTotal = s.FinalBalances.Total()
	return s
}
