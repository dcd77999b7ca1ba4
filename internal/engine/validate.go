package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/planwise/planwise/internal/model"
)

// ErrInvalidPlan reports a profile that fails validation before any
// simulation runs. Errors wrap it with the failing field.
var ErrInvalidPlan = errors.New("invalid plan")

// Validate rejects profiles the simulators must never see: negative
// money, inverted age ranges, unknown modes, and redirection fractions
// that do not account for the whole stopped bonus amount. The fraction
// check only applies when a bonus contribution is configured; with
// nothing to redirect the fractions are irrelevant.
func (e *Engine) Validate(p model.Profile) error {
	if p.Age < 0 {
		return fmt.Errorf("%w: age %d is negative", ErrInvalidPlan, p.Age)
	}
	if p.RetirementAge < p.Age {
		return fmt.Errorf("%w: retirement age %d before current age %d", ErrInvalidPlan, p.RetirementAge, p.Age)
	}
	if p.Drawdown.EndAge < p.RetirementAge {
		return fmt.Errorf("%w: end age %d before retirement age %d", ErrInvalidPlan, p.Drawdown.EndAge, p.RetirementAge)
	}
	if p.Salary < 0 {
		return fmt.Errorf("%w: salary %v is negative", ErrInvalidPlan, p.Salary)
	}
	for k, v := range p.Balances {
		if v < 0 {
			return fmt.Errorf("%w: opening %s balance %v is negative", ErrInvalidPlan, model.AccountKind(k), v)
		}
	}

	c := p.Contributions
	switch c.Mode {
	case "", model.ModeRate, model.ModeAmount:
	default:
		return fmt.Errorf("%w: unknown contribution mode %q", ErrInvalidPlan, c.Mode)
	}
	switch c.Basis {
	case "", model.BasisSalary, model.BasisTakeHome:
	default:
		return fmt.Errorf("%w: unknown rate basis %q", ErrInvalidPlan, c.Basis)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"bonus contribution", c.Bonus},
		{"standard contribution", c.Standard},
		{"personal pension employee contribution", c.PersonalPension.Employee},
		{"personal pension employer contribution", c.PersonalPension.Employer},
		{"employer pension employee contribution", c.EmployerPension.Employee},
		{"employer pension employer contribution", c.EmployerPension.Employer},
		{"redirection to standard savings", c.RedirectToStandard},
		{"redirection to personal pension", c.RedirectToPersonal},
	} {
		if f.value < 0 {
			return fmt.Errorf("%w: %s %v is negative", ErrInvalidPlan, f.name, f.value)
		}
	}
	if c.Bonus > 0 {
		if sum := c.RedirectToStandard + c.RedirectToPersonal; math.Abs(sum-1) > 1e-9 {
			return fmt.Errorf("%w: redirection fractions sum to %v, want 1", ErrInvalidPlan, sum)
		}
	}

	if p.Drawdown.TargetIncome < 0 {
		return fmt.Errorf("%w: target income %v is negative", ErrInvalidPlan, p.Drawdown.TargetIncome)
	}
	for k, share := range p.Drawdown.Shares {
		if share < 0 {
			return fmt.Errorf("%w: %s withdrawal share %v is negative", ErrInvalidPlan, model.AccountKind(k), share)
		}
	}

	if p.Returns.Inflation <= -1 {
		return fmt.Errorf("%w: inflation %v at or below -100%%", ErrInvalidPlan, p.Returns.Inflation)
	}
	for k, r := range p.Returns.Growth {
		if r <= -1 {
			return fmt.Errorf("%w: %s growth %v at or below -100%%", ErrInvalidPlan, model.AccountKind(k), r)
		}
	}
	for k, r := range p.Returns.Drawdown {
		if r <= -1 {
			return fmt.Errorf("%w: %s drawdown growth %v at or below -100%%", ErrInvalidPlan, model.AccountKind(k), r)
		}
	}
	return nil
}
