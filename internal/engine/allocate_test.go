package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tax"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func testEngine() *Engine {
	return New(tax.DefaultTables())
}

// amountProfile is a 2025 plan with contributions given in pounds.
func amountProfile() model.Profile {
	return model.Profile{
		Age:           30,
		RetirementAge: 67,
		Salary:        50000,
		Year:          2025,
		Contributions: model.ContributionPlan{
			Mode:               model.ModeAmount,
			RedirectToStandard: 0.5,
			RedirectToPersonal: 0.5,
		},
		Drawdown: model.DrawdownPlan{EndAge: 100},
	}
}

func TestAllocateBonusAccount(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name      string
		bonus     float64
		age       int
		wantNet   float64
		wantBonus float64
		wantGross float64
	}{
		{"under limit", 3000, 30, 3000, 750, 3750},
		{"capped at limit", 5000, 30, 4000, 1000, 5000},
		{"last contributing age", 4000, 49, 4000, 1000, 5000},
		{"aged out", 3000, 50, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := amountProfile()
			p.Contributions.Bonus = tt.bonus
			a, err := e.Allocate(p, tt.age)
			if err != nil {
				t.Fatalf("Allocate: %v", err)
			}
			approx(t, "bonus net", a.Net[model.BonusSavings], tt.wantNet)
			approx(t, "bonus", a.Bonus, tt.wantBonus)
			approx(t, "bonus gross", a.Gross[model.BonusSavings], tt.wantGross)
		})
	}
}

func TestAllocateRedirection(t *testing.T) {
	e := testEngine()
	p := amountProfile()
	p.Contributions.Bonus = 3000
	p.Contributions.Standard = 1500
	p.Contributions.RedirectToStandard = 0.6
	p.Contributions.RedirectToPersonal = 0.4

	a, err := e.Allocate(p, 50)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	approx(t, "bonus net", a.Net[model.BonusSavings], 0)
	approx(t, "standard net", a.Net[model.StandardSavings], 1500+0.6*3000)
	approx(t, "personal pension net", a.Net[model.PersonalPension], 0.4*3000)
	approx(t, "personal pension gross", a.Gross[model.PersonalPension], 0.4*3000/0.8)

	// The redirected amounts account for the whole configured bonus
	// contribution.
	redirected := (a.Net[model.StandardSavings] - 1500) + a.Net[model.PersonalPension]
	approx(t, "redirected total", redirected, 3000)
}

func TestAllocateSavingsCap(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name         string
		bonus        float64
		standard     float64
		age          int
		wantStandard float64
	}{
		{"cap leaves room for bonus gross", 4000, 20000, 30, 15000},
		{"under cap untouched", 4000, 10000, 30, 10000},
		{"full cap once aged out", 0, 20000, 50, 20000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := amountProfile()
			p.Contributions.Bonus = tt.bonus
			p.Contributions.Standard = tt.standard
			a, err := e.Allocate(p, tt.age)
			if err != nil {
				t.Fatalf("Allocate: %v", err)
			}
			approx(t, "standard net", a.Net[model.StandardSavings], tt.wantStandard)
			approx(t, "standard gross", a.Gross[model.StandardSavings], tt.wantStandard)
		})
	}
}

func TestAllocatePensionGrossing(t *testing.T) {
	e := testEngine()
	p := amountProfile()
	p.Contributions.PersonalPension = model.PensionRates{Employee: 2500, Employer: 1500}
	p.Contributions.EmployerPension = model.PensionRates{Employee: 1600, Employer: 800}

	a, err := e.Allocate(p, 30)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	approx(t, "personal employee net", a.Net[model.PersonalPension], 2500)
	approx(t, "personal employee gross", a.Gross[model.PersonalPension], 3125)
	approx(t, "workplace employee net", a.Net[model.EmployerPension], 1600)
	approx(t, "workplace employee gross", a.Gross[model.EmployerPension], 2000)

	// Employer amounts pass through without grossing.
	approx(t, "personal employer", a.Employer[model.PersonalPension], 1500)
	approx(t, "workplace employer", a.Employer[model.EmployerPension], 800)

	approx(t, "relief", a.Relief, (3125+2000)*0.20)
}

func TestAllocateAnnualAllowance(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name             string
		personalEE       float64
		employerEE       float64
		personalER       float64
		employerER       float64
		wantPersonalEE   float64 // gross after reduction
		wantEmployerEE   float64
		wantTotalPension float64
	}{
		{
			name:       "excess from personal leg only",
			personalEE: 40000, employerEE: 12000, employerER: 5000,
			wantPersonalEE: 40000, wantEmployerEE: 15000, wantTotalPension: 60000,
		},
		{
			name:       "personal exhausted then workplace leg",
			personalEE: 8000, employerEE: 48000, employerER: 10000,
			wantPersonalEE: 0, wantEmployerEE: 50000, wantTotalPension: 60000,
		},
		{
			name:       "employer amounts never reduced",
			employerER: 70000,
			wantPersonalEE: 0, wantEmployerEE: 0, wantTotalPension: 70000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := amountProfile()
			p.Contributions.PersonalPension = model.PensionRates{Employee: tt.personalEE, Employer: tt.personalER}
			p.Contributions.EmployerPension = model.PensionRates{Employee: tt.employerEE, Employer: tt.employerER}

			a, err := e.Allocate(p, 30)
			if err != nil {
				t.Fatalf("Allocate: %v", err)
			}

			approx(t, "personal employee gross", a.Gross[model.PersonalPension], tt.wantPersonalEE)
			approx(t, "workplace employee gross", a.Gross[model.EmployerPension], tt.wantEmployerEE)
			approx(t, "personal employee net", a.Net[model.PersonalPension], tt.wantPersonalEE*0.8)
			approx(t, "workplace employee net", a.Net[model.EmployerPension], tt.wantEmployerEE*0.8)
			approx(t, "personal employer", a.Employer[model.PersonalPension], tt.personalER)
			approx(t, "workplace employer", a.Employer[model.EmployerPension], tt.employerER)

			total := a.Gross[model.PersonalPension] + a.Gross[model.EmployerPension] +
				a.Employer[model.PersonalPension] + a.Employer[model.EmployerPension]
			approx(t, "total pension", total, tt.wantTotalPension)
		})
	}
}

func TestAllocateRefund(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name        string
		salary      float64
		personalEE  float64
		wantRefund  float64
		wantNetCost float64
	}{
		// Gross 5000 out of a 60000 salary sits in the 40% band:
		// 11432 - 9432 - 1000 at source leaves 1000 to refund.
		{"higher rate refund", 60000, 4000, 1000, 3000},
		// Basic-rate payers get everything at source.
		{"basic rate no refund", 30000, 2000, 0, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := amountProfile()
			p.Salary = tt.salary
			p.Contributions.PersonalPension.Employee = tt.personalEE

			a, err := e.Allocate(p, 30)
			if err != nil {
				t.Fatalf("Allocate: %v", err)
			}
			approx(t, "refund", a.Refund, tt.wantRefund)
			approx(t, "net cost", a.NetCost, tt.wantNetCost)
		})
	}
}

func TestAllocateQualifyingEarnings(t *testing.T) {
	e := testEngine()
	p := amountProfile()
	p.Salary = 20000
	p.Contributions.Mode = model.ModeRate
	p.Contributions.EmployerPension = model.PensionRates{Employee: 0.05, Employer: 0.03}
	p.Contributions.QualifyingEarnings = true

	a, err := e.Allocate(p, 30)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	// Banded pay: min(20000, 50270) - 6240 = 13760.
	approx(t, "workplace employee net", a.Net[model.EmployerPension], 13760*0.05)
	approx(t, "workplace employee gross", a.Gross[model.EmployerPension], 13760*0.05/0.8)
	approx(t, "workplace employer", a.Employer[model.EmployerPension], 13760*0.03)

	p.Contributions.QualifyingEarnings = false
	a, err = e.Allocate(p, 30)
	if err != nil {
		t.Fatalf("Allocate without banding: %v", err)
	}
	approx(t, "unbanded workplace employee net", a.Net[model.EmployerPension], 20000*0.05)

	p.Salary = 5000
	p.Contributions.QualifyingEarnings = true
	a, err = e.Allocate(p, 30)
	if err != nil {
		t.Fatalf("Allocate below band: %v", err)
	}
	approx(t, "below band workplace net", a.Net[model.EmployerPension], 0)
}

func TestAllocateTakeHomeBasis(t *testing.T) {
	e := testEngine()
	p := amountProfile()
	p.Salary = 60000
	p.Contributions.Mode = model.ModeRate
	p.Contributions.Bonus = 0.05
	p.Contributions.RedirectToStandard = 0.5
	p.Contributions.RedirectToPersonal = 0.5

	a, err := e.Allocate(p, 30)
	if err != nil {
		t.Fatalf("Allocate on salary basis: %v", err)
	}
	approx(t, "salary basis bonus net", a.Net[model.BonusSavings], 3000)

	p.Contributions.Basis = model.BasisTakeHome
	a, err = e.Allocate(p, 30)
	if err != nil {
		t.Fatalf("Allocate on take-home basis: %v", err)
	}
	takeHome := 60000.0 - 11432 - 3210.6
	approx(t, "take-home basis bonus net", a.Net[model.BonusSavings], 0.05*takeHome)
}

func TestAllocateInvalidPlans(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name   string
		mutate func(*model.Profile)
	}{
		{"redirection fractions short", func(p *model.Profile) {
			p.Contributions.Bonus = 1000
			p.Contributions.RedirectToStandard = 0.3
			p.Contributions.RedirectToPersonal = 0.4
		}},
		{"negative bonus", func(p *model.Profile) { p.Contributions.Bonus = -100 }},
		{"negative salary", func(p *model.Profile) { p.Salary = -1 }},
		{"retirement before current age", func(p *model.Profile) { p.RetirementAge = 20 }},
		{"end age before retirement", func(p *model.Profile) { p.Drawdown.EndAge = 50 }},
		{"unknown mode", func(p *model.Profile) { p.Contributions.Mode = "percent" }},
		{"unknown basis", func(p *model.Profile) { p.Contributions.Basis = "gross" }},
		{"negative withdrawal share", func(p *model.Profile) { p.Drawdown.Shares[0] = -0.1 }},
		{"impossible inflation", func(p *model.Profile) { p.Returns.Inflation = -1 }},
		{"negative opening balance", func(p *model.Profile) { p.Balances[2] = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := amountProfile()
			tt.mutate(&p)
			if _, err := e.Allocate(p, 30); !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("err = %v, want ErrInvalidPlan", err)
			}
		})
	}
}

func TestAllocateRedirectionIrrelevantWithoutBonus(t *testing.T) {
	e := testEngine()
	p := amountProfile()
	p.Contributions.RedirectToStandard = 0
	p.Contributions.RedirectToPersonal = 0

	if _, err := e.Allocate(p, 30); err != nil {
		t.Errorf("Allocate with no bonus contribution: %v", err)
	}
}

func TestAllocateUnknownYear(t *testing.T) {
	e := testEngine()
	p := amountProfile()
	p.Year = 1999

	if _, err := e.Allocate(p, 30); !errors.Is(err, tax.ErrNotFound) {
		t.Errorf("err = %v, want tax.ErrNotFound", err)
	}
}
