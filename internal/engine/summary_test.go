package engine

import (
	"math"
	"testing"

	"github.com/planwise/planwise/internal/model"
)

func TestSummarizeGrowthMultipleFloor(t *testing.T) {
	e := testEngine()
	p := model.Profile{
		Age:           30,
		RetirementAge: 32,
		Salary:        30000,
		Year:          2025,
		Contributions: model.ContributionPlan{Mode: model.ModeAmount, Standard: 1000},
		Returns:       model.Returns{Growth: model.PerAccount{0, -0.5, 0, 0}},
		Drawdown:      model.DrawdownPlan{EndAge: 100},
	}

	proj, err := e.Project(p)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	// Two years at -50%: balances reach 1500 against 2000 paid in. The
	// raw multiple of 0.75 reads as a floor of 1.
	approx(t, "net contribution", proj.Summary.NetContribution, 2000)
	approx(t, "retirement total", proj.Summary.RetirementTotal, 1500)
	approx(t, "growth multiple", proj.Summary.GrowthMultiple, 1)
}

func TestSummarizeGrowthMultipleUndefined(t *testing.T) {
	e := testEngine()

	p := model.Profile{
		Age:           30,
		RetirementAge: 32,
		Salary:        30000,
		Year:          2025,
		Balances:      model.PerAccount{0, 1000, 0, 0},
		Contributions: model.ContributionPlan{Mode: model.ModeRate},
		Returns:       model.Returns{Growth: model.PerAccount{0, 0.10, 0, 0}},
		Drawdown:      model.DrawdownPlan{EndAge: 100},
	}
	proj, err := e.Project(p)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if !math.IsInf(proj.Summary.GrowthMultiple, 1) {
		t.Errorf("growth multiple with growth but no contributions = %v, want +Inf", proj.Summary.GrowthMultiple)
	}

	p.Balances = model.PerAccount{}
	proj, err = e.Project(p)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if !math.IsNaN(proj.Summary.GrowthMultiple) {
		t.Errorf("growth multiple with nothing at all = %v, want NaN", proj.Summary.GrowthMultiple)
	}
}

func TestSummarizeShortfallAndDepletion(t *testing.T) {
	e := testEngine()
	p := retiredProfile()
	p.Returns.Inflation = 0
	p.Balances = model.PerAccount{0, 0, 5000, 5000}

	proj, err := e.Project(p)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	// Year one drains the pensions 10000 short; every later year misses
	// the full 20000.
	wantShortfall := 10000 + 20000*float64(len(proj.Retirement)-1)
	approx(t, "total shortfall", proj.Summary.TotalShortfall, wantShortfall)
	if proj.Summary.DepletedAge != 67 {
		t.Errorf("depleted age = %d, want 67", proj.Summary.DepletedAge)
	}
	approx(t, "final total", proj.Summary.FinalTotal, 0)
}

func TestSummarizeRefunds(t *testing.T) {
	e := testEngine()
	p := amountProfile()
	p.Age = 30
	p.RetirementAge = 33
	p.Salary = 60000
	p.Contributions.PersonalPension.Employee = 4000

	proj, err := e.Project(p)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	// 1000 refunded each of the three years.
	approx(t, "total refund", proj.Summary.TotalRefund, 3000)
	approx(t, "gross contribution", proj.Summary.GrossContribution, 15000)
	approx(t, "net contribution", proj.Summary.NetContribution, 12000)
}
