package model

import "testing"

func TestPerAccountTotal(t *testing.T) {
	p := PerAccount{100, 200, 300, 400}
	if got := p.Total(); got != 1000 {
		t.Errorf("Total = %v, want 1000", got)
	}
	var zero PerAccount
	if got := zero.Total(); got != 0 {
		t.Errorf("zero Total = %v", got)
	}
}

func TestAllocationInvested(t *testing.T) {
	a := Allocation{
		Gross:    PerAccount{500, 1000, 800, 1500},
		Employer: PerAccount{0, 0, 0, 900},
	}
	inv := a.Invested()
	if inv[EmployerPension] != 2400 {
		t.Errorf("employer pension invested = %v, want 2400", inv[EmployerPension])
	}
	if inv.Total() != 4700 {
		t.Errorf("invested total = %v, want 4700", inv.Total())
	}
}

func TestRetirementYearToday(t *testing.T) {
	y := RetirementYear{
		Factor:      1.25,
		Withdrawals: PerAccount{1250, 2500, 0, 625},
		Balances:    PerAccount{12500, 0, 25000, 0},
	}

	if got := y.Today(1000); got != 800 {
		t.Errorf("Today(1000) = %v, want 800", got)
	}
	if wd := y.TodayWithdrawals(); wd[0] != 1000 || wd[1] != 2000 || wd[3] != 500 {
		t.Errorf("TodayWithdrawals = %v", wd)
	}
	if b := y.TodayBalances(); b[0] != 10000 || b[2] != 20000 {
		t.Errorf("TodayBalances = %v", b)
	}
}

func TestRateOf(t *testing.T) {
	if got := RateOf(5000, 50000); got != 0.1 {
		t.Errorf("RateOf = %v, want 0.1", got)
	}
	if got := RateOf(5000, 0); got != 0 {
		t.Errorf("RateOf zero base = %v, want 0", got)
	}
	if got := RateOf(5000, -1); got != 0 {
		t.Errorf("RateOf negative base = %v, want 0", got)
	}
}

func TestAccountKindNames(t *testing.T) {
	if BonusSavings.String() != "bonus_savings" {
		t.Errorf("String = %q", BonusSavings.String())
	}
	if BonusSavings.Label() != "LISA" {
		t.Errorf("Label = %q", BonusSavings.Label())
	}
	if got := AccountKind(99).Label(); got != "account(99)" {
		t.Errorf("out-of-range Label = %q", got)
	}
}
