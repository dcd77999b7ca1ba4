package tui

import (
	"testing"

	"github.com/planwise/planwise/internal/model"
)

func testApp() App {
	return App{prof: model.Profile{
		Name:          "test",
		Age:           30,
		RetirementAge: 67,
		Salary:        40000,
		Year:          2025,
		Drawdown:      model.DrawdownPlan{TargetIncome: 20000, EndAge: 100},
	}}
}

func TestSettingsCandidateSalary(t *testing.T) {
	a := testApp()

	p, err := a.settingsCandidate(0, "£55,000")
	if err != nil {
		t.Fatalf("settingsCandidate: %v", err)
	}
	if p.Salary != 55000 {
		t.Errorf("Salary = %v, want 55000", p.Salary)
	}
	// The live profile is untouched until commit.
	if a.prof.Salary != 40000 {
		t.Errorf("source profile mutated: %v", a.prof.Salary)
	}
}

func TestSettingsCandidateInflationPercent(t *testing.T) {
	a := testApp()

	p, err := a.settingsCandidate(6, "2.5%")
	if err != nil {
		t.Fatalf("settingsCandidate: %v", err)
	}
	if p.Returns.Inflation != 0.025 {
		t.Errorf("Inflation = %v, want 0.025", p.Returns.Inflation)
	}
}

func TestSettingsCandidateRejectsGarbage(t *testing.T) {
	a := testApp()

	cases := []struct {
		field int
		raw   string
	}{
		{0, "lots"},
		{0, "-100"},
		{1, "thirty"},
		{4, "25/26"},
		{6, "two"},
	}
	for _, tc := range cases {
		if _, err := a.settingsCandidate(tc.field, tc.raw); err == nil {
			t.Errorf("field %d input %q: expected error", tc.field, tc.raw)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"40000", 40000, false},
		{"£40,000", 40000, false},
		{" 1234.56 ", 1234.56, false},
		{"0", 0, false},
		{"-5", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseMoney(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMoney(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseMoney(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupValidators(t *testing.T) {
	if err := validateAge("30"); err != nil {
		t.Errorf("validateAge(30): %v", err)
	}
	if err := validateAge("12"); err == nil {
		t.Error("validateAge(12) should fail")
	}
	if err := validateAge("x"); err == nil {
		t.Error("validateAge(x) should fail")
	}
	if err := validateMoney("40000"); err != nil {
		t.Errorf("validateMoney(40000): %v", err)
	}
	if err := validateMoney("-1"); err == nil {
		t.Error("validateMoney(-1) should fail")
	}
}

func TestSetupDefaultsRoundTrip(t *testing.T) {
	a := testApp()
	vals := setupDefaults(a.prof)

	if vals.name != "test" || vals.age != "30" || vals.retirementAge != "67" || vals.salary != "40000" {
		t.Errorf("setupDefaults = %+v", vals)
	}
}
