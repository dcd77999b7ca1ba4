package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tax"
)

func testTables(t *testing.T) *tax.Tables {
	t.Helper()
	return tax.DefaultTables()
}

func TestDefault(t *testing.T) {
	tables := testTables(t)
	p, err := Default(tables)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if p.Age != 30 || p.RetirementAge != 67 {
		t.Fatalf("ages = %d/%d, want 30/67", p.Age, p.RetirementAge)
	}
	if p.Salary != 40000 {
		t.Fatalf("salary = %v, want 40000", p.Salary)
	}
	if p.Year != tables.LatestYear() {
		t.Fatalf("year = %d, want latest %d", p.Year, tables.LatestYear())
	}
	if p.Contributions.Mode != model.ModeRate || p.Contributions.Basis != model.BasisSalary {
		t.Fatalf("mode/basis = %q/%q, want rate/salary", p.Contributions.Mode, p.Contributions.Basis)
	}
	if p.Contributions.EmployerPension.Employer != 0.03 {
		t.Fatalf("workplace employer rate = %v, want 0.03", p.Contributions.EmployerPension.Employer)
	}
	limits, err := tables.LimitsFor(p.Year)
	if err != nil {
		t.Fatalf("LimitsFor: %v", err)
	}
	if got := p.Drawdown.UnlockAges[model.BonusSavings]; got != limits.BonusUnlockAge {
		t.Fatalf("bonus unlock age = %d, want %d", got, limits.BonusUnlockAge)
	}
	if got := p.Drawdown.UnlockAges[model.PersonalPension]; got != limits.PensionUnlockAge {
		t.Fatalf("pension unlock age = %d, want %d", got, limits.PensionUnlockAge)
	}
	if got := p.Drawdown.UnlockAges[model.StandardSavings]; got != 0 {
		t.Fatalf("standard unlock age = %d, want 0 (always accessible)", got)
	}
	if p.Drawdown.EndAge != 100 {
		t.Fatalf("end age = %d, want 100", p.Drawdown.EndAge)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tables := testTables(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "plan.yaml")

	want, err := Default(tables)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	want.Name = "plan"
	want.Scotland = true
	want.Balances[model.StandardSavings] = 12500.50
	want.Contributions.QualifyingEarnings = true
	want.Drawdown.TargetIncome = 28000

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path, tables)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	tables := testTables(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sparse.yaml")

	doc := strings.Join([]string{
		"age: 40",
		"retirement_age: 65",
		"salary: 52000",
		"contributions:",
		"  standard: 0.1",
		"drawdown:",
		"  target_income: 24000",
		"  shares:",
		"    standard_savings: 1.0",
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := Load(path, tables)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "sparse" {
		t.Fatalf("name = %q, want %q (file basename)", p.Name, "sparse")
	}
	if p.Year != tables.LatestYear() {
		t.Fatalf("year = %d, want latest %d", p.Year, tables.LatestYear())
	}
	if p.Contributions.Mode != model.ModeRate {
		t.Fatalf("mode = %q, want rate", p.Contributions.Mode)
	}
	if p.Contributions.Basis != model.BasisSalary {
		t.Fatalf("basis = %q, want salary", p.Contributions.Basis)
	}
	if p.Drawdown.EndAge != 100 {
		t.Fatalf("end age = %d, want 100", p.Drawdown.EndAge)
	}
	limits, err := tables.LimitsFor(p.Year)
	if err != nil {
		t.Fatalf("LimitsFor: %v", err)
	}
	if got := p.Drawdown.UnlockAges[model.EmployerPension]; got != limits.PensionUnlockAge {
		t.Fatalf("workplace unlock age = %d, want %d", got, limits.PensionUnlockAge)
	}
	if p.Contributions.Standard != 0.1 {
		t.Fatalf("standard rate = %v, want 0.1", p.Contributions.Standard)
	}
}

func TestLoadExplicitValuesKept(t *testing.T) {
	tables := testTables(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "explicit.yaml")

	doc := strings.Join([]string{
		"name: early-retirement",
		"age: 35",
		"retirement_age: 55",
		"salary: 90000",
		"year: 2023",
		"contributions:",
		"  mode: amount",
		"  bonus: 4000",
		"drawdown:",
		"  target_income: 30000",
		"  unlock_ages:",
		"    bonus_savings: 58",
		"    personal_pension: 55",
		"  end_age: 90",
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := Load(path, tables)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "early-retirement" {
		t.Fatalf("name = %q, want early-retirement (explicit name wins over basename)", p.Name)
	}
	if p.Year != 2023 {
		t.Fatalf("year = %d, want 2023", p.Year)
	}
	if p.Contributions.Mode != model.ModeAmount {
		t.Fatalf("mode = %q, want amount", p.Contributions.Mode)
	}
	if got := p.Drawdown.UnlockAges[model.BonusSavings]; got != 58 {
		t.Fatalf("bonus unlock age = %d, want 58", got)
	}
	if got := p.Drawdown.UnlockAges[model.PersonalPension]; got != 55 {
		t.Fatalf("pension unlock age = %d, want 55", got)
	}
	if p.Drawdown.EndAge != 90 {
		t.Fatalf("end age = %d, want 90", p.Drawdown.EndAge)
	}
}

func TestLoadUnknownYear(t *testing.T) {
	tables := testTables(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "future.yaml")

	doc := "age: 30\nretirement_age: 67\nsalary: 40000\nyear: 2099\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path, tables); err == nil {
		t.Fatal("Load accepted a year with no rate tables")
	}
}

func TestLoadMissingFile(t *testing.T) {
	tables := testTables(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), tables); err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}

func TestLoadMalformed(t *testing.T) {
	tables := testTables(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("age: [not a number\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path, tables); err == nil {
		t.Fatal("Load of malformed YAML succeeded")
	}
}

func TestDecodeEncode(t *testing.T) {
	tables := testTables(t)
	want, err := Default(tables)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	want.Name = "stored"
	raw, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(raw, tables)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Fatalf("decode mismatch:\n got  %+v\n want %+v", got, want)
	}
}
