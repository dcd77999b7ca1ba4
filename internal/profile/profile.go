// Package profile reads and writes plan files: YAML documents that
// fully describe one projection run.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tax"
)

// profileFile is the YAML shape of a saved plan. Money and rate fields
// read exactly as written, zero included; structural fields (year,
// mode, unlock ages, end age) fall back to defaults at load time.
type profileFile struct {
	Name          string            `yaml:"name,omitempty"`
	Age           int               `yaml:"age"`
	RetirementAge int               `yaml:"retirement_age"`
	Salary        float64           `yaml:"salary"`
	Scotland      bool              `yaml:"scotland"`
	Year          int               `yaml:"year,omitempty"`
	Balances      accountsFile      `yaml:"balances,omitempty"`
	Contributions contributionsFile `yaml:"contributions"`
	Returns       returnsFile       `yaml:"returns"`
	Drawdown      drawdownFile      `yaml:"drawdown"`
}

type accountsFile struct {
	BonusSavings    float64 `yaml:"bonus_savings"`
	StandardSavings float64 `yaml:"standard_savings"`
	PersonalPension float64 `yaml:"personal_pension"`
	EmployerPension float64 `yaml:"employer_pension"`
}

type agesFile struct {
	BonusSavings    int `yaml:"bonus_savings"`
	StandardSavings int `yaml:"standard_savings"`
	PersonalPension int `yaml:"personal_pension"`
	EmployerPension int `yaml:"employer_pension"`
}

type pensionFile struct {
	Employee float64 `yaml:"employee"`
	Employer float64 `yaml:"employer"`
}

type contributionsFile struct {
	Mode               string      `yaml:"mode,omitempty"`
	Basis              string      `yaml:"basis,omitempty"`
	Bonus              float64     `yaml:"bonus"`
	Standard           float64     `yaml:"standard"`
	PersonalPension    pensionFile `yaml:"personal_pension"`
	EmployerPension    pensionFile `yaml:"employer_pension"`
	QualifyingEarnings bool        `yaml:"qualifying_earnings"`
	RedirectToStandard float64     `yaml:"redirect_to_standard"`
	RedirectToPersonal float64     `yaml:"redirect_to_personal"`
}

type returnsFile struct {
	Growth    accountsFile `yaml:"growth"`
	Drawdown  accountsFile `yaml:"drawdown"`
	Inflation float64      `yaml:"inflation"`
}

type drawdownFile struct {
	TargetIncome float64      `yaml:"target_income"`
	Shares       accountsFile `yaml:"shares"`
	UnlockAges   agesFile     `yaml:"unlock_ages"`
	EndAge       int          `yaml:"end_age,omitempty"`
}

func (f accountsFile) toModel() model.PerAccount {
	return model.PerAccount{f.BonusSavings, f.StandardSavings, f.PersonalPension, f.EmployerPension}
}

func accountsFromModel(p model.PerAccount) accountsFile {
	return accountsFile{
		BonusSavings:    p[model.BonusSavings],
		StandardSavings: p[model.StandardSavings],
		PersonalPension: p[model.PersonalPension],
		EmployerPension: p[model.EmployerPension],
	}
}

func (f profileFile) toModel() model.Profile {
	return model.Profile{
		Name:          f.Name,
		Age:           f.Age,
		RetirementAge: f.RetirementAge,
		Salary:        f.Salary,
		Scotland:      f.Scotland,
		Year:          f.Year,
		Balances:      f.Balances.toModel(),
		Contributions: model.ContributionPlan{
			Mode:               model.ValueMode(f.Contributions.Mode),
			Basis:              model.RateBasis(f.Contributions.Basis),
			Bonus:              f.Contributions.Bonus,
			Standard:           f.Contributions.Standard,
			PersonalPension:    model.PensionRates(f.Contributions.PersonalPension),
			EmployerPension:    model.PensionRates(f.Contributions.EmployerPension),
			QualifyingEarnings: f.Contributions.QualifyingEarnings,
			RedirectToStandard: f.Contributions.RedirectToStandard,
			RedirectToPersonal: f.Contributions.RedirectToPersonal,
		},
		Returns: model.Returns{
			Growth:    f.Returns.Growth.toModel(),
			Drawdown:  f.Returns.Drawdown.toModel(),
			Inflation: f.Returns.Inflation,
		},
		Drawdown: model.DrawdownPlan{
			TargetIncome: f.Drawdown.TargetIncome,
			Shares:       f.Drawdown.Shares.toModel(),
			UnlockAges: [model.NumAccounts]int{
				f.Drawdown.UnlockAges.BonusSavings,
				f.Drawdown.UnlockAges.StandardSavings,
				f.Drawdown.UnlockAges.PersonalPension,
				f.Drawdown.UnlockAges.EmployerPension,
			},
			EndAge: f.Drawdown.EndAge,
		},
	}
}

func fromModel(p model.Profile) profileFile {
	return profileFile{
		Name:          p.Name,
		Age:           p.Age,
		RetirementAge: p.RetirementAge,
		Salary:        p.Salary,
		Scotland:      p.Scotland,
		Year:          p.Year,
		Balances:      accountsFromModel(p.Balances),
		Contributions: contributionsFile{
			Mode:               string(p.Contributions.Mode),
			Basis:              string(p.Contributions.Basis),
			Bonus:              p.Contributions.Bonus,
			Standard:           p.Contributions.Standard,
			PersonalPension:    pensionFile(p.Contributions.PersonalPension),
			EmployerPension:    pensionFile(p.Contributions.EmployerPension),
			QualifyingEarnings: p.Contributions.QualifyingEarnings,
			RedirectToStandard: p.Contributions.RedirectToStandard,
			RedirectToPersonal: p.Contributions.RedirectToPersonal,
		},
		Returns: returnsFile{
			Growth:    accountsFromModel(p.Returns.Growth),
			Drawdown:  accountsFromModel(p.Returns.Drawdown),
			Inflation: p.Returns.Inflation,
		},
		Drawdown: drawdownFile{
			TargetIncome: p.Drawdown.TargetIncome,
			Shares:       accountsFromModel(p.Drawdown.Shares),
			UnlockAges: agesFile{
				BonusSavings:    p.Drawdown.UnlockAges[model.BonusSavings],
				StandardSavings: p.Drawdown.UnlockAges[model.StandardSavings],
				PersonalPension: p.Drawdown.UnlockAges[model.PersonalPension],
				EmployerPension: p.Drawdown.UnlockAges[model.EmployerPension],
			},
			EndAge: p.Drawdown.EndAge,
		},
	}
}

// Default is the canonical starter plan: a 30 year old on 40000
// contributing 5% across the board with a 3% workplace match, retiring
// at 67 into a 20000 today's-money target drawn evenly from all four
// accounts until 100.
func Default(tables *tax.Tables) (model.Profile, error) {
	p := model.Profile{
		Name:          "default",
		Age:           30,
		RetirementAge: 67,
		Salary:        40000,
		Contributions: model.ContributionPlan{
			Mode:               model.ModeRate,
			Basis:              model.BasisSalary,
			Bonus:              0.05,
			Standard:           0.05,
			PersonalPension:    model.PensionRates{Employee: 0.05},
			EmployerPension:    model.PensionRates{Employee: 0.05, Employer: 0.03},
			RedirectToStandard: 0.5,
			RedirectToPersonal: 0.5,
		},
		Returns: model.Returns{
			Growth:    model.PerAccount{0.05, 0.05, 0.05, 0.05},
			Drawdown:  model.PerAccount{0.05, 0.05, 0.05, 0.05},
			Inflation: 0.02,
		},
		Drawdown: model.DrawdownPlan{
			TargetIncome: 20000,
			Shares:       model.PerAccount{0.25, 0.25, 0.25, 0.25},
			EndAge:       100,
		},
	}
	return normalize(p, tables)
}

// Load reads a profile file. A missing name falls back to the file
// name; the rest of the gaps fill per normalize.
func Load(path string, tables *tax.Tables) (model.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Profile{}, fmt.Errorf("reading profile: %w", err)
	}
	var f profileFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return model.Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	p := f.toModel()
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return normalize(p, tables)
}

// Decode maps raw YAML bytes to a profile, with the same defaults as
// Load. The store uses it for profiles kept outside the filesystem.
func Decode(raw []byte, tables *tax.Tables) (model.Profile, error) {
	var f profileFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return model.Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return normalize(f.toModel(), tables)
}

// Encode renders a profile as YAML.
func Encode(p model.Profile) ([]byte, error) {
	raw, err := yaml.Marshal(fromModel(p))
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	return raw, nil
}

// Save writes the profile as YAML, creating parent directories.
func Save(path string, p model.Profile) error {
	raw, err := Encode(p)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// normalize fills the structural gaps a handwritten profile usually
// leaves out: the latest tax year, rate mode on a salary basis, the
// statutory unlock ages, and a projection end age of 100.
func normalize(p model.Profile, tables *tax.Tables) (model.Profile, error) {
	if p.Year == 0 {
		p.Year = tables.LatestYear()
	}
	limits, err := tables.LimitsFor(p.Year)
	if err != nil {
		return model.Profile{}, err
	}
	if p.Contributions.Mode == "" {
		p.Contributions.Mode = model.ModeRate
	}
	if p.Contributions.Basis == "" {
		p.Contributions.Basis = model.BasisSalary
	}
	if p.Drawdown.EndAge == 0 {
		p.Drawdown.EndAge = 100
	}
	ages := &p.Drawdown.UnlockAges
	if ages[model.BonusSavings] == 0 {
		ages[model.BonusSavings] = limits.BonusUnlockAge
	}
	if ages[model.PersonalPension] == 0 {
		ages[model.PersonalPension] = limits.PensionUnlockAge
	}
	if ages[model.EmployerPension] == 0 {
		ages[model.EmployerPension] = limits.PensionUnlockAge
	}
	return p, nil
}
