package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tui/theme"
)

// setupValues holds the first-run wizard answers. Numeric fields stay
// as strings until the form completes; huh validates them per keystroke.
type setupValues struct {
	name          string
	age           string
	retirementAge string
	salary        string
	scotland      bool
	theme         string
}

func setupDefaults(p model.Profile) setupValues {
	return setupValues{
		name:          p.Name,
		age:           strconv.Itoa(p.Age),
		retirementAge: strconv.Itoa(p.RetirementAge),
		salary:        strconv.FormatFloat(p.Salary, 'f', -1, 64),
		scotland:      p.Scotland,
		theme:         theme.Active.Name,
	}
}

func validateAge(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 16 || n > 100 {
		return errors.New("age must be between 16 and 100")
	}
	return nil
}

func validateMoney(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if f < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// newSetupForm builds the first-run wizard. vals must outlive the form;
// huh writes each answer through the bound pointers.
func newSetupForm(vals *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan name").
				Description("Used to save and reload this plan").
				Placeholder("default").
				Value(&vals.name),

			huh.NewInput().
				Title("Current age").
				Placeholder("30").
				Validate(validateAge).
				Value(&vals.age),

			huh.NewInput().
				Title("Retirement age").
				Placeholder("67").
				Validate(func(s string) error {
					if err := validateAge(s); err != nil {
						return err
					}
					ret, _ := strconv.Atoi(strings.TrimSpace(s))
					if age, err := strconv.Atoi(strings.TrimSpace(vals.age)); err == nil && ret <= age {
						return errors.New("must be after your current age")
					}
					return nil
				}).
				Value(&vals.retirementAge),

			huh.NewInput().
				Title("Gross annual salary (£)").
				Placeholder("40000").
				Validate(validateMoney).
				Value(&vals.salary),

			huh.NewConfirm().
				Title("Taxed under Scottish rates?").
				Value(&vals.scotland),

			huh.NewSelect[string]().
				Title("Colour theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.theme),
		).Title("Welcome to planwise").
			Description("A few details to start your first projection.\nEverything can be changed later in the Settings tab."),
	)
}

// applySetup folds the wizard answers into the live plan and persists
// them. Persistence is best-effort; the dashboard works in-memory even
// when the config dir or profile store is unwritable.
func (a *App) applySetup() {
	v := a.setupVals

	if name := strings.TrimSpace(v.name); name != "" {
		a.prof.Name = name
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.age)); err == nil {
		a.prof.Age = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.retirementAge)); err == nil {
		a.prof.RetirementAge = n
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(v.salary), 64); err == nil {
		a.prof.Salary = f
	}
	a.prof.Scotland = v.scotland

	theme.SetActive(v.theme)

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.General.Profile = a.prof.Name
	cfg.General.Scotland = a.prof.Scotland
	cfg.Appearance.Theme = v.theme
	_ = config.Save(cfg)

	if a.store != nil {
		_ = a.store.Save(a.prof)
	}
}
