package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tui/components"
	"github.com/planwise/planwise/internal/tui/theme"
)

type settingsKind int

const (
	fieldText settingsKind = iota
	fieldToggle
	fieldCycle
)

type settingsField struct {
	label string
	hint  string
	kind  settingsKind
}

var settingsFields = []settingsField{
	{label: "Salary", hint: "gross £ per year", kind: fieldText},
	{label: "Current age", hint: "", kind: fieldText},
	{label: "Retirement age", hint: "", kind: fieldText},
	{label: "Scottish rates", hint: "enter toggles", kind: fieldToggle},
	{label: "Tax year", hint: "e.g. 2025", kind: fieldText},
	{label: "Target income", hint: "£ per year, today's money", kind: fieldText},
	{label: "Inflation", hint: "% per year", kind: fieldText},
	{label: "Theme", hint: "enter cycles", kind: fieldCycle},
}

const settingsFieldCount = 8

// settingsState tracks cursor position and the inline edit in progress.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model

	status    string // feedback from the last commit attempt
	statusErr bool
}

// settingsDisplay returns the formatted value shown for field i.
func (a App) settingsDisplay(i int) string {
	p := a.prof
	switch i {
	case 0:
		return cli.FormatGBP(p.Salary)
	case 1:
		return strconv.Itoa(p.Age)
	case 2:
		return strconv.Itoa(p.RetirementAge)
	case 3:
		if p.Scotland {
			return "yes"
		}
		return "no"
	case 4:
		return cli.FormatTaxYear(p.Year)
	case 5:
		return cli.FormatGBP(p.Drawdown.TargetIncome)
	case 6:
		return cli.FormatPercent(p.Returns.Inflation)
	case 7:
		return theme.Active.Name
	}
	return ""
}

// settingsSeed returns the raw text placed in the input when editing
// field i begins.
func (a App) settingsSeed(i int) string {
	p := a.prof
	switch i {
	case 0:
		return strconv.FormatFloat(p.Salary, 'f', -1, 64)
	case 1:
		return strconv.Itoa(p.Age)
	case 2:
		return strconv.Itoa(p.RetirementAge)
	case 4:
		return strconv.Itoa(p.Year)
	case 5:
		return strconv.FormatFloat(p.Drawdown.TargetIncome, 'f', -1, 64)
	case 6:
		return strconv.FormatFloat(p.Returns.Inflation*100, 'f', -1, 64)
	}
	return ""
}

func parseMoney(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "£")
	raw = strings.ReplaceAll(raw, ",", "")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("enter a number")
	}
	if f < 0 {
		return 0, errors.New("must not be negative")
	}
	return f, nil
}

func parseWholeNumber(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New("enter a whole number")
	}
	return n, nil
}

// settingsCandidate builds the profile that field i set to raw would
// produce. The caller validates it by projecting before committing.
func (a App) settingsCandidate(i int, raw string) (model.Profile, error) {
	p := a.prof
	switch i {
	case 0:
		f, err := parseMoney(raw)
		if err != nil {
			return p, err
		}
		p.Salary = f
	case 1:
		n, err := parseWholeNumber(raw)
		if err != nil {
			return p, err
		}
		p.Age = n
	case 2:
		n, err := parseWholeNumber(raw)
		if err != nil {
			return p, err
		}
		p.RetirementAge = n
	case 4:
		n, err := parseWholeNumber(raw)
		if err != nil {
			return p, err
		}
		p.Year = n
	case 5:
		f, err := parseMoney(raw)
		if err != nil {
			return p, err
		}
		p.Drawdown.TargetIncome = f
	case 6:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "%")), 64)
		if err != nil {
			return p, errors.New("enter a percentage")
		}
		p.Returns.Inflation = f / 100
	}
	return p, nil
}

// settingsStartEdit handles enter on the highlighted field. Toggles and
// cycles apply immediately; text fields open an inline input.
func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	field := settingsFields[a.settings.cursor]

	switch field.kind {
	case fieldToggle:
		p := a.prof
		p.Scotland = !p.Scotland
		return a.commitProfile(p)

	case fieldCycle:
		cycleTheme()
		a.settings.status = "theme: " + theme.Active.Name
		a.settings.statusErr = false
		return a, nil

	default:
		ti := textinput.New()
		ti.SetValue(a.settingsSeed(a.settings.cursor))
		ti.CharLimit = 16
		ti.Width = 18
		ti.Focus()

		a.settings.input = ti
		a.settings.editing = true
		a.settings.status = ""
		return a, textinput.Blink
	}
}

// updateSettingsInput drives the inline edit: esc cancels, enter parses
// and commits, everything else feeds the text input.
func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.settings.editing = false
		a.settings.status = ""
		return a, nil

	case "enter":
		candidate, err := a.settingsCandidate(a.settings.cursor, a.settings.input.Value())
		if err != nil {
			a.settings.status = err.Error()
			a.settings.statusErr = true
			return a, nil
		}
		a.settings.editing = false
		return a.commitProfile(candidate)
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// commitProfile validates a candidate plan by projecting it. Only a
// plan that projects cleanly replaces the live one; it is then saved to
// the profile store so the next launch picks it up.
func (a App) commitProfile(candidate model.Profile) (tea.Model, tea.Cmd) {
	proj, err := a.engine.Project(candidate)
	if err != nil {
		a.settings.status = err.Error()
		a.settings.statusErr = true
		return a, nil
	}

	a.prof = candidate
	a.proj = proj
	a.projErr = nil
	a.savingScroll = 0
	a.drawdownScroll = 0

	a.settings.statusErr = false
	switch {
	case a.store == nil:
		a.settings.status = "applied (no profile store)"
	default:
		if err := a.store.Save(a.prof); err != nil {
			a.settings.status = "applied, but not saved: " + err.Error()
			a.settings.statusErr = true
		} else {
			a.settings.status = "saved"
		}
	}
	return a, nil
}

// cycleTheme advances the active theme and remembers it in the config.
func cycleTheme() {
	names := theme.Names()
	for i, n := range names {
		if n == theme.Active.Name {
			theme.SetActive(names[(i+1)%len(names)])
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.Appearance.Theme = theme.Active.Name
	_ = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var lines []string
	for i, field := range settingsFields {
		selected := i == a.settings.cursor

		var marker string
		if selected {
			marker = markerStyle.Render("▸ ")
		} else {
			marker = hintStyle.Render("  ")
		}

		label := fmt.Sprintf("%-16s", field.label)
		var value string
		switch {
		case selected && a.settings.editing:
			value = a.settings.input.View()
		case selected:
			value = selStyle.Render(" " + a.settingsDisplay(i) + " ")
		default:
			value = valueStyle.Render(a.settingsDisplay(i))
		}

		line := marker + labelStyle.Render(label) + value
		if field.hint != "" && selected && !a.settings.editing {
			line += hintStyle.Render("   " + field.hint)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	if a.settings.status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
		if a.settings.statusErr {
			statusStyle = lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
		}
		lines = append(lines, statusStyle.Render("  "+a.settings.status))
	} else {
		lines = append(lines, hintStyle.Render("  j/k move · enter edit · esc cancel"))
	}

	body := strings.Join(lines, "\n")
	card := components.ContentCard("Settings", body, min(cw, 64))

	note := hintStyle.Render(fmt.Sprintf("Edits re-project instantly and are saved as profile %q.", a.prof.Name))
	return card + "\n" + note
}
