// Package tui provides the interactive Bubble Tea dashboard for planwise.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/engine"
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/store"
	"github.com/planwise/planwise/internal/tui/components"
	"github.com/planwise/planwise/internal/tui/theme"
)

// App is the root Bubble Tea model. The projection is recomputed
// synchronously on every plan edit; it is pure arithmetic over a few
// dozen years, so there is no loading state to manage.
type App struct {
	engine  *engine.Engine
	store   *store.Store // nil when the profile store could not be opened
	prof    model.Profile
	proj    *engine.Projection
	projErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	savingScroll   int
	drawdownScroll int
	drawdownToday  bool // show the drawdown schedule in today's money
	settings       settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

const (
	tabOverview = iota
	tabSaving
	tabDrawdown
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	scrollOverhead   = 10 // approximate header + status bar height for half-page calc
	minContentHeight = 5
)

// NewApp creates a new TUI app model projecting the given plan.
// st may be nil; saving from the dashboard is then disabled.
func NewApp(eng *engine.Engine, st *store.Store, prof model.Profile) App {
	a := App{
		engine:    eng,
		store:     st,
		prof:      prof,
		needSetup: !config.Exists(),
	}
	a.recompute()

	if a.needSetup {
		a.setupVals = setupDefaults(prof)
		a.setupForm = newSetupForm(&a.setupVals)
	}

	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) recompute() {
	proj, err := a.engine.Project(a.prof)
	if err != nil {
		a.projErr = err
		return
	}
	a.proj = proj
	a.projErr = nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to setup form if active
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollActive(-1)
			return a, nil

		case tea.MouseButtonWheelDown:
			a.scrollActive(1)
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar occupies the top line
			if msg.Y <= 1 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Schedule tabs scroll
		if a.activeTab == tabSaving || a.activeTab == tabDrawdown {
			switch key {
			case "j", "down":
				a.scrollActive(1)
				return a, nil
			case "k", "up":
				a.scrollActive(-1)
				return a, nil
			case "g":
				a.setActiveScroll(0)
				return a, nil
			case "G":
				a.setActiveScroll(1 << 30)
				return a, nil
			case "ctrl+d":
				a.scrollActive(a.halfPage())
				return a, nil
			case "ctrl+u":
				a.scrollActive(-a.halfPage())
				return a, nil
			}
		}

		// Today's-money toggle on the drawdown schedule
		if a.activeTab == tabDrawdown && key == "t" {
			a.drawdownToday = !a.drawdownToday
			return a, nil
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		// Quit
		if key == "q" {
			return a, tea.Quit
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.applySetup()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// scrollActive moves the active schedule by delta lines.
func (a *App) scrollActive(delta int) {
	switch a.activeTab {
	case tabSaving:
		a.savingScroll += delta
	case tabDrawdown:
		a.drawdownScroll += delta
	}
	a.clampScrolls()
}

func (a *App) setActiveScroll(v int) {
	switch a.activeTab {
	case tabSaving:
		a.savingScroll = v
	case tabDrawdown:
		a.drawdownScroll = v
	}
	a.clampScrolls()
}

func (a *App) clampScrolls() {
	if a.proj == nil {
		a.savingScroll = 0
		a.drawdownScroll = 0
		return
	}
	a.savingScroll = clampScroll(a.savingScroll, len(a.proj.Contributions)-a.savingVisibleRows())
	a.drawdownScroll = clampScroll(a.drawdownScroll, len(a.proj.Retirement)-a.drawdownVisibleRows())
}

func clampScroll(v, maxV int) int {
	if v > maxV {
		v = maxV
	}
	if v < 0 {
		v = 0
	}
	return v
}

// contentHeight estimates the tab content zone: the terminal minus the
// two header lines and the status bar. viewMain measures the rendered
// pieces instead; the two agree for any terminal this fits in.
func (a App) contentHeight() int {
	h := a.height - 3
	if h < minContentHeight {
		h = minContentHeight
	}
	return h
}

// allocCardHeight is the rendered height of the allocation card: ten
// body lines plus the title and two border lines.
const allocCardHeight = 13

func (a App) savingVisibleRows() int {
	vis := a.contentHeight() - allocCardHeight - scheduleChrome
	if vis < 3 {
		vis = 3
	}
	return vis
}

func (a App) drawdownVisibleRows() int {
	coverH := len(a.coverageMilestones()) + 3
	if a.proj.Summary.DepletedAge > 0 {
		coverH += 2
	}
	vis := a.contentHeight() - coverH - scheduleChrome
	if vis < 3 {
		vis = 3
	}
	return vis
}

func (a App) halfPage() int {
	half := (a.height - scrollOverhead) / 2
	if half < 1 {
		half = 1
	}
	return half
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  planwise needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o s d x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Scroll schedules"},
		{"g G", "Top / Bottom"},
		{"^d ^u", "Half-page scroll"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"t", "Today's money (drawdown)"},
		{"Enter", "Edit setting"},
		{"Esc", "Cancel edit"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + plan pill)
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pill := pillStyle.Render(" ") +
		pillAccentStyle.Render(truncStr(a.prof.Name, 24)) +
		pillStyle.Render(" │ ") +
		pillAccentStyle.Render(fmt.Sprintf("%d → %d → %d", a.prof.Age, a.prof.RetirementAge, a.prof.Drawdown.EndAge)) +
		pillStyle.Render(" │ ") +
		pillAccentStyle.Render(cli.FormatGBP(a.prof.Salary)) +
		pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		pillRowStyle.Render(pill)

	// 2. Render status bar
	statusBar := components.RenderStatusBar(w, a.prof.Name, cli.FormatTaxYear(a.prof.Year), a.regionLabel())

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content
	var content string
	if a.proj == nil {
		content = a.renderProjectionError(cw)
	} else {
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabSaving:
			content = a.renderSavingTab(cw, contentH)
		case tabDrawdown:
			content = a.renderDrawdownTab(cw, contentH)
		case tabSettings:
			content = a.renderSettingsTab(cw)
		}
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Fill any remaining terminal area with the background
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) regionLabel() string {
	if a.prof.Scotland {
		return "Scotland"
	}
	return "rUK"
}

// renderProjectionError shows why the current plan cannot be projected.
// Reachable when the loaded profile is invalid from the start; edits in
// the settings tab are validated before they are committed.
func (a App) renderProjectionError(cw int) string {
	t := theme.Active
	warnStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := warnStyle.Render(fmt.Sprintf("This plan cannot be projected: %v", a.projErr)) +
		"\n\n" +
		hintStyle.Render("Fix the profile file or adjust it in the Settings tab.")
	return components.ContentCard("Invalid plan", body, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space before the first tab
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
