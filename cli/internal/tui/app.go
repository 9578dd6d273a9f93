// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marinops/fleet-spares-analyzer/cli/internal/client"
	"github.com/marinops/fleet-spares-analyzer/cli/internal/tui/styles"
	"github.com/marinops/fleet-spares-analyzer/cli/internal/tui/widgets"
	"github.com/marinops/fleet-spares-analyzer/cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenWizard Screen = iota
	ScreenLoading
	ScreenResults
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before clamping frame rendering
	frameOverhead    = 4  // Header, footer, and surrounding newlines
	chartBarWidth    = 30
)

// evaluateDoneMsg is sent when the backend evaluation completes
type evaluateDoneMsg struct {
	resp *client.EvaluateResponse
	err  error
}

// App is the root model for the TUI
type App struct {
	client     *client.Client
	screen     Screen
	width      int
	height     int
	err        error
	resp       *client.EvaluateResponse
	lastUpdate time.Time

	// Child models
	wizardScreen *wizard.Wizard
	loading      spinner.Model
	results      viewport.Model
}

// New creates a new TUI application
func New(apiClient *client.Client) *App {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)

	return &App{
		client:       apiClient,
		screen:       ScreenWizard,
		wizardScreen: wizard.New(),
		loading:      sp,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.wizardScreen.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.results.Width = a.contentWidth()
		a.results.Height = a.contentHeight()
		if a.wizardScreen != nil {
			a.wizardScreen.SetWidth(a.contentWidth())
			return a.updateWizard(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenResults:
			return a.updateResults(msg)
		}
		return a, nil

	case wizard.WizardCompleteMsg:
		// Wizard finished, call backend to size the fleet
		a.wizardScreen = nil
		a.screen = ScreenLoading
		return a, tea.Batch(a.loading.Tick, a.evaluate(msg.Request))

	case wizard.WizardCancelledMsg:
		return a, tea.Quit

	case evaluateDoneMsg:
		a.screen = ScreenResults
		a.lastUpdate = time.Now()
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.resp = msg.resp
		a.results = viewport.New(a.contentWidth(), a.contentHeight())
		a.results.SetContent(a.renderResults())
		return a, nil

	case spinner.TickMsg:
		if a.screen == ScreenLoading {
			var cmd tea.Cmd
			a.loading, cmd = a.loading.Update(msg)
			return a, cmd
		}
		return a, nil

	default:
		// Forward unknown messages to wizard when active (needed for huh form internals)
		if a.screen == ScreenWizard && a.wizardScreen != nil {
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "e":
		// Back to the wizard for another run
		a.screen = ScreenWizard
		a.wizardScreen = wizard.New()
		a.wizardScreen.SetWidth(a.contentWidth())
		a.resp = nil
		a.err = nil
		return a, a.wizardScreen.Init()
	}

	var cmd tea.Cmd
	a.results, cmd = a.results.Update(msg)
	return a, cmd
}

// evaluate creates a command that calls the sizing backend
func (a *App) evaluate(req *client.EvaluateRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.client.Evaluate(context.Background(), req)
		return evaluateDoneMsg{resp: resp, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenWizard:
		content = a.viewWizard()
	case ScreenLoading:
		content = a.viewLoading()
	case ScreenResults:
		content = a.viewResults()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewWizard() string {
	if a.wizardScreen != nil {
		return a.wizardScreen.View()
	}
	return ""
}

func (a *App) viewLoading() string {
	return fmt.Sprintf("\n %s Sizing spares...", a.loading.View())
}

func (a *App) viewResults() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}
	return a.results.View()
}

// renderResults builds the full results content for the viewport
func (a *App) renderResults() string {
	if a.resp == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Sizing Result"))
	sb.WriteString("\n")
	sb.WriteString(a.resp.Summary)
	sb.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(styles.Muted)
	fmt.Fprintf(&sb, "%s %s\n", label.Render("Expected failures:"), styles.ValueStyle.Render(fmt.Sprintf("%.4f", a.resp.Lambda)))
	fmt.Fprintf(&sb, "%s %s\n", label.Render("Recommended spares:"), styles.ValueStyle.Render(fmt.Sprintf("%d", a.resp.MinSpares)))
	if a.resp.TotalCost > 0 {
		fmt.Fprintf(&sb, "%s %s\n", label.Render("Total cost:"), styles.ValueStyle.Render(fmt.Sprintf("%.2f", a.resp.TotalCost)))
	}
	sb.WriteString("\n")

	sb.WriteString(widgets.DistributionChart(a.resp.Table, a.resp.MinSpares, chartBarWidth, styles.Primary, styles.Secondary))
	sb.WriteString("\n")

	if a.resp.Warning != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusWarning.Render("Warning: " + a.resp.Warning))
		sb.WriteString("\n")
	}

	if len(a.resp.Insights) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Insights"))
		sb.WriteString("\n")
		for _, insight := range a.resp.Insights {
			fmt.Fprintf(&sb, "  • %s\n", insight.Statement)
		}
	}

	if a.resp.Advisory != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Advisory"))
		sb.WriteString("\n")
		sb.WriteString(a.resp.Advisory)
		sb.WriteString("\n")
	}

	return sb.String()
}

// contentWidth calculates the width available for screen content
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - 2
	}
	return a.width - 2
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	h := a.height - frameOverhead
	if h < 10 {
		h = 10
	}
	return h
}

// renderHeader creates the header bar with app branding
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	leftText := " " + titleStyle.Render("Fleet Spares Analyzer")

	leftWidth := lipgloss.Width(leftText)
	fillWidth := width - 4 - leftWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenWizard:
		shortcuts = []string{"↑↓ Select", "Enter Confirm", "Esc Quit"}
	case ScreenLoading:
		shortcuts = []string{"ctrl+c Quit"}
	case ScreenResults:
		shortcuts = []string{"↑↓ Scroll", "e New evaluation", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenResults {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Sized "+elapsed) + " "
		rightPlainText = "Sized " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client) error {
	app := New(apiClient)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
