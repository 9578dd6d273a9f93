// ABOUTME: Fleet sizing wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/marinops/fleet-spares-analyzer/cli/internal/client"
	"github.com/marinops/fleet-spares-analyzer/cli/internal/tui/styles"
)

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Request *client.EvaluateRequest
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard collects fleet parameters and sizing options as a bubbletea model
type Wizard struct {
	request *client.EvaluateRequest
	form    *huh.Form
	step    int
	width   int

	// Form field values (strings for huh)
	units     string
	vessels   string
	hours     string
	months    string
	mtbr      string
	threshold string
	unitCost  string
}

// Step names for progress indicator
var stepNames = []string{"Fleet", "Confidence & Cost"}

// createTheme returns a custom huh theme matching the CLI palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	// Group styles (section headers)
	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	// Focused field styles
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	// Select field styles
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)

	// Text input styles
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	// Button styles
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	// Blurred field styles (inherit from focused with muted colors)
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// Confidence thresholds commonly used for sparing decisions
var thresholdOptions = []huh.Option[string]{
	huh.NewOption("80%", "0.80"),
	huh.NewOption("90% (recommended)", "0.90"),
	huh.NewOption("95%", "0.95"),
	huh.NewOption("99%", "0.99"),
}

// New creates a new wizard with sensible fleet defaults
func New() *Wizard {
	w := &Wizard{
		request:   &client.EvaluateRequest{},
		step:      1,
		units:     "1",
		vessels:   "1",
		months:    "12",
		threshold: "0.90",
		unitCost:  "0",
	}

	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Units per vessel").
				Description("Identical units needing spares on each vessel").
				Placeholder("e.g., 2").
				CharLimit(5).
				Value(&w.units).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Vessels").
				Description("Number of vessels in the fleet").
				Placeholder("e.g., 5").
				CharLimit(5).
				Value(&w.vessels).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Running hours per month").
				Description("Operating hours per vessel per month").
				Placeholder("e.g., 300").
				CharLimit(6).
				Value(&w.hours).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Months").
				Description("Observation period in months").
				Placeholder("e.g., 12").
				CharLimit(4).
				Value(&w.months).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("MTBR (hours)").
				Description("Mean time between repair for one unit").
				Placeholder("e.g., 4000").
				CharLimit(10).
				Value(&w.mtbr).
				Validate(validatePositiveFloat),
		).Title("Step 1: Fleet").
			Description("Describe the fleet and the unit being spared"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Confidence threshold").
				Description("Probability that stock covers all failures").
				Options(thresholdOptions...).
				Value(&w.threshold),
			huh.NewInput().
				Title("Cost per spare").
				Description("Unit cost used for the budget estimate (0 to skip)").
				Placeholder("e.g., 2500").
				CharLimit(12).
				Value(&w.unitCost).
				Validate(validateNonNegativeFloat),
		).Title("Step 2: Confidence & Cost").
			Description("Choose the sizing target and optional costing"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		// Forward to form
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	// Update the current form
	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	// Check if form is complete
	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		// Parse step 1 values and move to step 2
		w.request.Fleet.Units, _ = strconv.Atoi(w.units)
		w.request.Fleet.Vessels, _ = strconv.Atoi(w.vessels)
		w.request.Fleet.RunningHours, _ = strconv.Atoi(w.hours)
		w.request.Fleet.Months, _ = strconv.Atoi(w.months)
		w.request.Fleet.MTBR, _ = strconv.ParseFloat(w.mtbr, 64)
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		// Parse step 2 values and complete
		w.request.Threshold, _ = strconv.ParseFloat(w.threshold, 64)
		w.request.UnitCost, _ = strconv.ParseFloat(w.unitCost, 64)

		return w, func() tea.Msg {
			return WizardCompleteMsg{Request: w.request}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	// Progress indicator
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	// Form content
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	// Build step indicators
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < w.step {
			// Completed step
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render("✓")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == w.step {
			// Current step
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			// Future step
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	totalSteps := len(stepNames)
	filledWidth := (w.step * barWidth) / totalSteps
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Muted).Render(strings.Repeat("─", emptyWidth))
	progressBar := filledBar + emptyBar

	// Build panel with consistent width
	styledTitle := titleStyle.Render("Progress")
	titleWidth := lipgloss.Width("Progress")

	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsLineWidth := lipgloss.Width(stepsLine)
	stepsPadding := max(0, width-4-stepsLineWidth)
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + progressBar + " │"

	bottomFillWidth := width - 2
	bottomBorder := "└" + strings.Repeat("─", bottomFillWidth) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

// GetRequest returns the collected evaluation request
func (w *Wizard) GetRequest() *client.EvaluateRequest {
	return w.request
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateNonNegativeFloat(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("must be zero or a positive number")
	}
	return nil
}
