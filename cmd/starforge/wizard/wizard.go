package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/components"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/screens"
	"github.com/mrsinham/starforge/internal/generator"
	"github.com/mrsinham/starforge/internal/profile"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhaseGlobal Phase = iota
	PhaseSummary
	PhaseSaveConfig
	PhaseProgress
	PhaseComplete
	PhaseError
)

// Wizard is the main orchestrator for the wizard interface.
type Wizard struct {
	state *WizardState

	// Current phase
	phase Phase

	// Screen instances
	globalScreen     *screens.GlobalScreen
	summaryScreen    *screens.SummaryScreen
	progressScreen   *screens.ProgressScreen
	completionScreen *screens.CompletionScreen
	errorScreen      *screens.ErrorScreen

	// Save config form
	saveConfigForm *huh.Form
	configPath     string
	savedPath      string

	// Generation events (progress, then completion or error)
	events chan tea.Msg

	// Window size
	width  int
	height int

	// Final state
	cancelled bool
	finished  bool
	err       error
}

// NewWizard creates a new wizard with default or loaded state.
func NewWizard(state *WizardState) *Wizard {
	if state == nil {
		state = DefaultState()
	}

	w := &Wizard{
		state: state,
		phase: PhaseGlobal,
	}

	// Initialize the global screen
	w.globalScreen = screens.NewGlobalScreen(&w.state.Global, len(w.state.Sources))

	return w
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.globalScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size for all phases
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhaseGlobal:
		return w.updateGlobal(msg)
	case PhaseSummary:
		return w.updateSummary(msg)
	case PhaseSaveConfig:
		return w.updateSaveConfig(msg)
	case PhaseProgress:
		return w.updateProgress(msg)
	case PhaseComplete:
		return w.updateFinal(w.completionScreen, msg)
	case PhaseError:
		return w.updateFinal(w.errorScreen, msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	switch w.phase {
	case PhaseGlobal:
		return w.globalScreen.View()
	case PhaseSummary:
		view := w.summaryScreen.View()
		if w.savedPath != "" {
			view += "\n" + components.HintStyle.Render("Configuration saved to "+w.savedPath)
		}
		return view
	case PhaseSaveConfig:
		return w.viewSaveConfig()
	case PhaseProgress:
		return w.progressScreen.View()
	case PhaseComplete:
		return w.completionScreen.View()
	case PhaseError:
		return w.errorScreen.View()
	}

	return ""
}

// Phase returns the current phase.
func (w *Wizard) Phase() Phase {
	return w.phase
}

// State returns the wizard state being edited.
func (w *Wizard) State() *WizardState {
	return w.state
}

// updateGlobal handles updates in the global configuration phase.
func (w *Wizard) updateGlobal(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.globalScreen.Update(msg)
	if gs, ok := model.(*screens.GlobalScreen); ok {
		w.globalScreen = gs
	}

	if w.globalScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.globalScreen.Done() {
		return w.transitionToSummary()
	}

	return w, cmd
}

// transitionToGlobal reopens the configuration form with the current values.
func (w *Wizard) transitionToGlobal() (tea.Model, tea.Cmd) {
	w.phase = PhaseGlobal
	w.globalScreen = screens.NewGlobalScreen(&w.state.Global, len(w.state.Sources))
	return w, w.globalScreen.Init()
}

// transitionToSummary shows the summary screen.
func (w *Wizard) transitionToSummary() (tea.Model, tea.Cmd) {
	w.phase = PhaseSummary
	w.summaryScreen = screens.NewSummaryScreen(&w.state.Global, len(w.state.Sources))
	return w, w.summaryScreen.Init()
}

// updateSummary handles updates in the summary phase.
func (w *Wizard) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.summaryScreen.Update(msg)
	if ss, ok := model.(*screens.SummaryScreen); ok {
		w.summaryScreen = ss
	}

	if w.summaryScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.summaryScreen.Done() {
		switch w.summaryScreen.Action() {
		case screens.SummaryActionBack:
			return w.transitionToGlobal()

		case screens.SummaryActionGenerate:
			return w.startGeneration()

		case screens.SummaryActionSaveConfig:
			return w.transitionToSaveConfig()

		case screens.SummaryActionCancel:
			w.cancelled = true
			return w, tea.Quit
		}
	}

	return w, cmd
}

// transitionToSaveConfig shows the save config dialog.
func (w *Wizard) transitionToSaveConfig() (tea.Model, tea.Cmd) {
	w.phase = PhaseSaveConfig
	if w.configPath == "" {
		w.configPath = "starforge.yaml"
	}

	w.saveConfigForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("config_path").
				Title("Save configuration to").
				Description("Enter the path for the YAML config file").
				Value(&w.configPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return w, w.saveConfigForm.Init()
}

// updateSaveConfig handles updates in the save config phase.
func (w *Wizard) updateSaveConfig(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return w.transitionToSummary()
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.saveConfigForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.saveConfigForm = f
	}

	if w.saveConfigForm.State == huh.StateCompleted {
		if err := SaveToYAML(w.state, w.configPath); err != nil {
			return w.fail(err)
		}
		w.savedPath = w.configPath

		// Go back to summary with success message
		return w.transitionToSummary()
	}

	return w, cmd
}

// viewSaveConfig renders the save config dialog.
func (w *Wizard) viewSaveConfig() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("Save Configuration"),
		"",
		w.saveConfigForm.View(),
		"",
		components.HintStyle.Render("Enter: Save | Esc: Back"),
	)
}

// startGeneration runs the generator in the background. Progress is
// delivered through w.events and read back one message at a time.
func (w *Wizard) startGeneration() (tea.Model, tea.Cmd) {
	opts, err := ToGeneratorOptions(w.state)
	if err != nil {
		return w.fail(err)
	}

	w.phase = PhaseProgress
	w.progressScreen = screens.NewProgressScreen(opts.NumImages, previewPlot(opts, w.width))
	w.events = make(chan tea.Msg, opts.NumImages+1)

	opts.Quiet = true // Suppress output for TUI integration
	opts.ProgressCallback = func(current, total int) {
		w.events <- screens.ProgressMsg{Current: current, Total: total}
	}

	go func(events chan<- tea.Msg) {
		events <- runGeneration(opts)
		close(events)
	}(w.events)

	return w, waitForEvent(w.events)
}

// previewPlot renders a profile through the brightest row of the first
// image. It returns "" when the image cannot be rendered; Generate reports
// the error.
func previewPlot(opts generator.Options, termWidth int) string {
	img, _, err := generator.Preview(opts, 0)
	if err != nil {
		return ""
	}
	data, caption, err := profile.Cut(img, -1, -1)
	if err != nil {
		return ""
	}
	width := 60
	if termWidth > 0 {
		width = max(min(termWidth-12, 100), 20)
	}
	return profile.Render(data, caption, 8, width)
}

// runGeneration generates the batch and its manifest.
func runGeneration(opts generator.Options) tea.Msg {
	startTime := time.Now()

	files, err := generator.Generate(opts)
	if err != nil {
		return screens.ErrorMsg{Error: err}
	}
	manifest, err := generator.WriteManifest(opts, files)
	if err != nil {
		return screens.ErrorMsg{Error: err}
	}

	var totalSize int64
	for _, f := range files {
		for _, path := range []string{f.Path, f.CatalogPath} {
			if info, err := os.Stat(path); err == nil {
				totalSize += info.Size()
			}
		}
	}

	return screens.CompletionMsg{
		Files:     files,
		Manifest:  manifest,
		TotalSize: totalSize,
		Duration:  time.Since(startTime),
		OutputDir: opts.OutputDir,
		Shape:     opts.Shape.String(),
	}
}

// waitForEvent returns a command that reads the next generation event.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// updateProgress handles updates in the progress phase.
func (w *Wizard) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.ProgressMsg:
		w.progressScreen.SetProgress(msg.Current, msg.Total)
		return w, waitForEvent(w.events)

	case screens.CompletionMsg:
		w.phase = PhaseComplete
		w.completionScreen = screens.NewCompletionScreen(msg)
		return w, nil

	case screens.ErrorMsg:
		return w.fail(msg.Error)
	}

	model, cmd := w.progressScreen.Update(msg)
	if ps, ok := model.(*screens.ProgressScreen); ok {
		w.progressScreen = ps
	}

	if w.progressScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	return w, cmd
}

// fail switches to the error screen.
func (w *Wizard) fail(err error) (tea.Model, tea.Cmd) {
	w.phase = PhaseError
	w.err = err
	w.errorScreen = screens.NewErrorScreen(err)
	return w, nil
}

// finalScreen is a screen shown once generation has ended.
type finalScreen interface {
	tea.Model
	Done() bool
}

// updateFinal forwards msg to the completion or error screen and quits once
// it is dismissed.
func (w *Wizard) updateFinal(screen finalScreen, msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := screen.Update(msg)
	if screen.Done() {
		w.finished = true
		return w, tea.Quit
	}
	return w, cmd
}

// Run starts the interactive wizard.
// If fromConfig is provided, it loads the configuration from that YAML file.
func Run(fromConfig string) error {
	var state *WizardState

	if fromConfig != "" {
		absPath, err := filepath.Abs(fromConfig)
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}

		loaded, err := LoadFromYAML(absPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		state = loaded
	}

	wizard := NewWizard(state)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	if w, ok := finalModel.(*Wizard); ok {
		if w.cancelled {
			return nil // User cancelled, not an error
		}
		if w.err != nil {
			return w.err
		}
	}

	return nil
}
