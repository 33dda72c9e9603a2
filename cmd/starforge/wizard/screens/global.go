package screens

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/components"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/types"
	"github.com/mrsinham/starforge/internal/util"
)

// GlobalScreen is the first wizard screen for batch configuration
type GlobalScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	config    *types.GlobalConfig
	width     int
	height    int
	done      bool
	cancelled bool

	// String versions for form binding (huh binds to strings)
	numImagesStr  string
	numSourcesStr string
}

// NewGlobalScreen creates a new global configuration screen. fixedSources is
// the number of sources loaded from a config; random-source fields are hidden
// when it is non-zero.
func NewGlobalScreen(config *types.GlobalConfig, fixedSources int) *GlobalScreen {
	// Set defaults if not provided
	if config.Shape == "" {
		config.Shape = "256x256"
	}
	if config.NumImages == 0 {
		config.NumImages = 10
	}
	if config.Format == "" {
		config.Format = "png"
	}
	if config.OutputDir == "" {
		config.OutputDir = "starfield"
	}

	s := &GlobalScreen{
		helpPanel:     components.NewHelpPanel(),
		config:        config,
		numImagesStr:  strconv.Itoa(config.NumImages),
		numSourcesStr: strconv.Itoa(config.NumSources),
	}

	image := huh.NewGroup(
		huh.NewInput().
			Key("shape").
			Title("Image Shape").
			Placeholder("e.g., 256x256").
			Value(&config.Shape).
			Validate(validateShape),

		huh.NewInput().
			Key("num_images").
			Title("Number of Images").
			Value(&s.numImagesStr).
			Validate(validatePositiveInt),

		huh.NewSelect[string]().
			Key("format").
			Title("Format").
			Options(
				huh.NewOption("PNG - 16-bit grayscale", "png"),
				huh.NewOption("TIFF - 16-bit grayscale", "tiff"),
				huh.NewOption("DICOM - Secondary Capture", "dicom"),
				huh.NewOption("RAW - float64 values", "raw"),
			).
			Value(&config.Format),

		huh.NewInput().
			Key("output").
			Title("Output Directory").
			Value(&config.OutputDir).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("output directory is required")
				}
				return nil
			}),
	)

	sources := huh.NewGroup(
		huh.NewInput().
			Key("num_sources").
			Title("Sources per Image").
			Value(&s.numSourcesStr).
			Validate(validateNonNegativeInt),

		huh.NewInput().
			Key("amplitude").
			Title("Amplitude Range").
			Placeholder("e.g., 1-10").
			Value(&config.Amplitude).
			Validate(validateRange),

		huh.NewInput().
			Key("x_stddev").
			Title("X Stddev Range").
			Placeholder("e.g., 1-5").
			Value(&config.XStddev).
			Validate(validateStddevRange),

		huh.NewInput().
			Key("y_stddev").
			Title("Y Stddev Range").
			Placeholder("e.g., 1-5").
			Value(&config.YStddev).
			Validate(validateStddevRange),
	).WithHideFunc(func() bool { return fixedSources > 0 })

	rendering := huh.NewGroup(
		huh.NewInput().
			Key("noise").
			Title("Noise Stddev").
			Placeholder("empty = no noise").
			Value(&config.Noise).
			Validate(validateNoise),

		huh.NewInput().
			Key("seed").
			Title("Seed").
			Placeholder("empty = derived from output directory").
			Value(&config.Seed).
			Validate(validateSeed),

		huh.NewConfirm().
			Key("annotate").
			Title("Annotate sources").
			Value(&config.Annotate),
	)

	s.form = huh.NewForm(image, sources, rendering).WithShowHelp(false).WithShowErrors(true)

	return s
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be greater than 0")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateShape(s string) error {
	_, err := util.ParseShape(s)
	return err
}

func validateRange(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := util.ParseRange(s)
	return err
}

func validateStddevRange(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	r, err := util.ParseRange(s)
	if err != nil {
		return err
	}
	if r.Low <= 0 {
		return fmt.Errorf("stddev must be positive")
	}
	return nil
}

func validateNoise(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("must be finite")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateSeed(s string) error {
	_, err := util.ParseSeed(s)
	return err
}

// Init implements tea.Model
func (s *GlobalScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *GlobalScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	}

	// Update form
	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	// Update help panel based on focused field
	focused := s.form.GetFocusedField()
	if focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	// Check if form is complete
	if s.form.State == huh.StateCompleted {
		s.done = true
		s.syncConfigFromForm()
	}

	return s, cmd
}

// syncConfigFromForm parses form values back to config
func (s *GlobalScreen) syncConfigFromForm() {
	if n, err := strconv.Atoi(s.numImagesStr); err == nil {
		s.config.NumImages = n
	}
	if n, err := strconv.Atoi(s.numSourcesStr); err == nil {
		s.config.NumSources = n
	}
}

// View implements tea.Model
func (s *GlobalScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("STARFORGE WIZARD - Batch Configuration")

	formView := s.form.View()
	helpView := s.helpPanel.View()

	var body string
	if s.width >= 100 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, formView, "  ", helpView)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, formView, "", helpView)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		components.HintStyle.Render("Tab: Next field | Enter: Submit | Esc: Cancel"),
	)
}

// Done returns true if the form was completed
func (s *GlobalScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *GlobalScreen) Cancelled() bool {
	return s.cancelled
}

// Config returns the configured global settings
func (s *GlobalScreen) Config() *types.GlobalConfig {
	return s.config
}
