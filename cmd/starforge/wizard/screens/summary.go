package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/components"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/types"
	"github.com/mrsinham/starforge/internal/export"
	"github.com/mrsinham/starforge/internal/util"
)

// SummaryAction represents the action selected on the summary screen
type SummaryAction int

const (
	// SummaryActionBack returns to the configuration screen
	SummaryActionBack SummaryAction = iota
	// SummaryActionGenerate starts image generation
	SummaryActionGenerate
	// SummaryActionSaveConfig saves configuration to YAML file
	SummaryActionSaveConfig
	// SummaryActionCancel exits the wizard
	SummaryActionCancel
)

const (
	actionBack       = "back"
	actionGenerate   = "generate"
	actionSaveConfig = "save_config"
	actionCancel     = "cancel"
)

var summaryTitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("63")).
	Bold(true).
	MarginBottom(1)

// SummaryScreen displays a summary of wizard configuration before generation
type SummaryScreen struct {
	form         *huh.Form
	config       *types.GlobalConfig
	fixedSources int
	action       string
	done         bool
	cancelled    bool
	width        int
	height       int
}

// NewSummaryScreen creates a new summary screen
func NewSummaryScreen(config *types.GlobalConfig, fixedSources int) *SummaryScreen {
	s := &SummaryScreen{
		config:       config,
		fixedSources: fixedSources,
		action:       actionGenerate, // Default action
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(
					huh.NewOption("Generate images", actionGenerate),
					huh.NewOption("Save configuration to YAML", actionSaveConfig),
					huh.NewOption("Back to edit", actionBack),
					huh.NewOption("Cancel and exit", actionCancel),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			// Esc goes back instead of cancelling
			s.action = actionBack
			s.done = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("SUMMARY - Review Configuration")
	panel := components.PanelStyle.Width(60).Render(s.buildParameterSummary())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		panel,
		"",
		s.buildCLICommand(),
		"",
		s.form.View(),
		"",
		components.HintStyle.Render("Enter: Select action | Esc: Back"),
	)
}

// buildParameterSummary lists the configured values
func (s *SummaryScreen) buildParameterSummary() string {
	c := s.config
	var sb strings.Builder

	sb.WriteString(summaryTitleStyle.Render("Configuration Summary"))
	sb.WriteString("\n")

	orNone := func(v, none string) string {
		if strings.TrimSpace(v) == "" {
			return none
		}
		return v
	}

	rows := [][2]string{
		{"Shape", c.Shape},
		{"Images", fmt.Sprintf("%d", c.NumImages)},
	}
	if s.fixedSources > 0 {
		rows = append(rows, [2]string{"Sources", fmt.Sprintf("%d (fixed)", s.fixedSources)})
	} else if c.Catalog != "" {
		rows = append(rows, [2]string{"Catalog", c.Catalog})
	} else {
		rows = append(rows,
			[2]string{"Sources", fmt.Sprintf("%d per image", c.NumSources)},
			[2]string{"Amplitude", orNone(c.Amplitude, "-")},
			[2]string{"X stddev", orNone(c.XStddev, "-")},
			[2]string{"Y stddev", orNone(c.YStddev, "-")},
		)
	}
	rows = append(rows,
		[2]string{"Noise", orNone(c.Noise, "none")},
		[2]string{"Seed", orNone(c.Seed, "from output directory")},
		[2]string{"Format", c.Format},
		[2]string{"Annotate", fmt.Sprintf("%t", c.Annotate)},
		[2]string{"Output", c.OutputDir},
	)
	if size, ok := EstimateSize(c); ok {
		rows = append(rows, [2]string{"Disk (max)", humanize.Bytes(size)})
	}

	for _, r := range rows {
		sb.WriteString(components.KeyValue(r[0], r[1], 12))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// EstimateSize returns an upper bound of the bytes written for the images,
// before compression. It reports false when the shape does not parse.
func EstimateSize(c *types.GlobalConfig) (uint64, bool) {
	shape, err := util.ParseShape(c.Shape)
	if err != nil || c.NumImages <= 0 {
		return 0, false
	}
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return 0, false
	}
	bytesPerPixel := uint64(2)
	if format == export.Raw {
		bytesPerPixel = 8
	}
	pixels := uint64(shape.Height) * uint64(shape.Width)
	return uint64(c.NumImages) * pixels * bytesPerPixel, true
}

// buildCLICommand renders the equivalent CLI command
func (s *SummaryScreen) buildCLICommand() string {
	var sb strings.Builder

	sb.WriteString(summaryTitleStyle.Render("Equivalent CLI Command"))
	sb.WriteString("\n")
	sb.WriteString(components.CommandStyle.Render(CLICommand(s.config, s.fixedSources)))

	return sb.String()
}

// CLICommand returns the command line equivalent to a configuration.
// Fixed sources cannot be expressed as flags and point to a saved config instead.
func CLICommand(c *types.GlobalConfig, fixedSources int) string {
	if fixedSources > 0 {
		return "starforge run --config <saved config>"
	}

	var parts []string
	if c.Catalog != "" {
		parts = append(parts, "starforge", "generate", "--catalog", c.Catalog)
		if c.NumImages > 1 {
			parts = append(parts, fmt.Sprintf("--images %d", c.NumImages))
		}
	} else {
		parts = append(parts, "starforge", "random")
		parts = append(parts, fmt.Sprintf("--images %d", c.NumImages))
		parts = append(parts, fmt.Sprintf("--sources %d", c.NumSources))
		if c.Amplitude != "" {
			parts = append(parts, "--amplitude "+c.Amplitude)
		}
		if c.XStddev != "" {
			parts = append(parts, "--x-stddev "+c.XStddev)
		}
		if c.YStddev != "" {
			parts = append(parts, "--y-stddev "+c.YStddev)
		}
	}

	parts = append(parts, "--shape "+c.Shape)
	if c.Noise != "" {
		parts = append(parts, "--noise "+c.Noise)
	}
	if c.Seed != "" {
		parts = append(parts, "--seed "+c.Seed)
	}
	if c.Format != "" && c.Format != "png" {
		parts = append(parts, "--format "+c.Format)
	}
	if c.Annotate {
		parts = append(parts, "--annotate")
	}
	parts = append(parts, "--output "+c.OutputDir)

	return strings.Join(parts, " ")
}

// Done returns true if the form was completed
func (s *SummaryScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *SummaryScreen) Cancelled() bool {
	return s.cancelled
}

var summaryActions = map[string]SummaryAction{
	actionBack:       SummaryActionBack,
	actionGenerate:   SummaryActionGenerate,
	actionSaveConfig: SummaryActionSaveConfig,
	actionCancel:     SummaryActionCancel,
}

// Action returns the selected action
func (s *SummaryScreen) Action() SummaryAction {
	if a, ok := summaryActions[s.action]; ok {
		return a
	}
	return SummaryActionGenerate
}
