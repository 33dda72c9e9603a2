package screens

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/components"
)

// ProgressMsg reports that Current of Total images have been written.
type ProgressMsg struct {
	Current int
	Total   int
}

var (
	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	percentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	statStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// ProgressScreen shows the batch progress next to a profile of the first
// image, so the user can check the field looks right while it renders.
type ProgressScreen struct {
	current int
	total   int
	preview string

	started time.Time
	now     func() time.Time

	cancelled bool
	width     int
}

// NewProgressScreen creates a progress screen for total images. preview is
// an already rendered plot and may be empty.
func NewProgressScreen(total int, preview string) *ProgressScreen {
	return &ProgressScreen{
		total:   total,
		preview: preview,
		started: time.Now(),
		now:     time.Now,
	}
}

// Init implements tea.Model
func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ProgressScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case ProgressMsg:
		s.SetProgress(msg.Current, msg.Total)
	}
	return s, nil
}

// View implements tea.Model
func (s *ProgressScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	barWidth := 40
	if s.width > 80 {
		barWidth = min(s.width/2, 60)
	}

	status := lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("Rendering sources..."),
		"",
		bar(s.Fraction(), barWidth)+" "+percentStyle.Render(fmt.Sprintf("%d%%", int(s.Fraction()*100))),
		"",
		statStyle.Render(fmt.Sprintf("Image %d/%d", s.current, s.total)),
		statStyle.Render(s.timing()),
	)

	sections := []string{status}
	if s.preview != "" {
		sections = append(sections, "",
			components.SubtitleStyle.Render("Preview (image 0)"),
			s.preview)
	}
	sections = append(sections, "", components.HintStyle.Render("Press Ctrl+C to cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Fraction returns the completed share of the batch in [0, 1].
func (s *ProgressScreen) Fraction() float64 {
	if s.total <= 0 {
		return 0
	}
	return min(float64(s.current)/float64(s.total), 1)
}

// timing reports elapsed time, throughput and an estimate of the time left.
func (s *ProgressScreen) timing() string {
	elapsed := s.now().Sub(s.started)
	line := fmt.Sprintf("Elapsed: %.1fs", elapsed.Seconds())
	if s.current == 0 || elapsed <= 0 {
		return line
	}
	rate := float64(s.current) / elapsed.Seconds()
	line += fmt.Sprintf("  %.1f img/s", rate)
	if left := s.total - s.current; left > 0 {
		line += fmt.Sprintf("  ETA %.1fs", float64(left)/rate)
	}
	return line
}

func bar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	return barFilledStyle.Render("["+strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled)+"]")
}

// Cancelled returns true if the user cancelled
func (s *ProgressScreen) Cancelled() bool {
	return s.cancelled
}

// SetProgress records the number of images written so far.
func (s *ProgressScreen) SetProgress(current, total int) {
	s.current = current
	s.total = total
}
