package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/components"
)

// ErrorMsg is sent when generation fails.
type ErrorMsg struct {
	Error error
}

var failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

// ErrorScreen shows why generation failed.
type ErrorScreen struct {
	err  error
	done bool
}

// NewErrorScreen creates a new error screen
func NewErrorScreen(err error) *ErrorScreen {
	return &ErrorScreen{err: err}
}

// Init implements tea.Model
func (s *ErrorScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ErrorScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return s, quitOnKey(msg, &s.done)
}

// View implements tea.Model
func (s *ErrorScreen) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		failureStyle.Render("✗ Generation failed"),
		"",
		components.ValueStyle.Render(s.err.Error()),
		"",
		components.HintStyle.Render("Press Enter or q to exit"),
	)
}

// Done returns true if the user is finished
func (s *ErrorScreen) Done() bool {
	return s.done
}

// Error returns the error
func (s *ErrorScreen) Error() error {
	return s.err
}

// quitOnKey marks done and quits on any of the dismiss keys.
func quitOnKey(msg tea.Msg, done *bool) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "esc", "enter", "q":
			*done = true
			return tea.Quit
		}
	}
	return nil
}
