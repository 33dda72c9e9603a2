package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/help"
)

// minPanelWidth leaves room for the border and padding of PanelStyle.
const minPanelWidth = 20

var (
	helpTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	helpDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// HelpPanel describes the focused form field and its command line flag.
type HelpPanel struct {
	field string
	width int
}

// NewHelpPanel creates a new help panel
func NewHelpPanel() *HelpPanel {
	return &HelpPanel{width: 60}
}

// SetField updates which field's help to display
func (h *HelpPanel) SetField(field string) {
	h.field = field
}

// Field returns the key of the field being described.
func (h *HelpPanel) Field() string {
	return h.field
}

// SetSize sets the panel width. Widths below minPanelWidth are ignored.
func (h *HelpPanel) SetSize(width, _ int) {
	if width >= minPanelWidth {
		h.width = width
	}
}

// View renders the help panel
func (h *HelpPanel) View() string {
	style := PanelStyle.Width(h.width - 4)

	text, ok := help.Lookup(h.field)
	if !ok {
		return style.Render(HintStyle.Render("Move to a field to see help"))
	}

	lines := []string{helpTitleStyle.Render(text.Title), "", helpDescStyle.Render(text.Description)}
	if text.Details != "" {
		lines = append(lines, "", helpDetailStyle.Render(text.Details))
	}
	if text.Flag != "" {
		lines = append(lines, "", LabelStyle.Render("Flag: ")+CommandStyle.Render(text.Flag))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
