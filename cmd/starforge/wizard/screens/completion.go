package screens

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/components"
	"github.com/mrsinham/starforge/internal/generator"
)

// CompletionMsg is sent once the batch and its manifest are written.
type CompletionMsg struct {
	Files     []generator.GeneratedFile
	Manifest  string
	TotalSize int64
	Duration  time.Duration
	OutputDir string
	Shape     string
}

// maxListedFiles bounds the per-image table on the completion screen.
const maxListedFiles = 5

var successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

// CompletionScreen summarizes a finished batch.
type CompletionScreen struct {
	msg  CompletionMsg
	done bool
}

// NewCompletionScreen creates a new completion screen
func NewCompletionScreen(msg CompletionMsg) *CompletionScreen {
	return &CompletionScreen{msg: msg}
}

// Init implements tea.Model
func (s *CompletionScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *CompletionScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return s, quitOnKey(msg, &s.done)
}

// View implements tea.Model
func (s *CompletionScreen) View() string {
	var sb strings.Builder

	sb.WriteString(successStyle.Render("✓ Generation complete!"))
	sb.WriteString("\n\n")

	for _, kv := range [][2]string{
		{"Images", humanize.Comma(int64(len(s.msg.Files)))},
		{"Sources", humanize.Comma(int64(s.TotalSources()))},
		{"Total size", humanize.Bytes(uint64(s.msg.TotalSize))},
		{"Duration", s.msg.Duration.Round(time.Millisecond).String()},
		{"Output", s.msg.OutputDir},
		{"Manifest", s.msg.Manifest},
	} {
		sb.WriteString("  " + components.KeyValue(kv[0], kv[1], 12) + "\n")
	}
	sb.WriteString("\n")

	if len(s.msg.Files) > 0 {
		sb.WriteString(components.SubtitleStyle.Render("Images"))
		sb.WriteString("\n")
		sb.WriteString(fileTable(s.msg.Files))
		sb.WriteString("\n")

		first := s.msg.Files[0].CatalogPath
		sb.WriteString("  Profile: ")
		sb.WriteString(components.CommandStyle.Render(fmt.Sprintf("starforge profile --catalog %s --shape %s", first, s.msg.Shape)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(components.HintStyle.Render("Press Enter or q to exit"))
	return sb.String()
}

// TotalSources returns the number of sources drawn across the batch.
func (s *CompletionScreen) TotalSources() int {
	n := 0
	for _, f := range s.msg.Files {
		n += f.NumSources
	}
	return n
}

// fileTable lists the first images of the batch with their field and seed.
func fileTable(files []generator.GeneratedFile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  %-14s %-16s %8s  %s\n", "FILE", "FIELD", "SOURCES", "SEED")
	for _, f := range files[:min(len(files), maxListedFiles)] {
		fmt.Fprintf(&sb, "  %-14s %-16s %8d  %d\n", filepath.Base(f.Path), f.FieldName, f.NumSources, f.Seed)
	}
	if extra := len(files) - maxListedFiles; extra > 0 {
		sb.WriteString(components.HintStyle.Render(fmt.Sprintf("  ... and %d more", extra)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Done returns true if the user is finished
func (s *CompletionScreen) Done() bool {
	return s.done
}
