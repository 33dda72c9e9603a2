package screens

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/starforge/cmd/starforge/wizard/types"
	"github.com/mrsinham/starforge/internal/generator"
)

func TestProgressScreen_Fraction(t *testing.T) {
	s := NewProgressScreen(4, "")
	if s.Fraction() != 0 {
		t.Errorf("Expected 0, got %v", s.Fraction())
	}

	s.Update(ProgressMsg{Current: 1, Total: 4})
	if s.Fraction() != 0.25 {
		t.Errorf("Expected 0.25, got %v", s.Fraction())
	}

	s.SetProgress(9, 4)
	if s.Fraction() != 1 {
		t.Errorf("Fraction should be capped at 1, got %v", s.Fraction())
	}
}

func TestProgressScreen_Timing(t *testing.T) {
	s := NewProgressScreen(10, "")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.started = start
	s.now = func() time.Time { return start.Add(2 * time.Second) }
	s.SetProgress(4, 10)

	got := s.timing()
	for _, want := range []string{"Elapsed: 2.0s", "2.0 img/s", "ETA 3.0s"} {
		if !strings.Contains(got, want) {
			t.Errorf("timing() = %q, missing %q", got, want)
		}
	}
}

func TestProgressScreen_View(t *testing.T) {
	s := NewProgressScreen(2, "PLOT")
	view := s.View()
	if !strings.Contains(view, "Image 0/2") || !strings.Contains(view, "PLOT") {
		t.Errorf("Unexpected view:\n%s", view)
	}

	s.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !s.Cancelled() {
		t.Error("Ctrl+C should cancel")
	}
}

func TestCompletionScreen(t *testing.T) {
	files := make([]generator.GeneratedFile, 7)
	for i := range files {
		files[i] = generator.GeneratedFile{
			Path:        "out/IMG000" + string(rune('0'+i)) + ".png",
			CatalogPath: "out/IMG000" + string(rune('0'+i)) + ".csv",
			Index:       i,
			NumSources:  3,
			FieldName:   "Orion^Field-042",
		}
	}
	s := NewCompletionScreen(CompletionMsg{
		Files:     files,
		Manifest:  "out/manifest.yaml",
		TotalSize: 2048,
		OutputDir: "out",
		Shape:     "32x32",
	})

	if s.TotalSources() != 21 {
		t.Errorf("Expected 21 sources, got %d", s.TotalSources())
	}

	view := s.View()
	for _, want := range []string{"Generation complete", "IMG0004.png", "and 2 more", "2.0 kB", "--catalog out/IMG0000.csv"} {
		if !strings.Contains(view, want) {
			t.Errorf("Completion view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "IMG0005.png") {
		t.Error("Table should stop at the listed maximum")
	}

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !s.Done() {
		t.Error("Enter should dismiss the screen")
	}
}

func TestErrorScreen(t *testing.T) {
	s := NewErrorScreen(errors.New("disk full"))
	if !strings.Contains(s.View(), "disk full") {
		t.Error("Expected error message in view")
	}
	s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !s.Done() {
		t.Error("q should dismiss the screen")
	}
}

func TestEstimateSize(t *testing.T) {
	tests := []struct {
		name   string
		config types.GlobalConfig
		want   uint64
		ok     bool
	}{
		{"png", types.GlobalConfig{Shape: "10x20", NumImages: 3, Format: "png"}, 3 * 200 * 2, true},
		{"raw", types.GlobalConfig{Shape: "10x20", NumImages: 1, Format: "raw"}, 200 * 8, true},
		{"bad shape", types.GlobalConfig{Shape: "10", NumImages: 1, Format: "png"}, 0, false},
		{"bad format", types.GlobalConfig{Shape: "10x10", NumImages: 1, Format: "fits"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EstimateSize(&tt.config)
			if ok != tt.ok || got != tt.want {
				t.Errorf("EstimateSize = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSummaryScreen_Action(t *testing.T) {
	s := NewSummaryScreen(&types.GlobalConfig{Shape: "8x8", NumImages: 1, Format: "png", OutputDir: "out"}, 0)
	if s.Action() != SummaryActionGenerate {
		t.Errorf("Default action should be generate, got %v", s.Action())
	}

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !s.Done() || s.Action() != SummaryActionBack {
		t.Errorf("Esc should go back, got done=%v action=%v", s.Done(), s.Action())
	}
	if !strings.Contains(s.View(), "Disk (max)") {
		t.Error("Expected a disk estimate in the summary")
	}
}

func TestValidateNoise(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"0", false},
		{"1.5", false},
		{"-0.1", true},
		{"abc", true},
		{"NaN", true},
		{"+Inf", true},
	}

	for _, tt := range tests {
		if err := validateNoise(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("validateNoise(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
