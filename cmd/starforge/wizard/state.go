// Package wizard provides an interactive TUI for configuring image generation.
package wizard

import "github.com/mrsinham/starforge/cmd/starforge/wizard/types"

// WizardState holds the complete state for the wizard interface.
type WizardState struct {
	Global  types.GlobalConfig
	Sources []types.SourceConfig
}

// DefaultState returns the settings the wizard starts from.
func DefaultState() *WizardState {
	return &WizardState{
		Global: types.GlobalConfig{
			Shape:      "256x256",
			NumImages:  10,
			NumSources: 5,
			Amplitude:  "1-10",
			XStddev:    "1-5",
			YStddev:    "1-5",
			Format:     "png",
			OutputDir:  "starfield",
		},
	}
}
