package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mrsinham/starforge/cmd/starforge/wizard/types"
	"gopkg.in/yaml.v3"
)

// Config represents the complete wizard configuration for YAML serialization.
type Config struct {
	Global  GlobalConfigYAML   `yaml:"global"`
	Sources []SourceConfigYAML `yaml:"sources,omitempty"`
}

// GlobalConfigYAML holds global settings with YAML tags for serialization.
type GlobalConfigYAML struct {
	Shape      string   `yaml:"shape"`
	NumImages  int      `yaml:"images"`
	NumSources int      `yaml:"sources,omitempty"`
	Amplitude  string   `yaml:"amplitude,omitempty"`
	XStddev    string   `yaml:"x_stddev,omitempty"`
	YStddev    string   `yaml:"y_stddev,omitempty"`
	Noise      *float64 `yaml:"noise,omitempty"`
	Seed       *int64   `yaml:"seed,omitempty"`
	Format     string   `yaml:"format,omitempty"`
	OutputDir  string   `yaml:"output"`
	Workers    int      `yaml:"workers,omitempty"`
	Annotate   bool     `yaml:"annotate,omitempty"`
	Catalog    string   `yaml:"catalog,omitempty"`
}

// SourceConfigYAML holds one fixed source with YAML tags.
type SourceConfigYAML struct {
	Amplitude float64 `yaml:"amplitude"`
	XMean     float64 `yaml:"x_mean"`
	YMean     float64 `yaml:"y_mean"`
	XStddev   float64 `yaml:"x_stddev"`
	YStddev   float64 `yaml:"y_stddev"`
	Theta     float64 `yaml:"theta,omitempty"`
}

// LoadFromYAML reads a wizard configuration file.
func LoadFromYAML(path string) (*WizardState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	state := configToWizardState(&cfg)
	// Relative catalog paths are relative to the config file
	if c := state.Global.Catalog; c != "" && !filepath.IsAbs(c) {
		state.Global.Catalog = filepath.Join(filepath.Dir(path), c)
	}
	return state, nil
}

// SaveToYAML writes the wizard state as a configuration file.
func SaveToYAML(state *WizardState, path string) error {
	cfg, err := wizardStateToConfig(state)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// configToWizardState converts the YAML form to wizard state.
func configToWizardState(cfg *Config) *WizardState {
	g := cfg.Global
	state := &WizardState{
		Global: types.GlobalConfig{
			Shape:      g.Shape,
			NumImages:  g.NumImages,
			NumSources: g.NumSources,
			Amplitude:  g.Amplitude,
			XStddev:    g.XStddev,
			YStddev:    g.YStddev,
			Format:     g.Format,
			OutputDir:  g.OutputDir,
			Workers:    g.Workers,
			Annotate:   g.Annotate,
			Catalog:    g.Catalog,
		},
	}
	if g.Noise != nil {
		state.Global.Noise = strconv.FormatFloat(*g.Noise, 'g', -1, 64)
	}
	if g.Seed != nil {
		state.Global.Seed = strconv.FormatInt(*g.Seed, 10)
	}

	if len(cfg.Sources) > 0 {
		state.Sources = make([]types.SourceConfig, len(cfg.Sources))
		for i, s := range cfg.Sources {
			state.Sources[i] = types.SourceConfig(s)
		}
	}
	return state
}

// wizardStateToConfig converts wizard state to its YAML form. Noise and seed
// strings must parse.
func wizardStateToConfig(state *WizardState) (*Config, error) {
	g := state.Global
	cfg := &Config{
		Global: GlobalConfigYAML{
			Shape:      g.Shape,
			NumImages:  g.NumImages,
			NumSources: g.NumSources,
			Amplitude:  g.Amplitude,
			XStddev:    g.XStddev,
			YStddev:    g.YStddev,
			Format:     g.Format,
			OutputDir:  g.OutputDir,
			Workers:    g.Workers,
			Annotate:   g.Annotate,
			Catalog:    g.Catalog,
		},
	}

	if s := strings.TrimSpace(g.Noise); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid noise %q: %w", g.Noise, err)
		}
		cfg.Global.Noise = &v
	}
	if s := strings.TrimSpace(g.Seed); s != "" && !strings.EqualFold(s, "none") {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", g.Seed, err)
		}
		cfg.Global.Seed = &v
	}

	for _, s := range state.Sources {
		cfg.Sources = append(cfg.Sources, SourceConfigYAML(s))
	}
	return cfg, nil
}
