package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrsinham/starforge/internal/export"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file written by WriteManifest in the output directory.
const ManifestName = "manifest.yaml"

// Manifest records how a batch was generated.
type Manifest struct {
	Shape        string          `yaml:"shape"`
	Format       string          `yaml:"format"`
	BaseSeed     int64           `yaml:"base_seed"`
	NumSources   int             `yaml:"num_sources,omitempty"`
	FixedCatalog bool            `yaml:"fixed_catalog,omitempty"`
	Amplitude    string          `yaml:"amplitude,omitempty"`
	XStddev      string          `yaml:"x_stddev,omitempty"`
	YStddev      string          `yaml:"y_stddev,omitempty"`
	Noise        *float64        `yaml:"noise,omitempty"`
	Annotate     bool            `yaml:"annotate,omitempty"`
	Files        []GeneratedFile `yaml:"files"`
}

// NewManifest describes files generated with opts.
func NewManifest(opts Options, files []GeneratedFile) Manifest {
	format := opts.Format
	if format == "" {
		format = export.PNG
	}
	m := Manifest{
		Shape:    opts.Shape.String(),
		Format:   string(format),
		BaseSeed: opts.BaseSeed(),
		Noise:    opts.NoiseStddev,
		Annotate: opts.Annotate,
		Files:    files,
	}
	if opts.Sources != nil {
		m.FixedCatalog = true
		m.NumSources = opts.Sources.Len()
	} else {
		m.NumSources = opts.NumSources
		m.Amplitude = opts.SourceRanges.Amplitude.String()
		m.XStddev = opts.SourceRanges.XStddev.String()
		m.YStddev = opts.SourceRanges.YStddev.String()
	}
	return m
}

// WriteManifest writes manifest.yaml into the output directory and returns its path.
func WriteManifest(opts Options, files []GeneratedFile) (string, error) {
	data, err := yaml.Marshal(NewManifest(opts, files))
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	path := filepath.Join(opts.OutputDir, ManifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
