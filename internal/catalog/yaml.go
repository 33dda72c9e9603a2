package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// document is the on-disk YAML layout. Rows are decoded as name/value maps so
// missing columns can be reported the same way as for CSV.
type document struct {
	Kind    string               `yaml:"kind,omitempty"`
	Sources []map[string]float64 `yaml:"sources"`
}

type ellipticalRow struct {
	Amplitude float64 `yaml:"amplitude"`
	XMean     float64 `yaml:"x_mean"`
	YMean     float64 `yaml:"y_mean"`
	XStddev   float64 `yaml:"x_stddev"`
	YStddev   float64 `yaml:"y_stddev"`
	Theta     float64 `yaml:"theta"`
}

type psfRow struct {
	Amplitude float64 `yaml:"amplitude"`
	X0        float64 `yaml:"x_0"`
	Y0        float64 `yaml:"y_0"`
	Sigma     float64 `yaml:"sigma"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	var doc document
	if err := node.Decode(&doc); err != nil {
		return err
	}

	var kind Kind
	if doc.Kind != "" {
		k, err := ParseKind(doc.Kind)
		if err != nil {
			return err
		}
		kind = k
	} else if len(doc.Sources) > 0 {
		k, err := detectKind(func(col string) bool {
			_, ok := doc.Sources[0][col]
			return ok
		})
		if err != nil {
			return fmt.Errorf("source 0: %w", err)
		}
		kind = k
	} else {
		kind = Elliptical
	}

	*c = Catalog{Kind: kind}
	for i, row := range doc.Sources {
		err := c.appendRow(func(col string) (float64, error) {
			v, ok := row[col]
			if !ok {
				return 0, fmt.Errorf("source %d: missing %s", i, col)
			}
			return v, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting columns in canonical order.
func (c *Catalog) MarshalYAML() (interface{}, error) {
	if c.Kind == PSF {
		rows := make([]psfRow, len(c.PSFs))
		for i, p := range c.PSFs {
			rows[i] = psfRow{Amplitude: p.Amplitude, X0: p.X0, Y0: p.Y0, Sigma: p.Sigma}
		}
		return struct {
			Kind    Kind     `yaml:"kind"`
			Sources []psfRow `yaml:"sources"`
		}{PSF, rows}, nil
	}

	rows := make([]ellipticalRow, len(c.Sources))
	for i, s := range c.Sources {
		rows[i] = ellipticalRow{
			Amplitude: s.Amplitude,
			XMean:     s.XMean,
			YMean:     s.YMean,
			XStddev:   s.XStddev,
			YStddev:   s.YStddev,
			Theta:     s.Theta,
		}
	}
	return struct {
		Kind    Kind            `yaml:"kind"`
		Sources []ellipticalRow `yaml:"sources"`
	}{Elliptical, rows}, nil
}

// LoadYAML reads a YAML catalog from disk.
func LoadYAML(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &c, nil
}

// SaveYAML writes a YAML catalog to disk, creating parent directories.
func SaveYAML(c *Catalog, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
