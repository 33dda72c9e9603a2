// Package catalog reads and writes tables of Gaussian source parameters.
//
// Column names follow the model parameter names: an elliptical catalog has
// amplitude, x_mean, y_mean, x_stddev, y_stddev and theta (radians); a PSF
// catalog has amplitude, x_0, y_0 and sigma.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mrsinham/starforge/internal/synth"
	"gonum.org/v1/gonum/mat"
)

// Kind selects the Gaussian parameterization of a catalog.
type Kind string

const (
	Elliptical Kind = "elliptical" // synth.Gaussian2D rows
	PSF        Kind = "psf"        // synth.GaussianPSF rows
)

var (
	ellipticalColumns = []string{"amplitude", "x_mean", "y_mean", "x_stddev", "y_stddev", "theta"}
	psfColumns        = []string{"amplitude", "x_0", "y_0", "sigma"}
)

// Columns returns the required column names for a kind, in canonical order.
func (k Kind) Columns() []string {
	if k == PSF {
		return psfColumns
	}
	return ellipticalColumns
}

// ParseKind parses a catalog kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "elliptical", "gaussian2d":
		return Elliptical, nil
	case "psf":
		return PSF, nil
	default:
		return "", fmt.Errorf("invalid catalog kind: %s (valid: elliptical, psf)", s)
	}
}

// Catalog is an ordered table of sources of a single kind.
type Catalog struct {
	Kind    Kind
	Sources []synth.Gaussian2D
	PSFs    []synth.GaussianPSF
}

// FromSources builds an elliptical catalog.
func FromSources(sources []synth.Gaussian2D) *Catalog {
	return &Catalog{Kind: Elliptical, Sources: sources}
}

// FromPSFs builds a PSF catalog.
func FromPSFs(psfs []synth.GaussianPSF) *Catalog {
	return &Catalog{Kind: PSF, PSFs: psfs}
}

// Len returns the number of sources.
func (c *Catalog) Len() int {
	if c.Kind == PSF {
		return len(c.PSFs)
	}
	return len(c.Sources)
}

// Models returns the catalog rows as rasterizable models.
func (c *Catalog) Models() []synth.Model {
	models := make([]synth.Model, 0, c.Len())
	if c.Kind == PSF {
		for _, p := range c.PSFs {
			models = append(models, p)
		}
		return models
	}
	for _, s := range c.Sources {
		models = append(models, s)
	}
	return models
}

// Ellipticals returns every row as a Gaussian2D. PSF rows become unrotated
// Gaussians with equal stddevs, which evaluate identically.
func (c *Catalog) Ellipticals() []synth.Gaussian2D {
	if c.Kind != PSF {
		return c.Sources
	}
	out := make([]synth.Gaussian2D, len(c.PSFs))
	for i, p := range c.PSFs {
		out[i] = p.Elliptical()
	}
	return out
}

// Rasterize renders the catalog with optional noise. Each kind is evaluated
// with its own formula, so the noiseless part matches RasterizeModels exactly.
func (c *Catalog) Rasterize(shape synth.Shape, noise *synth.Noise) (*mat.Dense, error) {
	img, err := synth.RasterizeModels(shape, c.Models())
	if err != nil {
		return nil, err
	}
	if noise != nil {
		synth.AddNoise(img, noise.Stddev, synth.NewRNG(noise.Seed))
	}
	return img, nil
}

// appendRow adds one row of the catalog's kind, looking each column up by name.
func (c *Catalog) appendRow(lookup func(col string) (float64, error)) error {
	values := make(map[string]float64, len(c.Kind.Columns()))
	for _, col := range c.Kind.Columns() {
		v, err := lookup(col)
		if err != nil {
			return err
		}
		values[col] = v
	}

	if c.Kind == PSF {
		c.PSFs = append(c.PSFs, synth.GaussianPSF{
			Amplitude: values["amplitude"],
			X0:        values["x_0"],
			Y0:        values["y_0"],
			Sigma:     values["sigma"],
		})
		return nil
	}

	c.Sources = append(c.Sources, synth.Gaussian2D{
		Amplitude: values["amplitude"],
		XMean:     values["x_mean"],
		YMean:     values["y_mean"],
		XStddev:   values["x_stddev"],
		YStddev:   values["y_stddev"],
		Theta:     values["theta"],
	})
	return nil
}

// rowValues returns row i in canonical column order.
func (c *Catalog) rowValues(i int) []float64 {
	if c.Kind == PSF {
		p := c.PSFs[i]
		return []float64{p.Amplitude, p.X0, p.Y0, p.Sigma}
	}
	s := c.Sources[i]
	return []float64{s.Amplitude, s.XMean, s.YMean, s.XStddev, s.YStddev, s.Theta}
}

// detectKind picks the kind whose columns are all present. Elliptical wins
// when both are satisfied.
func detectKind(has func(col string) bool) (Kind, error) {
	missing := func(k Kind) []string {
		var out []string
		for _, col := range k.Columns() {
			if !has(col) {
				out = append(out, col)
			}
		}
		return out
	}

	ellMissing := missing(Elliptical)
	if len(ellMissing) == 0 {
		return Elliptical, nil
	}
	if len(missing(PSF)) == 0 {
		return PSF, nil
	}
	return "", fmt.Errorf("missing columns %v (or use PSF columns %v)", ellMissing, psfColumns)
}

// Load reads a catalog, choosing the format from the file extension.
func Load(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSVFile(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("unsupported catalog extension %q (use .csv, .yaml or .yml)", filepath.Ext(path))
	}
}

// Save writes a catalog, choosing the format from the file extension.
func Save(c *Catalog, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSVFile(c, path)
	case ".yaml", ".yml":
		return SaveYAML(c, path)
	default:
		return fmt.Errorf("unsupported catalog extension %q (use .csv, .yaml or .yml)", filepath.Ext(path))
	}
}
