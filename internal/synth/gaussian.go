// Package synth rasterizes analytic 2D Gaussian source models onto pixel grids.
package synth

import (
	"fmt"
	"math"
)

// Model is an analytic surface brightness model evaluated at pixel coordinates.
type Model interface {
	// Evaluate returns the model value at column x, row y.
	Evaluate(x, y float64) float64
}

// Shape is an output grid size in (row, column) = (y, x) order.
type Shape struct {
	Height int
	Width  int
}

// Validate checks that both dimensions are positive.
func (s Shape) Validate() error {
	if s.Height <= 0 || s.Width <= 0 {
		return fmt.Errorf("invalid shape %dx%d: dimensions must be > 0", s.Height, s.Width)
	}
	return nil
}

// String returns the shape as HEIGHTxWIDTH.
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Height, s.Width)
}

// Gaussian2D is an elliptical, optionally rotated 2D Gaussian source.
// Theta is in radians, counterclockwise from the +x axis.
type Gaussian2D struct {
	Amplitude float64
	XMean     float64
	YMean     float64
	XStddev   float64
	YStddev   float64
	Theta     float64
}

// Evaluate implements Model.
func (g Gaussian2D) Evaluate(x, y float64) float64 {
	cosT, sinT := math.Cos(g.Theta), math.Sin(g.Theta)
	sin2T := math.Sin(2 * g.Theta)
	xVar := g.XStddev * g.XStddev
	yVar := g.YStddev * g.YStddev

	a := 0.5 * (cosT*cosT/xVar + sinT*sinT/yVar)
	b := 0.5 * (sin2T/xVar - sin2T/yVar)
	c := 0.5 * (sinT*sinT/xVar + cosT*cosT/yVar)

	dx := x - g.XMean
	dy := y - g.YMean
	return g.Amplitude * math.Exp(-(a*dx*dx + b*dx*dy + c*dy*dy))
}

// GaussianPSF is an isotropic Gaussian point spread function.
type GaussianPSF struct {
	Amplitude float64
	X0        float64
	Y0        float64
	Sigma     float64
}

// Evaluate implements Model.
func (p GaussianPSF) Evaluate(x, y float64) float64 {
	dx := x - p.X0
	dy := y - p.Y0
	return p.Amplitude * math.Exp(-(dx*dx+dy*dy)/(2*p.Sigma*p.Sigma))
}

// Elliptical returns the equivalent Gaussian2D with equal stddevs and no rotation.
func (p GaussianPSF) Elliptical() Gaussian2D {
	return Gaussian2D{
		Amplitude: p.Amplitude,
		XMean:     p.X0,
		YMean:     p.Y0,
		XStddev:   p.Sigma,
		YStddev:   p.Sigma,
	}
}
