// Package export writes rendered images to disk in viewer-friendly formats.
package export

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"
)

// Scale linearly maps floating-point pixel values onto the 16-bit range.
// Values at Min map to 0 and values at Max map to 65535.
type Scale struct {
	Min float64
	Max float64
}

// ScaleOf returns the min/max scale of a matrix.
func ScaleOf(m mat.Matrix) Scale {
	return Scale{Min: mat.Min(m), Max: mat.Max(m)}
}

// Level returns the 16-bit level for v. A constant image maps to 0.
func (s Scale) Level(v float64) uint16 {
	span := s.Max - s.Min
	if span <= 0 || math.IsNaN(v) {
		return 0
	}
	f := (v - s.Min) / span * math.MaxUint16
	if f <= 0 {
		return 0
	}
	if f >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(math.Round(f))
}

// Slope returns the value step per 16-bit level, for restoring float values.
func (s Scale) Slope() float64 {
	span := s.Max - s.Min
	if span <= 0 {
		return 1
	}
	return span / math.MaxUint16
}

// MatrixImage presents a matrix as a 16-bit grayscale image. Row i, column j
// of the matrix is pixel (x=j, y=i).
type MatrixImage struct {
	matrix mat.Matrix
	scale  Scale
}

// NewMatrixImage wraps a matrix using its own min/max scale.
func NewMatrixImage(m mat.Matrix) *MatrixImage {
	return &MatrixImage{matrix: m, scale: ScaleOf(m)}
}

// Scale returns the value scale used by the image.
func (mi *MatrixImage) Scale() Scale {
	return mi.scale
}

// At implements image.Image.
func (mi *MatrixImage) At(x, y int) color.Color {
	return color.Gray16{Y: mi.scale.Level(mi.matrix.At(y, x))}
}

// ColorModel implements image.Image.
func (mi *MatrixImage) ColorModel() color.Model {
	return color.Gray16Model
}

// Bounds implements image.Image.
func (mi *MatrixImage) Bounds() image.Rectangle {
	r, c := mi.matrix.Dims()
	return image.Rect(0, 0, c, r)
}

// Gray16 materializes the image so encoders can use their native 16-bit paths.
func (mi *MatrixImage) Gray16() *image.Gray16 {
	dst := image.NewGray16(mi.Bounds())
	draw.Draw(dst, dst.Bounds(), mi, image.Point{}, draw.Src)
	return dst
}
