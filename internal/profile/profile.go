// Package profile extracts one-dimensional cuts through a rendered image and
// plots them as text.
package profile

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"
)

// Cut extracts a row (row >= 0), a column (column >= 0) or, when both are
// negative, the row through the brightest pixel. The caption names the cut.
func Cut(img *mat.Dense, row, column int) ([]float64, string, error) {
	r, c := img.Dims()
	switch {
	case column >= 0:
		if column >= c {
			return nil, "", fmt.Errorf("column %d out of range [0, %d)", column, c)
		}
		return mat.Col(nil, column, img), fmt.Sprintf("column %d", column), nil
	case row >= 0:
		if row >= r {
			return nil, "", fmt.Errorf("row %d out of range [0, %d)", row, r)
		}
		return mat.Row(nil, row, img), fmt.Sprintf("row %d", row), nil
	default:
		peak, _ := Brightest(img)
		return mat.Row(nil, peak, img), fmt.Sprintf("row %d (brightest pixel)", peak), nil
	}
}

// Brightest returns the row and column of the maximum value. Ties keep the
// first pixel in row-major order.
func Brightest(img *mat.Dense) (int, int) {
	r, c := img.Dims()
	bestRow, bestCol := 0, 0
	best := img.At(0, 0)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := img.At(i, j); v > best {
				best, bestRow, bestCol = v, i, j
			}
		}
	}
	return bestRow, bestCol
}

// Render draws data as an ASCII line graph.
func Render(data []float64, caption string, height, width int) string {
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Plot writes the rendered graph of data to w.
func Plot(w io.Writer, data []float64, caption string, height, width int) error {
	_, err := fmt.Fprintln(w, Render(data, caption, height, width))
	return err
}
