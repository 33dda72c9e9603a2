package synth

import (
	"gonum.org/v1/gonum/mat"
)

// Noise requests additive zero-mean Gaussian noise with the given standard deviation.
type Noise struct {
	Stddev float64
	Seed   Seed
}

// RasterizeModels sums every model evaluated at each pixel center of the grid.
// Pixel (row i, column j) is evaluated at x=j, y=i. An empty model list yields
// an all-zero image of the requested shape.
func RasterizeModels(shape Shape, models []Model) (*mat.Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	img := mat.NewDense(shape.Height, shape.Width, nil)
	raw := img.RawMatrix()

	for _, m := range models {
		for i := 0; i < shape.Height; i++ {
			row := raw.Data[i*raw.Stride : i*raw.Stride+shape.Width]
			y := float64(i)
			for j := range row {
				row[j] += m.Evaluate(float64(j), y)
			}
		}
	}

	return img, nil
}

// Rasterize renders a table of elliptical Gaussian sources.
func Rasterize(shape Shape, sources []Gaussian2D) (*mat.Dense, error) {
	models := make([]Model, len(sources))
	for i, s := range sources {
		models[i] = s
	}
	return RasterizeModels(shape, models)
}

// RasterizePSF renders a table of isotropic Gaussian PSF sources.
func RasterizePSF(shape Shape, psfs []GaussianPSF) (*mat.Dense, error) {
	models := make([]Model, len(psfs))
	for i, p := range psfs {
		models[i] = p
	}
	return RasterizeModels(shape, models)
}

// RasterizeWithNoise renders sources and, when noise is non-nil, adds one
// N(0, noise.Stddev) sample per pixel drawn from NewRNG(noise.Seed).
// A nil noise returns exactly what Rasterize returns.
func RasterizeWithNoise(shape Shape, sources []Gaussian2D, noise *Noise) (*mat.Dense, error) {
	img, err := Rasterize(shape, sources)
	if err != nil {
		return nil, err
	}
	if noise != nil {
		AddNoise(img, noise.Stddev, NewRNG(noise.Seed))
	}
	return img, nil
}
