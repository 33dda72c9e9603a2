package synth

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Seed is an optional PRNG seed. The zero value is NoSeed; any value passed to
// SeedOf, including 0, is a deterministic seed.
type Seed struct {
	value int64
	set   bool
}

// NoSeed requests fresh, non-reproducible random draws.
var NoSeed = Seed{}

// SeedOf returns a deterministic seed.
func SeedOf(v int64) Seed {
	return Seed{value: v, set: true}
}

// Value returns the seed value and whether one was provided.
func (s Seed) Value() (int64, bool) {
	return s.value, s.set
}

// String returns the seed value, or "none".
func (s Seed) String() string {
	if !s.set {
		return "none"
	}
	return strconv.FormatInt(s.value, 10)
}

// NewRNG returns a PCG generator for the seed. For NoSeed the generator is
// seeded from the runtime entropy source, so each call draws a new sequence.
func NewRNG(seed Seed) *rand.Rand {
	if v, ok := seed.Value(); ok {
		return rand.New(rand.NewPCG(uint64(v), uint64(v)))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// AddNoise adds one N(0, stddev) sample per pixel in row-major order.
func AddNoise(img *mat.Dense, stddev float64, rng *rand.Rand) {
	raw := img.RawMatrix()
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j := range row {
			row[j] += rng.NormFloat64() * stddev
		}
	}
}

// Range is a half-open interval [Low, High) for uniform sampling.
type Range struct {
	Low  float64
	High float64
}

// Validate checks that Low <= High and both bounds are finite.
func (r Range) Validate() error {
	if math.IsNaN(r.Low) || math.IsNaN(r.High) || math.IsInf(r.Low, 0) || math.IsInf(r.High, 0) {
		return fmt.Errorf("range bounds must be finite, got [%g, %g)", r.Low, r.High)
	}
	if r.Low > r.High {
		return fmt.Errorf("range low %g is greater than high %g", r.Low, r.High)
	}
	return nil
}

// Sample draws a uniform value from the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Low + (r.High-r.Low)*rng.Float64()
}

// String returns the range as LOW:HIGH. The colon keeps exponents such as
// 1e-07 unambiguous.
func (r Range) String() string {
	return fmt.Sprintf("%g:%g", r.Low, r.High)
}

// SourceRanges holds the sampling ranges for the free source parameters.
// Positions and rotation are always drawn over the grid and [0, 2π).
type SourceRanges struct {
	Amplitude Range
	XStddev   Range
	YStddev   Range
}

// Validate checks each range and requires strictly positive stddev bounds.
func (r SourceRanges) Validate() error {
	if err := r.Amplitude.Validate(); err != nil {
		return fmt.Errorf("amplitude: %w", err)
	}
	if err := r.XStddev.Validate(); err != nil {
		return fmt.Errorf("x stddev: %w", err)
	}
	if err := r.YStddev.Validate(); err != nil {
		return fmt.Errorf("y stddev: %w", err)
	}
	if r.XStddev.Low <= 0 || r.YStddev.Low <= 0 {
		return fmt.Errorf("stddev ranges must be > 0")
	}
	return nil
}

// SampleRandomSources draws n sources with every field sampled independently
// and uniformly. Fields are drawn column by column (all amplitudes, then all
// x means, ...) so a seed yields the same table regardless of how it is consumed.
func SampleRandomSources(shape Shape, n int, ranges SourceRanges, rng *rand.Rand) []Gaussian2D {
	if n <= 0 {
		return []Gaussian2D{}
	}

	sources := make([]Gaussian2D, n)
	xRange := Range{Low: 0, High: float64(shape.Width)}
	yRange := Range{Low: 0, High: float64(shape.Height)}
	thetaRange := Range{Low: 0, High: 2 * math.Pi}

	for i := range sources {
		sources[i].Amplitude = ranges.Amplitude.Sample(rng)
	}
	for i := range sources {
		sources[i].XMean = xRange.Sample(rng)
	}
	for i := range sources {
		sources[i].YMean = yRange.Sample(rng)
	}
	for i := range sources {
		sources[i].XStddev = ranges.XStddev.Sample(rng)
	}
	for i := range sources {
		sources[i].YStddev = ranges.YStddev.Sample(rng)
	}
	for i := range sources {
		sources[i].Theta = thetaRange.Sample(rng)
	}

	return sources
}

// MakeRandomGaussians samples n random sources and renders them. The sources
// are drawn from NewRNG(seed) and the noise from a second NewRNG(seed), so one
// seed reproduces both. A nil noiseStddev renders without noise.
func MakeRandomGaussians(shape Shape, n int, ranges SourceRanges, noiseStddev *float64, seed Seed) (*mat.Dense, []Gaussian2D, error) {
	if err := shape.Validate(); err != nil {
		return nil, nil, err
	}

	sources := SampleRandomSources(shape, n, ranges, NewRNG(seed))

	var noise *Noise
	if noiseStddev != nil {
		noise = &Noise{Stddev: *noiseStddev, Seed: seed}
	}

	img, err := RasterizeWithNoise(shape, sources, noise)
	if err != nil {
		return nil, nil, err
	}
	return img, sources, nil
}
