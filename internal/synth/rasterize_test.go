package synth

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tolerance = 1e-12

func TestRasterize_SingleSourcePeak(t *testing.T) {
	shape := Shape{Height: 100, Width: 200}
	sources := []Gaussian2D{
		{Amplitude: 10, XMean: 100, YMean: 50, XStddev: 3, YStddev: 3, Theta: 0},
	}

	img, err := Rasterize(shape, sources)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	if got := img.At(50, 100); math.Abs(got-10) > tolerance {
		t.Errorf("Peak at (50, 100) = %v, want 10", got)
	}
	if got := mat.Max(img); math.Abs(got-10) > tolerance {
		t.Errorf("Image max = %v, want 10", got)
	}

	// One sigma away along x the value drops to amplitude * exp(-1/2)
	want := 10 * math.Exp(-0.5)
	if got := img.At(50, 103); math.Abs(got-want) > tolerance {
		t.Errorf("Value at (50, 103) = %v, want %v", got, want)
	}

	// Far corners are effectively zero
	if got := img.At(0, 0); got > 1e-100 {
		t.Errorf("Corner value = %v, want ~0", got)
	}
}

func TestRasterize_EmptyTable(t *testing.T) {
	img, err := Rasterize(Shape{Height: 10, Width: 10}, nil)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	r, c := img.Dims()
	if r != 10 || c != 10 {
		t.Fatalf("Expected 10x10 image, got %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if img.At(i, j) != 0 {
				t.Fatalf("Pixel (%d, %d) = %v, want 0", i, j, img.At(i, j))
			}
		}
	}
}

func TestRasterize_ShapeInvariant(t *testing.T) {
	shapes := []Shape{{1, 1}, {3, 7}, {64, 32}, {100, 200}}
	sources := []Gaussian2D{
		{Amplitude: 5, XMean: 500, YMean: -20, XStddev: 2, YStddev: 4, Theta: 1},
	}

	for _, shape := range shapes {
		t.Run(shape.String(), func(t *testing.T) {
			img, err := Rasterize(shape, sources)
			if err != nil {
				t.Fatalf("Rasterize failed: %v", err)
			}
			r, c := img.Dims()
			if r != shape.Height || c != shape.Width {
				t.Errorf("Dims = %dx%d, want %s", r, c, shape)
			}
		})
	}
}

func TestRasterize_InvalidShape(t *testing.T) {
	tests := []Shape{{0, 10}, {10, 0}, {-1, 5}}

	for _, shape := range tests {
		if _, err := Rasterize(shape, nil); err == nil {
			t.Errorf("Rasterize(%s) expected error, got nil", shape)
		}
	}
}

func TestRasterize_Additivity(t *testing.T) {
	shape := Shape{Height: 40, Width: 60}
	a := Gaussian2D{Amplitude: 50, XMean: 20, YMean: 15, XStddev: 5, YStddev: 2.5, Theta: 0.35}
	b := Gaussian2D{Amplitude: -7, XMean: 41.3, YMean: 22.8, XStddev: 1.5, YStddev: 6, Theta: 2.5}

	both, err := Rasterize(shape, []Gaussian2D{a, b})
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	onlyA, _ := Rasterize(shape, []Gaussian2D{a})
	onlyB, _ := Rasterize(shape, []Gaussian2D{b})

	var sum mat.Dense
	sum.Add(onlyA, onlyB)

	if !mat.EqualApprox(both, &sum, 1e-9) {
		t.Error("Rasterizing {A, B} differs from Rasterize({A}) + Rasterize({B})")
	}
}

func TestRasterize_OrderIndependent(t *testing.T) {
	shape := Shape{Height: 30, Width: 30}
	sources := []Gaussian2D{
		{Amplitude: 3, XMean: 10, YMean: 10, XStddev: 2, YStddev: 3, Theta: 0.1},
		{Amplitude: 8, XMean: 20, YMean: 5, XStddev: 4, YStddev: 1, Theta: 1.2},
		{Amplitude: 1, XMean: 5, YMean: 25, XStddev: 1, YStddev: 1, Theta: 0},
	}
	reversed := []Gaussian2D{sources[2], sources[1], sources[0]}

	img1, _ := Rasterize(shape, sources)
	img2, _ := Rasterize(shape, reversed)

	if !mat.EqualApprox(img1, img2, 1e-12) {
		t.Error("Source order should not affect the rendered image")
	}
}

func TestGaussian2D_Rotation(t *testing.T) {
	// An x-elongated source rotated by 90 degrees is y-elongated
	g := Gaussian2D{Amplitude: 1, XMean: 0, YMean: 0, XStddev: 4, YStddev: 1, Theta: math.Pi / 2}
	ref := Gaussian2D{Amplitude: 1, XMean: 0, YMean: 0, XStddev: 1, YStddev: 4, Theta: 0}

	points := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {2, 3}, {-3, 1.5}}
	for _, p := range points {
		got := g.Evaluate(p[0], p[1])
		want := ref.Evaluate(p[0], p[1])
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Evaluate(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestGaussian2D_RotationIsCounterclockwise(t *testing.T) {
	// At 45 degrees counterclockwise the major axis lies along y = x
	g := Gaussian2D{Amplitude: 1, XMean: 0, YMean: 0, XStddev: 4, YStddev: 1, Theta: math.Pi / 4}

	for _, d := range []float64{0.5, 1, 2, 3} {
		along := g.Evaluate(d, d)
		across := g.Evaluate(d, -d)
		if along <= across {
			t.Errorf("d=%v: Evaluate(d, d) = %v should exceed Evaluate(d, -d) = %v", d, along, across)
		}
	}

	// Mirrored angle puts the major axis along y = -x
	g.Theta = -math.Pi / 4
	if g.Evaluate(2, -2) <= g.Evaluate(2, 2) {
		t.Error("Negative theta should rotate clockwise")
	}

	// Exact value on the major axis: distance sqrt(8) along sigma 4
	g.Theta = math.Pi / 4
	if got, want := g.Evaluate(2, 2), math.Exp(-8.0/(2*16)); math.Abs(got-want) > 1e-12 {
		t.Errorf("Evaluate(2, 2) = %v, want %v", got, want)
	}
}

func TestGaussian2D_RotationSymmetricWhenCircular(t *testing.T) {
	a := Gaussian2D{Amplitude: 2, XMean: 5, YMean: 5, XStddev: 3, YStddev: 3, Theta: 0}
	b := a
	b.Theta = 0.77

	if got, want := b.Evaluate(7, 3), a.Evaluate(7, 3); math.Abs(got-want) > 1e-12 {
		t.Errorf("Circular source should ignore theta: %v != %v", got, want)
	}
}

func TestRasterizePSF_MatchesElliptical(t *testing.T) {
	shape := Shape{Height: 25, Width: 35}
	psfs := []GaussianPSF{
		{Amplitude: 2.5, X0: 10, Y0: 12, Sigma: 1.5},
		{Amplitude: 2.1, X0: 30.2, Y0: 3.3, Sigma: 1.9},
	}
	ellipses := []Gaussian2D{psfs[0].Elliptical(), psfs[1].Elliptical()}

	fromPSF, err := RasterizePSF(shape, psfs)
	if err != nil {
		t.Fatalf("RasterizePSF failed: %v", err)
	}
	fromEllipse, _ := Rasterize(shape, ellipses)

	if !mat.EqualApprox(fromPSF, fromEllipse, 1e-12) {
		t.Error("Isotropic PSF should equal an unrotated Gaussian2D with equal stddevs")
	}
	if got := fromPSF.At(12, 10); math.Abs(got-2.5) > 1e-3 {
		t.Errorf("PSF peak = %v, want ~2.5", got)
	}
}

func TestRasterizeWithNoise_NilNoiseEqualsRasterize(t *testing.T) {
	shape := Shape{Height: 20, Width: 20}
	sources := []Gaussian2D{{Amplitude: 4, XMean: 10, YMean: 10, XStddev: 2, YStddev: 2}}

	plain, _ := Rasterize(shape, sources)
	noisy, err := RasterizeWithNoise(shape, sources, nil)
	if err != nil {
		t.Fatalf("RasterizeWithNoise failed: %v", err)
	}

	if !mat.Equal(plain, noisy) {
		t.Error("Nil noise must reproduce Rasterize exactly")
	}
}

func TestRasterizeWithNoise_Deterministic(t *testing.T) {
	shape := Shape{Height: 32, Width: 48}
	sources := []Gaussian2D{{Amplitude: 50, XMean: 16, YMean: 16, XStddev: 3, YStddev: 5, Theta: 0.4}}
	noise := &Noise{Stddev: 5, Seed: SeedOf(12345)}

	img1, _ := RasterizeWithNoise(shape, sources, noise)
	img2, _ := RasterizeWithNoise(shape, sources, noise)

	if !mat.Equal(img1, img2) {
		t.Error("Same seed should produce identical noisy images")
	}
}

func TestRasterizeWithNoise_ZeroSeedIsDeterministic(t *testing.T) {
	shape := Shape{Height: 16, Width: 16}
	noise := &Noise{Stddev: 1, Seed: SeedOf(0)}

	img1, _ := RasterizeWithNoise(shape, nil, noise)
	img2, _ := RasterizeWithNoise(shape, nil, noise)

	if !mat.Equal(img1, img2) {
		t.Error("An explicit zero seed should be deterministic")
	}
}

func TestRasterizeWithNoise_DifferentSeeds(t *testing.T) {
	shape := Shape{Height: 16, Width: 16}

	img1, _ := RasterizeWithNoise(shape, nil, &Noise{Stddev: 1, Seed: SeedOf(42)})
	img2, _ := RasterizeWithNoise(shape, nil, &Noise{Stddev: 1, Seed: SeedOf(43)})

	if mat.Equal(img1, img2) {
		t.Error("Different seeds should produce different noise")
	}
}

func TestRasterizeWithNoise_NoSeedIsFresh(t *testing.T) {
	shape := Shape{Height: 16, Width: 16}

	img1, _ := RasterizeWithNoise(shape, nil, &Noise{Stddev: 1})
	img2, _ := RasterizeWithNoise(shape, nil, &Noise{Stddev: 1})

	if mat.Equal(img1, img2) {
		t.Error("Unseeded noise should differ between calls")
	}
}

func TestAddNoise_Statistics(t *testing.T) {
	img := mat.NewDense(200, 200, nil)
	AddNoise(img, 5, NewRNG(SeedOf(7)))

	raw := img.RawMatrix()
	var sum, sumSq float64
	for _, v := range raw.Data {
		sum += v
		sumSq += v * v
	}
	n := float64(len(raw.Data))
	mean := sum / n
	stddev := math.Sqrt(sumSq/n - mean*mean)

	if math.Abs(mean) > 0.1 {
		t.Errorf("Noise mean = %v, want ~0", mean)
	}
	if math.Abs(stddev-5) > 0.1 {
		t.Errorf("Noise stddev = %v, want ~5", stddev)
	}
}
