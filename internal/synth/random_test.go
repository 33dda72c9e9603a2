package synth

import (
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

var testRanges = SourceRanges{
	Amplitude: Range{Low: 50, High: 100},
	XStddev:   Range{Low: 1, High: 5},
	YStddev:   Range{Low: 2, High: 3},
}

func TestSampleRandomSources_Count(t *testing.T) {
	shape := Shape{Height: 300, Width: 500}

	sources := SampleRandomSources(shape, 100, testRanges, NewRNG(SeedOf(1)))
	if len(sources) != 100 {
		t.Errorf("Expected 100 sources, got %d", len(sources))
	}

	empty := SampleRandomSources(shape, 0, testRanges, NewRNG(SeedOf(1)))
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty non-nil table, got %v", empty)
	}
}

func TestSampleRandomSources_RangeContainment(t *testing.T) {
	shape := Shape{Height: 30, Width: 70}

	for trial := int64(0); trial < 50; trial++ {
		sources := SampleRandomSources(shape, 200, testRanges, NewRNG(SeedOf(trial)))
		for i, s := range sources {
			if s.Amplitude < 50 || s.Amplitude >= 100 {
				t.Fatalf("trial %d source %d: amplitude %v outside [50, 100)", trial, i, s.Amplitude)
			}
			if s.XStddev < 1 || s.XStddev >= 5 {
				t.Fatalf("trial %d source %d: x_stddev %v outside [1, 5)", trial, i, s.XStddev)
			}
			if s.YStddev < 2 || s.YStddev >= 3 {
				t.Fatalf("trial %d source %d: y_stddev %v outside [2, 3)", trial, i, s.YStddev)
			}
			if s.XMean < 0 || s.XMean >= 70 {
				t.Fatalf("trial %d source %d: x_mean %v outside [0, 70)", trial, i, s.XMean)
			}
			if s.YMean < 0 || s.YMean >= 30 {
				t.Fatalf("trial %d source %d: y_mean %v outside [0, 30)", trial, i, s.YMean)
			}
			if s.Theta < 0 || s.Theta >= 2*math.Pi {
				t.Fatalf("trial %d source %d: theta %v outside [0, 2pi)", trial, i, s.Theta)
			}
		}
	}
}

func TestSampleRandomSources_Deterministic(t *testing.T) {
	shape := Shape{Height: 100, Width: 100}

	s1 := SampleRandomSources(shape, 25, testRanges, NewRNG(SeedOf(12345)))
	s2 := SampleRandomSources(shape, 25, testRanges, NewRNG(SeedOf(12345)))

	if !reflect.DeepEqual(s1, s2) {
		t.Error("Same seed should produce identical source tables")
	}

	s3 := SampleRandomSources(shape, 25, testRanges, NewRNG(SeedOf(54321)))
	if reflect.DeepEqual(s1, s3) {
		t.Error("Different seeds should produce different source tables")
	}
}

func TestSampleRandomSources_DegenerateRange(t *testing.T) {
	ranges := SourceRanges{
		Amplitude: Range{Low: 7, High: 7},
		XStddev:   Range{Low: 2, High: 2},
		YStddev:   Range{Low: 3, High: 3},
	}

	for _, s := range SampleRandomSources(Shape{10, 10}, 10, ranges, NewRNG(SeedOf(3))) {
		if s.Amplitude != 7 || s.XStddev != 2 || s.YStddev != 3 {
			t.Errorf("Degenerate ranges should yield fixed values, got %+v", s)
		}
	}
}

func TestMakeRandomGaussians_Reproducible(t *testing.T) {
	shape := Shape{Height: 60, Width: 80}
	noise := 5.0

	img1, src1, err := MakeRandomGaussians(shape, 20, testRanges, &noise, SeedOf(12345))
	if err != nil {
		t.Fatalf("MakeRandomGaussians failed: %v", err)
	}
	img2, src2, _ := MakeRandomGaussians(shape, 20, testRanges, &noise, SeedOf(12345))

	if !reflect.DeepEqual(src1, src2) {
		t.Error("Same seed should reproduce the sources")
	}
	if !mat.Equal(img1, img2) {
		t.Error("Same seed should reproduce the image")
	}
}

func TestMakeRandomGaussians_NoiselessMatchesRasterize(t *testing.T) {
	shape := Shape{Height: 40, Width: 40}

	img, sources, err := MakeRandomGaussians(shape, 10, testRanges, nil, SeedOf(9))
	if err != nil {
		t.Fatalf("MakeRandomGaussians failed: %v", err)
	}

	want, _ := Rasterize(shape, sources)
	if !mat.Equal(img, want) {
		t.Error("Noiseless random image should equal Rasterize of its sources")
	}
}

func TestRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		r       Range
		wantErr bool
	}{
		{"ordered", Range{1, 5}, false},
		{"degenerate", Range{2, 2}, false},
		{"negative", Range{-5, -1}, false},
		{"reversed", Range{5, 1}, true},
		{"nan", Range{math.NaN(), 1}, true},
		{"inf", Range{0, math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSourceRanges_Validate(t *testing.T) {
	if err := testRanges.Validate(); err != nil {
		t.Errorf("Valid ranges rejected: %v", err)
	}

	bad := testRanges
	bad.XStddev = Range{Low: 0, High: 2}
	if err := bad.Validate(); err == nil {
		t.Error("Zero stddev bound should be rejected")
	}

	bad = testRanges
	bad.Amplitude = Range{Low: 10, High: 1}
	if err := bad.Validate(); err == nil {
		t.Error("Reversed amplitude range should be rejected")
	}
}

func TestSeed(t *testing.T) {
	if _, ok := NoSeed.Value(); ok {
		t.Error("NoSeed should report no value")
	}
	if NoSeed.String() != "none" {
		t.Errorf("NoSeed.String() = %q, want none", NoSeed.String())
	}

	v, ok := SeedOf(0).Value()
	if !ok || v != 0 {
		t.Errorf("SeedOf(0).Value() = %d, %v; want 0, true", v, ok)
	}
	if SeedOf(42).String() != "42" {
		t.Errorf("SeedOf(42).String() = %q, want 42", SeedOf(42).String())
	}
}
