package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mrsinham/starforge/internal/synth"
)

var (
	shapePattern = regexp.MustCompile(`^(\d+)[xX](\d+)$`)
	rangePattern = regexp.MustCompile(`^([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)(?:-|:)([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)$`)
)

// ParseShape parses a grid shape given as HEIGHTxWIDTH (e.g., "100x200").
func ParseShape(s string) (synth.Shape, error) {
	matches := shapePattern.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return synth.Shape{}, fmt.Errorf("invalid shape: '%s'. Use format like '100x200' (height x width)", s)
	}

	height, err := strconv.Atoi(matches[1])
	if err != nil {
		return synth.Shape{}, fmt.Errorf("invalid height: %v", err)
	}
	width, err := strconv.Atoi(matches[2])
	if err != nil {
		return synth.Shape{}, fmt.Errorf("invalid width: %v", err)
	}

	shape := synth.Shape{Height: height, Width: width}
	if err := shape.Validate(); err != nil {
		return synth.Shape{}, err
	}
	return shape, nil
}

// ParseRange parses a uniform sampling range given as LOW-HIGH or LOW:HIGH
// (e.g., "50-100", "1.5:4"). A single number N yields the degenerate range N-N.
func ParseRange(s string) (synth.Range, error) {
	s = strings.ReplaceAll(s, " ", "")

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		r := synth.Range{Low: v, High: v}
		if err := r.Validate(); err != nil {
			return synth.Range{}, err
		}
		return r, nil
	}

	matches := rangePattern.FindStringSubmatch(s)
	if matches == nil {
		return synth.Range{}, fmt.Errorf("invalid range: '%s'. Use format like '50-100' or '1.5:4'", s)
	}

	low, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return synth.Range{}, fmt.Errorf("invalid range low bound: %v", err)
	}
	high, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return synth.Range{}, fmt.Errorf("invalid range high bound: %v", err)
	}

	r := synth.Range{Low: low, High: high}
	if err := r.Validate(); err != nil {
		return synth.Range{}, err
	}
	return r, nil
}

// ParseSeed parses an optional seed. An empty string or "none" yields
// synth.NoSeed; any integer, including 0, is a deterministic seed.
func ParseSeed(s string) (synth.Seed, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return synth.NoSeed, nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return synth.NoSeed, fmt.Errorf("invalid seed: '%s' (must be an integer)", s)
	}
	return synth.SeedOf(v), nil
}
