package util

import (
	"testing"

	"github.com/mrsinham/starforge/internal/synth"
)

func TestParseShape_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected synth.Shape
	}{
		{"100x200", synth.Shape{Height: 100, Width: 200}},
		{"1x1", synth.Shape{Height: 1, Width: 1}},
		{"512X512", synth.Shape{Height: 512, Width: 512}},
		{" 30x40 ", synth.Shape{Height: 30, Width: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseShape(tt.input)
			if err != nil {
				t.Fatalf("ParseShape(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseShape(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseShape_Invalid(t *testing.T) {
	tests := []string{"", "100", "100x", "x200", "0x10", "10x0", "-5x5", "10*10", "abc"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseShape(input); err == nil {
				t.Errorf("ParseShape(%q) expected error, got nil", input)
			}
		})
	}
}

func TestParseRange_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected synth.Range
	}{
		{"50-100", synth.Range{Low: 50, High: 100}},
		{"1.5:4", synth.Range{Low: 1.5, High: 4}},
		{"2", synth.Range{Low: 2, High: 2}},
		{"-5:-1", synth.Range{Low: -5, High: -1}},
		{"-10:10", synth.Range{Low: -10, High: 10}},
		{"1 - 5", synth.Range{Low: 1, High: 5}},
		{"1e3-2e3", synth.Range{Low: 1000, High: 2000}},
		{".5-1", synth.Range{Low: 0.5, High: 1}},
		{"1e-07:2", synth.Range{Low: 1e-7, High: 2}},
		{"-1e-3-+5", synth.Range{Low: -1e-3, High: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseRange(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseRange_StringRoundTrip(t *testing.T) {
	ranges := []synth.Range{
		{Low: 1, High: 10},
		{Low: 0.5, High: 1.5},
		{Low: 1e-7, High: 2},
		{Low: 1, High: 1e21},
		{Low: -2.5e-9, High: -1e-9},
		{Low: 3, High: 3},
	}

	for _, r := range ranges {
		got, err := ParseRange(r.String())
		if err != nil {
			t.Errorf("ParseRange(%q) unexpected error: %v", r.String(), err)
			continue
		}
		if got != r {
			t.Errorf("ParseRange(%q) = %v, want %v", r.String(), got, r)
		}
	}
}

func TestParseRange_Invalid(t *testing.T) {
	tests := []string{"", "abc", "5-1", "1-2-3", "1..5", "a:b"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseRange(input); err == nil {
				t.Errorf("ParseRange(%q) expected error, got nil", input)
			}
		})
	}
}

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed("")
	if err != nil {
		t.Fatalf("ParseSeed(\"\") unexpected error: %v", err)
	}
	if _, ok := seed.Value(); ok {
		t.Error("Empty seed should be NoSeed")
	}

	seed, _ = ParseSeed("none")
	if _, ok := seed.Value(); ok {
		t.Error("\"none\" should be NoSeed")
	}

	seed, err = ParseSeed("0")
	if err != nil {
		t.Fatalf("ParseSeed(\"0\") unexpected error: %v", err)
	}
	if v, ok := seed.Value(); !ok || v != 0 {
		t.Errorf("ParseSeed(\"0\") = %v, want explicit 0", seed)
	}

	seed, _ = ParseSeed("-42")
	if v, ok := seed.Value(); !ok || v != -42 {
		t.Errorf("ParseSeed(\"-42\") = %v, want -42", seed)
	}

	if _, err := ParseSeed("1.5"); err == nil {
		t.Error("ParseSeed(\"1.5\") expected error")
	}
}
