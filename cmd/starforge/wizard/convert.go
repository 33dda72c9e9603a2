package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrsinham/starforge/cmd/starforge/wizard/types"
	"github.com/mrsinham/starforge/internal/catalog"
	"github.com/mrsinham/starforge/internal/export"
	"github.com/mrsinham/starforge/internal/generator"
	"github.com/mrsinham/starforge/internal/synth"
	"github.com/mrsinham/starforge/internal/util"
)

// ToGeneratorOptions converts WizardState to generator options.
// Inline sources take precedence over a catalog file.
func ToGeneratorOptions(s *WizardState) (generator.Options, error) {
	g := s.Global

	shape, err := util.ParseShape(g.Shape)
	if err != nil {
		return generator.Options{}, err
	}

	format := export.PNG
	if g.Format != "" {
		format, err = export.ParseFormat(g.Format)
		if err != nil {
			return generator.Options{}, err
		}
	}

	seed, err := util.ParseSeed(g.Seed)
	if err != nil {
		return generator.Options{}, err
	}

	opts := generator.Options{
		Shape:      shape,
		NumImages:  g.NumImages,
		NumSources: g.NumSources,
		Seed:       seed,
		Format:     format,
		OutputDir:  g.OutputDir,
		Workers:    g.Workers,
		Annotate:   g.Annotate,
	}

	if n := strings.TrimSpace(g.Noise); n != "" {
		v, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return generator.Options{}, fmt.Errorf("invalid noise %q: %w", g.Noise, err)
		}
		opts.NoiseStddev = &v
	}

	switch {
	case len(s.Sources) > 0:
		sources := make([]synth.Gaussian2D, len(s.Sources))
		for i, src := range s.Sources {
			sources[i] = synth.Gaussian2D(src)
		}
		opts.Sources = catalog.FromSources(sources)
	case g.Catalog != "":
		cat, err := catalog.Load(g.Catalog)
		if err != nil {
			return generator.Options{}, err
		}
		opts.Sources = cat
	default:
		ranges, err := parseRanges(g)
		if err != nil {
			return generator.Options{}, err
		}
		opts.SourceRanges = ranges
	}

	return opts, nil
}

func parseRanges(g types.GlobalConfig) (synth.SourceRanges, error) {
	var r synth.SourceRanges
	fields := []struct {
		name  string
		value string
		dst   *synth.Range
	}{
		{"amplitude", g.Amplitude, &r.Amplitude},
		{"x stddev", g.XStddev, &r.XStddev},
		{"y stddev", g.YStddev, &r.YStddev},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		parsed, err := util.ParseRange(f.value)
		if err != nil {
			return r, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = parsed
	}
	return r, nil
}

// FromGeneratorOptions creates a WizardState from generator options.
// Used for --save-config to export CLI options as YAML.
func FromGeneratorOptions(opts generator.Options) *WizardState {
	state := &WizardState{
		Global: types.GlobalConfig{
			Shape:      opts.Shape.String(),
			NumImages:  opts.NumImages,
			NumSources: opts.NumSources,
			Format:     string(opts.Format),
			OutputDir:  opts.OutputDir,
			Workers:    opts.Workers,
			Annotate:   opts.Annotate,
		},
	}

	if opts.NoiseStddev != nil {
		state.Global.Noise = strconv.FormatFloat(*opts.NoiseStddev, 'g', -1, 64)
	}
	if v, ok := opts.Seed.Value(); ok {
		state.Global.Seed = strconv.FormatInt(v, 10)
	}

	if opts.Sources != nil {
		state.Global.NumSources = 0
		for _, src := range opts.Sources.Ellipticals() {
			state.Sources = append(state.Sources, types.SourceConfig(src))
		}
	} else {
		state.Global.Amplitude = opts.SourceRanges.Amplitude.String()
		state.Global.XStddev = opts.SourceRanges.XStddev.String()
		state.Global.YStddev = opts.SourceRanges.YStddev.String()
	}

	return state
}
