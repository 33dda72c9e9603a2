package main

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/mrsinham/starforge/cmd/starforge/wizard"
	"github.com/mrsinham/starforge/internal/catalog"
	"github.com/mrsinham/starforge/internal/export"
	"github.com/mrsinham/starforge/internal/generator"
	"github.com/mrsinham/starforge/internal/profile"
	"github.com/mrsinham/starforge/internal/synth"
	"github.com/mrsinham/starforge/internal/util"
	"github.com/spf13/cobra"
)

// batchFlags are the output flags shared by generate and random.
type batchFlags struct {
	shape      string
	images     int
	noise      string
	seed       string
	format     string
	output     string
	workers    int
	annotate   bool
	saveConfig string
}

func (f *batchFlags) register(cmd *cobra.Command, defaultImages int) {
	fs := cmd.Flags()
	fs.StringVar(&f.shape, "shape", "256x256", "image shape HEIGHTxWIDTH")
	fs.IntVar(&f.images, "images", defaultImages, "number of images")
	fs.StringVar(&f.noise, "noise", "", "gaussian noise stddev (empty = no noise)")
	fs.StringVar(&f.seed, "seed", "", "seed for reproducibility (empty = derived from --output)")
	fs.StringVar(&f.format, "format", "png", "output format: png, tiff, dicom, raw")
	fs.StringVarP(&f.output, "output", "o", "starfield", "output directory")
	fs.IntVar(&f.workers, "workers", 0, fmt.Sprintf("parallel workers (default: %d = CPU cores)", runtime.NumCPU()))
	fs.BoolVar(&f.annotate, "annotate", false, "draw apertures and a caption")
	fs.StringVar(&f.saveConfig, "save-config", "", "save configuration to YAML (after generation)")
}

func (f *batchFlags) options() (generator.Options, error) {
	shape, err := util.ParseShape(f.shape)
	if err != nil {
		return generator.Options{}, err
	}
	noise, err := parseNoise(f.noise)
	if err != nil {
		return generator.Options{}, err
	}
	seed, err := util.ParseSeed(f.seed)
	if err != nil {
		return generator.Options{}, err
	}
	format, err := export.ParseFormat(f.format)
	if err != nil {
		return generator.Options{}, err
	}
	if f.images <= 0 {
		return generator.Options{}, fmt.Errorf("--images must be > 0")
	}

	return generator.Options{
		Shape:       shape,
		NumImages:   f.images,
		NoiseStddev: noise,
		Seed:        seed,
		Format:      format,
		OutputDir:   f.output,
		Workers:     f.workers,
		Annotate:    f.annotate,
	}, nil
}

// sourceFlags are the random source parameters.
type sourceFlags struct {
	count     int
	amplitude string
	xStddev   string
	yStddev   string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.count, "sources", 5, "number of sources per image")
	fs.StringVar(&f.amplitude, "amplitude", "1-10", "amplitude range LOW-HIGH")
	fs.StringVar(&f.xStddev, "x-stddev", "1-5", "x stddev range LOW-HIGH (pixels)")
	fs.StringVar(&f.yStddev, "y-stddev", "1-5", "y stddev range LOW-HIGH (pixels)")
}

func (f *sourceFlags) ranges() (synth.SourceRanges, error) {
	var r synth.SourceRanges
	var err error
	if f.count < 0 {
		return r, fmt.Errorf("--sources must be >= 0")
	}
	if r.Amplitude, err = util.ParseRange(f.amplitude); err != nil {
		return r, fmt.Errorf("--amplitude: %w", err)
	}
	if r.XStddev, err = util.ParseRange(f.xStddev); err != nil {
		return r, fmt.Errorf("--x-stddev: %w", err)
	}
	if r.YStddev, err = util.ParseRange(f.yStddev); err != nil {
		return r, fmt.Errorf("--y-stddev: %w", err)
	}
	return r, r.Validate()
}

func parseNoise(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid noise: '%s' (must be a number)", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("noise stddev must be finite, got %g", v)
	}
	if v < 0 {
		return nil, fmt.Errorf("noise stddev must be >= 0, got %g", v)
	}
	return &v, nil
}

func runGenerate(cmd *cobra.Command, f *batchFlags, catalogPath string) error {
	opts, err := f.options()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}
	opts.Sources = cat

	out := cmd.OutOrStdout()
	printBanner(out)
	fmt.Fprintf(out, "Catalog: %s (%d %s sources)\n", catalogPath, cat.Len(), cat.Kind)
	return runBatch(out, opts, f.saveConfig)
}

func runRandom(cmd *cobra.Command, f *batchFlags, s *sourceFlags) error {
	opts, err := f.options()
	if err != nil {
		return err
	}
	ranges, err := s.ranges()
	if err != nil {
		return err
	}
	opts.NumSources = s.count
	opts.SourceRanges = ranges

	out := cmd.OutOrStdout()
	printBanner(out)
	return runBatch(out, opts, f.saveConfig)
}

func runConfig(cmd *cobra.Command, configFile, saveConfig string) error {
	state, err := wizard.LoadFromYAML(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	opts, err := wizard.ToGeneratorOptions(state)
	if err != nil {
		return fmt.Errorf("converting config: %w", err)
	}

	out := cmd.OutOrStdout()
	printBanner(out)
	fmt.Fprintf(out, "Loading config from %s\n\n", configFile)
	return runBatch(out, opts, saveConfig)
}

func printBanner(out io.Writer) {
	fmt.Fprintln(out, "starforge")
	fmt.Fprintln(out, "=========")
}

// runBatch generates the batch, its manifest and optionally saves the configuration.
func runBatch(out io.Writer, opts generator.Options, saveConfig string) error {
	opts.Output = out
	files, err := generator.Generate(opts)
	if err != nil {
		return fmt.Errorf("generating images: %w", err)
	}

	manifest, err := generator.WriteManifest(opts, files)
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := wizard.SaveToYAML(wizard.FromGeneratorOptions(opts), saveConfig); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Configuration saved to: %s\n", saveConfig)
	}

	fmt.Fprintln(out, "\n✓ Generation complete!")
	fmt.Fprintf(out, "  Images:   %s\n", opts.OutputDir)
	fmt.Fprintf(out, "  Manifest: %s\n", manifest)
	return nil
}

func runSample(cmd *cobra.Command, f *sourceFlags, shapeStr, seedStr, output string) error {
	shape, err := util.ParseShape(shapeStr)
	if err != nil {
		return err
	}
	ranges, err := f.ranges()
	if err != nil {
		return err
	}
	seed, err := util.ParseSeed(seedStr)
	if err != nil {
		return err
	}

	sources := synth.SampleRandomSources(shape, f.count, ranges, synth.NewRNG(seed))
	cat := catalog.FromSources(sources)

	if output == "-" {
		return catalog.WriteCSV(cat, cmd.OutOrStdout())
	}
	if err := catalog.Save(cat, output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d sources written to %s\n", cat.Len(), output)
	return nil
}

// profileFlags select the cut plotted by the profile command.
type profileFlags struct {
	catalog string
	shape   string
	noise   string
	seed    string
	row     int
	column  int
	height  int
	width   int
}

func (f *profileFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.catalog, "catalog", "", "source catalog (.csv, .yaml) (required)")
	fs.StringVar(&f.shape, "shape", "256x256", "image shape HEIGHTxWIDTH")
	fs.StringVar(&f.noise, "noise", "", "gaussian noise stddev (empty = no noise)")
	fs.StringVar(&f.seed, "seed", "", "noise seed (empty = random)")
	fs.IntVar(&f.row, "row", -1, "row to plot (default: row of the brightest pixel)")
	fs.IntVar(&f.column, "column", -1, "column to plot instead of a row")
	fs.IntVar(&f.height, "height", 10, "plot height in lines")
	fs.IntVar(&f.width, "width", 80, "plot width in characters")
	_ = cmd.MarkFlagRequired("catalog")
	cmd.MarkFlagsMutuallyExclusive("row", "column")
}

func runProfile(cmd *cobra.Command, f *profileFlags) error {
	shape, err := util.ParseShape(f.shape)
	if err != nil {
		return err
	}
	noise, err := parseNoise(f.noise)
	if err != nil {
		return err
	}
	seed, err := util.ParseSeed(f.seed)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(f.catalog)
	if err != nil {
		return err
	}

	var n *synth.Noise
	if noise != nil {
		n = &synth.Noise{Stddev: *noise, Seed: seed}
	}
	img, err := cat.Rasterize(shape, n)
	if err != nil {
		return err
	}

	data, caption, err := profile.Cut(img, f.row, f.column)
	if err != nil {
		return err
	}
	return profile.Plot(cmd.OutOrStdout(), data, caption, f.height, f.width)
}
