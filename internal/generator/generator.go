// Package generator renders batches of synthetic Gaussian source images.
package generator

import (
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/mrsinham/starforge/internal/catalog"
	"github.com/mrsinham/starforge/internal/export"
	"github.com/mrsinham/starforge/internal/synth"
	"github.com/mrsinham/starforge/internal/util"
	"gonum.org/v1/gonum/mat"
)

// Options contains all parameters needed to generate a batch of images
type Options struct {
	Shape        synth.Shape
	NumImages    int
	NumSources   int // Sources per image (ignored when Sources is set)
	SourceRanges synth.SourceRanges

	NoiseStddev *float64   // nil = no noise
	Seed        synth.Seed // NoSeed = derive from OutputDir

	// Fixed catalog rendered into every image instead of random sources.
	// Each image still gets its own noise seed.
	Sources *catalog.Catalog

	Format    export.Format
	OutputDir string
	Annotate  bool
	Workers   int // Number of parallel workers (0 = auto-detect based on CPU cores)

	// Output control
	Quiet            bool                     // Suppress progress output (for TUI integration)
	Output           io.Writer                // Progress output (nil = stdout)
	ProgressCallback func(current, total int) // Optional callback for progress updates
}

// GeneratedFile contains information about a generated image file
type GeneratedFile struct {
	Path        string `yaml:"path"`
	CatalogPath string `yaml:"catalog"`
	Index       int    `yaml:"index"`
	Seed        int64  `yaml:"seed"`
	NumSources  int    `yaml:"num_sources"`
	FieldName   string `yaml:"field_name"`
}

// imageTask contains all data needed to generate a single image
type imageTask struct {
	index       int
	seed        int64
	filePath    string
	catalogPath string
	fieldName   string
	caption     string
}

func (o Options) output() io.Writer {
	if o.Output != nil {
		return o.Output
	}
	return os.Stdout
}

// Validate checks the options before any file is written.
func (o Options) Validate() error {
	if err := o.Shape.Validate(); err != nil {
		return err
	}
	if o.NumImages <= 0 {
		return fmt.Errorf("number of images must be > 0, got %d", o.NumImages)
	}
	if o.Sources == nil {
		if o.NumSources < 0 {
			return fmt.Errorf("number of sources must be >= 0, got %d", o.NumSources)
		}
		if o.NumSources > 0 {
			if err := o.SourceRanges.Validate(); err != nil {
				return fmt.Errorf("invalid source ranges: %w", err)
			}
		}
	}
	if o.NoiseStddev != nil {
		if v := *o.NoiseStddev; math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("noise stddev must be finite, got %g", v)
		}
		if *o.NoiseStddev < 0 {
			return fmt.Errorf("noise stddev must be >= 0, got %g", *o.NoiseStddev)
		}
	}
	if o.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if _, err := export.ParseFormat(string(o.Format)); err != nil {
		return err
	}
	return nil
}

// BaseSeed returns the batch seed: the explicit seed when set, otherwise a
// hash of the output directory so the same directory regenerates the same batch.
func (o Options) BaseSeed() int64 {
	if v, ok := o.Seed.Value(); ok {
		return v
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(o.OutputDir)) // hash.Write never returns an error
	return int64(h.Sum64())
}

// ImageSeed derives the deterministic seed of image index in a batch.
func ImageSeed(base int64, index int) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d_image_%d", base, index)
	return int64(h.Sum64())
}

// Generate renders a batch of images with their source catalogs.
func Generate(opts Options) ([]GeneratedFile, error) {
	if opts.Format == "" {
		opts.Format = export.PNG
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	out := opts.output()

	if !opts.Quiet {
		fmt.Fprintf(out, "Resolution: %s pixels per image\n", opts.Shape)
	}

	// Create output directory
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	seed := opts.BaseSeed()
	if !opts.Quiet {
		if _, ok := opts.Seed.Value(); ok {
			fmt.Fprintf(out, "Using seed: %d\n", seed)
		} else {
			fmt.Fprintf(out, "Auto-generated seed from '%s': %d\n", opts.OutputDir, seed)
			fmt.Fprintln(out, "  (same directory = same sources and noise)")
		}
	}

	// Phase 1: Build tasks
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	tasks := make([]imageTask, opts.NumImages)
	for i := range tasks {
		base := fmt.Sprintf("IMG%04d", i)
		tasks[i] = imageTask{
			index:       i,
			seed:        ImageSeed(seed, i),
			filePath:    filepath.Join(opts.OutputDir, base+opts.Format.Extension()),
			catalogPath: filepath.Join(opts.OutputDir, base+".csv"),
			fieldName:   util.GenerateFieldName(rng),
			caption:     fmt.Sprintf("Field %d/%d", i+1, opts.NumImages),
		}
	}

	if !opts.Quiet {
		if opts.Sources != nil {
			fmt.Fprintf(out, "Generating %d images from a catalog of %d sources...\n", opts.NumImages, opts.Sources.Len())
		} else {
			fmt.Fprintf(out, "Generating %d images with %d random sources each...\n", opts.NumImages, opts.NumSources)
		}
		if opts.NoiseStddev != nil {
			fmt.Fprintf(out, "Noise: gaussian, stddev %g\n", *opts.NoiseStddev)
		}
	}

	// Phase 2: Process tasks in parallel
	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	// Don't use more workers than tasks
	if numWorkers > len(tasks) {
		numWorkers = len(tasks)
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "\nGenerating images with %d parallel workers...\n", numWorkers)
	}

	type result struct {
		index      int
		numSources int
		err        error
	}

	// Create channels for work distribution and results
	taskChan := make(chan imageTask, len(tasks))
	resultChan := make(chan result, len(tasks))

	// Start workers
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				n, err := generateImage(opts, seed, task)
				resultChan <- result{task.index, n, err}
			}
		}()
	}

	// Send all tasks to workers
	for _, task := range tasks {
		taskChan <- task
	}
	close(taskChan)

	// Wait for all workers to finish
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results and track progress
	numSources := make([]int, len(tasks))
	completed := 0
	var firstErr error
	for r := range resultChan {
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("generate image %d: %w", r.index, r.err)
		}
		numSources[r.index] = r.numSources
		completed++
		// Call progress callback if provided
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(completed, len(tasks))
		}
		if !opts.Quiet && (completed%10 == 0 || completed == len(tasks)) {
			progress := float64(completed) / float64(len(tasks)) * 100
			fmt.Fprintf(out, "  Progress: %d/%d (%.0f%%)\n", completed, len(tasks), progress)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}

	// Build result slice (in order)
	files := make([]GeneratedFile, len(tasks))
	for i, task := range tasks {
		files[i] = GeneratedFile{
			Path:        task.filePath,
			CatalogPath: task.catalogPath,
			Index:       task.index,
			Seed:        task.seed,
			NumSources:  numSources[i],
			FieldName:   task.fieldName,
		}
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "\n✓ %d images created in: %s/\n", opts.NumImages, opts.OutputDir)
	}

	return files, nil
}

// generateImage renders and writes a single image and its catalog. It returns
// the number of sources drawn into the image.
func generateImage(opts Options, batchSeed int64, task imageTask) (int, error) {
	img, cat, err := renderImage(opts, task.seed)
	if err != nil {
		return 0, err
	}

	exportOpts := export.Options{
		Format:   opts.Format,
		Annotate: opts.Annotate,
		Sources:  cat.Ellipticals(),
		Caption:  task.caption,
		Metadata: export.Metadata{
			UIDKey:         fmt.Sprintf("%d_image_%d", batchSeed, task.index),
			SeriesKey:      fmt.Sprintf("%d_%s", batchSeed, opts.OutputDir),
			FieldName:      task.fieldName,
			Description:    fmt.Sprintf("Synthetic Gaussian sources (%s)", opts.Shape),
			Comments:       fmt.Sprintf("seed=%d sources=%d", task.seed, cat.Len()),
			InstanceNumber: task.index + 1,
		},
	}
	if err := export.Write(task.filePath, img, exportOpts); err != nil {
		return 0, err
	}

	if err := catalog.WriteCSVFile(cat, task.catalogPath); err != nil {
		return 0, err
	}

	return cat.Len(), nil
}

// Preview renders image index of the batch in memory, with the same sources
// and noise Generate would write for it.
func Preview(opts Options, index int) (*mat.Dense, *catalog.Catalog, error) {
	if opts.Format == "" {
		opts.Format = export.PNG
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= opts.NumImages {
		return nil, nil, fmt.Errorf("image index %d out of range [0, %d)", index, opts.NumImages)
	}
	return renderImage(opts, ImageSeed(opts.BaseSeed(), index))
}

// renderImage draws the sources of one image and adds its noise. Sampling
// and noise share the image seed.
func renderImage(opts Options, imageSeed int64) (*mat.Dense, *catalog.Catalog, error) {
	seed := synth.SeedOf(imageSeed)

	cat := opts.Sources
	if cat == nil {
		sources := synth.SampleRandomSources(opts.Shape, opts.NumSources, opts.SourceRanges, synth.NewRNG(seed))
		cat = catalog.FromSources(sources)
	}

	var noise *synth.Noise
	if opts.NoiseStddev != nil {
		noise = &synth.Noise{Stddev: *opts.NoiseStddev, Seed: seed}
	}

	img, err := cat.Rasterize(opts.Shape, noise)
	if err != nil {
		return nil, nil, fmt.Errorf("rasterize: %w", err)
	}
	return img, cat, nil
}
