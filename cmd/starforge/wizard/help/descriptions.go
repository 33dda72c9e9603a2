package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
	Flag        string // equivalent command line flag, if any
}

// Texts contains help information for all wizard fields
var Texts = map[string]HelpText{
	"shape": {
		Title:       "IMAGE SHAPE",
		Description: "Size of each image in pixels, as HEIGHTxWIDTH.",
		Details:     "Rows come first (e.g., 100x200 is 100 rows of 200 pixels).",
		Flag:        "--shape",
	},
	"num_images": {
		Title:       "NUMBER OF IMAGES",
		Description: "How many images to generate.",
		Details:     "Each image gets its own seed derived from the batch seed.",
		Flag:        "--images",
	},
	"num_sources": {
		Title:       "SOURCES PER IMAGE",
		Description: "Number of random Gaussian sources drawn into each image.",
		Details: `Positions are uniform over the image.
Rotation is uniform over [0, 2π).
0 renders a blank (or noise-only) image.`,
		Flag: "--sources",
	},
	"amplitude": {
		Title:       "AMPLITUDE RANGE",
		Description: "Peak brightness range, as LOW-HIGH.",
		Details:     "Sampled uniformly (e.g., 50-100, or 1.5:4 for decimals).",
		Flag:        "--amplitude",
	},
	"x_stddev": {
		Title:       "X STDDEV RANGE",
		Description: "Width range of a source along its major axis, in pixels.",
		Details:     "Must be positive. Sampled uniformly.",
		Flag:        "--x-stddev",
	},
	"y_stddev": {
		Title:       "Y STDDEV RANGE",
		Description: "Width range of a source along its minor axis, in pixels.",
		Details:     "Must be positive. Sampled uniformly.",
		Flag:        "--y-stddev",
	},
	"noise": {
		Title:       "NOISE STDDEV",
		Description: "Standard deviation of additive Gaussian noise.",
		Details:     "Leave empty for a noiseless image. 0 is allowed.",
		Flag:        "--noise",
	},
	"seed": {
		Title:       "SEED",
		Description: "Batch seed for reproducible output.",
		Details: `Any integer, including 0.
Leave empty to derive the seed from the output directory:
the same directory always regenerates the same images.`,
		Flag: "--seed",
	},
	"format": {
		Title:       "OUTPUT FORMAT",
		Description: "File format for the rendered images.",
		Details: `PNG  - 16-bit grayscale, viewer friendly
TIFF - 16-bit grayscale, Deflate compressed
DICOM - Secondary Capture with rescale to float values
RAW  - little-endian float64, exact values`,
		Flag: "--format",
	},
	"output": {
		Title:       "OUTPUT DIRECTORY",
		Description: "Directory where images will be created.",
		Details:     "Will be created if it doesn't exist. Contains IMG0000.png, IMG0000.csv, ... and manifest.yaml.",
		Flag:        "--output",
	},
	"annotate": {
		Title:       "ANNOTATE",
		Description: "Draw apertures around each source and a caption.",
		Details:     "Aperture radius is 3x the larger stddev. Raw output is never annotated.",
		Flag:        "--annotate",
	},
	"config_path": {
		Title:       "CONFIG PATH",
		Description: "Where to save the YAML configuration.",
		Details:     "Replay it with: starforge run --config <path>",
		Flag:        "--save-config",
	},
}

// Lookup returns the help text of a wizard field.
func Lookup(field string) (HelpText, bool) {
	text, ok := Texts[field]
	return text, ok
}
