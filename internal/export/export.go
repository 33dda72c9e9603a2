package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrsinham/starforge/internal/synth"
	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/mat"
)

// Format is an output file format.
type Format string

const (
	PNG   Format = "png"   // 16-bit grayscale PNG
	TIFF  Format = "tiff"  // 16-bit grayscale TIFF, Deflate compressed
	DICOM Format = "dicom" // Secondary Capture DICOM with rescale to float values
	Raw   Format = "raw"   // little-endian float64, row-major
)

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{PNG, TIFF, DICOM, Raw}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "tiff", "tif":
		return TIFF, nil
	case "dicom", "dcm":
		return DICOM, nil
	case "raw", "f64":
		return Raw, nil
	default:
		return "", fmt.Errorf("invalid format %q, valid options: %v", s, AllFormats())
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case TIFF:
		return ".tiff"
	case DICOM:
		return ".dcm"
	case Raw:
		return ".f64"
	default:
		return ".png"
	}
}

// Options controls how an image is written.
type Options struct {
	Format Format

	// Annotate draws apertures around Sources and the Caption.
	// Ignored for Raw, which always holds the exact values.
	Annotate bool
	Sources  []synth.Gaussian2D
	Caption  string

	// Metadata is used by the DICOM writer.
	Metadata Metadata
}

// Write encodes img into path, creating parent directories as needed.
func Write(path string, img *mat.Dense, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if opts.Format == DICOM {
		gray, scale := render(img, opts)
		return writeDICOM(path, gray, scale, opts.Metadata)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, img, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Encode writes img to w in a streamable format (PNG, TIFF or Raw).
func Encode(w io.Writer, img *mat.Dense, opts Options) error {
	switch opts.Format {
	case Raw:
		return writeRaw(w, img)
	case TIFF:
		gray, _ := render(img, opts)
		return tiff.Encode(w, gray, &tiff.Options{Compression: tiff.Deflate})
	case PNG, "":
		gray, _ := render(img, opts)
		return png.Encode(w, gray)
	default:
		return fmt.Errorf("format %q cannot be streamed", opts.Format)
	}
}

// render converts img to 16-bit gray and applies annotations.
func render(img *mat.Dense, opts Options) (*image.Gray16, Scale) {
	mi := NewMatrixImage(img)
	gray := mi.Gray16()
	if opts.Annotate {
		Annotate(gray, opts.Sources, opts.Caption)
	}
	return gray, mi.Scale()
}

// writeRaw writes the matrix as row-major little-endian float64 values.
func writeRaw(w io.Writer, img *mat.Dense) error {
	r, c := img.Dims()
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, img)
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	return nil
}

// ReadRaw reads a Raw image of the given shape.
func ReadRaw(r io.Reader, shape synth.Shape) (*mat.Dense, error) {
	data := make([]float64, shape.Height*shape.Width)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("read raw image: %w", err)
	}
	return mat.NewDense(shape.Height, shape.Width, data), nil
}
