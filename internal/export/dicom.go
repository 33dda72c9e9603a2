package export

import (
	"fmt"
	"image"
	"os"

	"github.com/mrsinham/starforge/internal/util"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// SecondaryCaptureSOPClassUID is the Secondary Capture Image Storage SOP Class.
const SecondaryCaptureSOPClassUID = "1.2.840.10008.5.1.4.1.1.7"

// Metadata describes a DICOM export. UIDs are derived from UIDKey so a batch
// generated twice with the same seed carries the same identifiers.
type Metadata struct {
	UIDKey         string // Stable key for UID derivation (e.g., "<seed>_image_3")
	SeriesKey      string // Stable key shared by every image in a batch
	FieldName      string // Synthetic field name, written as PatientName
	Description    string // Series description
	Comments       string // Free-text ImageComments (seed, source count, ...)
	InstanceNumber int
}

// mustNewElement creates a new DICOM element, panicking on error.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}

// floatToDS converts a float64 to a DICOM Decimal String.
func floatToDS(f float64) string {
	s := fmt.Sprintf("%.10g", f)
	if len(s) > 16 {
		s = fmt.Sprintf("%.8e", f)
	}
	if len(s) > 16 {
		s = fmt.Sprintf("%.6e", f)
	}
	return s
}

// writeDICOM writes a 16-bit MONOCHROME2 Secondary Capture image. The rescale
// slope and intercept map stored levels back to the rendered float values.
func writeDICOM(path string, gray *image.Gray16, scale Scale, meta Metadata) error {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixelsPerFrame := width * height

	nativeFrame := frame.NewNativeFrame[uint16](16, height, width, pixelsPerFrame, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nativeFrame.RawData[y*width+x] = gray.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y
		}
	}

	seriesKey := meta.SeriesKey
	if seriesKey == "" {
		seriesKey = meta.UIDKey
	}
	studyUID := util.GenerateDeterministicUID(seriesKey + "_study")
	seriesUID := util.GenerateDeterministicUID(seriesKey + "_series")
	sopInstanceUID := util.GenerateDeterministicUID(meta.UIDKey + "_instance")

	fieldName := meta.FieldName
	if fieldName == "" {
		fieldName = "STARFORGE^Synthetic"
	}

	elements := []*dicom.Element{
		mustNewElement(tag.MediaStorageSOPClassUID, []string{SecondaryCaptureSOPClassUID}),
		mustNewElement(tag.MediaStorageSOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}),
		mustNewElement(tag.SOPClassUID, []string{SecondaryCaptureSOPClassUID}),
		mustNewElement(tag.SOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.Modality, []string{"OT"}),
		mustNewElement(tag.ConversionType, []string{"SYN"}),
		mustNewElement(tag.Manufacturer, []string{"starforge"}),
		mustNewElement(tag.PatientName, []string{fieldName}),
		mustNewElement(tag.PatientID, []string{util.GenerateFieldID(seriesKey)}),
		mustNewElement(tag.StudyInstanceUID, []string{studyUID}),
		mustNewElement(tag.SeriesInstanceUID, []string{seriesUID}),
		mustNewElement(tag.SeriesNumber, []string{"1"}),
		mustNewElement(tag.SeriesDescription, []string{meta.Description}),
		mustNewElement(tag.InstanceNumber, []string{fmt.Sprintf("%d", meta.InstanceNumber)}),
		mustNewElement(tag.ImageComments, []string{meta.Comments}),
		mustNewElement(tag.Rows, []int{height}),
		mustNewElement(tag.Columns, []int{width}),
		mustNewElement(tag.BitsAllocated, []int{16}),
		mustNewElement(tag.BitsStored, []int{16}),
		mustNewElement(tag.HighBit, []int{15}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.SamplesPerPixel, []int{1}),
		mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		mustNewElement(tag.RescaleIntercept, []string{floatToDS(scale.Min)}),
		mustNewElement(tag.RescaleSlope, []string{floatToDS(scale.Slope())}),
		mustNewElement(tag.RescaleType, []string{"US"}),
		mustNewElement(tag.PixelData, dicom.PixelDataInfo{
			Frames: []*frame.Frame{
				{
					Encapsulated: false,
					NativeData:   nativeFrame,
				},
			},
		}),
	}

	return writeDatasetToFile(path, dicom.Dataset{Elements: elements})
}

// writeDatasetToFile writes a DICOM dataset to a file
func writeDatasetToFile(filename string, ds dicom.Dataset, opts ...dicom.WriteOption) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return dicom.Write(f, ds, opts...)
}
