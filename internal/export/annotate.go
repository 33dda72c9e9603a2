package export

import (
	"image"
	"image/color"
	"math"

	"github.com/mrsinham/starforge/internal/synth"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ApertureRadius is the annotation circle radius in units of the larger stddev.
const ApertureRadius = 3.0

// Annotate draws an aperture circle around each source and an optional caption
// centered near the top of the image. The image is modified in place.
func Annotate(img *image.Gray16, sources []synth.Gaussian2D, caption string) {
	for _, s := range sources {
		r := ApertureRadius * math.Max(s.XStddev, s.YStddev)
		drawCircle(img, s.XMean, s.YMean, r)
	}
	if caption != "" {
		drawCaption(img, caption)
	}
}

// drawCircle strokes a one-pixel circle, dark halo first so it stays visible
// on both bright and faint backgrounds.
func drawCircle(img *image.Gray16, cx, cy, r float64) {
	if r <= 0 {
		return
	}
	// Enough steps that adjacent samples are less than a pixel apart
	steps := int(math.Ceil(2 * math.Pi * (r + 1)))
	for _, pass := range []struct {
		radius float64
		level  uint16
	}{
		{r + 1, 0},
		{r, math.MaxUint16},
	} {
		for k := 0; k < steps; k++ {
			a := 2 * math.Pi * float64(k) / float64(steps)
			x := int(math.Round(cx + pass.radius*math.Cos(a)))
			y := int(math.Round(cy + pass.radius*math.Sin(a)))
			if image.Pt(x, y).In(img.Bounds()) {
				img.SetGray16(x, y, color.Gray16{Y: pass.level})
			}
		}
	}
}

// drawCaption renders text with basicfont, scales it to roughly 30% of the
// image width (never below 1x) and draws it white with a black outline.
func drawCaption(img *image.Gray16, text string) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Step 1: Render text at base size
	face := basicfont.Face7x13
	baseTextWidth := font.MeasureString(face, text).Ceil()
	baseTextHeight := 13
	if baseTextWidth == 0 {
		return
	}

	textImg := image.NewAlpha(image.Rect(0, 0, baseTextWidth, baseTextHeight))
	drawer := &font.Drawer{
		Dst:  textImg,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{Y: fixed.I(face.Ascent)},
	}
	drawer.DrawString(text)

	// Step 2: Scale
	scaleFactor := float64(width) * 0.3 / float64(baseTextWidth)
	if scaleFactor < 1 {
		scaleFactor = 1
	}
	scaledWidth := int(float64(baseTextWidth) * scaleFactor)
	scaledHeight := int(float64(baseTextHeight) * scaleFactor)

	scaled := image.NewAlpha(image.Rect(0, 0, scaledWidth, scaledHeight))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), textImg, textImg.Bounds(), draw.Src, nil)

	// Step 3: Position centered horizontally, 5% from the top
	posX := bounds.Min.X + (width-scaledWidth)/2
	posY := bounds.Min.Y + int(float64(height)*0.05)

	outline := max(1, scaledHeight/10)

	// Step 4: Outline, then text
	for _, pass := range []struct {
		spread int
		level  uint16
	}{
		{outline, 0},
		{0, math.MaxUint16},
	} {
		for sy := 0; sy < scaledHeight; sy++ {
			for sx := 0; sx < scaledWidth; sx++ {
				if scaled.AlphaAt(sx, sy).A == 0 {
					continue
				}
				for dy := -pass.spread; dy <= pass.spread; dy++ {
					for dx := -pass.spread; dx <= pass.spread; dx++ {
						p := image.Pt(posX+sx+dx, posY+sy+dy)
						if p.In(bounds) {
							img.SetGray16(p.X, p.Y, color.Gray16{Y: pass.level})
						}
					}
				}
			}
		}
	}
}
