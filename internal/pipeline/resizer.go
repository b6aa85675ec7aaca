package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Support GIF
	"image/jpeg"   // Support JPEG
	_ "image/png"  // Support PNG

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Support WebP
)

// Variant names one of the four resolution-specific encodings of a photo.
type Variant string

const (
	VariantThumbnail Variant = "thumbnail"
	VariantMedium    Variant = "medium"
	VariantFull      Variant = "full"
	VariantOriginal  Variant = "original"
)

type VariantSpec struct {
	Name    Variant
	MaxBox  int
	Quality int
}

// VariantSpecs lists the four variants in upload order.
var VariantSpecs = []VariantSpec{
	{VariantThumbnail, 150, 80},
	{VariantMedium, 400, 85},
	{VariantFull, 800, 90},
	{VariantOriginal, 1200, 95},
}

type EncodedVariant struct {
	Variant Variant
	Data    []byte
	Width   int
	Height  int
}

// ImageSet holds the four same-content, different-resolution encodings of one
// upload. It exists only between resize and link; it is never persisted.
type ImageSet struct {
	Variants     []EncodedVariant
	SourceWidth  int
	SourceHeight int
}

type Resizer struct{}

func NewResizer() *Resizer {
	return &Resizer{}
}

// Resize decodes one source image and produces the four variants. Each is fit
// within its max box, aspect ratio preserved, never upscaled, and re-encoded
// as JPEG at the variant's quality.
func (r *Resizer) Resize(data []byte) (*ImageSet, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	set := &ImageSet{
		Variants:     make([]EncodedVariant, 0, len(VariantSpecs)),
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
	}

	for _, spec := range VariantSpecs {
		variant := src
		if bounds.Dx() > spec.MaxBox || bounds.Dy() > spec.MaxBox {
			variant = imaging.Fit(src, spec.MaxBox, spec.MaxBox, imaging.Lanczos)
		}

		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, variant, &jpeg.Options{Quality: spec.Quality}); err != nil {
			return nil, fmt.Errorf("failed to encode %s variant: %w", spec.Name, err)
		}

		vb := variant.Bounds()
		set.Variants = append(set.Variants, EncodedVariant{
			Variant: spec.Name,
			Data:    buf.Bytes(),
			Width:   vb.Dx(),
			Height:  vb.Dy(),
		})
	}

	return set, nil
}
