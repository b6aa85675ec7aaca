package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bowl-catalog-backend/internal/pipeline"
)

func TestResizer_VariantDimensions(t *testing.T) {
	r := pipeline.NewResizer()
	data := makeJPEG(t, 2000, 3000)

	set, err := r.Resize(data)
	require.NoError(t, err)

	assert.Equal(t, 2000, set.SourceWidth)
	assert.Equal(t, 3000, set.SourceHeight)
	require.Len(t, set.Variants, len(pipeline.VariantSpecs))

	srcAspect := 2000.0 / 3000.0
	for i, spec := range pipeline.VariantSpecs {
		v := set.Variants[i]
		assert.Equal(t, spec.Name, v.Variant)
		assert.NotEmpty(t, v.Data)

		// Portrait source, so the height pins to the box.
		assert.Equal(t, spec.MaxBox, v.Height, "%s height", spec.Name)
		assert.LessOrEqual(t, v.Width, spec.MaxBox, "%s width", spec.Name)
		assert.InDelta(t, srcAspect, float64(v.Width)/float64(v.Height), 0.02,
			"%s aspect ratio", spec.Name)
	}
}

func TestResizer_NeverUpscales(t *testing.T) {
	r := pipeline.NewResizer()
	data := makeJPEG(t, 100, 80)

	set, err := r.Resize(data)
	require.NoError(t, err)

	assert.Equal(t, 100, set.SourceWidth)
	assert.Equal(t, 80, set.SourceHeight)
	for _, v := range set.Variants {
		assert.Equal(t, 100, v.Width, "%s width", v.Variant)
		assert.Equal(t, 80, v.Height, "%s height", v.Variant)
	}
}

func TestResizer_IntermediateSource(t *testing.T) {
	r := pipeline.NewResizer()
	data := makeJPEG(t, 600, 600)

	set, err := r.Resize(data)
	require.NoError(t, err)

	// 600px exceeds the thumbnail and medium boxes but not full or original.
	dims := map[pipeline.Variant]int{}
	for _, v := range set.Variants {
		assert.Equal(t, v.Width, v.Height, "%s stays square", v.Variant)
		dims[v.Variant] = v.Width
	}
	assert.Equal(t, 150, dims[pipeline.VariantThumbnail])
	assert.Equal(t, 400, dims[pipeline.VariantMedium])
	assert.Equal(t, 600, dims[pipeline.VariantFull])
	assert.Equal(t, 600, dims[pipeline.VariantOriginal])
}

func TestResizer_RejectsCorruptData(t *testing.T) {
	r := pipeline.NewResizer()
	data := makeJPEG(t, 200, 200)

	set, err := r.Resize(data[:60])
	assert.Error(t, err)
	assert.Nil(t, set)
}

func TestResizer_RejectsNonImageData(t *testing.T) {
	r := pipeline.NewResizer()

	set, err := r.Resize([]byte("not an image at all"))
	assert.Error(t, err)
	assert.Nil(t, set)
}
