package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bowl-catalog-backend/internal/pipeline"
)

func TestValidator_AcceptsJPEG(t *testing.T) {
	v := pipeline.NewValidator(pipeline.DefaultMaxFileBytes)
	data := makeJPEG(t, 64, 64)

	err := v.Validate("bowl.jpg", int64(len(data)), data)
	assert.NoError(t, err)
}

func TestValidator_RejectsOversizeDeclaredSize(t *testing.T) {
	v := pipeline.NewValidator(pipeline.DefaultMaxFileBytes)
	data := makeJPEG(t, 64, 64)

	err := v.Validate("huge.jpg", 11<<20, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrFileTooLarge)
}

func TestValidator_RejectsOversizePayload(t *testing.T) {
	v := pipeline.NewValidator(1024)
	data := make([]byte, 2048)

	err := v.Validate("padded.jpg", 512, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrFileTooLarge)
}

func TestValidator_RejectsUnsupportedType(t *testing.T) {
	v := pipeline.NewValidator(pipeline.DefaultMaxFileBytes)
	data := []byte("wood type: cherry burl, finish: tung oil")

	err := v.Validate("notes.txt", int64(len(data)), data)
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrUnsupportedType)
}

func TestValidator_SniffsTypeFromBytesNotFilename(t *testing.T) {
	v := pipeline.NewValidator(pipeline.DefaultMaxFileBytes)
	data := makeJPEG(t, 64, 64)

	// Extension lies but the payload is a real JPEG.
	err := v.Validate("photo.txt", int64(len(data)), data)
	assert.NoError(t, err)
}
