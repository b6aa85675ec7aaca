package pipeline_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bowl-catalog-backend/internal/pipeline"
)

func testImageSet() *pipeline.ImageSet {
	set := &pipeline.ImageSet{SourceWidth: 1600, SourceHeight: 1200}
	for _, spec := range pipeline.VariantSpecs {
		set.Variants = append(set.Variants, pipeline.EncodedVariant{
			Variant: spec.Name,
			Data:    []byte("jpeg-bytes-" + string(spec.Name)),
			Width:   spec.MaxBox,
			Height:  spec.MaxBox * 3 / 4,
		})
	}
	return set
}

func TestUploader_PathLayout(t *testing.T) {
	store := &fakeStore{}
	u := pipeline.NewUploader(store)
	bowlID := uuid.New()

	stored, err := u.Upload(bowlID, testImageSet())
	require.NoError(t, err)
	require.Len(t, stored.Variants, 4)

	for _, spec := range pipeline.VariantSpecs {
		sv := stored.Get(spec.Name)
		prefix := fmt.Sprintf("bowls/%s/%s/", bowlID, spec.Name)
		assert.True(t, strings.HasPrefix(sv.Path, prefix), "path %q should start with %q", sv.Path, prefix)
		assert.True(t, strings.HasSuffix(sv.Path, ".jpg"), "path %q should end with .jpg", sv.Path)
		assert.Equal(t, "https://cdn.example.test/"+sv.Path, sv.URL)
	}
	assert.Len(t, store.uploadedPaths(), 4)
	assert.Empty(t, store.removedPaths())
}

func TestUploader_FreshTokenPerAttempt(t *testing.T) {
	store := &fakeStore{}
	u := pipeline.NewUploader(store)
	bowlID := uuid.New()

	first, err := u.Upload(bowlID, testImageSet())
	require.NoError(t, err)
	second, err := u.Upload(bowlID, testImageSet())
	require.NoError(t, err)

	assert.NotEqual(t, first.Get(pipeline.VariantThumbnail).Path, second.Get(pipeline.VariantThumbnail).Path)
}

func TestUploader_RollbackOnPartialFailure(t *testing.T) {
	store := &fakeStore{failAt: 3}
	u := pipeline.NewUploader(store)

	stored, err := u.Upload(uuid.New(), testImageSet())
	require.Error(t, err)
	assert.Nil(t, stored)

	// Two variants made it up before the third failed; both must be removed.
	uploaded := store.uploadedPaths()
	require.Len(t, uploaded, 2)
	assert.ElementsMatch(t, uploaded, store.removedPaths())
}

func TestUploader_RollbackFailureDoesNotMaskUploadError(t *testing.T) {
	store := &fakeStore{failAt: 2, removeErr: fmt.Errorf("network down")}
	u := pipeline.NewUploader(store)

	_, err := u.Upload(uuid.New(), testImageSet())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload")
	assert.Len(t, store.removedPaths(), 1)
}
