package handlers_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bowl-catalog-backend/internal/handlers"
	"bowl-catalog-backend/internal/models"
)

func TestNormalizeFinishes(t *testing.T) {
	got := handlers.NormalizeFinishes([]string{
		"  tung oil ",
		"beeswax",
		"tung oil",
		"",
		"   ",
		"lacquer",
	})

	assert.Equal(t, []string{"tung oil", "beeswax", "lacquer"}, got)
}

func TestNormalizeFinishes_Empty(t *testing.T) {
	assert.Empty(t, handlers.NormalizeFinishes(nil))
	assert.Empty(t, handlers.NormalizeFinishes([]string{"", "  "}))
}

func existingImages(ids ...uuid.UUID) []models.BowlImage {
	images := make([]models.BowlImage, len(ids))
	for i, id := range ids {
		images[i] = models.BowlImage{ID: id, DisplayOrder: i}
	}
	return images
}

func TestOrderedImageIDs_ValidPermutation(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	existing := existingImages(a, b, c)

	got, err := handlers.OrderedImageIDs([]string{c.String(), a.String(), b.String()}, existing)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c, a, b}, got)
}

func TestOrderedImageIDs_LengthMismatch(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	existing := existingImages(a, b)

	_, err := handlers.OrderedImageIDs([]string{a.String()}, existing)
	assert.Error(t, err)
}

func TestOrderedImageIDs_UnknownID(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	existing := existingImages(a, b)

	_, err := handlers.OrderedImageIDs([]string{a.String(), uuid.NewString()}, existing)
	assert.Error(t, err)
}

func TestOrderedImageIDs_DuplicateID(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	existing := existingImages(a, b)

	_, err := handlers.OrderedImageIDs([]string{a.String(), a.String()}, existing)
	assert.Error(t, err)
}

func TestOrderedImageIDs_MalformedID(t *testing.T) {
	a := uuid.New()
	existing := existingImages(a)

	_, err := handlers.OrderedImageIDs([]string{"not-a-uuid"}, existing)
	assert.Error(t, err)
}
