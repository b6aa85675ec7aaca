package pipeline

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bowl-catalog-backend/internal/models"
)

// Recorder is the slice of the database client the linker needs.
type Recorder interface {
	CreateBowlImage(img *models.BowlImage) error
}

type Linker struct {
	recorder Recorder
}

func NewLinker(recorder Recorder) *Linker {
	return &Linker{recorder: recorder}
}

// Link writes the metadata record tying the four stored variants to the bowl.
// The legacy image_url column mirrors the full variant for older clients.
func (l *Linker) Link(bowlID, userID uuid.UUID, stored *StoredSet, set *ImageSet, fileSize int64, displayOrder int) (*models.BowlImage, error) {
	thumb := stored.Get(VariantThumbnail)
	medium := stored.Get(VariantMedium)
	full := stored.Get(VariantFull)
	original := stored.Get(VariantOriginal)

	img := &models.BowlImage{
		ID:            uuid.New(),
		BowlID:        bowlID,
		UserID:        userID,
		ThumbnailURL:  thumb.URL,
		ThumbnailPath: thumb.Path,
		MediumURL:     medium.URL,
		MediumPath:    medium.Path,
		FullURL:       full.URL,
		FullPath:      full.Path,
		OriginalURL:   original.URL,
		OriginalPath:  original.Path,
		ImageURL:      full.URL,
		FileSize:      sql.NullInt64{Int64: fileSize, Valid: true},
		Width:         set.SourceWidth,
		Height:        set.SourceHeight,
		DisplayOrder:  displayOrder,
	}

	if err := l.recorder.CreateBowlImage(img); err != nil {
		return nil, fmt.Errorf("failed to record image: %w", err)
	}

	return img, nil
}
