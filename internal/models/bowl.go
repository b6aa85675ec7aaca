package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Bowl struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	WoodType   string
	WoodSource sql.NullString
	DateMade   sql.NullTime
	Comments   sql.NullString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Finish struct {
	ID        uuid.UUID
	BowlID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

// BowlImage stores one uploaded photo as four resolution variants.
// ImageURL is the legacy single-URL column kept for older clients; it always
// mirrors the full variant.
type BowlImage struct {
	ID            uuid.UUID
	BowlID        uuid.UUID
	UserID        uuid.UUID
	ThumbnailURL  string
	ThumbnailPath string
	MediumURL     string
	MediumPath    string
	FullURL       string
	FullPath      string
	OriginalURL   string
	OriginalPath  string
	ImageURL      string
	FileSize      sql.NullInt64
	Width         int
	Height        int
	DisplayOrder  int
	CreatedAt     time.Time
}

// Paths returns the four storage paths backing this record.
func (i *BowlImage) Paths() []string {
	return []string{i.ThumbnailPath, i.MediumPath, i.FullPath, i.OriginalPath}
}
