package handlers

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bowl-catalog-backend/internal/models"
)

const dateLayout = "2006-01-02"

// NormalizeFinishes trims whitespace and drops empty and duplicate names
// while preserving the order finishes were entered in.
func NormalizeFinishes(names []string) []string {
	seen := make(map[string]bool, len(names))
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		normalized = append(normalized, trimmed)
	}
	return normalized
}

// OrderedImageIDs validates that a reorder request names each of the bowl's
// images exactly once and returns the ids in the requested order.
func OrderedImageIDs(requested []string, existing []models.BowlImage) ([]uuid.UUID, error) {
	if len(requested) != len(existing) {
		return nil, fmt.Errorf("request lists %d images but bowl has %d", len(requested), len(existing))
	}

	known := make(map[uuid.UUID]bool, len(existing))
	for _, img := range existing {
		known[img.ID] = true
	}

	seen := make(map[uuid.UUID]bool, len(requested))
	ordered := make([]uuid.UUID, 0, len(requested))
	for _, idStr := range requested {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid image id %q: %w", idStr, err)
		}
		if !known[id] {
			return nil, fmt.Errorf("image %s does not belong to this bowl", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("image %s listed more than once", id)
		}
		seen[id] = true
		ordered = append(ordered, id)
	}

	return ordered, nil
}

func parseDate(s string) (sql.NullTime, error) {
	if s == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return sql.NullTime{}, fmt.Errorf("date must be formatted %s: %w", dateLayout, err)
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func formatDate(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(dateLayout)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func finishNames(finishes []models.Finish) []string {
	names := make([]string, len(finishes))
	for i, f := range finishes {
		names[i] = f.Name
	}
	return names
}

func imageResponse(img models.BowlImage) models.ImageResponse {
	fileSize := int64(0)
	if img.FileSize.Valid {
		fileSize = img.FileSize.Int64
	}
	return models.ImageResponse{
		ID:           img.ID.String(),
		ThumbnailURL: img.ThumbnailURL,
		MediumURL:    img.MediumURL,
		FullURL:      img.FullURL,
		OriginalURL:  img.OriginalURL,
		ImageURL:     img.ImageURL,
		FileSize:     fileSize,
		Width:        img.Width,
		Height:       img.Height,
		DisplayOrder: img.DisplayOrder,
		CreatedAt:    img.CreatedAt,
	}
}
