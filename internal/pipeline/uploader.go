package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"bowl-catalog-backend/internal/logger"
)

// BlobStore is the slice of the storage client the uploader needs.
type BlobStore interface {
	Upload(path string, data []byte, contentType string) (url string, err error)
	Remove(path string) error
}

type StoredVariant struct {
	Variant Variant
	URL     string
	Path    string
}

// StoredSet is the four uploaded variants of one photo, treated as a unit for
// rollback purposes.
type StoredSet struct {
	Variants []StoredVariant
}

func (s *StoredSet) Get(v Variant) StoredVariant {
	for _, sv := range s.Variants {
		if sv.Variant == v {
			return sv
		}
	}
	return StoredVariant{}
}

func (s *StoredSet) Paths() []string {
	paths := make([]string, len(s.Variants))
	for i, sv := range s.Variants {
		paths[i] = sv.Path
	}
	return paths
}

type Uploader struct {
	store BlobStore
}

func NewUploader(store BlobStore) *Uploader {
	return &Uploader{store: store}
}

// Upload persists all four variants under
// bowls/<bowl_id>/<variant>/<timestamp>-<random>.jpg. If any variant fails,
// the already-stored siblings are removed best-effort before the error is
// returned, so the set either fully exists or leaves nothing behind. A fresh
// token is minted per attempt, so retrying produces new paths rather than
// overwriting.
func (u *Uploader) Upload(bowlID uuid.UUID, set *ImageSet) (*StoredSet, error) {
	token := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])

	stored := &StoredSet{Variants: make([]StoredVariant, 0, len(set.Variants))}
	for _, enc := range set.Variants {
		path := fmt.Sprintf("bowls/%s/%s/%s.jpg", bowlID.String(), enc.Variant, token)

		url, err := u.store.Upload(path, enc.Data, "image/jpeg")
		if err != nil {
			u.rollback(stored)
			return nil, fmt.Errorf("failed to upload %s variant: %w", enc.Variant, err)
		}

		stored.Variants = append(stored.Variants, StoredVariant{
			Variant: enc.Variant,
			URL:     url,
			Path:    path,
		})
	}

	return stored, nil
}

// rollback removes every variant stored so far. Removal failures are logged
// only; the reconciler sweeps up anything left behind.
func (u *Uploader) rollback(stored *StoredSet) {
	for _, sv := range stored.Variants {
		if err := u.store.Remove(sv.Path); err != nil {
			logger.Error("rollback failed to remove %s: %v", sv.Path, err)
		}
	}
}
