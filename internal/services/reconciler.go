package services

import (
	"fmt"

	"github.com/google/uuid"

	"bowl-catalog-backend/internal/logger"
	"bowl-catalog-backend/internal/supabase"
)

// Reconciler finds orphaned blobs: stored image variants no metadata record
// points at. Orphans accumulate from abandoned partial uploads and from
// metadata writes that failed after the blobs were already stored.
type Reconciler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
}

func NewReconciler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient) *Reconciler {
	return &Reconciler{
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

// FindOrphans lists every blob under the bowl's storage prefix and returns
// the paths that no bowl_images row references. Each orphan is logged.
func (r *Reconciler) FindOrphans(bowlID uuid.UUID) ([]string, error) {
	referenced, err := r.dbClient.ListImagePaths(bowlID)
	if err != nil {
		return nil, fmt.Errorf("failed to load referenced paths: %w", err)
	}

	known := make(map[string]bool, len(referenced))
	for _, path := range referenced {
		known[path] = true
	}

	prefix := fmt.Sprintf("bowls/%s/", bowlID.String())
	stored, err := r.storageClient.ListPaths(prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored blobs: %w", err)
	}

	var orphans []string
	for _, path := range stored {
		if !known[path] {
			logger.Warn("orphaned blob for bowl %s: %s", bowlID, path)
			orphans = append(orphans, path)
		}
	}

	return orphans, nil
}

// RemoveOrphans finds and deletes orphaned blobs. Removal is best-effort:
// failures are logged and the path stays in the returned list for the next
// sweep.
func (r *Reconciler) RemoveOrphans(bowlID uuid.UUID) ([]string, error) {
	orphans, err := r.FindOrphans(bowlID)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(orphans))
	for _, path := range orphans {
		if err := r.storageClient.Remove(path); err != nil {
			logger.Error("failed to remove orphaned blob %s: %v", path, err)
			continue
		}
		removed = append(removed, path)
	}

	return removed, nil
}
