package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish; gallery clients
	// subscribe to postgres_changes on bowls/bowl_images, so the row writes
	// themselves trigger Realtime. Kept as an explicit-event hook.
	return nil
}

func (r *RealtimeClient) PublishBowlEvent(bowlID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("bowl:%s", bowlID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func UploadStartedPayload(bowlID uuid.UUID, fileCount int) map[string]interface{} {
	return map[string]interface{}{
		"bowl_id":    bowlID.String(),
		"status":     "uploading",
		"file_count": fileCount,
	}
}

func UploadCompletedPayload(bowlID uuid.UUID, uploaded, failed int) map[string]interface{} {
	return map[string]interface{}{
		"bowl_id":  bowlID.String(),
		"status":   "uploaded",
		"uploaded": uploaded,
		"failed":   failed,
	}
}

func ImagesReorderedPayload(bowlID uuid.UUID, imageCount int) map[string]interface{} {
	return map[string]interface{}{
		"bowl_id":     bowlID.String(),
		"status":      "reordered",
		"image_count": imageCount,
	}
}

func BowlDeletedPayload(bowlID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"bowl_id": bowlID.String(),
		"status":  "deleted",
	}
}
