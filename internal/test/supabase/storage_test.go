package supabase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bowl-catalog-backend/internal/supabase"
)

func TestGetPublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://example.supabase.co", "test-key", "bowl-images")
	require.NoError(t, err)

	url := client.GetPublicURL("bowls/abc/thumbnail/123-xyz.jpg")
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/bowl-images/bowls/abc/thumbnail/123-xyz.jpg", url)
}

func TestGetPublicURL_TrimsTrailingSlash(t *testing.T) {
	client, err := supabase.NewStorageClient("https://example.supabase.co/", "test-key", "bowl-images")
	require.NoError(t, err)

	url := client.GetPublicURL("bowls/abc/full/123-xyz.jpg")
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/bowl-images/bowls/abc/full/123-xyz.jpg", url)
}
