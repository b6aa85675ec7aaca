package supabase

import (
	"bytes"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	// Ensure URL doesn't have trailing slash
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload stores a blob at the given path and returns its public URL.
func (s *StorageClient) Upload(path string, data []byte, contentType string) (string, error) {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.GetPublicURL(path), nil
}

func (s *StorageClient) GetPublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, path)
}

func (s *StorageClient) Remove(path string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{path})
	return err
}

// ListPaths returns the storage paths of every blob under a prefix. Listing
// is per-folder in Supabase, so subfolders (the variant directories) are
// walked recursively.
func (s *StorageClient) ListPaths(prefix string) ([]string, error) {
	folder := strings.TrimSuffix(prefix, "/")
	files, err := s.client.ListFiles(s.bucket, folder, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var paths []string
	for _, file := range files {
		full := folder + "/" + file.Name
		// Folder placeholders come back without an object id
		if file.Id == "" {
			sub, err := s.ListPaths(full + "/")
			if err != nil {
				return nil, err
			}
			paths = append(paths, sub...)
			continue
		}
		paths = append(paths, full)
	}
	return paths, nil
}

// RemovePrefix deletes every blob under a prefix, e.g. all variants of all of
// a bowl's photos when the bowl itself is deleted.
func (s *StorageClient) RemovePrefix(prefix string) error {
	paths, err := s.ListPaths(prefix)
	if err != nil {
		return err
	}

	if len(paths) > 0 {
		_, err = s.client.RemoveFile(s.bucket, paths)
		if err != nil {
			return fmt.Errorf("failed to delete files: %w", err)
		}
	}

	return nil
}

func (s *StorageClient) Download(path string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return data, nil
}
