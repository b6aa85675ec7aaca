package pipeline_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"

	"bowl-catalog-backend/internal/models"
)

// fakeStore counts blob operations and can fail the Nth upload.
type fakeStore struct {
	mu        sync.Mutex
	uploads   []string
	removes   []string
	failAt    int // 1-based upload call that fails, 0 never fails
	calls     int
	removeErr error
}

func (f *fakeStore) Upload(path string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failAt > 0 && f.calls == f.failAt {
		return "", errors.New("storage unavailable")
	}
	f.uploads = append(f.uploads, path)
	return "https://cdn.example.test/" + path, nil
}

func (f *fakeStore) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes = append(f.removes, path)
	return f.removeErr
}

func (f *fakeStore) uploadedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.uploads...)
}

func (f *fakeStore) removedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removes...)
}

type fakeRecorder struct {
	mu     sync.Mutex
	images []*models.BowlImage
	err    error
}

func (f *fakeRecorder) CreateBowlImage(img *models.BowlImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.images = append(f.images, img)
	return nil
}

func (f *fakeRecorder) recorded() []*models.BowlImage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.BowlImage(nil), f.images...)
}

// makeJPEG encodes a solid-gradient image of the given dimensions.
func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}
