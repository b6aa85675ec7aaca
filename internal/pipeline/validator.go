package pipeline

import (
	"fmt"
	"net/http"
)

// DefaultMaxFileBytes caps a single upload at 10 MB. The storage bucket
// enforces its own, looser limit (50 MB) as a backstop.
const DefaultMaxFileBytes = 10 << 20

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Validator rejects files that fail size or type constraints before any
// resource is consumed. It has no side effects.
type Validator struct {
	maxBytes int64
}

func NewValidator(maxBytes int64) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	return &Validator{maxBytes: maxBytes}
}

// Validate checks the declared size and the sniffed content type. The
// declared MIME type from the multipart header is ignored; the first bytes
// of the payload decide.
func (v *Validator) Validate(filename string, size int64, data []byte) error {
	if size > v.maxBytes {
		return fmt.Errorf("file %q is %d bytes, limit is %d bytes: %w",
			filename, size, v.maxBytes, ErrFileTooLarge)
	}
	if int64(len(data)) > v.maxBytes {
		return fmt.Errorf("file %q is %d bytes, limit is %d bytes: %w",
			filename, len(data), v.maxBytes, ErrFileTooLarge)
	}

	contentType := http.DetectContentType(data)
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("file %q has type %s, allowed types are JPEG, PNG, WebP, GIF: %w",
			filename, contentType, ErrUnsupportedType)
	}

	return nil
}
