package pipeline

import (
	"errors"
	"fmt"
)

// Stage identifies where in the pipeline a file failed.
type Stage string

const (
	StageValidate Stage = "validate"
	StageResize   Stage = "resize"
	StageUpload   Stage = "upload"
	StageLink     Stage = "link"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Error carries the failure stage alongside the cause so callers can branch
// on the reason instead of inspecting message text.
type Error struct {
	Stage    Stage
	Filename string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Filename, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
