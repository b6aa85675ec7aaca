package pipeline

import (
	"sync"

	"github.com/google/uuid"

	"bowl-catalog-backend/internal/logger"
	"bowl-catalog-backend/internal/models"
)

// State tracks one file's progress through the pipeline.
type State string

const (
	StatePending   State = "pending"
	StateValidated State = "validated"
	StateResized   State = "resized"
	StateUploaded  State = "uploaded"
	StateLinked    State = "linked"

	StateRejected     State = "rejected"
	StateResizeFailed State = "resize_failed"
	StateUploadFailed State = "upload_failed"
	StateLinkFailed   State = "link_failed"
)

// File is one candidate upload. DisplayOrder is fixed before processing
// starts, so results are stable regardless of batch scheduling.
type File struct {
	Filename     string
	Size         int64
	Data         []byte
	DisplayOrder int
}

type Result struct {
	Filename string
	State    State
	Image    *models.BowlImage
	Err      *Error
}

// Pipeline runs each file through validate, resize, upload and link. There
// are no automatic retries anywhere; the caller decides what a partial batch
// failure means.
type Pipeline struct {
	validator   *Validator
	resizer     *Resizer
	uploader    *Uploader
	linker      *Linker
	concurrency int
}

func New(store BlobStore, recorder Recorder, maxFileBytes int64, concurrency int) *Pipeline {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{
		validator:   NewValidator(maxFileBytes),
		resizer:     NewResizer(),
		uploader:    NewUploader(store),
		linker:      NewLinker(recorder),
		concurrency: concurrency,
	}
}

// ProcessFile advances one file through the state machine. A validation or
// resize failure leaves no blobs; an upload failure has already rolled its
// siblings back; a link failure leaves the four blobs orphaned, which are
// logged so the reconciler can find them later.
func (p *Pipeline) ProcessFile(bowlID, userID uuid.UUID, f File) Result {
	res := Result{Filename: f.Filename, State: StatePending}

	if err := p.validator.Validate(f.Filename, f.Size, f.Data); err != nil {
		res.State = StateRejected
		res.Err = &Error{Stage: StageValidate, Filename: f.Filename, Err: err}
		return res
	}
	res.State = StateValidated

	set, err := p.resizer.Resize(f.Data)
	if err != nil {
		res.State = StateResizeFailed
		res.Err = &Error{Stage: StageResize, Filename: f.Filename, Err: err}
		return res
	}
	res.State = StateResized

	stored, err := p.uploader.Upload(bowlID, set)
	if err != nil {
		res.State = StateUploadFailed
		res.Err = &Error{Stage: StageUpload, Filename: f.Filename, Err: err}
		return res
	}
	res.State = StateUploaded

	img, err := p.linker.Link(bowlID, userID, stored, set, f.Size, f.DisplayOrder)
	if err != nil {
		logger.Error("image %s uploaded but not recorded; orphaned blobs: %v", f.Filename, stored.Paths())
		res.State = StateLinkFailed
		res.Err = &Error{Stage: StageLink, Filename: f.Filename, Err: err}
		return res
	}

	res.State = StateLinked
	res.Image = img
	return res
}

// ProcessBatch runs the files with bounded concurrency. Each file succeeds or
// fails on its own; one failure never aborts the rest. Results are returned
// in the original selection order.
func (p *Pipeline) ProcessBatch(bowlID, userID uuid.UUID, files []File) []Result {
	results := make([]Result, len(files))
	sem := make(chan struct{}, p.concurrency)

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = p.ProcessFile(bowlID, userID, f)
		}(i, f)
	}
	wg.Wait()

	return results
}
