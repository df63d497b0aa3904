package ocr

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrNoFile          = errors.New("no file held")
)

// UploadedFile is a single in-memory upload awaiting processing.
// It is never persisted server-side in this flow; the service layer stores
// the original bytes in object storage separately.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Intake accepts at most one file at a time and validates its declared MIME
// type before the pipeline is allowed to start. Accepting a new file replaces
// any previously held one.
type Intake struct {
	accepts func(contentType string) bool
	want    string

	mu   sync.Mutex
	held *UploadedFile
}

// NewPDFIntake builds an intake for the whole-document flow: only
// application/pdf is accepted.
func NewPDFIntake() *Intake {
	return &Intake{
		accepts: func(ct string) bool { return ct == "application/pdf" },
		want:    "application/pdf",
	}
}

// NewImageIntake builds an intake for the per-image flow: any image/* type.
func NewImageIntake() *Intake {
	return &Intake{
		accepts: func(ct string) bool { return strings.HasPrefix(ct, "image/") },
		want:    "image/*",
	}
}

// Accept validates the declared content type and reads the file into memory.
// On rejection no further action is taken and any previously held file stays
// in place.
func (i *Intake) Accept(name, contentType string, size int64, r io.Reader) (*UploadedFile, error) {
	if !i.accepts(contentType) {
		return nil, fmt.Errorf("%w: got %q, want %s", ErrInvalidFileType, contentType, i.want)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrNoFile)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if size <= 0 {
		size = int64(len(data))
	}

	f := &UploadedFile{Name: name, ContentType: contentType, Size: size, Data: data}

	i.mu.Lock()
	i.held = f
	i.mu.Unlock()
	return f, nil
}

// Take removes and returns the held file, or ErrNoFile when nothing is held.
func (i *Intake) Take() (*UploadedFile, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.held == nil {
		return nil, ErrNoFile
	}
	f := i.held
	i.held = nil
	return f, nil
}
