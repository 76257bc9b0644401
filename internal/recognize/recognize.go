package recognize

import (
	"context"
	"errors"
)

// ErrExtractionFailed means the recognition service produced no usable text.
var ErrExtractionFailed = errors.New("no text extracted from receipt")

// Recognizer turns a receipt payload into raw recognized text. The text is
// untrusted input for the extraction pipeline; implementations must return
// ErrExtractionFailed when nothing was recognized.
type Recognizer interface {
	Recognize(ctx context.Context, data []byte, mimeType string) (string, error)
}
