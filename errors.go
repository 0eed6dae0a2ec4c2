package ocrtable

import "github.com/pkg/errors"

var (
	// ErrMissingInput is returned when detections or header labels are absent.
	ErrMissingInput = errors.New("missing detections or header labels")

	// ErrHeaderNotFound is returned when a header label matches no detection.
	ErrHeaderNotFound = errors.New("header not found")

	// ErrContentEmpty signals that an OCR result carries no boxes or texts.
	// It is not fatal; callers get it instead of a table.
	ErrContentEmpty = errors.New("the identified content is empty")
)
