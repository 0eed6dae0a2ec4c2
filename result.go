package ocrtable

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Result is the raw output of an OCR engine for one image.
// Boxes and Texts are parallel slices; nil means the engine produced nothing.
type Result struct {
	Boxes   []Polygon
	Texts   []string
	Scores  []float64
	Elapsed time.Duration
}

// Len returns the number of recognized texts.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Texts)
}

// IsEmpty reports whether boxes or texts are absent.
func (r *Result) IsEmpty() bool {
	return r == nil || r.Boxes == nil || r.Texts == nil
}

// Detections zips boxes and texts. Extra entries in the longer slice are ignored.
func (r *Result) Detections() []Detection {
	if r.IsEmpty() {
		return nil
	}
	n := min(len(r.Boxes), len(r.Texts))
	detections := make([]Detection, n)
	for i := range n {
		detections[i] = Detection{Box: r.Boxes[i], Text: r.Texts[i]}
	}
	return detections
}

// ToTable rebuilds the table under the given headers.
// It returns ErrContentEmpty without touching the extractor when the result is empty.
func (r *Result) ToTable(headers []string, opts ...Option) ([]TableRow, error) {
	e := newExtractorWithOptions(opts)
	if r.IsEmpty() {
		warnContentEmpty(e.config.Logger)
		return nil, ErrContentEmpty
	}
	return e.ExtractTable(r.Detections(), headers), nil
}

// ToDocument rebuilds the table and the text before and after it.
// It returns ErrContentEmpty when the result is empty.
func (r *Result) ToDocument(headers []string, opts ...Option) (Document, error) {
	e := newExtractorWithOptions(opts)
	if r.IsEmpty() {
		warnContentEmpty(e.config.Logger)
		return Document{}, ErrContentEmpty
	}
	return e.ExtractDocument(r.Detections(), headers), nil
}

// ToMarkdown renders every detection through the configured renderer.
func (r *Result) ToMarkdown(opts ...Option) (string, error) {
	e := newExtractorWithOptions(opts)
	if r.IsEmpty() {
		warnContentEmpty(e.config.Logger)
		return "", ErrContentEmpty
	}
	if r.Len() == 0 {
		return "", nil
	}
	return e.config.Renderer.RenderMarkdown(r.Boxes, r.Texts), nil
}

func warnContentEmpty(logger logrus.FieldLogger) {
	logger.Warn("The identified content is empty.")
}
