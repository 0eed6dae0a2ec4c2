// Package tesseract produces table detections from images with the Tesseract OCR
// engine via gosseract. It requires Tesseract and its headers to be installed.
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev tesseract-ocr-chi-sim
package tesseract

import (
	"time"

	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"

	"github.com/ivanvanderbyl/ocrtable"
)

// Level selects the granularity of the returned detections.
type Level int

const (
	// LevelWord returns one detection per recognized word.
	LevelWord Level = iota
	// LevelLine returns one detection per text line.
	LevelLine
)

// ParseLevel maps "word" and "line" to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "", "word":
		return LevelWord, nil
	case "line":
		return LevelLine, nil
	}
	return LevelWord, errors.Errorf("unknown level %q", s)
}

func (l Level) iteratorLevel() gosseract.PageIteratorLevel {
	if l == LevelLine {
		return gosseract.RIL_TEXTLINE
	}
	return gosseract.RIL_WORD
}

// Source wraps a Tesseract client. It is not safe for concurrent use.
type Source struct {
	client *gosseract.Client
	level  Level
}

// New creates a Source. Close it to release the engine.
func New(level Level) *Source {
	return &Source{
		client: gosseract.NewClient(),
		level:  level,
	}
}

// Close releases OCR resources.
func (s *Source) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// SetLanguage sets the recognition languages, e.g. "chi_sim" or "eng".
func (s *Source) SetLanguage(langs ...string) error {
	return s.client.SetLanguage(langs...)
}

// RecognizeFile runs OCR on an image file.
func (s *Source) RecognizeFile(path string) (*ocrtable.Result, error) {
	if err := s.client.SetImage(path); err != nil {
		return nil, errors.Wrap(err, "failed to set image")
	}
	return s.recognize()
}

// RecognizeImage runs OCR on encoded image bytes (PNG, TIFF, JPEG, etc.).
func (s *Source) RecognizeImage(imageData []byte) (*ocrtable.Result, error) {
	if err := s.client.SetImageFromBytes(imageData); err != nil {
		return nil, errors.Wrap(err, "failed to set image")
	}
	return s.recognize()
}

func (s *Source) recognize() (*ocrtable.Result, error) {
	start := time.Now()
	boxes, err := s.client.GetBoundingBoxes(s.level.iteratorLevel())
	if err != nil {
		return nil, errors.Wrap(err, "OCR failed")
	}

	result := toResult(boxes)
	result.Elapsed = time.Since(start)
	return result, nil
}

// toResult converts Tesseract boxes, dropping blank words. Confidence is scaled to 0..1.
func toResult(boxes []gosseract.BoundingBox) *ocrtable.Result {
	result := &ocrtable.Result{
		Boxes:  make([]ocrtable.Polygon, 0, len(boxes)),
		Texts:  make([]string, 0, len(boxes)),
		Scores: make([]float64, 0, len(boxes)),
	}

	for _, b := range boxes {
		text := trimWord(b.Word)
		if text == "" {
			continue
		}
		result.Boxes = append(result.Boxes, ocrtable.RectPolygon(ocrtable.Rect{
			X0: float64(b.Box.Min.X),
			Y0: float64(b.Box.Min.Y),
			X1: float64(b.Box.Max.X),
			Y1: float64(b.Box.Max.Y),
		}))
		result.Texts = append(result.Texts, text)
		result.Scores = append(result.Scores, b.Confidence/100)
	}

	return result
}
