package ocrtable

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// jsonEntry is the object form of a dumped detection.
type jsonEntry struct {
	Box   [][]float64 `json:"box"`
	Text  string      `json:"text"`
	Txt   string      `json:"txt"`
	Score *float64    `json:"score"`
}

// LoadResultJSON reads detections dumped by an OCR engine. Each entry is either
// the tuple form [[[x,y],...], "text", score] or an object
// {"box": [[x,y],...], "txt"|"text": "...", "score": 0.9}. The score is optional.
func LoadResultJSON(r io.Reader) (*Result, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode detections")
	}

	result := &Result{
		Boxes: make([]Polygon, 0, len(raw)),
		Texts: make([]string, 0, len(raw)),
	}
	var scores []float64
	hasScores := true

	for i, entry := range raw {
		box, text, score, err := decodeEntry(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "detection %d", i)
		}
		result.Boxes = append(result.Boxes, box)
		result.Texts = append(result.Texts, text)
		if score == nil {
			hasScores = false
		} else {
			scores = append(scores, *score)
		}
	}

	if hasScores && len(raw) > 0 {
		result.Scores = scores
	}
	return result, nil
}

// LoadDetectionsJSON reads dumped detections, see LoadResultJSON.
func LoadDetectionsJSON(r io.Reader) ([]Detection, error) {
	result, err := LoadResultJSON(r)
	if err != nil {
		return nil, err
	}
	return result.Detections(), nil
}

func decodeEntry(entry json.RawMessage) (Polygon, string, *float64, error) {
	trimmed := bytes.TrimSpace(entry)
	if len(trimmed) == 0 {
		return nil, "", nil, errors.New("empty entry")
	}

	switch trimmed[0] {
	case '{':
		var obj jsonEntry
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, "", nil, errors.Wrap(err, "invalid object")
		}
		text := obj.Txt
		if text == "" {
			text = obj.Text
		}
		box, err := toPolygon(obj.Box)
		return box, text, obj.Score, err

	case '[':
		var tuple []json.RawMessage
		if err := json.Unmarshal(trimmed, &tuple); err != nil {
			return nil, "", nil, errors.Wrap(err, "invalid tuple")
		}
		if len(tuple) < 2 {
			return nil, "", nil, errors.Errorf("tuple has %d fields, want at least 2", len(tuple))
		}
		var points [][]float64
		if err := json.Unmarshal(tuple[0], &points); err != nil {
			return nil, "", nil, errors.Wrap(err, "invalid box")
		}
		var text string
		if err := json.Unmarshal(tuple[1], &text); err != nil {
			return nil, "", nil, errors.Wrap(err, "invalid text")
		}
		var score *float64
		if len(tuple) > 2 {
			var s float64
			if err := json.Unmarshal(tuple[2], &s); err != nil {
				return nil, "", nil, errors.Wrap(err, "invalid score")
			}
			score = &s
		}
		box, err := toPolygon(points)
		return box, text, score, err
	}

	return nil, "", nil, errors.Errorf("unexpected entry %q", string(trimmed[:1]))
}

func toPolygon(points [][]float64) (Polygon, error) {
	poly := make(Polygon, len(points))
	for i, p := range points {
		if len(p) < 2 {
			return nil, errors.Errorf("point %d has %d coordinates", i, len(p))
		}
		poly[i] = Point{X: p[0], Y: p[1]}
	}
	return poly, nil
}
