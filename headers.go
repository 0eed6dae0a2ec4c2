package ocrtable

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// ResolveHeaders binds every label to the first detection whose text equals it exactly.
// Labels are resolved independently, so repeated texts may bind one detection twice.
// If any label is unmatched the whole set is rejected with ErrHeaderNotFound.
func ResolveHeaders(detections []Detection, labels []string) (HeaderSet, error) {
	if len(detections) == 0 || len(labels) == 0 {
		return nil, ErrMissingInput
	}

	headers := make(HeaderSet, 0, len(labels))
	for _, label := range labels {
		idx := findText(detections, label)
		if idx < 0 {
			return nil, errors.Wrapf(ErrHeaderNotFound, "label %q", label)
		}
		headers = append(headers, Header{
			Label: label,
			Index: idx,
			Props: Properties(detections[idx].Box),
		})
	}

	return headers, nil
}

// findText returns the index of the first detection with exactly the given text, or -1.
func findText(detections []Detection, text string) int {
	for i, d := range detections {
		if d.Text == text {
			return i
		}
	}
	return -1
}

// Labels returns the header labels in set order.
func (h HeaderSet) Labels() []string {
	labels := make([]string, len(h))
	for i, header := range h {
		labels[i] = header.Label
	}
	return labels
}

// Indices returns the distinct detection indices used by the headers, in set order.
func (h HeaderSet) Indices() []int {
	seen := make(map[int]bool, len(h))
	var indices []int
	for _, header := range h {
		if !seen[header.Index] {
			seen[header.Index] = true
			indices = append(indices, header.Index)
		}
	}
	return indices
}

// Contains reports whether the detection index is used by a header.
func (h HeaderSet) Contains(index int) bool {
	for _, header := range h {
		if header.Index == index {
			return true
		}
	}
	return false
}

// Top returns the smallest top among the headers.
func (h HeaderSet) Top() float64 {
	top := math.Inf(1)
	for _, header := range h {
		top = math.Min(top, header.Props.Top)
	}
	return top
}

// Bottom returns the largest bottom among the headers.
func (h HeaderSet) Bottom() float64 {
	bottom := math.Inf(-1)
	for _, header := range h {
		bottom = math.Max(bottom, header.Props.Bottom)
	}
	return bottom
}

// MedianHeight returns the median header height.
func (h HeaderSet) MedianHeight() float64 {
	heights := make([]float64, len(h))
	for i, header := range h {
		heights[i] = header.Props.Height
	}
	return calculateMedian(heights)
}

// SortedByPosition returns a copy ordered left to right by center x.
// Headers sharing a center keep their label order.
func (h HeaderSet) SortedByPosition() HeaderSet {
	sorted := make(HeaderSet, len(h))
	copy(sorted, h)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Props.CenterX < sorted[j].Props.CenterX
	})
	return sorted
}
