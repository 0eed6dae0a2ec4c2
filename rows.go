package ocrtable

import (
	"math"
	"sort"
)

// DefaultRowThresholdFactor scales the median header height into the row gap threshold.
const DefaultRowThresholdFactor = 1.2

// bodyMembers collects the non-header detections lying strictly below the header band,
// in detection order.
func bodyMembers(detections []Detection, headers HeaderSet) []RowMember {
	headerBottom := headers.Bottom()

	var members []RowMember
	for i, d := range detections {
		if headers.Contains(i) {
			continue
		}
		props := Properties(d.Box)
		if props.Top <= headerBottom {
			continue
		}
		members = append(members, RowMember{Props: props, Text: d.Text, Index: i})
	}
	return members
}

// ClusterRows sorts members by vertical center and chains them into rows.
// A member joins the current row when its center is within threshold of the
// previous member's center, so a row may drift further than threshold overall.
func ClusterRows(members []RowMember, threshold float64) []Row {
	if len(members) == 0 {
		return nil
	}

	sorted := make([]RowMember, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Props.CenterY < sorted[j].Props.CenterY
	})

	breaks := rowBreaks(sorted, threshold)
	rows := make([]Row, 0, len(breaks))
	start := 0
	for _, end := range breaks {
		rows = append(rows, Row(sorted[start:end:end]))
		start = end
	}
	return rows
}

// rowBreaks returns the exclusive end offset of every row in a center-sorted slice.
// The final offset is always len(sorted).
func rowBreaks(sorted []RowMember, threshold float64) []int {
	var breaks []int
	for i := 1; i < len(sorted); i++ {
		if math.Abs(sorted[i].Props.CenterY-sorted[i-1].Props.CenterY) > threshold {
			breaks = append(breaks, i)
		}
	}
	return append(breaks, len(sorted))
}

// Indices returns the detection indices of the row in row order.
func (r Row) Indices() []int {
	indices := make([]int, len(r))
	for i, m := range r {
		indices[i] = m.Index
	}
	return indices
}
