package ocrtable

import "math"

// BuildColumns derives one column band per header from the header centers.
// Boundaries sit halfway between neighbouring centers and the outer bands are unbounded.
//
// Columns follow the header order as given. Headers out of left-to-right order
// produce overlapping or inverted bands; sort the set first if that matters.
func BuildColumns(headers HeaderSet) []Column {
	columns := make([]Column, len(headers))
	last := len(headers) - 1

	for i, header := range headers {
		cx := header.Props.CenterX

		left := math.Inf(-1)
		if i > 0 {
			left = (headers[i-1].Props.CenterX + cx) / 2
		}

		right := math.Inf(1)
		if i < last {
			right = (cx + headers[i+1].Props.CenterX) / 2
		}

		columns[i] = Column{
			Label: header.Label,
			Left:  left,
			Right: right,
		}
	}

	return columns
}

// Contains reports whether x falls inside the column band.
func (c Column) Contains(x float64) bool {
	return c.Left < x && x <= c.Right
}

// columnIndex returns the first column containing x, or -1.
func columnIndex(columns []Column, x float64) int {
	for i, col := range columns {
		if col.Contains(x) {
			return i
		}
	}
	return -1
}
