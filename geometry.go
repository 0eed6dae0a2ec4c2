package ocrtable

import (
	"math"
	"sort"
)

// Properties computes the bounding-rectangle properties of a polygon.
// Winding order and convexity are ignored; an empty polygon yields the zero value.
func Properties(poly Polygon) BoxProperties {
	if len(poly) == 0 {
		return BoxProperties{}
	}

	left, right := poly[0].X, poly[0].X
	top, bottom := poly[0].Y, poly[0].Y
	for _, p := range poly[1:] {
		left = math.Min(left, p.X)
		right = math.Max(right, p.X)
		top = math.Min(top, p.Y)
		bottom = math.Max(bottom, p.Y)
	}

	return BoxProperties{
		Top:     top,
		Bottom:  bottom,
		Left:    left,
		Right:   right,
		Height:  bottom - top,
		CenterX: (left + right) / 2,
		CenterY: (top + bottom) / 2,
	}
}

// RectPolygon returns the clockwise quadrilateral (top-left first) of an axis-aligned box.
func RectPolygon(r Rect) Polygon {
	return Polygon{
		{X: r.X0, Y: r.Y0},
		{X: r.X1, Y: r.Y0},
		{X: r.X1, Y: r.Y1},
		{X: r.X0, Y: r.Y1},
	}
}

// calculateMedian calculates the median value of a float64 slice
func calculateMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
