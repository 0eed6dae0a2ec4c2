package ocrtable

// Point is a polygon vertex in image coordinates (origin top-left, y grows downward).
type Point struct {
	X float64
	Y float64
}

// Polygon is the position of a detection, usually a four point quadrilateral.
type Polygon []Point

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 {
	return (r.X0 + r.X1) / 2
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return (r.Y0 + r.Y1) / 2
}

// Detection is one OCR output unit: a polygon plus the recognized text.
// A detection's identity is its position in the slice handed to the extractor.
type Detection struct {
	Box  Polygon
	Text string
}

// BoxProperties are the bounding-rectangle scalars derived from a polygon.
type BoxProperties struct {
	Top     float64
	Bottom  float64
	Left    float64
	Right   float64
	Height  float64
	CenterX float64
	CenterY float64
}

// Rect returns the bounding rectangle the properties describe.
func (p BoxProperties) Rect() Rect {
	return Rect{X0: p.Left, Y0: p.Top, X1: p.Right, Y1: p.Bottom}
}

// Header is a detection bound to one caller-supplied column label.
type Header struct {
	Label string
	Index int // Position of the matched detection
	Props BoxProperties
}

// HeaderSet holds one Header per label, in the caller's label order.
type HeaderSet []Header

// Column is the horizontal band owned by one header.
// A value x belongs to the column when Left < x <= Right.
type Column struct {
	Label string
	Left  float64 // -Inf for the first column
	Right float64 // +Inf for the last column
}

// RowMember is a body detection taking part in row clustering.
type RowMember struct {
	Props BoxProperties
	Text  string
	Index int
}

// Row is a maximal chain of vertically adjacent body detections,
// ordered by ascending vertical center.
type Row []RowMember

// Partition records where every detection index ended up in ExtractDocument.
// Each index appears in exactly one list.
type Partition struct {
	Header   []int `json:"header"`
	Table    []int `json:"table"`
	After    []int `json:"after"`
	Before   []int `json:"before"`
	Unplaced []int `json:"unplaced"` // Beside the header band, in no region
}

// Document is a page split into text before the table, the table, and text after it.
type Document struct {
	Before    string     `json:"before"`
	Table     []TableRow `json:"table"`
	After     string     `json:"after"`
	Partition Partition  `json:"-"`
}
