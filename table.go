package ocrtable

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TableRow is the text assembled from one row, one cell per column in header order.
type TableRow struct {
	Labels []string
	Cells  []string
}

// NewTableRow returns a row with an empty cell for every label.
func NewTableRow(labels []string) TableRow {
	return TableRow{
		Labels: labels,
		Cells:  make([]string, len(labels)),
	}
}

// Get returns the text under a label. Cells sharing a label are joined in column order.
func (r TableRow) Get(label string) string {
	var sb strings.Builder
	for i, l := range r.Labels {
		if l == label {
			sb.WriteString(r.Cells[i])
		}
	}
	return sb.String()
}

// Map returns the row keyed by label.
func (r TableRow) Map() map[string]string {
	m := make(map[string]string, len(r.Labels))
	for i, l := range r.Labels {
		m[l] += r.Cells[i]
	}
	return m
}

// Accepted reports whether the row has text under the first header's label.
func (r TableRow) Accepted() bool {
	if len(r.Labels) == 0 {
		return false
	}
	return r.Get(r.Labels[0]) != ""
}

// MarshalJSON encodes the row as an object whose keys keep header order.
func (r TableRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	seen := make(map[string]bool, len(r.Labels))
	for _, label := range r.Labels {
		if seen[label] {
			continue
		}
		seen[label] = true

		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(label)
		if err != nil {
			return nil, err
		}
		val, err := marshalNoEscape(r.Get(label))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

// BuildTableRow assigns each member of the row to a column by center x and appends
// its text to that cell. Members are visited in row order, not left to right.
// Members outside every column are dropped.
func BuildTableRow(row Row, columns []Column) TableRow {
	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Label
	}

	tr := NewTableRow(labels)
	for _, m := range row {
		if idx := columnIndex(columns, m.Props.CenterX); idx >= 0 {
			tr.Cells[idx] += m.Text
		}
	}
	return tr
}

// BuildTable converts rows to table rows, keeping only the accepted ones.
func BuildTable(rows []Row, columns []Column) []TableRow {
	var table []TableRow
	for _, row := range rows {
		if tr := BuildTableRow(row, columns); tr.Accepted() {
			table = append(table, tr)
		}
	}
	return table
}
