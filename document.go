package ocrtable

// partitionDocument splits a page around its table.
// Accepted rows form the table; rejected rows are flattened into the after text.
// Unconsumed detections entirely above the header band form the before text.
func partitionDocument(detections []Detection, headers HeaderSet, columns []Column, rows []Row, renderer MarkdownRenderer) Document {
	consumed := make(map[int]bool, len(detections))
	part := Partition{Header: headers.Indices()}
	for _, idx := range part.Header {
		consumed[idx] = true
	}

	var table []TableRow
	var afterBoxes []Polygon
	var afterTexts []string

	for _, row := range rows {
		tr := BuildTableRow(row, columns)
		indices := row.Indices()
		if tr.Accepted() {
			table = append(table, tr)
			part.Table = append(part.Table, indices...)
		} else {
			for _, m := range row {
				afterBoxes = append(afterBoxes, detections[m.Index].Box)
				afterTexts = append(afterTexts, m.Text)
			}
			part.After = append(part.After, indices...)
		}
		for _, idx := range indices {
			consumed[idx] = true
		}
	}

	headerTop := headers.Top()
	var beforeBoxes []Polygon
	var beforeTexts []string
	for i, d := range detections {
		if consumed[i] {
			continue
		}
		if Properties(d.Box).Bottom <= headerTop {
			beforeBoxes = append(beforeBoxes, d.Box)
			beforeTexts = append(beforeTexts, d.Text)
			part.Before = append(part.Before, i)
		} else {
			part.Unplaced = append(part.Unplaced, i)
		}
	}

	doc := Document{Table: table, Partition: part}
	if len(beforeBoxes) > 0 {
		doc.Before = renderer.RenderMarkdown(beforeBoxes, beforeTexts)
	}
	if len(afterBoxes) > 0 {
		doc.After = renderer.RenderMarkdown(afterBoxes, afterTexts)
	}
	return doc
}
