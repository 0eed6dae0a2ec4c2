package ocrtable

import (
	"bytes"
	"math"
	"sort"
	"strings"

	"github.com/ivanvanderbyl/markdown"
)

// MarkdownRenderer turns positioned texts into one formatted string.
// texts[i] belongs to boxes[i].
type MarkdownRenderer interface {
	RenderMarkdown(boxes []Polygon, texts []string) string
}

// RendererFunc adapts a function to MarkdownRenderer.
type RendererFunc func(boxes []Polygon, texts []string) string

// RenderMarkdown calls f.
func (f RendererFunc) RenderMarkdown(boxes []Polygon, texts []string) string {
	return f(boxes, texts)
}

// LineRenderer groups boxes into visual lines and emits one text line per visual line.
type LineRenderer struct {
	// ParagraphGapFactor inserts a blank line when the gap between two lines exceeds
	// this multiple of the median line height (default: 1.5)
	ParagraphGapFactor float64
}

// DefaultLineRenderer returns a LineRenderer with default settings.
func DefaultLineRenderer() LineRenderer {
	return LineRenderer{ParagraphGapFactor: 1.5}
}

type textLine struct {
	items  []RowMember
	top    float64
	bottom float64
	refY   float64 // Center of the first item
	refH   float64
}

// RenderMarkdown orders boxes top to bottom, merges boxes sharing a line and joins
// each line left to right with single spaces.
func (lr LineRenderer) RenderMarkdown(boxes []Polygon, texts []string) string {
	n := min(len(boxes), len(texts))
	if n == 0 {
		return ""
	}

	items := make([]RowMember, n)
	for i := range n {
		items[i] = RowMember{Props: Properties(boxes[i]), Text: texts[i], Index: i}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Props.Top != items[j].Props.Top {
			return items[i].Props.Top < items[j].Props.Top
		}
		return items[i].Props.Left < items[j].Props.Left
	})

	lines := groupIntoLines(items)

	heights := make([]float64, len(lines))
	for i, line := range lines {
		heights[i] = line.bottom - line.top
	}
	paragraphGap := calculateMedian(heights) * lr.ParagraphGapFactor

	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
			if lr.ParagraphGapFactor > 0 && line.top-lines[i-1].bottom > paragraphGap {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(line.text())
	}
	return sb.String()
}

// groupIntoLines merges top-sorted items whose vertical centers are within half the
// smaller height of the line's first item.
func groupIntoLines(items []RowMember) []textLine {
	var lines []textLine
	for _, item := range items {
		if len(lines) > 0 {
			cur := &lines[len(lines)-1]
			tolerance := math.Min(cur.refH, item.Props.Height) / 2
			if math.Abs(item.Props.CenterY-cur.refY) <= tolerance {
				cur.items = append(cur.items, item)
				cur.top = math.Min(cur.top, item.Props.Top)
				cur.bottom = math.Max(cur.bottom, item.Props.Bottom)
				continue
			}
		}
		lines = append(lines, textLine{
			items:  []RowMember{item},
			top:    item.Props.Top,
			bottom: item.Props.Bottom,
			refY:   item.Props.CenterY,
			refH:   item.Props.Height,
		})
	}
	return lines
}

func (l textLine) text() string {
	sort.SliceStable(l.items, func(i, j int) bool {
		return l.items[i].Props.Left < l.items[j].Props.Left
	})
	words := make([]string, 0, len(l.items))
	for _, item := range l.items {
		if t := strings.TrimSpace(item.Text); t != "" {
			words = append(words, t)
		}
	}
	return strings.Join(words, " ")
}

// ToMarkdown renders the before text, the table and the after text.
func (d Document) ToMarkdown() string {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	if d.Before != "" {
		md.PlainText(d.Before)
		md.LF()
	}

	if len(d.Table) > 0 {
		convertTableToMarkdown(md, d.Table)
		md.LF()
	}

	if d.After != "" {
		md.PlainText(d.After)
	}

	if err := md.Build(); err != nil {
		// If there's an error building the markdown, fall back to empty string
		return ""
	}

	return buf.String()
}

// TableToMarkdown renders table rows as a markdown table.
func TableToMarkdown(table []TableRow) string {
	if len(table) == 0 {
		return ""
	}

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	convertTableToMarkdown(md, table)
	if err := md.Build(); err != nil {
		return ""
	}
	return buf.String()
}

// convertTableToMarkdown converts table rows to a markdown table using the builder.
func convertTableToMarkdown(md *markdown.Markdown, table []TableRow) {
	header := table[0].Labels
	rows := make([][]string, 0, len(table))

	for _, row := range table {
		cells := make([]string, len(header))
		for i := range header {
			if i < len(row.Cells) {
				// Pipes and newlines break the table layout
				cell := strings.ReplaceAll(row.Cells[i], "\n", " ")
				cells[i] = strings.ReplaceAll(cell, "|", `\|`)
			}
		}
		rows = append(rows, cells)
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
}
