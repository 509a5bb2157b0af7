package render

import "github.com/yaklabco/mdlines/pkg/span"

// tableToLines lays out a pipe table within the available width and emits
// one line per rendered row slice plus border lines. Column widths include
// one space of padding on each side of the content.
func tableToLines(width int, t *Table, prefixes []Prefix, w Widths) []Line {
	if t == nil || len(t.Header) == 0 {
		return nil
	}
	avail := width - PrefixWidth(prefixes, w)
	d := decorCostsOf(w)
	cols := resolveColumns(avail, t, d)

	var out []Line
	out = append(out, borderLine(prefixes, cols, BorderTop))
	out = append(out, rowLines(prefixes, cols, t.Header, true, d)...)
	out = append(out, borderLine(prefixes, cols, BorderHeaderSeparator))
	for _, row := range t.Rows {
		out = append(out, rowLines(prefixes, cols, row, false, d)...)
	}
	out = append(out, borderLine(prefixes, cols, BorderBottom))
	return out
}

// resolveColumns sizes every column from its widest content, including
// decorator room, shrinking all columns proportionally when the natural
// table is wider than the available space.
func resolveColumns(avail int, t *Table, d decorCosts) *TableColumns {
	numCols := len(t.Header)
	widths := make([]int, numCols)
	measure := func(row [][]span.Span) {
		for i, cell := range row {
			if i >= numCols {
				break
			}
			if cw := decoratedWidth(cell, d); cw+2 > widths[i] {
				widths[i] = cw + 2
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}

	total := 0
	for _, cw := range widths {
		total += cw
	}
	tableWidth := total + numCols + 1
	if tableWidth > avail && avail > numCols+1 && total > 0 {
		budget := avail - numCols - 1
		used := 0
		for i, cw := range widths {
			scaled := cw * budget / total
			if scaled < 3 {
				scaled = 3
			}
			widths[i] = scaled
			used += scaled
		}
		// Clamping narrow columns to the minimum can overshoot the
		// budget; reclaim the excess from the widest columns.
		for used > budget {
			widest := 0
			for i := range widths {
				if widths[i] > widths[widest] {
					widest = i
				}
			}
			if widths[widest] <= 3 {
				break
			}
			widths[widest]--
			used--
		}
	}

	alignments := make([]Alignment, numCols)
	copy(alignments, t.Alignments)
	return &TableColumns{Widths: widths, Alignments: alignments}
}

// decoratedWidth measures a cell as it will render after decoration,
// simulating the decorator insertions at format transitions.
func decoratedWidth(cell []span.Span, d decorCosts) int {
	total := 0
	active := span.None
	for _, s := range cell {
		next := s.Modifiers & span.Format
		total += d.transition(active, next) + s.Width()
		active = next
	}
	return total + d.cost(active)
}

// rowLines wraps every cell of one source row at its column width and
// emits one output line per resulting row slice. Short rows are padded
// with empty cells.
func rowLines(prefixes []Prefix, cols *TableColumns, row [][]span.Span, header bool, d decorCosts) []Line {
	wrapped := make([][][]span.Span, len(cols.Widths))
	height := 1
	for i := range cols.Widths {
		inner := cols.Widths[i] - 2
		if inner < 1 {
			inner = 1
		}
		var cell []span.Span
		if i < len(row) {
			cell = row[i]
		}
		lines := wrapSpans(inner, cell, d)
		if len(lines) == 0 {
			lines = [][]span.Span{nil}
		}
		wrapped[i] = lines
		if len(lines) > height {
			height = len(lines)
		}
	}

	out := make([]Line, 0, height)
	for r := 0; r < height; r++ {
		cells := make([][]span.Span, len(cols.Widths))
		for i := range cols.Widths {
			if r < len(wrapped[i]) {
				cells[i] = wrapped[i][r]
			}
		}
		out = append(out, Line{
			Kind:    LineTableRow,
			Nesting: prefixes,
			Table:   &TableLine{Columns: cols, Cells: cells, IsHeader: header},
		})
	}
	return out
}

func borderLine(prefixes []Prefix, cols *TableColumns, pos BorderPosition) Line {
	return Line{
		Kind:    LineTableBorder,
		Nesting: prefixes,
		Table:   &TableLine{Columns: cols, Border: pos},
	}
}
