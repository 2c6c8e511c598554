// layout/grid.go
package layout

// Grid arranges rows x columns equally sized cells inside a container
// element. Every cell's size and margin percentages are derived from the
// exact same 100.0/count division, and the resolver computes both edges of
// every cell from the same parent content-box arithmetic, so the shared
// edge of two adjacent cells is bit-identical. Rendered tables therefore
// collapse their borders with no hairline gaps or overlaps.
type Grid struct {
	container *Element
	rows      int
	columns   int
	cells     []*Element // row-major, rows*columns entries
}

// NewGrid builds a grid with the given cell counts. The container element
// starts detached with the default zero size; callers attach it to a tree
// and give it a size or AlignFill before resolving cells.
func NewGrid(rows, columns int) (*Grid, error) {
	if rows < 1 || columns < 1 {
		return nil, NewInvalidConfigError("a grid needs at least one row and one column")
	}

	g := &Grid{
		container: NewElement(),
		rows:      rows,
		columns:   columns,
		cells:     make([]*Element, 0, rows*columns),
	}

	// Each axis shares one division. Reusing the identical quotient for
	// every cell's size and margin is what makes shared edges collapse.
	cellWidth := 100.0 / float64(columns)
	cellHeight := 100.0 / float64(rows)

	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			cell := NewElement()
			cell.SetAlignment(AlignTopLeft)
			cell.SetSize(NewMeasure(Percent(cellWidth), Percent(cellHeight)))
			cell.SetMargin(Inset{
				Left: Percent(float64(col) * cellWidth),
				Top:  Percent(float64(row) * cellHeight),
			})
			if err := g.container.AddChild(cell); err != nil {
				return nil, err
			}
			g.cells = append(g.cells, cell)
		}
	}
	return g, nil
}

// Element returns the grid's container element, the parent of every cell.
func (g *Grid) Element() *Element { return g.container }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.columns }

// Cell returns the element at the given row and column.
func (g *Grid) Cell(row, col int) (*Element, error) {
	if row < 0 || row >= g.rows {
		return nil, NewBoundsError("row", row, 1, g.rows)
	}
	if col < 0 || col >= g.columns {
		return nil, NewBoundsError("column", col, 1, g.columns)
	}
	return g.cells[row*g.columns+col], nil
}

// Span adds an overlay element covering a block of cells and returns it.
// The overlay is built from the same percentage quotients as the cells, so
// its top-left corner coincides exactly with the first spanned cell's. It
// is a child of the container and sits over the cells it covers; content
// meant to straddle grid lines attaches here instead of to a single cell.
func (g *Grid) Span(startRow, startCol, rowSpan, colSpan int) (*Element, error) {
	if startRow < 0 || rowSpan < 1 || startRow+rowSpan > g.rows {
		return nil, NewBoundsError("row", startRow, rowSpan, g.rows)
	}
	if startCol < 0 || colSpan < 1 || startCol+colSpan > g.columns {
		return nil, NewBoundsError("column", startCol, colSpan, g.columns)
	}

	cellWidth := 100.0 / float64(g.columns)
	cellHeight := 100.0 / float64(g.rows)

	span := NewElement()
	span.SetAlignment(AlignTopLeft)
	span.SetSize(NewMeasure(
		Percent(float64(colSpan)*cellWidth),
		Percent(float64(rowSpan)*cellHeight),
	))
	span.SetMargin(Inset{
		Left: Percent(float64(startCol) * cellWidth),
		Top:  Percent(float64(startRow) * cellHeight),
	})
	if err := g.container.AddChild(span); err != nil {
		return nil, err
	}
	return span, nil
}

// GetSpannedRegion resolves the rectangle covering a block of cells: the
// top-left corner of cell (startRow, startCol) through the bottom-right
// corner of the cell rowSpan-1 rows and colSpan-1 columns further. Spans
// must stay inside the grid.
func (g *Grid) GetSpannedRegion(startRow, startCol, rowSpan, colSpan int) (Region, error) {
	if startRow < 0 || rowSpan < 1 || startRow+rowSpan > g.rows {
		return Region{}, NewBoundsError("row", startRow, rowSpan, g.rows)
	}
	if startCol < 0 || colSpan < 1 || startCol+colSpan > g.columns {
		return Region{}, NewBoundsError("column", startCol, colSpan, g.columns)
	}

	first := g.cells[startRow*g.columns+startCol]
	last := g.cells[(startRow+rowSpan-1)*g.columns+(startCol+colSpan-1)]

	firstRegion, err := first.GetAbsoluteRegion()
	if err != nil {
		return Region{}, err
	}
	lastRegion, err := last.GetAbsoluteRegion()
	if err != nil {
		return Region{}, err
	}
	return NewRegion(firstRegion.Left, firstRegion.Top, lastRegion.Right, lastRegion.Bottom), nil
}
