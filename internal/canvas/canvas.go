// Package canvas implements a fixed-size character grid used to lay out
// terminal screens.
package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	// ErrLayout is returned when column sizes do not fit the canvas width.
	ErrLayout = errors.New("column sizes too large")
	// ErrOutOfRange is returned for a row or cell index outside the grid.
	ErrOutOfRange = errors.New("index out of range")
)

type cell struct {
	text  string
	width int // declared width, -1 for an unpadded line
}

// Canvas is a height x width grid of rows, each row holding one or more cells.
type Canvas struct {
	height int
	width  int
	rows   [][]cell
}

// New creates a blank canvas. Negative dimensions are treated as zero.
func New(height, width int) *Canvas {
	height = max(height, 0)
	width = max(width, 0)

	c := &Canvas{
		height: height,
		width:  width,
		rows:   make([][]cell, height),
	}
	blank := strings.Repeat(" ", width)
	for i := range c.rows {
		c.rows[i] = []cell{{text: blank, width: width}}
	}
	return c
}

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// WriteLine replaces the row with text as a single unpadded cell.
func (c *Canvas) WriteLine(row int, text string) error {
	if err := c.checkRow(row); err != nil {
		return err
	}
	c.rows[row] = []cell{{text: text, width: -1}}
	return nil
}

// WriteAndFillLine replaces the row with text padded to the canvas width.
func (c *Canvas) WriteAndFillLine(row int, text string) error {
	if err := c.checkRow(row); err != nil {
		return err
	}
	c.rows[row] = []cell{{text: runewidth.FillRight(text, c.width), width: c.width}}
	return nil
}

// SplitColumns divides the row into adjacent cells of the given widths.
// The previous row content is re-sliced left to right into the new cells;
// whatever lies past the last cell is dropped.
func (c *Canvas) SplitColumns(row int, sizes ...int) error {
	if err := c.checkRow(row); err != nil {
		return err
	}
	total := 0
	for _, size := range sizes {
		if size < 0 {
			return fmt.Errorf("%w: negative size %d", ErrLayout, size)
		}
		total += size
	}
	if total > c.width {
		return fmt.Errorf("%w: %d > %d", ErrLayout, total, c.width)
	}

	rest := joinCells(c.rows[row])
	cells := make([]cell, len(sizes))
	for i, size := range sizes {
		head := runewidth.Truncate(rest, size, "")
		rest = rest[len(head):]
		cells[i] = cell{text: runewidth.FillRight(head, size), width: size}
	}
	c.rows[row] = cells
	return nil
}

// WriteCell stores text in a cell, truncated and padded to the cell width.
func (c *Canvas) WriteCell(row, index int, text string) error {
	if err := c.checkRow(row); err != nil {
		return err
	}
	cells := c.rows[row]
	if index < 0 || index >= len(cells) {
		return fmt.Errorf("%w: cell %d of row %d", ErrOutOfRange, index, row)
	}
	w := cells[index].width
	if w < 0 {
		w = runewidth.StringWidth(cells[index].text)
	}
	text = runewidth.Truncate(text, w, "")
	cells[index].text = runewidth.FillRight(text, w)
	return nil
}

// Lines renders the grid, dropping the trailing run of blank rows.
func (c *Canvas) Lines() []string {
	lines := make([]string, len(c.rows))
	for i, row := range c.rows {
		lines[i] = joinCells(row)
	}
	return TrimTrailingBlank(lines)
}

// TrimTrailingBlank drops whitespace-only lines from the end of lines.
func TrimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

func (c *Canvas) checkRow(row int) error {
	if row < 0 || row >= c.height {
		return fmt.Errorf("%w: row %d of %d", ErrOutOfRange, row, c.height)
	}
	return nil
}

func joinCells(cells []cell) string {
	if len(cells) == 1 {
		return cells[0].text
	}
	var b strings.Builder
	for _, cl := range cells {
		b.WriteString(cl.text)
	}
	return b.String()
}
