package rowexec

import (
	"io"

	"github.com/ralite/ralite/sql"
)

// crossJoinIter is the nested-loop cross product: for each row of a, all
// rows of b. The inner side (b) is materialized on first use since it must
// be replayed once per outer row. Preserves sortedness only if both sides
// have exactly one row, which this iterator doesn't special-case -- the
// lowerer is responsible for not relying on Cross output being sorted.
type crossJoinIter struct {
	left  sql.RowIter
	right sql.RowIter

	rightRows []sql.Row
	rightPos  int
	leftRow   sql.Row
	started   bool
}

// NewCrossJoinIter builds a Cross iterator.
func NewCrossJoinIter(left, right sql.RowIter) sql.RowIter {
	return &crossJoinIter{left: left, right: right}
}

func (c *crossJoinIter) materializeRight(ctx *sql.Context) error {
	for {
		row, err := c.right.Next(ctx)
		if err == io.EOF {
			return c.right.Close(ctx)
		}
		if err != nil {
			return err
		}
		c.rightRows = append(c.rightRows, row)
	}
}

func (c *crossJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	if !c.started {
		if err := c.materializeRight(ctx); err != nil {
			return nil, err
		}
		c.started = true
	}

	for {
		if c.leftRow == nil {
			row, err := c.left.Next(ctx)
			if err != nil {
				return nil, err
			}
			c.leftRow = row
			c.rightPos = 0
		}

		if len(c.rightRows) == 0 {
			c.leftRow = nil
			continue
		}

		if c.rightPos >= len(c.rightRows) {
			c.leftRow = nil
			continue
		}

		out := c.leftRow.Append(c.rightRows[c.rightPos])
		c.rightPos++
		return out, nil
	}
}

func (c *crossJoinIter) Close(ctx *sql.Context) error {
	return c.left.Close(ctx)
}
