package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const expectedPlanDump = `Join(a.val = b.val)
 ├─ OrderBy(a.val)
 │   └─ Table(OneToFive)
 └─ OrderBy(b.val)
     └─ Table(OneToTen)
`

func TestTreePrinterNestsChildrenWithContinuationPrefixes(t *testing.T) {
	leftScan := NewTreePrinter()
	leftScan.WriteNode("Table(%s)", "OneToFive")

	left := NewTreePrinter()
	left.WriteNode("OrderBy(%s)", "a.val")
	left.WriteChildren(leftScan.String())

	rightScan := NewTreePrinter()
	rightScan.WriteNode("Table(%s)", "OneToTen")

	right := NewTreePrinter()
	right.WriteNode("OrderBy(%s)", "b.val")
	right.WriteChildren(rightScan.String())

	join := NewTreePrinter()
	join.WriteNode("Join(%s = %s)", "a.val", "b.val")
	join.WriteChildren(left.String(), right.String())

	require.Equal(t, expectedPlanDump, join.String())
}

func TestTreePrinterLeafIsJustItsLabel(t *testing.T) {
	p := NewTreePrinter()
	p.WriteNode("Table(%s)", "users")
	require.Equal(t, "Table(users)\n", p.String())
}
