package sql

import (
	"fmt"
	"strings"
)

// TreePrinter renders a node tree as an indented, box-drawing dump, the
// form the DumpRA option uses for plan trees. A caller builds one
// TreePrinter per node, calling WriteNode once for the node's own label
// and WriteChildren with the already-rendered String() of each child's
// TreePrinter.
type TreePrinter struct {
	key      string
	children []string
}

// NewTreePrinter returns an empty printer.
func NewTreePrinter() *TreePrinter {
	return new(TreePrinter)
}

// WriteNode sets this printer's own label line.
func (p *TreePrinter) WriteNode(format string, args ...interface{}) {
	p.key = fmt.Sprintf(format, args...)
}

// WriteChildren records the rendered subtree of each child, in order.
func (p *TreePrinter) WriteChildren(children ...string) {
	p.children = children
}

const (
	branchMid  = " ├─ "
	branchLast = " └─ "
	contMid    = " │  "
	contLast   = "    "
)

// String renders the full tree rooted at this printer.
func (p *TreePrinter) String() string {
	var sb strings.Builder
	sb.WriteString(p.key)
	sb.WriteString("\n")

	for i, child := range p.children {
		last := i == len(p.children)-1
		lines := strings.Split(child, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for j, line := range lines {
			if j == 0 {
				if last {
					sb.WriteString(branchLast)
				} else {
					sb.WriteString(branchMid)
				}
			} else {
				if last {
					sb.WriteString(contLast)
				} else {
					sb.WriteString(contMid)
				}
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
