package rewrite

import (
	"github.com/ralite/ralite/sql"
	"github.com/ralite/ralite/sql/expression"
)

func boolLiteral(e expression.Expression) (val bool, ok bool) {
	lit, isLit := e.(*expression.Literal)
	if !isLit || lit.Value.Kind() != sql.KindBool {
		return false, false
	}
	return lit.Value.Bool(), true
}

func isTrue(e expression.Expression) bool {
	v, ok := boolLiteral(e)
	return ok && v
}

func isFalse(e expression.Expression) bool {
	v, ok := boolLiteral(e)
	return ok && !v
}

// numberLiteral extracts a numeric literal promoted to float64, used by
// the comparator-fusion rule (21).
func numberLiteral(e expression.Expression) (float64, bool) {
	lit, isLit := e.(*expression.Literal)
	if !isLit {
		return 0, false
	}
	return lit.Value.AsFloat64()
}
