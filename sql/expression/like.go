package expression

import (
	"regexp"
	"strings"

	"github.com/ralite/ralite/sql"
)

// Like implements SQL LIKE over Text values: "%" matches any run of
// characters, "_" matches exactly one.
type Like struct{ binaryComparison }

// NewLike builds a LIKE predicate: left LIKE right.
func NewLike(left, right Expression) *Like {
	return &Like{binaryComparison{left, right}}
}

func (l *Like) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	lv, rv, err := evalPair(ctx, row, &l.binaryComparison)
	if err != nil {
		return sql.Null, err
	}
	if lv.IsNull() || rv.IsNull() {
		return sql.Null, nil
	}
	re, err := likeToRegexp(rv.Text())
	if err != nil {
		return sql.Null, err
	}
	return sql.NewBool(re.MatchString(lv.Text())), nil
}

func likeToRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile("(?s)" + b.String())
}

func (l *Like) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildren
	}
	return NewLike(children[0], children[1]), nil
}

func (l *Like) Commutative() bool { return false }
func (l *Like) Associative() bool { return false }
func (l *Like) String() string    { return l.Left.String() + " LIKE " + l.Right.String() }
