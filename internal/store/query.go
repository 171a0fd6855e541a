package store

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// where accumulates AND-ed conditions and their arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// Filter narrows a Query. Filters are applied in the order given.
type Filter func(*where)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likeTerm builds a lower-cased %term% pattern with LIKE wildcards in term
// escaped, for use with ESCAPE '\'.
func likeTerm(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// NameContains matches rows whose name contains term, ignoring case.
func NameContains(term string) Filter {
	return func(w *where) {
		w.add(`LOWER(name) LIKE ? ESCAPE '\'`, likeTerm(term))
	}
}

// DescriptionContains matches meals whose description contains term,
// ignoring case.
func DescriptionContains(term string) Filter {
	return func(w *where) {
		w.add(`LOWER(description) LIKE ? ESCAPE '\'`, likeTerm(term))
	}
}

// DateOnOrAfter matches rows dated d or later.
func DateOnOrAfter(d types.Date) Filter {
	return func(w *where) {
		w.add("date >= ?", d.String())
	}
}

// DateOnOrBefore matches rows dated d or earlier.
func DateOnOrBefore(d types.Date) Filter {
	return func(w *where) {
		w.add("date <= ?", d.String())
	}
}

// Query is a filtered, ordered selection over one table. It satisfies
// pagination.Source.
type Query[T any] struct {
	tx       *Tx
	from     string // table or subquery
	fromArgs []any  // arguments of a subquery in from
	columns  string
	order    string
	where    where
	scan     func(rowScanner) (T, error)
	hydrate  func([]T) error // loads children after the rows are read
}

func newQuery[T any](tx *Tx, from, columns, order string, scan func(rowScanner) (T, error), filters []Filter) *Query[T] {
	q := &Query[T]{tx: tx, from: from, columns: columns, order: order, scan: scan}
	for _, f := range filters {
		f(&q.where)
	}
	return q
}

// Count returns the number of matching rows.
func (q *Query[T]) Count() (int, error) {
	var n int
	err := q.tx.queryRow("SELECT COUNT(*) FROM "+q.from+q.where.clause(), q.args()...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", q.from, err)
	}
	return n, nil
}

// Page returns at most limit rows starting at offset.
func (q *Query[T]) Page(limit, offset int) ([]T, error) {
	return q.fetch(q.selectSQL()+" LIMIT ? OFFSET ?", append(q.args(), limit, offset))
}

// All returns every matching row.
func (q *Query[T]) All() ([]T, error) {
	return q.fetch(q.selectSQL(), q.args())
}

// args returns a fresh slice of the subquery arguments followed by the
// filter arguments.
func (q *Query[T]) args() []any {
	args := make([]any, 0, len(q.fromArgs)+len(q.where.args)+2)
	args = append(args, q.fromArgs...)
	return append(args, q.where.args...)
}

func (q *Query[T]) selectSQL() string {
	return "SELECT " + q.columns + " FROM " + q.from + q.where.clause() + " ORDER BY " + q.order
}

func (q *Query[T]) fetch(query string, args []any) ([]T, error) {
	rows, err := q.tx.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", q.from, err)
	}
	out, err := collect(rows, q.scan)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", q.from, err)
	}
	if q.hydrate != nil && len(out) > 0 {
		if err := q.hydrate(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
