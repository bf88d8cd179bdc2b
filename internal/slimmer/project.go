package slimmer

import "github.com/nconklindev/zempic/internal/types"

// Project returns a new table holding the columns named in filter, in filter
// order. A name listed twice yields the column twice. Every row of t is kept.
//
// filter must already have passed Validate.
func Project(t *types.Table, filter []string) *types.Table {
	indices := make([]int, len(filter))
	for i, name := range filter {
		indices[i] = t.ColumnIndex(name)
	}

	headers := make([]string, len(filter))
	copy(headers, filter)

	out := &types.Table{
		Headers: headers,
		Rows:    make([][]string, len(t.Rows)),
	}

	for r, row := range t.Rows {
		projected := make([]string, len(indices))
		for i, idx := range indices {
			projected[i] = row[idx]
		}
		out.Rows[r] = projected
	}

	return out
}

// Head returns a view of t limited to its first n rows.
func Head(t *types.Table, n int) *types.Table {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &types.Table{
		Headers: t.Headers,
		Rows:    t.Rows[:n],
	}
}
