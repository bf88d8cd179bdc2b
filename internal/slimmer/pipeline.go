// Package slimmer loads a table, keeps only the columns a filter list names
// and writes the result back out together with the filter itself.
//
// A run is Load, ResolveFilter, Validate, Project and Export in that order.
// Nothing is kept between runs.
package slimmer

import (
	"io"

	"github.com/nconklindev/zempic/internal/types"
)

// Run slims an already loaded table. It returns a *ValidationError without
// projecting anything when the filter names a column t does not have.
func Run(t *types.Table, src FilterSource, opts ExportOptions) (*types.ExportBundle, error) {
	filter, err := ResolveFilter(src)
	if err != nil {
		return nil, err
	}

	if err := Validate(t, filter); err != nil {
		return nil, err
	}

	return Export(Project(t, filter), filter, opts)
}

// Slim loads the data file named name from r and runs it.
func Slim(name string, r io.Reader, src FilterSource, opts ExportOptions) (*types.ExportBundle, error) {
	t, err := Load(name, r)
	if err != nil {
		return nil, err
	}
	return Run(t, src, opts)
}
