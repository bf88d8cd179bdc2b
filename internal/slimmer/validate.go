package slimmer

import "github.com/nconklindev/zempic/internal/types"

type columnSet map[string]struct{}

func newColumnSet(names []string) columnSet {
	set := make(columnSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s columnSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// Validate checks that every name in filter is a column of t. Matching is
// exact and case-sensitive; repeated names make no difference.
func Validate(t *types.Table, filter []string) error {
	present := newColumnSet(t.Headers)
	reported := make(columnSet)

	var missing []string
	for _, name := range filter {
		if present.has(name) || reported.has(name) {
			continue
		}
		reported[name] = struct{}{}
		missing = append(missing, name)
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
