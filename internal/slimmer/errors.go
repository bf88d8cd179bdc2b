package slimmer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errEmptyFile   = errors.New("empty file")
	errInvalidUTF8 = errors.New("filter list is not valid UTF-8")

	errNoWorkbookStream = errors.New("no workbook stream in xls file")
)

// ParseError reports an input file that could not be read in the format its
// name implies.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse file %q: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError lists filter entries that name no column of the table.
// Missing is deduplicated and keeps the order the names first appeared in.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, name := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("filter is asking for columns not present in the table: %s", strings.Join(quoted, ", "))
}

// SerializationError wraps a failure while writing an export payload.
type SerializationError struct {
	Format Format
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("could not write %s export: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
