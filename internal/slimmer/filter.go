package slimmer

import (
	"strings"
	"unicode/utf8"
)

// FilterSource is where a run takes its column list from: an uploaded
// filter file when there is one, the interactive selection otherwise.
type FilterSource struct {
	name     string
	text     []byte
	uploaded bool
	selected []string
}

// FromText uses the contents of an uploaded filter file. An empty file is
// still an upload and resolves to an empty list.
func FromText(name string, data []byte) FilterSource {
	return FilterSource{name: name, text: data, uploaded: true}
}

// FromSelection uses columns picked interactively, in the order picked.
func FromSelection(columns []string) FilterSource {
	return FilterSource{selected: columns}
}

// Uploaded reports whether the source is a filter file.
func (s FilterSource) Uploaded() bool {
	return s.uploaded
}

// ResolveFilter turns a source into the ordered filter list.
func ResolveFilter(src FilterSource) ([]string, error) {
	if !src.uploaded {
		filter := make([]string, len(src.selected))
		copy(filter, src.selected)
		return filter, nil
	}

	filter, err := ParseFilterList(src.text)
	if err != nil {
		return nil, &ParseError{File: src.name, Err: err}
	}
	return filter, nil
}

// ParseFilterList splits a filter file into column names, one per line.
// Lines are kept verbatim: nothing is trimmed and blank lines become empty
// names. A final line terminator does not start another entry.
func ParseFilterList(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	return splitLines(string(data)), nil
}

// FilterText renders a filter list the way ParseFilterList reads it back.
func FilterText(filter []string) string {
	return strings.Join(filter, "\n")
}

func splitLines(s string) []string {
	lines := []string{}
	start := 0

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}

		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}

	if start < len(s) {
		lines = append(lines, s[start:])
	}

	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
