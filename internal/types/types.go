package types

import "github.com/google/uuid"

// Table is a loaded sheet: one header row and the data rows beneath it.
// Every row holds exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Payload is a downloadable artifact.
type Payload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportBundle is everything a successful slimming run hands back.
type ExportBundle struct {
	ID     uuid.UUID
	Table  *Table
	Data   Payload
	Filter Payload
}

// ColumnIndex returns the position of the first column named name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}
