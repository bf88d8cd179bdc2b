package slimmer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nconklindev/zempic/internal/types"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatCSV   Format = "CSV"
	FormatExcel Format = "Excel"
)

const (
	DefaultBaseName = "slimmed"
	FilterFilename  = "Filter.txt"
	SheetName       = "Sheet1"

	ContentTypeCSV   = "text/csv"
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeText  = "text/plain"
)

// ParseFormat reads a format name. An empty string means CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatExcel {
		return ".xlsx"
	}
	return ".csv"
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatExcel {
		return ContentTypeExcel
	}
	return ContentTypeCSV
}

// ExportOptions controls how the projected table is written.
type ExportOptions struct {
	// BaseName is the download name without extension. Blank means DefaultBaseName.
	BaseName string
	// Format defaults to CSV.
	Format Format
}

// Export serializes t in the requested format and renders filter as a
// reusable filter file.
func Export(t *types.Table, filter []string, opts ExportOptions) (*types.ExportBundle, error) {
	base := opts.BaseName
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseName
	}

	format := opts.Format
	if format == "" {
		format = FormatCSV
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatCSV:
		err = WriteCSV(&buf, t)
	case FormatExcel:
		err = WriteExcel(&buf, t)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return nil, &SerializationError{Format: format, Err: err}
	}

	return &types.ExportBundle{
		ID:    uuid.New(),
		Table: t,
		Data: types.Payload{
			Filename:    base + format.Ext(),
			ContentType: format.ContentType(),
			Data:        buf.Bytes(),
		},
		Filter: types.Payload{
			Filename:    FilterFilename,
			ContentType: ContentTypeText,
			Data:        []byte(FilterText(filter)),
		},
	}, nil
}

// WriteCSV writes a header row followed by every data row.
func WriteCSV(w io.Writer, t *types.Table) error {
	writer := csv.NewWriter(w)

	write := func(record []string) error {
		// csv.Writer renders a lone empty field as a blank line, and readers
		// skip blank lines.
		if len(record) == 1 && record[0] == "" {
			writer.Flush()
			if err := writer.Error(); err != nil {
				return err
			}
			_, err := io.WriteString(w, "\"\"\n")
			return err
		}
		return writer.Write(record)
	}

	if err := write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteExcel writes t to a single-sheet workbook named Sheet1.
func WriteExcel(w io.Writer, t *types.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	return f.Write(w)
}

// cellValue stores numbers as numbers when their text survives the trip
// unchanged, so "007" or "1.50" stay strings.
func cellValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		if strconv.FormatFloat(f, 'f', -1, 64) == s {
			return f
		}
	}

	return s
}
