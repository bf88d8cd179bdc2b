package slimmer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/zempic/internal/types"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// AllowedDataTypes are the extensions the file pickers offer for data files.
var AllowedDataTypes = []string{".csv", ".xls", ".xlsx"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a table from r. A name ending in .csv is parsed as CSV; anything
// else is opened as a workbook (legacy .xls or OOXML, told apart by content)
// and its first sheet is read.
func Load(name string, r io.Reader) (*types.Table, error) {
	var (
		t   *types.Table
		err error
	)

	if strings.ToLower(filepath.Ext(name)) == ".csv" {
		t, err = readCSV(r)
	} else {
		t, err = readWorkbook(r)
	}
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}

	return t, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(filepath.Base(path), f)
}

func readCSV(r io.Reader) (*types.Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, errEmptyFile
	}

	headers := records[0]
	rows := records[1:]

	// Short rows are padded later; long ones have nowhere to go.
	for i, row := range rows {
		if len(row) > len(headers) {
			return nil, fmt.Errorf("record %d: expected %d fields, saw %d", i+2, len(headers), len(row))
		}
	}

	return newTable(headers, rows), nil
}

// oleSignature starts every legacy (BIFF) .xls file. OOXML workbooks are
// zip archives.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func readWorkbook(r io.Reader) (*types.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(data, oleSignature) {
		return readLegacyWorkbook(bytes.NewReader(data))
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	return tableFromRows(rows), nil
}

func readLegacyWorkbook(r io.ReadSeeker) (t *types.Table, err error) {
	// The BIFF reader panics on malformed records rather than returning errors.
	defer func() {
		if p := recover(); p != nil {
			t, err = nil, fmt.Errorf("malformed xls workbook: %v", p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errNoWorkbookStream
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return tableFromRows(nil), nil
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := legacyRow(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}

		// LastCol is one past the last cell.
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		rows = append(rows, cells)
	}

	// Match GetRows, which stops at the last row holding a value.
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}

	return tableFromRows(rows), nil
}

// legacyRow returns nil for a row the sheet holds no record of.
// WorkSheet.Row dereferences the missing entry.
func legacyRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()

	return sheet.Row(i)
}

// tableFromRows treats the first row as the header. Trailing empty cells are
// already dropped, so the widest row sets the width.
func tableFromRows(rows [][]string) *types.Table {
	if len(rows) == 0 {
		return &types.Table{Headers: []string{}, Rows: [][]string{}}
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	headers := make([]string, width)
	copy(headers, rows[0])

	return newTable(headers, rows[1:])
}

func newTable(headers []string, rows [][]string) *types.Table {
	t := &types.Table{
		Headers: normalizeHeaders(headers),
		Rows:    make([][]string, 0, len(rows)),
	}

	for _, row := range rows {
		padded := make([]string, len(t.Headers))
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
	}

	return t
}

// normalizeHeaders names blank header cells "Unnamed: <i>" and suffixes
// repeated names with .1, .2, ... so every column name is unique.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	counts := make(map[string]int, len(raw))

	for i, name := range raw {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		n := counts[name]
		for n > 0 {
			counts[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
			n = counts[name]
		}

		headers[i] = name
		counts[name] = n + 1
	}

	return headers
}
