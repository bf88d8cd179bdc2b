package slimmer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLoad_CSV(t *testing.T) {
	tbl, err := Load("people.csv", strings.NewReader("id,name,age,city\n1,Ann,30,NY\n2,Bo,25,LA\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "age", "city"}, tbl.Headers)
	assert.Equal(t, [][]string{
		{"1", "Ann", "30", "NY"},
		{"2", "Bo", "25", "LA"},
	}, tbl.Rows)
}

func TestLoad_CSVVariants(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		input   string
		headers []string
		rows    [][]string
	}{
		{
			name:    "Byte order mark stripped",
			file:    "bom.csv",
			input:   "\xEF\xBB\xBFid,name\n1,Ann\n",
			headers: []string{"id", "name"},
			rows:    [][]string{{"1", "Ann"}},
		},
		{
			name:    "Uppercase extension",
			file:    "DATA.CSV",
			input:   "a,b\n1,2\n",
			headers: []string{"a", "b"},
			rows:    [][]string{{"1", "2"}},
		},
		{
			name:    "Short rows padded",
			file:    "short.csv",
			input:   "a,b,c\n1\n1,2\n",
			headers: []string{"a", "b", "c"},
			rows:    [][]string{{"1", "", ""}, {"1", "2", ""}},
		},
		{
			name:    "Blank lines skipped",
			file:    "blank.csv",
			input:   "a,b\n\n1,2\n\n3,4\n",
			headers: []string{"a", "b"},
			rows:    [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:    "Header only",
			file:    "header.csv",
			input:   "a,b\n",
			headers: []string{"a", "b"},
			rows:    [][]string{},
		},
		{
			name:    "Duplicate and blank headers renamed",
			file:    "dupes.csv",
			input:   "a,,a,a\n1,2,3,4\n",
			headers: []string{"a", "Unnamed: 1", "a.1", "a.2"},
			rows:    [][]string{{"1", "2", "3", "4"}},
		},
		{
			name:    "Quoted fields",
			file:    "quoted.csv",
			input:   "name,note\n\"Smith, J\",\"said \"\"hi\"\"\"\n",
			headers: []string{"name", "note"},
			rows:    [][]string{{"Smith, J", `said "hi"`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Load(tt.file, strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.headers, tbl.Headers)
			assert.Equal(t, tt.rows, tbl.Rows)
		})
	}
}

func TestLoad_CSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty file", ""},
		{"Row wider than header", "a,b\n1,2,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("bad.csv", strings.NewReader(tt.input))
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "want *ParseError, got %T", err)
			assert.Equal(t, "bad.csv", parseErr.File)
		})
	}
}

func TestLoad_Workbook(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"id", "name", "age", "city"},
		{1, "Ann", 30, "NY"},
		{2, "Bo", 25},
	})

	tbl, err := Load("people.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "age", "city"}, tbl.Headers)
	assert.Equal(t, [][]string{
		{"1", "Ann", "30", "NY"},
		{"2", "Bo", "25", ""},
	}, tbl.Rows)
}

func TestLoad_WorkbookExtraCells(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"id", "name"},
		{1, "Ann", "stray"},
	})

	tbl, err := Load("extra.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "Unnamed: 2"}, tbl.Headers)
	assert.Equal(t, [][]string{{"1", "Ann", "stray"}}, tbl.Rows)
}

func TestLoad_WorkbookEmptySheet(t *testing.T) {
	tbl, err := Load("empty.xlsx", workbook(t, nil))
	require.NoError(t, err)

	assert.Empty(t, tbl.Headers)
	assert.Empty(t, tbl.Rows)
}

func TestLoad_NotAWorkbook(t *testing.T) {
	for _, name := range []string{"legacy.xls", "notes.txt", "noext"} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(name, strings.NewReader("id,name\n1,Ann\n"))

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "want *ParseError, got %v", err)
			assert.Contains(t, parseErr.Error(), "could not parse file")
		})
	}
}

func TestLoad_LegacyWorkbook(t *testing.T) {
	tbl, err := LoadFile(filepath.Join("testdata", "people.xls"))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "age", "city"}, tbl.Headers)
	assert.Equal(t, [][]string{
		{"1", "Ann", "30", "NY"},
		{"2", "Zoë", "27.5", ""},
	}, tbl.Rows)
}

func TestLoad_LegacyWorkbookCorrupt(t *testing.T) {
	data := append(append([]byte{}, oleSignature...), 0x00, 0x01, 0x02)

	_, err := Load("broken.xls", bytes.NewReader(data))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "want *ParseError, got %v", err)
	assert.Equal(t, "broken.xls", parseErr.File)
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "input.csv")
	require.NoError(t, os.WriteFile(inputFile, []byte("Name,Hours\nAlice,1.5\n"), 0o644))

	tbl, err := LoadFile(inputFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Hours"}, tbl.Headers)
	assert.Equal(t, [][]string{{"Alice", "1.5"}}, tbl.Rows)

	_, err = LoadFile(filepath.Join(tmpDir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"Unique", []string{"a", "b"}, []string{"a", "b"}},
		{"Repeated", []string{"a", "a", "a"}, []string{"a", "a.1", "a.2"}},
		{"Clash with suffix", []string{"a", "a.1", "a"}, []string{"a", "a.1", "a.1.1"}},
		{"Blank", []string{"", "b", ""}, []string{"Unnamed: 0", "b", "Unnamed: 2"}},
		{"Case sensitive", []string{"A", "a"}, []string{"A", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeHeaders(tt.input))
		})
	}
}
