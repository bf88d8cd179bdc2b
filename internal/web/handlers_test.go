package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nconklindev/zempic/internal/config"
	"github.com/nconklindev/zempic/internal/slimmer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = "id,name,age,city\n1,Ann,30,NY\n2,Bo,25,LA\n"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Upload: config.UploadConfig{MaxFileSize: 1 << 20},
		Export: config.ExportConfig{DefaultName: "slimmed", DefaultFormat: "CSV", PreviewRows: 1},
	}
}

type part struct {
	field    string
	filename string
	content  string
}

func multipartRequest(t *testing.T, path string, parts ...part) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, p := range parts {
		var (
			w   io.Writer
			err error
		)
		if p.filename != "" {
			w, err = mw.CreateFormFile(p.field, p.filename)
		} else {
			w, err = mw.CreateFormField(p.field)
		}
		require.NoError(t, err)
		_, err = io.WriteString(w, p.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewServer(testConfig()).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func downloadName(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	return params["filename"]
}

func TestHealth(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIndexPage(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="file"`)
	assert.Contains(t, body, `value="slimmed"`)
	assert.Contains(t, body, `formaction="/api/slim/filter"`)
	assert.Contains(t, body, "up to 1 MiB")
}

func TestColumns(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/columns", part{"file", "people.csv", peopleCSV}))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ColumnsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ColumnsResponse{File: "people.csv", Columns: []string{"id", "name", "age", "city"}, Rows: 2}, resp)
}

func TestColumns_NoFile(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/columns", part{field: "name", content: "x"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "REQ001", decodeError(t, rec).Code)
}

func TestColumns_ParseError(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/columns", part{"file", "people.xlsx", peopleCSV}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "FILE002", decodeError(t, rec).Code)
}

func TestSlim_SelectedColumns(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/slim",
		part{"file", "people.csv", peopleCSV},
		part{field: "columns", content: "name"},
		part{field: "columns", content: "age"},
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "slimmed.csv", downloadName(t, rec))
	assert.Equal(t, "name,age\nAnn,30\nBo,25\n", rec.Body.String())
}

func TestSlim_FilterFileWins(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/slim",
		part{"file", "people.csv", peopleCSV},
		part{"filter", "Filter.txt", "city\nid\n"},
		part{field: "columns", content: "name"},
		part{field: "name", content: "places"},
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "places.csv", downloadName(t, rec))
	assert.Equal(t, "city,id\nNY,1\nLA,2\n", rec.Body.String())
}

func TestSlim_Excel(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/slim",
		part{"file", "people.csv", peopleCSV},
		part{field: "columns", content: "name"},
		part{field: "format", content: "Excel"},
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, slimmer.ContentTypeExcel, rec.Header().Get("Content-Type"))
	assert.Equal(t, "slimmed.xlsx", downloadName(t, rec))

	tbl, err := slimmer.Load("slimmed.xlsx", rec.Body)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, tbl.Headers)
	assert.Equal(t, [][]string{{"Ann"}, {"Bo"}}, tbl.Rows)
}

func TestSlim_MissingColumns(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/slim",
		part{"file", "people.csv", peopleCSV},
		part{"filter", "Filter.txt", "name\ncountry\n"},
	))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "VAL005", resp.Code)
	assert.Equal(t, []string{"country"}, resp.Missing)
}

func TestSlim_UnknownFormat(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/slim",
		part{"file", "people.csv", peopleCSV},
		part{field: "format", content: "Parquet"},
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "REQ001", decodeError(t, rec).Code)
}

func TestSlim_TooLarge(t *testing.T) {
	big := "a\n" + strings.Repeat("1\n", 1<<20)
	rec := serve(t, multipartRequest(t, "/api/slim", part{"file", "big.csv", big}))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "FILE001", decodeError(t, rec).Code)
}

func TestSlim_NoColumnsChosen(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/slim", part{"file", "people.csv", peopleCSV}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "\n\n\n", rec.Body.String())
}

func TestSlimFilter(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/slim/filter",
		part{"file", "people.csv", peopleCSV},
		part{field: "columns", content: "age"},
		part{field: "columns", content: "id"},
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Filter.txt", downloadName(t, rec))
	assert.Equal(t, "age\nid", rec.Body.String())
}

func TestPreview(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/preview",
		part{"file", "people.csv", peopleCSV},
		part{field: "columns", content: "city"},
		part{field: "columns", content: "name"},
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"city", "name"}, resp.Filter)
	assert.Equal(t, []string{"city", "name"}, resp.Columns)
	assert.Equal(t, [][]string{{"NY", "Ann"}}, resp.Rows)
	assert.Equal(t, 2, resp.TotalRows)
}

func TestPreview_MissingColumns(t *testing.T) {
	rec := serve(t, multipartRequest(t, "/api/preview",
		part{"file", "people.csv", peopleCSV},
		part{field: "columns", content: "Name"},
	))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []string{"Name"}, decodeError(t, rec).Missing)
}
