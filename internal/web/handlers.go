package web

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/nconklindev/zempic/internal/logging"
	"github.com/nconklindev/zempic/internal/slimmer"
	"github.com/nconklindev/zempic/internal/types"
)

// ColumnsResponse lists the columns of an uploaded file for the picker.
type ColumnsResponse struct {
	File    string   `json:"file"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

// PreviewResponse is the head of the slimmed table.
type PreviewResponse struct {
	Filter    []string   `json:"filter"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleColumns loads the data file and reports its columns.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	name, table, err := s.readTable(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ColumnsResponse{
		File:    name,
		Columns: table.Headers,
		Rows:    len(table.Rows),
	})
}

// handlePreview validates the filter and returns the first rows of the
// slimmed table without serializing it.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	_, table, err := s.readTable(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	src, err := readFilter(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	filter, err := slimmer.ResolveFilter(src)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := slimmer.Validate(table, filter); err != nil {
		respondError(w, r, err)
		return
	}

	head := slimmer.Head(slimmer.Project(table, filter), s.cfg.Export.PreviewRows)
	writeJSON(w, http.StatusOK, PreviewResponse{
		Filter:    filter,
		Columns:   head.Headers,
		Rows:      head.Rows,
		TotalRows: len(table.Rows),
	})
}

// handleSlim runs the pipeline and downloads the slimmed table.
func (s *Server) handleSlim(w http.ResponseWriter, r *http.Request) {
	bundle, err := s.run(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeDownload(w, bundle.Data)
}

// handleSlimFilter runs the pipeline and downloads the filter list.
func (s *Server) handleSlimFilter(w http.ResponseWriter, r *http.Request) {
	bundle, err := s.run(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeDownload(w, bundle.Filter)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) (*types.ExportBundle, error) {
	name, table, err := s.readTable(w, r)
	if err != nil {
		return nil, err
	}

	src, err := readFilter(r)
	if err != nil {
		return nil, err
	}

	opts, err := s.readOptions(r)
	if err != nil {
		return nil, err
	}

	bundle, err := slimmer.Run(table, src, opts)
	if err != nil {
		return nil, err
	}

	logging.FromContext(r.Context()).Info("slimmed",
		"run_id", bundle.ID,
		"file", name,
		"filter_uploaded", src.Uploaded(),
		"columns_in", len(table.Headers),
		"columns_out", len(bundle.Table.Headers),
		"rows", len(bundle.Table.Rows),
		"output", bundle.Data.Filename,
	)

	return bundle, nil
}

// readTable parses the multipart form and loads its "file" part.
func (s *Server) readTable(w http.ResponseWriter, r *http.Request) (string, *types.Table, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", nil, tooLarge(err)
		}
		return "", nil, badRequest("invalid multipart form", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, badRequest("no file provided", err)
	}
	defer file.Close()

	table, err := slimmer.Load(header.Filename, file)
	if err != nil {
		return "", nil, err
	}

	return header.Filename, table, nil
}

// readFilter prefers an uploaded "filter" file and falls back to the
// repeated "columns" values, in the order they were sent.
func readFilter(r *http.Request) (slimmer.FilterSource, error) {
	file, header, err := r.FormFile("filter")
	if errors.Is(err, http.ErrMissingFile) {
		return slimmer.FromSelection(r.MultipartForm.Value["columns"]), nil
	}
	if err != nil {
		return slimmer.FilterSource{}, badRequest("invalid filter file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return slimmer.FilterSource{}, badRequest("could not read filter file", err)
	}

	return slimmer.FromText(header.Filename, data), nil
}

func (s *Server) readOptions(r *http.Request) (slimmer.ExportOptions, error) {
	name := r.FormValue("name")
	if name == "" {
		name = s.cfg.Export.DefaultName
	}

	formatValue := r.FormValue("format")
	if formatValue == "" {
		formatValue = s.cfg.Export.DefaultFormat
	}

	format, err := slimmer.ParseFormat(formatValue)
	if err != nil {
		return slimmer.ExportOptions{}, badRequest("unknown export format", err)
	}

	return slimmer.ExportOptions{BaseName: name, Format: format}, nil
}

func writeDownload(w http.ResponseWriter, p types.Payload) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": p.Filename})
	if disposition == "" {
		disposition = "attachment"
	}

	w.Header().Set("Content-Type", p.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(p.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(p.Data)
}
