package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rowbin/csvmap"
	"github.com/rowbin/csvmap/internal/dynamic"
	"github.com/rowbin/csvmap/internal/logging"
)

// previewRows caps how many records /api/inspect returns inline.
const previewRows = 10

// CheckResponse is the result of a header validation.
type CheckResponse struct {
	Match   bool   `json:"match"`
	Missing string `json:"missing,omitempty"`
}

// InspectResponse summarizes an uploaded file.
type InspectResponse struct {
	Columns    []string            `json:"columns"`
	RowNumbers bool                `json:"rowNumbers"`
	Rows       int                 `json:"rows"`
	Preview    []map[string]string `json:"preview"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// handleCheck validates the uploaded file's header against the expected
// header given in the "expected" query parameter.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	expected := r.URL.Query().Get("expected")
	if expected == "" {
		s.respondError(w, r, "missing expected query parameter", http.StatusBadRequest)
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	lines := strings.SplitN(body, "\n", 2)
	actual := strings.TrimSuffix(lines[0], "\r")

	codec, err := dynamic.FromHeader(expected, s.codecOptions())
	if err != nil {
		s.respondError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	missing := codec.HeaderDiff(actual, expected)
	writeJSON(w, CheckResponse{Match: missing == "", Missing: missing})
}

// handleInspect decodes the uploaded file and returns its column list,
// row count, and a preview of the first rows.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	lines := strings.SplitN(body, "\n", 2)
	header := strings.TrimSuffix(lines[0], "\r")

	opts := s.codecOptions()
	codec, err := dynamic.FromHeader(header, opts)
	if err != nil {
		s.respondError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := codec.Decode(strings.NewReader(body))
	if err != nil {
		s.respondError(w, r, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := InspectResponse{
		Columns:    dynamic.Columns(header, opts.Separator, opts.RowNumberTitle),
		RowNumbers: !codec.Options().OmitRowNumbers,
		Rows:       len(records),
		Preview:    make([]map[string]string, 0, previewRows),
	}
	for i, rec := range records {
		if i == previewRows {
			break
		}
		resp.Preview = append(resp.Preview, rec.Values)
	}
	writeJSON(w, resp)
}

// handleConvert re-encodes the uploaded file with a different separator
// and, optionally, an EOF sentinel row.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	lines := strings.SplitN(body, "\n", 2)
	header := strings.TrimSuffix(lines[0], "\r")

	inOpts := s.codecOptions()
	inCodec, err := dynamic.FromHeader(header, inOpts)
	if err != nil {
		s.respondError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := inCodec.Decode(strings.NewReader(body))
	if err != nil {
		s.respondError(w, r, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	outSep := r.URL.Query().Get("separator")
	if outSep == "" {
		outSep = inOpts.Separator
	}
	if len(outSep) != 1 {
		s.respondError(w, r, "separator must be a single character", http.StatusBadRequest)
		return
	}

	outOpts := inOpts
	outOpts.Separator = outSep
	outOpts.EmitEOF = r.URL.Query().Get("emit_eof") == "true"

	cols := dynamic.Columns(header, inOpts.Separator, inOpts.RowNumberTitle)
	outHeader := strings.Join(cols, outSep)
	if !inCodec.Options().OmitRowNumbers {
		outHeader = inOpts.RowNumberTitle + outSep + outHeader
	}

	outCodec, err := dynamic.FromHeader(outHeader, outOpts)
	if err != nil {
		s.respondError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	if err := outCodec.Encode(w, records); err != nil {
		logging.FromContext(r.Context()).Error("convert encode failed", "error", err)
	}
}

// readBody reads the request body up to the configured size limit.
// It writes the error response itself when reading fails.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, r, "read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return "", false
	}
	if strings.TrimSpace(string(data)) == "" {
		s.respondError(w, r, "empty body", http.StatusBadRequest)
		return "", false
	}
	return string(data), true
}

// codecOptions builds the library options from server configuration.
func (s *Server) codecOptions() csvmap.Options {
	return s.cfg.CodecOptions()
}

// respondError logs the failure with request context and returns the
// JSON error envelope.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, msg string, status int) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", msg,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
