package web

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/export"
	"github.com/JonMunkholm/coursereg/internal/logging"
)

// exportFormat is one download format offered for every report.
type exportFormat struct {
	name        string // URL suffix
	ext         string
	contentType string
	write       func(io.Writer, *export.Table) error
}

var exportFormats = []exportFormat{
	{"excel", "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.WriteXLSX},
	{"pdf", "pdf", "application/pdf", export.WritePDF},
}

// handleExport streams report rep as a file attachment. The document is
// built in memory first so a failure can still answer with an error page.
func (s *Server) handleExport(rep core.Report, f exportFormat) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.exports.Acquire(r.Context()); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, export.ErrBusy) {
				status = http.StatusServiceUnavailable
				w.Header().Set("Retry-After", "5")
			}
			s.respondError(w, r, err, status)
			return
		}
		defer s.exports.Release()

		t, err := s.service.BuildReport(r.Context(), rep)
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := f.write(&buf, t); err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}

		logging.FromContext(r.Context()).Info("export",
			"report", string(rep),
			"format", f.ext,
			"rows", len(t.Rows),
			"bytes", buf.Len(),
		)

		w.Header().Set("Content-Type", f.contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+rep.FileName(f.ext)+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		buf.WriteTo(w)
	}
}
