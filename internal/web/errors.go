package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/logging"
	"github.com/JonMunkholm/coursereg/internal/web/templates"
)

// ErrorResponse is the JSON body of an error for clients asking for JSON.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`
}

// respondError logs err with the request context and answers with the
// mapped user message, as JSON or as the error page. Errors with a known
// user message are logged at warn level; anything else at error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	msg := core.MapError(err)

	level := slog.LevelError
	if core.IsUserFacing(err) {
		level = slog.LevelWarn
	}
	logging.WithFields(r.Context(), "path", r.URL.Path, "method", r.Method).Log(r.Context(), level, "request error",
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	)

	if wantsJSON(r) {
		writeJSON(w, status, ErrorResponse{Error: msg.Message, Action: msg.Action, Code: msg.Code})
		return
	}

	var buf bytes.Buffer
	p := s.page(w, r, "Something went wrong")
	if rerr := templates.ErrorPage(p, msg.Message, msg.Action, msg.Code).Render(r.Context(), &buf); rerr != nil {
		http.Error(w, core.FormatUserError(err), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode", "error", err)
	}
}
