package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/logging"
	"github.com/JonMunkholm/coursereg/internal/session"
	"github.com/JonMunkholm/coursereg/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// page builds the layout data for r, consuming any pending flash notices.
// It must be called before anything is written to w.
func (s *Server) page(w http.ResponseWriter, r *http.Request, title string, extra ...templates.Flash) templates.Page {
	p := templates.Page{
		Title:   title,
		Flashes: append(popFlashes(w, r), extra...),
	}
	if id, ok := session.FromContext(r.Context()); ok {
		p.User = id
		p.LoggedIn = true
	}
	return p
}

// render writes c with status. The component is buffered so a render
// failure still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// redirect sends a 303 to path, with a flash notice when message is set.
func redirect(w http.ResponseWriter, r *http.Request, path, kind, message string) {
	if message != "" {
		setFlash(w, kind, message)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func idPath(prefix string, id int32) string {
	return prefix + strconv.Itoa(int(id))
}

// deleteMessages are the notices for the outcomes of a delete.
type deleteMessages struct {
	done    string
	inUse   string
	missing string
}

// finishDelete redirects to listPath with the notice matching err.
func (s *Server) finishDelete(w http.ResponseWriter, r *http.Request, err error, listPath string, msgs deleteMessages) {
	switch {
	case err == nil:
		redirect(w, r, listPath, flashSuccess, msgs.done)
	case errors.Is(err, core.ErrInUse):
		redirect(w, r, listPath, flashWarning, msgs.inUse)
	case errors.Is(err, core.ErrNotFound):
		redirect(w, r, listPath, flashWarning, msgs.missing)
	default:
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, templates.Home(s.page(w, r, "Course Registration")))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		logging.FromContext(r.Context()).Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.Dashboard(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, templates.Dashboard(s.page(w, r, "Dashboard"), d))
}
