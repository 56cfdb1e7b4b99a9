package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/logging"
	"github.com/JonMunkholm/coursereg/internal/session"
	"github.com/JonMunkholm/coursereg/internal/web/templates"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, templates.Login(s.page(w, r, "Log in"), ""))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("usuario")
	id, err := s.service.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if errors.Is(err, core.ErrInvalidCredentials) {
		logging.FromContext(r.Context()).Warn("login failed", "username", username)
		p := s.page(w, r, "Log in", templates.Flash{Kind: flashDanger, Message: core.MapError(err).Message})
		s.render(w, r, http.StatusUnauthorized, templates.Login(p, username))
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	if err := s.sessions.Issue(w, id); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	logging.FromContext(r.Context()).Info("login", "username", id.Username)
	redirect(w, r, "/", flashSuccess, "Welcome, "+id.DisplayName+".")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	redirect(w, r, "/", flashSuccess, "You have been logged out.")
}
