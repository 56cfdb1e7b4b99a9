package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/coursereg/internal/web/templates"
)

const flashCookie = "flash"

// Flash kinds, matching the layout's CSS classes.
const (
	flashSuccess = "success"
	flashWarning = "warning"
	flashDanger  = "danger"
)

// setFlash stores a notice to show on the next page the browser loads.
func setFlash(w http.ResponseWriter, kind, message string) {
	data, err := json.Marshal([]templates.Flash{{Kind: kind, Message: message}})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes returns pending notices and clears them. Malformed cookies are
// dropped silently.
func popFlashes(w http.ResponseWriter, r *http.Request) []templates.Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var flashes []templates.Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}
