// Package session issues and verifies the signed login cookie.
//
// The cookie carries an HS256 JWT with the participant identity. Nothing is
// kept server-side: the identity is decoded on every request and attached to
// the request context as an immutable value.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/coursereg/internal/config"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ErrNoSession is returned when the request carries no valid session cookie.
var ErrNoSession = errors.New("no active session")

// Identity is the logged-in participant.
type Identity struct {
	Username      string
	DisplayName   string
	ParticipantID int32
}

type claims struct {
	Username      string `json:"usr"`
	DisplayName   string `json:"name"`
	ParticipantID int32  `json:"pid"`
	jwt.RegisteredClaims
}

// Manager signs and reads session cookies.
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

// NewManager creates a Manager from session settings.
func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

// Sign returns a signed token for id.
func (m *Manager) Sign(id Identity) (string, error) {
	now := m.now()
	c := claims{
		Username:      id.Username,
		DisplayName:   id.DisplayName,
		ParticipantID: id.ParticipantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns the identity it carries.
func (m *Manager) Parse(token string) (Identity, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parse session: %w", err)
	}
	if !tok.Valid || c.Username == "" {
		return Identity{}, ErrNoSession
	}
	return Identity{
		Username:      c.Username,
		DisplayName:   c.DisplayName,
		ParticipantID: c.ParticipantID,
	}, nil
}

// Issue writes a fresh session cookie for id.
func (m *Manager) Issue(w http.ResponseWriter, id Identity) error {
	token, err := m.Sign(id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the identity carried by r's session cookie.
func (m *Manager) Read(r *http.Request) (Identity, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return Identity{}, ErrNoSession
	}
	return m.Parse(cookie.Value)
}

// Middleware attaches the session identity, when present, to the request context.
// Invalid or expired cookies are ignored.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := m.Read(r); err == nil {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
