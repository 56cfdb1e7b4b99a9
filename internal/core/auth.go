package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/coursereg/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate checks a username and password. Every failure returns
// ErrInvalidCredentials so callers cannot tell unknown users from wrong
// passwords.
func (s *Service) Authenticate(ctx context.Context, username, password string) (session.Identity, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return session.Identity{}, ErrInvalidCredentials
	}

	p, err := s.store.GetParticipantByUsername(ctx, username)
	if err != nil {
		if isNoRows(err) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return session.Identity{}, ErrInvalidCredentials
		}
		return session.Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	if !p.PasswordHash.Valid {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return session.Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash.String), []byte(password)); err != nil {
		return session.Identity{}, ErrInvalidCredentials
	}

	return session.Identity{
		Username:      p.Username.String,
		DisplayName:   p.Name,
		ParticipantID: p.ID,
	}, nil
}
