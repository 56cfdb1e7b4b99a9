package core_test

import (
	"context"
	"testing"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	p, err := svc.CreateParticipant(ctx, alice())
	require.NoError(t, err)

	noCreds := core.ParticipantInput{Name: "Carol", Email: "carol@example.com", Phone: "555-0300"}
	_, err = svc.CreateParticipant(ctx, noCreds)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		id, err := svc.Authenticate(ctx, " alice ", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, session.Identity{Username: "alice", DisplayName: "Alice Doe", ParticipantID: p.ID}, id)
	})

	failures := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "nope"},
		{"unknown user", "mallory", "s3cret"},
		{"empty fields", "", ""},
		{"username lookup is exact", "Alice", "s3cret"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.Authenticate(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, core.ErrInvalidCredentials)
			assert.Equal(t, session.Identity{}, id)
		})
	}
}

func TestAuthenticate_SameMessageForAllFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.CreateParticipant(ctx, alice())
	require.NoError(t, err)

	_, wrongPass := svc.Authenticate(ctx, "alice", "bad")
	_, unknown := svc.Authenticate(ctx, "ghost", "bad")

	assert.Equal(t, core.MapError(wrongPass), core.MapError(unknown))
	assert.Equal(t, "AUTH001", core.MapError(unknown).Code)
}
