package core

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"
)

// TopCoursesLimit is the number of courses on the dashboard ranking.
const TopCoursesLimit = 5

// Service implements course registration on top of a Store.
type Service struct {
	store      Store
	now        func() time.Time
	bcryptCost int

	dummyHash []byte
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for registration and enrollment dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithBcryptCost sets the cost used for new password hashes.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

// NewService creates a Service backed by store.
func NewService(store Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:      store,
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Compared against when the username is unknown so both failure paths
	// cost one bcrypt comparison.
	hash, err := bcrypt.GenerateFromPassword([]byte("coursereg-unknown-user"), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	s.dummyHash = hash

	return s, nil
}

func (s *Service) today() pgtype.Date {
	now := s.now()
	return pgtype.Date{
		Time:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

func (s *Service) hashPassword(password string) (pgtype.Text, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return pgtype.Text{}, fmt.Errorf("hash password: %w", err)
	}
	return pgtype.Text{String: string(hash), Valid: true}, nil
}
