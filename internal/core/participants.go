package core

import (
	"context"
	"strconv"
	"strings"

	"github.com/JonMunkholm/coursereg/internal/database"
)

const (
	msgParticipantNameTaken = "A participant with this name already exists."
	msgEmailTaken           = "This email address is already registered."
	msgPhoneTaken           = "This phone number is already registered."
	msgUsernameTaken        = "This username is already taken."
	msgUsernameNeedsPass    = "A password is required when setting a username."
)

// ParticipantInput is the submitted participant form. Username and Password
// are optional; a participant without credentials cannot log in.
type ParticipantInput struct {
	Name       string `label:"Name" validate:"required,max=120"`
	Email      string `label:"Email" validate:"required,email,max=254"`
	Phone      string `label:"Phone" validate:"required,max=40"`
	Address    string `label:"Address" validate:"max=255"`
	Age        string `label:"Age" validate:"omitempty,number,max=3"`
	Gender     string `label:"Gender" validate:"max=40"`
	Occupation string `label:"Occupation" validate:"max=120"`
	Username   string `label:"Username" validate:"max=60"`
	Password   string `label:"Password" validate:"max=72"`
}

func (in *ParticipantInput) normalize() {
	trim(&in.Name, &in.Email, &in.Phone, &in.Address, &in.Age,
		&in.Gender, &in.Occupation, &in.Username, &in.Password)
}

// ParticipantInputFrom pre-fills an edit form. The password is never echoed.
func ParticipantInputFrom(p database.Participant) ParticipantInput {
	in := ParticipantInput{
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Address:    p.Address,
		Gender:     p.Gender,
		Occupation: p.Occupation,
		Username:   p.Username.String,
	}
	if p.Age.Valid {
		in.Age = strconv.Itoa(int(p.Age.Int32))
	}
	return in
}

// ListParticipants returns participants matching a case-insensitive
// substring of name, email, phone or registration date.
func (s *Service) ListParticipants(ctx context.Context, search string) ([]database.Participant, error) {
	ps, err := s.store.ListParticipants(ctx, normalizeSearch(search))
	if err != nil {
		return nil, readError("list participants", err)
	}
	return ps, nil
}

// GetParticipant returns one participant or ErrNotFound.
func (s *Service) GetParticipant(ctx context.Context, id int32) (database.Participant, error) {
	p, err := s.store.GetParticipant(ctx, id)
	if err != nil {
		return database.Participant{}, readError("get participant", err)
	}
	return p, nil
}

// validateParticipant checks in. checkUsername is false on edit when the
// username did not change; hasHash reports a stored password.
func (s *Service) validateParticipant(ctx context.Context, in ParticipantInput, excludeID int32, checkUsername, hasHash bool) error {
	field := checkFields(in)
	if in.Username != "" && in.Password == "" && !hasHash {
		field = append(field, msgUsernameNeedsPass)
	}

	uniques := []uniqueCheck{
		{in.Name, s.store.ParticipantNameExists, msgParticipantNameTaken},
		{in.Email, s.store.ParticipantEmailExists, msgEmailTaken},
		{in.Phone, s.store.ParticipantPhoneExists, msgPhoneTaken},
	}
	if checkUsername {
		uniques = append(uniques, uniqueCheck{in.Username, s.store.ParticipantUsernameExists, msgUsernameTaken})
	}

	store, err := storeChecks(ctx, excludeID, uniques, nil)
	if err != nil {
		return err
	}
	return finish(field, store)
}

// CreateParticipant validates and stores a new participant registered today.
func (s *Service) CreateParticipant(ctx context.Context, in ParticipantInput) (database.Participant, error) {
	in.normalize()
	if err := s.validateParticipant(ctx, in, 0, true, false); err != nil {
		return database.Participant{}, err
	}

	age, err := parseOptionalInt(in.Age)
	if err != nil {
		return database.Participant{}, ValidationErrors{"Age must be a whole number."}
	}

	params := database.CreateParticipantParams{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Address:          in.Address,
		Age:              age,
		Gender:           in.Gender,
		Occupation:       in.Occupation,
		RegistrationDate: s.today(),
		Username:         optionalText(in.Username),
	}
	if in.Password != "" {
		if params.PasswordHash, err = s.hashPassword(in.Password); err != nil {
			return database.Participant{}, err
		}
	}

	p, err := s.store.CreateParticipant(ctx, params)
	if err != nil {
		return database.Participant{}, writeError("create participant", err)
	}
	return p, nil
}

// UpdateParticipant validates and rewrites participant id. An empty
// password keeps the stored hash.
func (s *Service) UpdateParticipant(ctx context.Context, id int32, in ParticipantInput) error {
	in.normalize()

	current, err := s.GetParticipant(ctx, id)
	if err != nil {
		return err
	}
	changed := in.Username != current.Username.String

	if err := s.validateParticipant(ctx, in, id, changed, current.PasswordHash.Valid); err != nil {
		return err
	}

	age, err := parseOptionalInt(in.Age)
	if err != nil {
		return ValidationErrors{"Age must be a whole number."}
	}

	params := database.UpdateParticipantParams{
		ID:         id,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		Age:        age,
		Gender:     in.Gender,
		Occupation: in.Occupation,
		Username:   optionalText(in.Username),
	}
	if in.Password != "" {
		if params.PasswordHash, err = s.hashPassword(in.Password); err != nil {
			return err
		}
	}

	n, err := s.store.UpdateParticipant(ctx, params)
	if err != nil {
		return writeError("update participant", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteParticipant removes a participant. It returns ErrInUse while
// enrollments still reference them.
func (s *Service) DeleteParticipant(ctx context.Context, id int32) error {
	n, err := s.store.DeleteParticipant(ctx, id)
	return deleteError("delete participant", n, err)
}

func normalizeSearch(q string) string {
	return strings.TrimSpace(q)
}
