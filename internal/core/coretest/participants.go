package coretest

import (
	"context"

	"github.com/JonMunkholm/coursereg/internal/database"
	"github.com/jackc/pgx/v5"
)

func (s *Store) findParticipant(id int32) int {
	for i, p := range s.participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// participantConflict returns the violated constraint name, if any.
func (s *Store) participantConflict(p database.Participant) string {
	for _, o := range s.participants {
		if o.ID == p.ID {
			continue
		}
		switch {
		case o.Name == p.Name:
			return "participants_name_key"
		case o.Email == p.Email:
			return "participants_email_key"
		case o.Phone == p.Phone:
			return "participants_phone_key"
		case p.Username.Valid && o.Username.Valid && o.Username.String == p.Username.String:
			return "participants_username_key"
		}
	}
	return ""
}

func (s *Store) ListParticipants(_ context.Context, search string) ([]database.Participant, error) {
	if err := s.begin("ListParticipants"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	var out []database.Participant
	for _, p := range s.participants {
		date := ""
		if p.RegistrationDate.Valid {
			date = p.RegistrationDate.Time.Format("2006-01-02")
		}
		if search != "" && !contains(p.Name, search) && !contains(p.Email, search) &&
			!contains(p.Phone, search) && !contains(date, search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) GetParticipant(_ context.Context, id int32) (database.Participant, error) {
	if err := s.begin("GetParticipant"); err != nil {
		return database.Participant{}, err
	}
	defer s.mu.Unlock()

	if i := s.findParticipant(id); i >= 0 {
		return s.participants[i], nil
	}
	return database.Participant{}, pgx.ErrNoRows
}

func (s *Store) GetParticipantByUsername(_ context.Context, username string) (database.Participant, error) {
	if err := s.begin("GetParticipantByUsername"); err != nil {
		return database.Participant{}, err
	}
	defer s.mu.Unlock()

	for _, p := range s.participants {
		if p.Username.Valid && p.Username.String == username {
			return p, nil
		}
	}
	return database.Participant{}, pgx.ErrNoRows
}

func (s *Store) ParticipantExists(_ context.Context, id int32) (bool, error) {
	if err := s.begin("ParticipantExists"); err != nil {
		return false, err
	}
	defer s.mu.Unlock()
	return s.findParticipant(id) >= 0, nil
}

func (s *Store) participantFieldTaken(name string, field func(database.Participant) (string, bool), arg database.UniqueCheckParams) (bool, error) {
	if err := s.begin(name); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	for _, p := range s.participants {
		if v, ok := field(p); ok && v == arg.Value && p.ID != arg.ExcludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ParticipantNameExists(_ context.Context, arg database.UniqueCheckParams) (bool, error) {
	return s.participantFieldTaken("ParticipantNameExists", func(p database.Participant) (string, bool) { return p.Name, true }, arg)
}

func (s *Store) ParticipantEmailExists(_ context.Context, arg database.UniqueCheckParams) (bool, error) {
	return s.participantFieldTaken("ParticipantEmailExists", func(p database.Participant) (string, bool) { return p.Email, true }, arg)
}

func (s *Store) ParticipantPhoneExists(_ context.Context, arg database.UniqueCheckParams) (bool, error) {
	return s.participantFieldTaken("ParticipantPhoneExists", func(p database.Participant) (string, bool) { return p.Phone, true }, arg)
}

func (s *Store) ParticipantUsernameExists(_ context.Context, arg database.UniqueCheckParams) (bool, error) {
	return s.participantFieldTaken("ParticipantUsernameExists", func(p database.Participant) (string, bool) {
		return p.Username.String, p.Username.Valid
	}, arg)
}

func (s *Store) CreateParticipant(_ context.Context, arg database.CreateParticipantParams) (database.Participant, error) {
	if err := s.begin("CreateParticipant"); err != nil {
		return database.Participant{}, err
	}
	defer s.mu.Unlock()

	p := database.Participant{
		Name:             arg.Name,
		Email:            arg.Email,
		Phone:            arg.Phone,
		Address:          arg.Address,
		Age:              arg.Age,
		Gender:           arg.Gender,
		Occupation:       arg.Occupation,
		RegistrationDate: arg.RegistrationDate,
		Username:         arg.Username,
		PasswordHash:     arg.PasswordHash,
	}
	if c := s.participantConflict(p); c != "" {
		return database.Participant{}, uniqueViolation(c)
	}
	p.ID = s.id()
	s.participants = append(s.participants, p)
	return p, nil
}

func (s *Store) UpdateParticipant(_ context.Context, arg database.UpdateParticipantParams) (int64, error) {
	if err := s.begin("UpdateParticipant"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	i := s.findParticipant(arg.ID)
	if i < 0 {
		return 0, nil
	}

	p := s.participants[i]
	p.Name = arg.Name
	p.Email = arg.Email
	p.Phone = arg.Phone
	p.Address = arg.Address
	p.Age = arg.Age
	p.Gender = arg.Gender
	p.Occupation = arg.Occupation
	p.Username = arg.Username
	if arg.PasswordHash.Valid {
		p.PasswordHash = arg.PasswordHash
	}
	if c := s.participantConflict(p); c != "" {
		return 0, uniqueViolation(c)
	}
	s.participants[i] = p
	return 1, nil
}

func (s *Store) DeleteParticipant(_ context.Context, id int32) (int64, error) {
	if err := s.begin("DeleteParticipant"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	i := s.findParticipant(id)
	if i < 0 {
		return 0, nil
	}
	for _, e := range s.enrollments {
		if e.ParticipantID == id {
			return 0, foreignKeyViolation("enrollments_participant_id_fkey")
		}
	}
	s.participants = append(s.participants[:i], s.participants[i+1:]...)
	return 1, nil
}

func (s *Store) CountParticipants(_ context.Context) (int64, error) {
	if err := s.begin("CountParticipants"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()
	return int64(len(s.participants)), nil
}
