package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const participantColumns = `id, name, email, phone, address, age, gender, occupation,
       registration_date, username, password_hash`

func scanParticipant(row interface{ Scan(...any) error }, i *Participant) error {
	return row.Scan(
		&i.ID, &i.Name, &i.Email, &i.Phone, &i.Address, &i.Age, &i.Gender,
		&i.Occupation, &i.RegistrationDate, &i.Username, &i.PasswordHash,
	)
}

const listParticipants = `SELECT ` + participantColumns + `
FROM participants
WHERE $1 = ''
   OR name ILIKE $2
   OR email ILIKE $2
   OR phone ILIKE $2
   OR registration_date::text ILIKE $2
ORDER BY id ASC`

// ListParticipants returns participants ordered by id. A non-empty search
// matches name, email, phone or registration date as a substring.
func (q *Queries) ListParticipants(ctx context.Context, search string) ([]Participant, error) {
	rows, err := q.db.Query(ctx, listParticipants, search, likePattern(search))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Participant
	for rows.Next() {
		var i Participant
		if err := scanParticipant(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getParticipant = `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`

func (q *Queries) GetParticipant(ctx context.Context, id int32) (Participant, error) {
	var i Participant
	err := scanParticipant(q.db.QueryRow(ctx, getParticipant, id), &i)
	return i, err
}

const getParticipantByUsername = `SELECT ` + participantColumns + ` FROM participants WHERE username = $1`

func (q *Queries) GetParticipantByUsername(ctx context.Context, username string) (Participant, error) {
	var i Participant
	err := scanParticipant(q.db.QueryRow(ctx, getParticipantByUsername, username), &i)
	return i, err
}

const participantExists = `SELECT EXISTS(SELECT 1 FROM participants WHERE id = $1)`

func (q *Queries) ParticipantExists(ctx context.Context, id int32) (bool, error) {
	return q.existsQuery(ctx, participantExists, id)
}

const participantNameExists = `SELECT EXISTS(SELECT 1 FROM participants WHERE name = $1 AND id <> $2)`

func (q *Queries) ParticipantNameExists(ctx context.Context, arg UniqueCheckParams) (bool, error) {
	return q.existsQuery(ctx, participantNameExists, arg.Value, arg.ExcludeID)
}

const participantEmailExists = `SELECT EXISTS(SELECT 1 FROM participants WHERE email = $1 AND id <> $2)`

func (q *Queries) ParticipantEmailExists(ctx context.Context, arg UniqueCheckParams) (bool, error) {
	return q.existsQuery(ctx, participantEmailExists, arg.Value, arg.ExcludeID)
}

const participantPhoneExists = `SELECT EXISTS(SELECT 1 FROM participants WHERE phone = $1 AND id <> $2)`

func (q *Queries) ParticipantPhoneExists(ctx context.Context, arg UniqueCheckParams) (bool, error) {
	return q.existsQuery(ctx, participantPhoneExists, arg.Value, arg.ExcludeID)
}

const participantUsernameExists = `SELECT EXISTS(SELECT 1 FROM participants WHERE username = $1 AND id <> $2)`

func (q *Queries) ParticipantUsernameExists(ctx context.Context, arg UniqueCheckParams) (bool, error) {
	return q.existsQuery(ctx, participantUsernameExists, arg.Value, arg.ExcludeID)
}

const createParticipant = `INSERT INTO participants (
    name, email, phone, address, age, gender, occupation,
    registration_date, username, password_hash
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + participantColumns

// CreateParticipantParams has a fixed column set. Username and PasswordHash
// are NULL when not Valid.
type CreateParticipantParams struct {
	Name             string
	Email            string
	Phone            string
	Address          string
	Age              pgtype.Int4
	Gender           string
	Occupation       string
	RegistrationDate pgtype.Date
	Username         pgtype.Text
	PasswordHash     pgtype.Text
}

func (q *Queries) CreateParticipant(ctx context.Context, arg CreateParticipantParams) (Participant, error) {
	var i Participant
	row := q.db.QueryRow(ctx, createParticipant,
		arg.Name, arg.Email, arg.Phone, arg.Address, arg.Age, arg.Gender,
		arg.Occupation, arg.RegistrationDate, arg.Username, arg.PasswordHash,
	)
	err := scanParticipant(row, &i)
	return i, err
}

const updateParticipant = `UPDATE participants SET
    name = $2,
    email = $3,
    phone = $4,
    address = $5,
    age = $6,
    gender = $7,
    occupation = $8,
    username = $9,
    password_hash = COALESCE($10, password_hash)
WHERE id = $1`

// UpdateParticipantParams keeps the stored password hash when PasswordHash is not Valid.
type UpdateParticipantParams struct {
	ID           int32
	Name         string
	Email        string
	Phone        string
	Address      string
	Age          pgtype.Int4
	Gender       string
	Occupation   string
	Username     pgtype.Text
	PasswordHash pgtype.Text
}

func (q *Queries) UpdateParticipant(ctx context.Context, arg UpdateParticipantParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateParticipant,
		arg.ID, arg.Name, arg.Email, arg.Phone, arg.Address, arg.Age,
		arg.Gender, arg.Occupation, arg.Username, arg.PasswordHash,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteParticipant = `DELETE FROM participants WHERE id = $1`

func (q *Queries) DeleteParticipant(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteParticipant, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countParticipants = `SELECT COUNT(*) FROM participants`

func (q *Queries) CountParticipants(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countParticipants).Scan(&n)
	return n, err
}
