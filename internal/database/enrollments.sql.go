package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createEnrollment = `INSERT INTO enrollments (course_id, participant_id, date)
VALUES ($1, $2, $3)
ON CONFLICT (course_id, participant_id) DO NOTHING
RETURNING id, course_id, participant_id, date`

type CreateEnrollmentParams struct {
	CourseID      int32
	ParticipantID int32
	Date          pgtype.Date
}

// CreateEnrollment inserts the pair unless it already exists. An existing
// pair yields pgx.ErrNoRows and leaves the table unchanged.
func (q *Queries) CreateEnrollment(ctx context.Context, arg CreateEnrollmentParams) (Enrollment, error) {
	var i Enrollment
	err := q.db.QueryRow(ctx, createEnrollment, arg.CourseID, arg.ParticipantID, arg.Date).
		Scan(&i.ID, &i.CourseID, &i.ParticipantID, &i.Date)
	return i, err
}

const getEnrollment = `SELECT id, course_id, participant_id, date FROM enrollments WHERE id = $1`

func (q *Queries) GetEnrollment(ctx context.Context, id int32) (Enrollment, error) {
	var i Enrollment
	err := q.db.QueryRow(ctx, getEnrollment, id).Scan(&i.ID, &i.CourseID, &i.ParticipantID, &i.Date)
	return i, err
}

const listEnrollments = `SELECT id, course_id, participant_id, date FROM enrollments ORDER BY id ASC`

func (q *Queries) ListEnrollments(ctx context.Context) ([]Enrollment, error) {
	rows, err := q.db.Query(ctx, listEnrollments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Enrollment
	for rows.Next() {
		var i Enrollment
		if err := rows.Scan(&i.ID, &i.CourseID, &i.ParticipantID, &i.Date); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listEnrollmentDetails = `SELECT e.id, p.name, c.name, e.date
FROM enrollments e
JOIN participants p ON p.id = e.participant_id
JOIN courses c ON c.id = e.course_id
ORDER BY e.date DESC, e.id DESC`

func (q *Queries) ListEnrollmentDetails(ctx context.Context) ([]EnrollmentDetail, error) {
	rows, err := q.db.Query(ctx, listEnrollmentDetails)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []EnrollmentDetail
	for rows.Next() {
		var i EnrollmentDetail
		if err := rows.Scan(&i.ID, &i.ParticipantName, &i.CourseName, &i.Date); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateEnrollment = `UPDATE enrollments
SET course_id = $2, participant_id = $3, date = $4
WHERE id = $1`

type UpdateEnrollmentParams struct {
	ID            int32
	CourseID      int32
	ParticipantID int32
	Date          pgtype.Date
}

func (q *Queries) UpdateEnrollment(ctx context.Context, arg UpdateEnrollmentParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateEnrollment, arg.ID, arg.CourseID, arg.ParticipantID, arg.Date)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteEnrollment = `DELETE FROM enrollments WHERE id = $1`

func (q *Queries) DeleteEnrollment(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteEnrollment, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
