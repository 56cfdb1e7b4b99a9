package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Category struct {
	ID          int32
	Name        string
	Description string
}

type Course struct {
	ID          int32
	Name        string
	Description string
	Duration    pgtype.Int4
	CategoryID  int32
}

// CourseWithCategory is a course row joined with its category name.
type CourseWithCategory struct {
	Course
	CategoryName pgtype.Text
}

type Participant struct {
	ID               int32
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

type Enrollment struct {
	ID            int32
	CourseID      int32
	ParticipantID int32
	Date          pgtype.Date
}

// EnrollmentDetail is an enrollment with participant and course names resolved.
type EnrollmentDetail struct {
	ID              int32
	ParticipantName string
	CourseName      string
	Date            pgtype.Date
}

// CourseEnrollmentCount is one row of the most-enrolled-courses ranking.
type CourseEnrollmentCount struct {
	CourseID   int32
	CourseName string
	Total      int64
}

// CategoryEnrollmentCount is the enrollment total for one category.
type CategoryEnrollmentCount struct {
	CategoryID   int32
	CategoryName string
	Total        int64
}

// MonthlyEnrollmentCount is the enrollment total for one YYYY-MM bucket.
type MonthlyEnrollmentCount struct {
	Month string
	Total int64
}
