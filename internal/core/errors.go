package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInUse is returned when a delete is blocked by dependent rows.
	ErrInUse = errors.New("record in use: still referenced by other records")

	// ErrAlreadyEnrolled is returned when the (course, participant) pair exists.
	ErrAlreadyEnrolled = errors.New("participant already enrolled in course")

	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PostgreSQL SQLSTATE codes the service reacts to.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// ValidationErrors is an ordered list of user-facing validation messages.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v, "; ")
}

// AsValidation extracts ValidationErrors from err.
func AsValidation(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isForeignKeyViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgForeignKeyViolation
}

func uniqueViolation(err error) (constraint string, ok bool) {
	code, constraint := pgErrorCode(err)
	return constraint, code == pgUniqueViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// constraintMessages translates constraint violations that slipped past the
// pre-checks (concurrent writers) into the same messages the checks produce.
var constraintMessages = map[string]string{
	"categories_name_key":             msgCategoryNameTaken,
	"courses_name_key":                msgCourseNameTaken,
	"courses_category_id_fkey":        msgCategoryMissing,
	"participants_name_key":           msgParticipantNameTaken,
	"participants_email_key":          msgEmailTaken,
	"participants_phone_key":          msgPhoneTaken,
	"participants_username_key":       msgUsernameTaken,
	"enrollments_course_id_fkey":      msgCourseMissing,
	"enrollments_participant_id_fkey": msgParticipantMissing,
}

// writeError classifies an insert or update failure.
func writeError(op string, err error) error {
	code, constraint := pgErrorCode(err)
	if code == pgUniqueViolation || code == pgForeignKeyViolation {
		if msg, ok := constraintMessages[constraint]; ok {
			return ValidationErrors{msg}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// deleteError classifies the result of a delete statement.
func deleteError(op string, affected int64, err error) error {
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrInUse)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// readError classifies a single-row lookup failure.
func readError(op string, err error) error {
	if isNoRows(err) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
