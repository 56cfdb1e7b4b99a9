package core

import (
	"context"
	"fmt"
	"strconv"

	"github.com/JonMunkholm/coursereg/internal/database"
)

const (
	msgCourseMissing      = "The selected course does not exist."
	msgParticipantMissing = "The selected participant does not exist."
	msgDateInvalid        = "Date must be a date in YYYY-MM-DD format."

	enrollmentPairConstraint = "enrollments_course_participant_key"
)

// EnrollmentInput is the submitted enrollment form. Date is only offered on
// edit; an empty date means today on create and the stored date on edit.
type EnrollmentInput struct {
	ParticipantID string `label:"Participant" validate:"required,number"`
	CourseID      string `label:"Course" validate:"required,number"`
	Date          string `label:"Date" validate:"omitempty,datetime=2006-01-02"`
}

func (in *EnrollmentInput) normalize() {
	trim(&in.ParticipantID, &in.CourseID, &in.Date)
}

// EnrollmentInputFrom pre-fills an edit form.
func EnrollmentInputFrom(e database.Enrollment) EnrollmentInput {
	in := EnrollmentInput{
		ParticipantID: strconv.Itoa(int(e.ParticipantID)),
		CourseID:      strconv.Itoa(int(e.CourseID)),
	}
	if e.Date.Valid {
		in.Date = e.Date.Time.Format(dateLayout)
	}
	return in
}

// EnrollmentOptions lists what the enrollment form can choose from.
type EnrollmentOptions struct {
	Participants []database.Participant
	Courses      []database.CourseWithCategory
}

// EnrollmentOptions loads every participant and course.
func (s *Service) EnrollmentOptions(ctx context.Context) (EnrollmentOptions, error) {
	ps, err := s.store.ListParticipants(ctx, "")
	if err != nil {
		return EnrollmentOptions{}, fmt.Errorf("list participants: %w", err)
	}
	cs, err := s.store.ListCourses(ctx, "")
	if err != nil {
		return EnrollmentOptions{}, fmt.Errorf("list courses: %w", err)
	}
	return EnrollmentOptions{Participants: ps, Courses: cs}, nil
}

// ListEnrollments returns enrollments with participant and course names,
// newest first.
func (s *Service) ListEnrollments(ctx context.Context) ([]database.EnrollmentDetail, error) {
	es, err := s.store.ListEnrollmentDetails(ctx)
	if err != nil {
		return nil, readError("list enrollments", err)
	}
	return es, nil
}

// GetEnrollment returns one enrollment or ErrNotFound.
func (s *Service) GetEnrollment(ctx context.Context, id int32) (database.Enrollment, error) {
	e, err := s.store.GetEnrollment(ctx, id)
	if err != nil {
		return database.Enrollment{}, readError("get enrollment", err)
	}
	return e, nil
}

// Enroll registers a participant in a course dated today; in.Date is
// ignored. The unique (course, participant) index decides duplicates: an
// existing pair yields ErrAlreadyEnrolled and leaves storage unchanged.
func (s *Service) Enroll(ctx context.Context, in EnrollmentInput) (database.Enrollment, error) {
	in.Date = ""
	in.normalize()
	if err := finish(checkFields(in), nil); err != nil {
		return database.Enrollment{}, err
	}

	e, err := s.store.CreateEnrollment(ctx, database.CreateEnrollmentParams{
		CourseID:      parseID(in.CourseID),
		ParticipantID: parseID(in.ParticipantID),
		Date:          s.today(),
	})
	switch {
	case err == nil:
		return e, nil
	case isNoRows(err):
		return database.Enrollment{}, ErrAlreadyEnrolled
	default:
		return database.Enrollment{}, writeError("create enrollment", err)
	}
}

// UpdateEnrollment changes course, participant and date of enrollment id.
// A change that collides with an existing pair yields ErrAlreadyEnrolled.
func (s *Service) UpdateEnrollment(ctx context.Context, id int32, in EnrollmentInput) error {
	in.normalize()
	if err := finish(checkFields(in), nil); err != nil {
		return err
	}

	current, err := s.GetEnrollment(ctx, id)
	if err != nil {
		return err
	}

	date := current.Date
	if in.Date != "" {
		if date, err = parseDate(in.Date); err != nil {
			return ValidationErrors{msgDateInvalid}
		}
	}

	n, err := s.store.UpdateEnrollment(ctx, database.UpdateEnrollmentParams{
		ID:            id,
		CourseID:      parseID(in.CourseID),
		ParticipantID: parseID(in.ParticipantID),
		Date:          date,
	})
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == enrollmentPairConstraint {
			return ErrAlreadyEnrolled
		}
		return writeError("update enrollment", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEnrollment removes enrollment id.
func (s *Service) DeleteEnrollment(ctx context.Context, id int32) error {
	n, err := s.store.DeleteEnrollment(ctx, id)
	return deleteError("delete enrollment", n, err)
}
