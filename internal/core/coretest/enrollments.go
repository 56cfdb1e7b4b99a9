package coretest

import (
	"context"
	"sort"

	"github.com/JonMunkholm/coursereg/internal/database"
	"github.com/jackc/pgx/v5"
)

func (s *Store) findEnrollment(id int32) int {
	for i, e := range s.enrollments {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) pairTaken(courseID, participantID, exclude int32) bool {
	for _, e := range s.enrollments {
		if e.CourseID == courseID && e.ParticipantID == participantID && e.ID != exclude {
			return true
		}
	}
	return false
}

func (s *Store) enrollmentRefs(courseID, participantID int32) error {
	if s.findCourse(courseID) < 0 {
		return foreignKeyViolation("enrollments_course_id_fkey")
	}
	if s.findParticipant(participantID) < 0 {
		return foreignKeyViolation("enrollments_participant_id_fkey")
	}
	return nil
}

// CreateEnrollment behaves like INSERT ... ON CONFLICT DO NOTHING RETURNING:
// an existing pair yields pgx.ErrNoRows.
func (s *Store) CreateEnrollment(_ context.Context, arg database.CreateEnrollmentParams) (database.Enrollment, error) {
	if err := s.begin("CreateEnrollment"); err != nil {
		return database.Enrollment{}, err
	}
	defer s.mu.Unlock()

	if err := s.enrollmentRefs(arg.CourseID, arg.ParticipantID); err != nil {
		return database.Enrollment{}, err
	}
	if s.pairTaken(arg.CourseID, arg.ParticipantID, 0) {
		return database.Enrollment{}, pgx.ErrNoRows
	}
	e := database.Enrollment{
		ID:            s.id(),
		CourseID:      arg.CourseID,
		ParticipantID: arg.ParticipantID,
		Date:          arg.Date,
	}
	s.enrollments = append(s.enrollments, e)
	return e, nil
}

func (s *Store) GetEnrollment(_ context.Context, id int32) (database.Enrollment, error) {
	if err := s.begin("GetEnrollment"); err != nil {
		return database.Enrollment{}, err
	}
	defer s.mu.Unlock()

	if i := s.findEnrollment(id); i >= 0 {
		return s.enrollments[i], nil
	}
	return database.Enrollment{}, pgx.ErrNoRows
}

func (s *Store) ListEnrollments(_ context.Context) ([]database.Enrollment, error) {
	if err := s.begin("ListEnrollments"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return append([]database.Enrollment(nil), s.enrollments...), nil
}

func (s *Store) ListEnrollmentDetails(_ context.Context) ([]database.EnrollmentDetail, error) {
	if err := s.begin("ListEnrollmentDetails"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	out := make([]database.EnrollmentDetail, 0, len(s.enrollments))
	for _, e := range s.enrollments {
		d := database.EnrollmentDetail{ID: e.ID, Date: e.Date}
		if i := s.findParticipant(e.ParticipantID); i >= 0 {
			d.ParticipantName = s.participants[i].Name
		}
		if i := s.findCourse(e.CourseID); i >= 0 {
			d.CourseName = s.courses[i].Name
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Time.Equal(out[j].Date.Time) {
			return out[i].Date.Time.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateEnrollment(_ context.Context, arg database.UpdateEnrollmentParams) (int64, error) {
	if err := s.begin("UpdateEnrollment"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	i := s.findEnrollment(arg.ID)
	if i < 0 {
		return 0, nil
	}
	if err := s.enrollmentRefs(arg.CourseID, arg.ParticipantID); err != nil {
		return 0, err
	}
	if s.pairTaken(arg.CourseID, arg.ParticipantID, arg.ID) {
		return 0, uniqueViolation("enrollments_course_participant_key")
	}
	s.enrollments[i] = database.Enrollment{
		ID:            arg.ID,
		CourseID:      arg.CourseID,
		ParticipantID: arg.ParticipantID,
		Date:          arg.Date,
	}
	return 1, nil
}

func (s *Store) DeleteEnrollment(_ context.Context, id int32) (int64, error) {
	if err := s.begin("DeleteEnrollment"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	i := s.findEnrollment(id)
	if i < 0 {
		return 0, nil
	}
	s.enrollments = append(s.enrollments[:i], s.enrollments[i+1:]...)
	return 1, nil
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

func (s *Store) TopCoursesByEnrollment(_ context.Context, limit int32) ([]database.CourseEnrollmentCount, error) {
	if err := s.begin("TopCoursesByEnrollment"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	counts := map[int32]int64{}
	for _, e := range s.enrollments {
		counts[e.CourseID]++
	}
	out := make([]database.CourseEnrollmentCount, 0, len(counts))
	for id, n := range counts {
		row := database.CourseEnrollmentCount{CourseID: id, Total: n}
		if i := s.findCourse(id); i >= 0 {
			row.CourseName = s.courses[i].Name
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].CourseID < out[j].CourseID
	})
	if int(limit) < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) EnrollmentsByCategory(_ context.Context) ([]database.CategoryEnrollmentCount, error) {
	if err := s.begin("EnrollmentsByCategory"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	counts := map[int32]int64{}
	for _, e := range s.enrollments {
		if i := s.findCourse(e.CourseID); i >= 0 {
			counts[s.courses[i].CategoryID]++
		}
	}
	out := make([]database.CategoryEnrollmentCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, database.CategoryEnrollmentCount{CategoryID: id, CategoryName: s.categoryName(id), Total: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	return out, nil
}

func (s *Store) EnrollmentsByMonth(_ context.Context) ([]database.MonthlyEnrollmentCount, error) {
	if err := s.begin("EnrollmentsByMonth"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	counts := map[string]int64{}
	for _, e := range s.enrollments {
		counts[e.Date.Time.Format("2006-01")]++
	}
	out := make([]database.MonthlyEnrollmentCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, database.MonthlyEnrollmentCount{Month: m, Total: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
