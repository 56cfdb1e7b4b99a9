package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/coursereg/internal/database"
)

// Dashboard holds the aggregate figures shown on the dashboard page.
type Dashboard struct {
	TotalCourses      int64
	TotalParticipants int64
	TopCourses        []database.CourseEnrollmentCount
	ByCategory        []database.CategoryEnrollmentCount
	ByMonth           []database.MonthlyEnrollmentCount
}

// Dashboard computes the dashboard aggregates. Nothing is cached.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		d   Dashboard
		err error
	)

	if d.TotalCourses, err = s.store.CountCourses(ctx); err != nil {
		return Dashboard{}, fmt.Errorf("count courses: %w", err)
	}
	if d.TotalParticipants, err = s.store.CountParticipants(ctx); err != nil {
		return Dashboard{}, fmt.Errorf("count participants: %w", err)
	}
	if d.TopCourses, err = s.store.TopCoursesByEnrollment(ctx, TopCoursesLimit); err != nil {
		return Dashboard{}, fmt.Errorf("top courses: %w", err)
	}
	if d.ByCategory, err = s.store.EnrollmentsByCategory(ctx); err != nil {
		return Dashboard{}, fmt.Errorf("enrollments by category: %w", err)
	}
	if d.ByMonth, err = s.store.EnrollmentsByMonth(ctx); err != nil {
		return Dashboard{}, fmt.Errorf("enrollments by month: %w", err)
	}

	if len(d.TopCourses) > TopCoursesLimit {
		d.TopCourses = d.TopCourses[:TopCoursesLimit]
	}
	return d, nil
}
