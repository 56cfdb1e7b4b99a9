package core

import (
	"context"
	"strconv"

	"github.com/JonMunkholm/coursereg/internal/database"
)

const (
	msgCourseNameTaken = "A course with this name already exists."
	msgCategoryMissing = "The selected category does not exist."
)

// CourseInput is the submitted course form.
type CourseInput struct {
	Name        string `label:"Course name" validate:"required,max=120"`
	Description string `label:"Description" validate:"required,max=2000"`
	Duration    string `label:"Duration" validate:"omitempty,number,max=6"`
	CategoryID  string `label:"Category" validate:"required,number"`
}

func (in *CourseInput) normalize() {
	trim(&in.Name, &in.Description, &in.Duration, &in.CategoryID)
}

// CourseInputFrom pre-fills an edit form.
func CourseInputFrom(c database.Course) CourseInput {
	in := CourseInput{
		Name:        c.Name,
		Description: c.Description,
		CategoryID:  strconv.Itoa(int(c.CategoryID)),
	}
	if c.Duration.Valid {
		in.Duration = strconv.Itoa(int(c.Duration.Int32))
	}
	return in
}

// ListCourses returns courses with their category name, filtered by a
// case-insensitive substring of name, description or category name.
func (s *Service) ListCourses(ctx context.Context, search string) ([]database.CourseWithCategory, error) {
	courses, err := s.store.ListCourses(ctx, normalizeSearch(search))
	if err != nil {
		return nil, readError("list courses", err)
	}
	return courses, nil
}

// GetCourse returns one course or ErrNotFound.
func (s *Service) GetCourse(ctx context.Context, id int32) (database.Course, error) {
	c, err := s.store.GetCourse(ctx, id)
	if err != nil {
		return database.Course{}, readError("get course", err)
	}
	return c, nil
}

func (s *Service) validateCourse(ctx context.Context, in CourseInput, excludeID int32) (database.UpdateCourseParams, error) {
	field := checkFields(in)
	store, err := storeChecks(ctx, excludeID,
		[]uniqueCheck{{in.Name, s.store.CourseNameExists, msgCourseNameTaken}},
		[]referenceCheck{{parseID(in.CategoryID), s.store.CategoryExists, msgCategoryMissing}},
	)
	if err != nil {
		return database.UpdateCourseParams{}, err
	}
	if err := finish(field, store); err != nil {
		return database.UpdateCourseParams{}, err
	}

	duration, err := parseOptionalInt(in.Duration)
	if err != nil {
		return database.UpdateCourseParams{}, ValidationErrors{"Duration must be a whole number."}
	}
	return database.UpdateCourseParams{
		ID:          excludeID,
		Name:        in.Name,
		Description: in.Description,
		Duration:    duration,
		CategoryID:  parseID(in.CategoryID),
	}, nil
}

// CreateCourse validates and stores a new course.
func (s *Service) CreateCourse(ctx context.Context, in CourseInput) (database.Course, error) {
	in.normalize()
	p, err := s.validateCourse(ctx, in, 0)
	if err != nil {
		return database.Course{}, err
	}

	c, err := s.store.CreateCourse(ctx, database.CreateCourseParams{
		Name:        p.Name,
		Description: p.Description,
		Duration:    p.Duration,
		CategoryID:  p.CategoryID,
	})
	if err != nil {
		return database.Course{}, writeError("create course", err)
	}
	return c, nil
}

// UpdateCourse validates and rewrites course id.
func (s *Service) UpdateCourse(ctx context.Context, id int32, in CourseInput) error {
	in.normalize()
	p, err := s.validateCourse(ctx, in, id)
	if err != nil {
		return err
	}

	n, err := s.store.UpdateCourse(ctx, p)
	if err != nil {
		return writeError("update course", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCourse removes a course. It returns ErrInUse while enrollments
// still reference it.
func (s *Service) DeleteCourse(ctx context.Context, id int32) error {
	n, err := s.store.DeleteCourse(ctx, id)
	return deleteError("delete course", n, err)
}
