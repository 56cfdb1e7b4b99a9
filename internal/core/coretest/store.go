// Package coretest provides an in-memory core.Store for tests.
//
// The store enforces the same constraints as the PostgreSQL schema and
// reports violations with the same SQLSTATE codes and constraint names, so
// service code can be exercised without a database.
package coretest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/JonMunkholm/coursereg/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store is a goroutine-safe in-memory store.
type Store struct {
	mu sync.Mutex

	categories   []database.Category
	courses      []database.Course
	participants []database.Participant
	enrollments  []database.Enrollment
	nextID       int32

	calls []string

	// Err, when set, is returned by every call.
	Err error
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Calls returns the names of the methods invoked so far, in order.
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// EnrollmentCount returns the number of stored enrollments.
func (s *Store) EnrollmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.enrollments)
}

func (s *Store) begin(name string) error {
	s.mu.Lock()
	s.calls = append(s.calls, name)
	if s.Err != nil {
		s.mu.Unlock()
		return s.Err
	}
	return nil
}

func (s *Store) id() int32 {
	s.nextID++
	return s.nextID
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "` + constraint + `"`,
		ConstraintName: constraint,
	}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `violates foreign key constraint "` + constraint + `"`,
		ConstraintName: constraint,
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

func (s *Store) ListCategories(_ context.Context, order database.CategoryOrder) ([]database.Category, error) {
	if err := s.begin("ListCategories"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	out := append([]database.Category(nil), s.categories...)
	sort.SliceStable(out, func(i, j int) bool {
		switch order {
		case database.CategoryOrderNameAsc:
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
		case database.CategoryOrderNameDesc:
			if out[i].Name != out[j].Name {
				return out[i].Name > out[j].Name
			}
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) findCategory(id int32) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) GetCategory(_ context.Context, id int32) (database.Category, error) {
	if err := s.begin("GetCategory"); err != nil {
		return database.Category{}, err
	}
	defer s.mu.Unlock()

	if i := s.findCategory(id); i >= 0 {
		return s.categories[i], nil
	}
	return database.Category{}, pgx.ErrNoRows
}

func (s *Store) CategoryExists(_ context.Context, id int32) (bool, error) {
	if err := s.begin("CategoryExists"); err != nil {
		return false, err
	}
	defer s.mu.Unlock()
	return s.findCategory(id) >= 0, nil
}

func (s *Store) categoryNameTaken(name string, exclude int32) bool {
	for _, c := range s.categories {
		if c.Name == name && c.ID != exclude {
			return true
		}
	}
	return false
}

func (s *Store) CategoryNameExists(_ context.Context, arg database.UniqueCheckParams) (bool, error) {
	if err := s.begin("CategoryNameExists"); err != nil {
		return false, err
	}
	defer s.mu.Unlock()
	return s.categoryNameTaken(arg.Value, arg.ExcludeID), nil
}

func (s *Store) CreateCategory(_ context.Context, arg database.CreateCategoryParams) (database.Category, error) {
	if err := s.begin("CreateCategory"); err != nil {
		return database.Category{}, err
	}
	defer s.mu.Unlock()

	if s.categoryNameTaken(arg.Name, 0) {
		return database.Category{}, uniqueViolation("categories_name_key")
	}
	c := database.Category{ID: s.id(), Name: arg.Name, Description: arg.Description}
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, arg database.UpdateCategoryParams) (int64, error) {
	if err := s.begin("UpdateCategory"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	i := s.findCategory(arg.ID)
	if i < 0 {
		return 0, nil
	}
	if s.categoryNameTaken(arg.Name, arg.ID) {
		return 0, uniqueViolation("categories_name_key")
	}
	s.categories[i].Name = arg.Name
	s.categories[i].Description = arg.Description
	return 1, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int32) (int64, error) {
	if err := s.begin("DeleteCategory"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	i := s.findCategory(id)
	if i < 0 {
		return 0, nil
	}
	for _, c := range s.courses {
		if c.CategoryID == id {
			return 0, foreignKeyViolation("courses_category_id_fkey")
		}
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	return 1, nil
}

// ---------------------------------------------------------------------------
// Courses
// ---------------------------------------------------------------------------

func (s *Store) findCourse(id int32) int {
	for i, c := range s.courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) categoryName(id int32) string {
	if i := s.findCategory(id); i >= 0 {
		return s.categories[i].Name
	}
	return ""
}

func (s *Store) ListCourses(_ context.Context, search string) ([]database.CourseWithCategory, error) {
	if err := s.begin("ListCourses"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	var out []database.CourseWithCategory
	for _, c := range s.courses {
		cat := s.categoryName(c.CategoryID)
		if search != "" && !contains(c.Name, search) && !contains(c.Description, search) && !contains(cat, search) {
			continue
		}
		row := database.CourseWithCategory{Course: c}
		row.CategoryName.String, row.CategoryName.Valid = cat, cat != ""
		out = append(out, row)
	}
	return out, nil
}

func (s *Store) GetCourse(_ context.Context, id int32) (database.Course, error) {
	if err := s.begin("GetCourse"); err != nil {
		return database.Course{}, err
	}
	defer s.mu.Unlock()

	if i := s.findCourse(id); i >= 0 {
		return s.courses[i], nil
	}
	return database.Course{}, pgx.ErrNoRows
}

func (s *Store) CourseExists(_ context.Context, id int32) (bool, error) {
	if err := s.begin("CourseExists"); err != nil {
		return false, err
	}
	defer s.mu.Unlock()
	return s.findCourse(id) >= 0, nil
}

func (s *Store) courseNameTaken(name string, exclude int32) bool {
	for _, c := range s.courses {
		if c.Name == name && c.ID != exclude {
			return true
		}
	}
	return false
}

func (s *Store) CourseNameExists(_ context.Context, arg database.UniqueCheckParams) (bool, error) {
	if err := s.begin("CourseNameExists"); err != nil {
		return false, err
	}
	defer s.mu.Unlock()
	return s.courseNameTaken(arg.Value, arg.ExcludeID), nil
}

func (s *Store) CreateCourse(_ context.Context, arg database.CreateCourseParams) (database.Course, error) {
	if err := s.begin("CreateCourse"); err != nil {
		return database.Course{}, err
	}
	defer s.mu.Unlock()

	if s.courseNameTaken(arg.Name, 0) {
		return database.Course{}, uniqueViolation("courses_name_key")
	}
	if s.findCategory(arg.CategoryID) < 0 {
		return database.Course{}, foreignKeyViolation("courses_category_id_fkey")
	}
	c := database.Course{
		ID:          s.id(),
		Name:        arg.Name,
		Description: arg.Description,
		Duration:    arg.Duration,
		CategoryID:  arg.CategoryID,
	}
	s.courses = append(s.courses, c)
	return c, nil
}

func (s *Store) UpdateCourse(_ context.Context, arg database.UpdateCourseParams) (int64, error) {
	if err := s.begin("UpdateCourse"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	i := s.findCourse(arg.ID)
	if i < 0 {
		return 0, nil
	}
	if s.courseNameTaken(arg.Name, arg.ID) {
		return 0, uniqueViolation("courses_name_key")
	}
	if s.findCategory(arg.CategoryID) < 0 {
		return 0, foreignKeyViolation("courses_category_id_fkey")
	}
	s.courses[i] = database.Course{
		ID:          arg.ID,
		Name:        arg.Name,
		Description: arg.Description,
		Duration:    arg.Duration,
		CategoryID:  arg.CategoryID,
	}
	return 1, nil
}

func (s *Store) DeleteCourse(_ context.Context, id int32) (int64, error) {
	if err := s.begin("DeleteCourse"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	i := s.findCourse(id)
	if i < 0 {
		return 0, nil
	}
	for _, e := range s.enrollments {
		if e.CourseID == id {
			return 0, foreignKeyViolation("enrollments_course_id_fkey")
		}
	}
	s.courses = append(s.courses[:i], s.courses[i+1:]...)
	return 1, nil
}

func (s *Store) CountCourses(_ context.Context) (int64, error) {
	if err := s.begin("CountCourses"); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()
	return int64(len(s.courses)), nil
}
