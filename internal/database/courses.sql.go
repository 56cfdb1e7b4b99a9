package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listCourses = `SELECT c.id, c.name, c.description, c.duration, c.category_id, cat.name
FROM courses c
LEFT JOIN categories cat ON cat.id = c.category_id
WHERE $1 = ''
   OR c.name ILIKE $2
   OR c.description ILIKE $2
   OR cat.name ILIKE $2
ORDER BY c.id ASC`

// ListCourses returns courses with their category name. A non-empty search
// matches course name, description or category name as a substring.
func (q *Queries) ListCourses(ctx context.Context, search string) ([]CourseWithCategory, error) {
	rows, err := q.db.Query(ctx, listCourses, search, likePattern(search))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CourseWithCategory
	for rows.Next() {
		var i CourseWithCategory
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.Duration, &i.CategoryID, &i.CategoryName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getCourse = `SELECT id, name, description, duration, category_id FROM courses WHERE id = $1`

func (q *Queries) GetCourse(ctx context.Context, id int32) (Course, error) {
	var i Course
	err := q.db.QueryRow(ctx, getCourse, id).Scan(&i.ID, &i.Name, &i.Description, &i.Duration, &i.CategoryID)
	return i, err
}

const courseExists = `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`

func (q *Queries) CourseExists(ctx context.Context, id int32) (bool, error) {
	return q.existsQuery(ctx, courseExists, id)
}

const courseNameExists = `SELECT EXISTS(SELECT 1 FROM courses WHERE name = $1 AND id <> $2)`

func (q *Queries) CourseNameExists(ctx context.Context, arg UniqueCheckParams) (bool, error) {
	return q.existsQuery(ctx, courseNameExists, arg.Value, arg.ExcludeID)
}

const createCourse = `INSERT INTO courses (name, description, duration, category_id)
VALUES ($1, $2, $3, $4)
RETURNING id, name, description, duration, category_id`

type CreateCourseParams struct {
	Name        string
	Description string
	Duration    pgtype.Int4
	CategoryID  int32
}

func (q *Queries) CreateCourse(ctx context.Context, arg CreateCourseParams) (Course, error) {
	var i Course
	err := q.db.QueryRow(ctx, createCourse, arg.Name, arg.Description, arg.Duration, arg.CategoryID).
		Scan(&i.ID, &i.Name, &i.Description, &i.Duration, &i.CategoryID)
	return i, err
}

const updateCourse = `UPDATE courses
SET name = $2, description = $3, duration = $4, category_id = $5
WHERE id = $1`

type UpdateCourseParams struct {
	ID          int32
	Name        string
	Description string
	Duration    pgtype.Int4
	CategoryID  int32
}

func (q *Queries) UpdateCourse(ctx context.Context, arg UpdateCourseParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateCourse, arg.ID, arg.Name, arg.Description, arg.Duration, arg.CategoryID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCourse = `DELETE FROM courses WHERE id = $1`

func (q *Queries) DeleteCourse(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCourse, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countCourses = `SELECT COUNT(*) FROM courses`

func (q *Queries) CountCourses(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countCourses).Scan(&n)
	return n, err
}
