package database

import (
	"context"
)

const topCoursesByEnrollment = `SELECT c.id, c.name, COUNT(e.id) AS total
FROM enrollments e
JOIN courses c ON c.id = e.course_id
GROUP BY c.id, c.name
ORDER BY total DESC, c.id ASC
LIMIT $1`

func (q *Queries) TopCoursesByEnrollment(ctx context.Context, limit int32) ([]CourseEnrollmentCount, error) {
	rows, err := q.db.Query(ctx, topCoursesByEnrollment, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CourseEnrollmentCount
	for rows.Next() {
		var i CourseEnrollmentCount
		if err := rows.Scan(&i.CourseID, &i.CourseName, &i.Total); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const enrollmentsByCategory = `SELECT cat.id, cat.name, COUNT(e.id) AS total
FROM enrollments e
JOIN courses c ON c.id = e.course_id
JOIN categories cat ON cat.id = c.category_id
GROUP BY cat.id, cat.name
ORDER BY cat.name ASC`

func (q *Queries) EnrollmentsByCategory(ctx context.Context) ([]CategoryEnrollmentCount, error) {
	rows, err := q.db.Query(ctx, enrollmentsByCategory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CategoryEnrollmentCount
	for rows.Next() {
		var i CategoryEnrollmentCount
		if err := rows.Scan(&i.CategoryID, &i.CategoryName, &i.Total); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const enrollmentsByMonth = `SELECT to_char(date, 'YYYY-MM') AS month, COUNT(*) AS total
FROM enrollments
GROUP BY month
ORDER BY month ASC`

func (q *Queries) EnrollmentsByMonth(ctx context.Context) ([]MonthlyEnrollmentCount, error) {
	rows, err := q.db.Query(ctx, enrollmentsByMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MonthlyEnrollmentCount
	for rows.Next() {
		var i MonthlyEnrollmentCount
		if err := rows.Scan(&i.Month, &i.Total); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
