package database

import (
	"context"
)

// CategoryOrder selects the sort order of ListCategories.
type CategoryOrder int

const (
	CategoryOrderNameAsc CategoryOrder = iota
	CategoryOrderNameDesc
	CategoryOrderID
)

const listCategoriesByNameAsc = `SELECT id, name, description FROM categories ORDER BY name ASC, id ASC`
const listCategoriesByNameDesc = `SELECT id, name, description FROM categories ORDER BY name DESC, id ASC`
const listCategoriesByID = `SELECT id, name, description FROM categories ORDER BY id ASC`

func (q *Queries) ListCategories(ctx context.Context, order CategoryOrder) ([]Category, error) {
	sql := listCategoriesByNameAsc
	switch order {
	case CategoryOrderNameDesc:
		sql = listCategoriesByNameDesc
	case CategoryOrderID:
		sql = listCategoriesByID
	}

	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		var i Category
		if err := rows.Scan(&i.ID, &i.Name, &i.Description); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getCategory = `SELECT id, name, description FROM categories WHERE id = $1`

func (q *Queries) GetCategory(ctx context.Context, id int32) (Category, error) {
	var i Category
	err := q.db.QueryRow(ctx, getCategory, id).Scan(&i.ID, &i.Name, &i.Description)
	return i, err
}

const categoryExists = `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`

func (q *Queries) CategoryExists(ctx context.Context, id int32) (bool, error) {
	return q.existsQuery(ctx, categoryExists, id)
}

const categoryNameExists = `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`

// CategoryNameExists reports whether another category (id != ExcludeID) uses Name.
func (q *Queries) CategoryNameExists(ctx context.Context, arg UniqueCheckParams) (bool, error) {
	return q.existsQuery(ctx, categoryNameExists, arg.Value, arg.ExcludeID)
}

const createCategory = `INSERT INTO categories (name, description) VALUES ($1, $2)
RETURNING id, name, description`

type CreateCategoryParams struct {
	Name        string
	Description string
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	var i Category
	err := q.db.QueryRow(ctx, createCategory, arg.Name, arg.Description).Scan(&i.ID, &i.Name, &i.Description)
	return i, err
}

const updateCategory = `UPDATE categories SET name = $2, description = $3 WHERE id = $1`

type UpdateCategoryParams struct {
	ID          int32
	Name        string
	Description string
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateCategory, arg.ID, arg.Name, arg.Description)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCategory = `DELETE FROM categories WHERE id = $1`

func (q *Queries) DeleteCategory(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCategory, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
