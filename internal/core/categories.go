package core

import (
	"context"

	"github.com/JonMunkholm/coursereg/internal/database"
)

const msgCategoryNameTaken = "A category with this name already exists."

// CategoryInput is the submitted category form.
type CategoryInput struct {
	Name        string `label:"Category name" validate:"required,max=120"`
	Description string `label:"Description" validate:"max=2000"`
}

func (in *CategoryInput) normalize() {
	trim(&in.Name, &in.Description)
}

// CategoryInputFrom pre-fills an edit form.
func CategoryInputFrom(c database.Category) CategoryInput {
	return CategoryInput{Name: c.Name, Description: c.Description}
}

// ParseCategoryOrder maps the orden query value to a list order.
// Unknown values order by id.
func ParseCategoryOrder(orden string) database.CategoryOrder {
	switch orden {
	case "", "nombre_asc":
		return database.CategoryOrderNameAsc
	case "nombre_desc":
		return database.CategoryOrderNameDesc
	default:
		return database.CategoryOrderID
	}
}

// ListCategories returns all categories in the requested order.
func (s *Service) ListCategories(ctx context.Context, order database.CategoryOrder) ([]database.Category, error) {
	cats, err := s.store.ListCategories(ctx, order)
	if err != nil {
		return nil, readError("list categories", err)
	}
	return cats, nil
}

// GetCategory returns one category or ErrNotFound.
func (s *Service) GetCategory(ctx context.Context, id int32) (database.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return database.Category{}, readError("get category", err)
	}
	return c, nil
}

func (s *Service) validateCategory(ctx context.Context, in CategoryInput, excludeID int32) error {
	field := checkFields(in)
	store, err := storeChecks(ctx, excludeID,
		[]uniqueCheck{{in.Name, s.store.CategoryNameExists, msgCategoryNameTaken}},
		nil,
	)
	if err != nil {
		return err
	}
	return finish(field, store)
}

// CreateCategory validates and stores a new category.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (database.Category, error) {
	in.normalize()
	if err := s.validateCategory(ctx, in, 0); err != nil {
		return database.Category{}, err
	}

	c, err := s.store.CreateCategory(ctx, database.CreateCategoryParams{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return database.Category{}, writeError("create category", err)
	}
	return c, nil
}

// UpdateCategory validates and rewrites category id.
func (s *Service) UpdateCategory(ctx context.Context, id int32, in CategoryInput) error {
	in.normalize()
	if err := s.validateCategory(ctx, in, id); err != nil {
		return err
	}

	n, err := s.store.UpdateCategory(ctx, database.UpdateCategoryParams{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return writeError("update category", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. It returns ErrInUse while courses
// still reference it.
func (s *Service) DeleteCategory(ctx context.Context, id int32) error {
	n, err := s.store.DeleteCategory(ctx, id)
	return deleteError("delete category", n, err)
}
