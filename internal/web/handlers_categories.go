package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/web/templates"
)

const categoriesPath = "/consultar_categorias"

func categoryInput(r *http.Request) core.CategoryInput {
	return core.CategoryInput{
		Name:        r.PostFormValue("nombre"),
		Description: r.PostFormValue("descripcion"),
	}
}

func (s *Server) handleCategoryForm(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r, "Register category")
	s.render(w, r, http.StatusOK, templates.CategoryForm(p, "/registrar_categoria", core.CategoryInput{}, nil))
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	in := categoryInput(r)
	_, err := s.service.CreateCategory(r.Context(), in)
	if msgs, ok := core.AsValidation(err); ok {
		p := s.page(w, r, "Register category")
		s.render(w, r, http.StatusUnprocessableEntity, templates.CategoryForm(p, "/registrar_categoria", in, msgs))
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	redirect(w, r, categoriesPath, flashSuccess, "Category registered.")
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	orden := r.URL.Query().Get("orden")
	cats, err := s.service.ListCategories(r.Context(), core.ParseCategoryOrder(orden))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, templates.CategoryList(s.page(w, r, "Categories"), cats, orden))
}

func (s *Server) handleEditCategoryForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, categoriesPath, flashWarning, "Category not found.")
		return
	}
	cat, err := s.service.GetCategory(r.Context(), id)
	if errors.Is(err, core.ErrNotFound) {
		redirect(w, r, categoriesPath, flashWarning, "Category not found.")
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	p := s.page(w, r, "Edit category")
	s.render(w, r, http.StatusOK, templates.CategoryForm(p, idPath("/editar_categoria/", id), core.CategoryInputFrom(cat), nil))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, categoriesPath, flashWarning, "Category not found.")
		return
	}
	in := categoryInput(r)
	err := s.service.UpdateCategory(r.Context(), id, in)
	if msgs, ok := core.AsValidation(err); ok {
		p := s.page(w, r, "Edit category")
		s.render(w, r, http.StatusUnprocessableEntity, templates.CategoryForm(p, idPath("/editar_categoria/", id), in, msgs))
		return
	}
	switch {
	case errors.Is(err, core.ErrNotFound):
		redirect(w, r, categoriesPath, flashWarning, "Category not found.")
	case err != nil:
		s.respondError(w, r, err, http.StatusInternalServerError)
	default:
		redirect(w, r, categoriesPath, flashSuccess, "Category updated.")
	}
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	msgs := deleteMessages{
		done:    "Category deleted.",
		inUse:   "This category still has courses and cannot be deleted.",
		missing: "Category not found.",
	}
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, categoriesPath, flashWarning, msgs.missing)
		return
	}
	s.finishDelete(w, r, s.service.DeleteCategory(r.Context(), id), categoriesPath, msgs)
}
