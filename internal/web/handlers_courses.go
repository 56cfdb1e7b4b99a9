package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/database"
	"github.com/JonMunkholm/coursereg/internal/web/templates"
)

const coursesPath = "/consultar_cursos"

func courseInput(r *http.Request) core.CourseInput {
	return core.CourseInput{
		Name:        r.PostFormValue("nombre"),
		Description: r.PostFormValue("descripcion"),
		Duration:    r.PostFormValue("duracion"),
		CategoryID:  r.PostFormValue("categoria"),
	}
}

// courseForm renders the course form with the category choices.
func (s *Server) courseForm(w http.ResponseWriter, r *http.Request, status int, title, action string, in core.CourseInput, errs []string) {
	cats, err := s.service.ListCategories(r.Context(), database.CategoryOrderNameAsc)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	p := s.page(w, r, title)
	s.render(w, r, status, templates.CourseForm(p, action, in, templates.CategoryOptions(cats), errs))
}

func (s *Server) handleCourseForm(w http.ResponseWriter, r *http.Request) {
	s.courseForm(w, r, http.StatusOK, "Register course", "/registrar_curso", core.CourseInput{}, nil)
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	in := courseInput(r)
	_, err := s.service.CreateCourse(r.Context(), in)
	if msgs, ok := core.AsValidation(err); ok {
		s.courseForm(w, r, http.StatusUnprocessableEntity, "Register course", "/registrar_curso", in, msgs)
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	redirect(w, r, coursesPath, flashSuccess, "Course registered.")
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("buscar")
	courses, err := s.service.ListCourses(r.Context(), search)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, templates.CourseList(s.page(w, r, "Courses"), courses, search))
}

func (s *Server) handleEditCourseForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, coursesPath, flashWarning, "Course not found.")
		return
	}
	c, err := s.service.GetCourse(r.Context(), id)
	if errors.Is(err, core.ErrNotFound) {
		redirect(w, r, coursesPath, flashWarning, "Course not found.")
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.courseForm(w, r, http.StatusOK, "Edit course", idPath("/editar_curso/", id), core.CourseInputFrom(c), nil)
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, coursesPath, flashWarning, "Course not found.")
		return
	}
	in := courseInput(r)
	err := s.service.UpdateCourse(r.Context(), id, in)
	if msgs, ok := core.AsValidation(err); ok {
		s.courseForm(w, r, http.StatusUnprocessableEntity, "Edit course", idPath("/editar_curso/", id), in, msgs)
		return
	}
	switch {
	case errors.Is(err, core.ErrNotFound):
		redirect(w, r, coursesPath, flashWarning, "Course not found.")
	case err != nil:
		s.respondError(w, r, err, http.StatusInternalServerError)
	default:
		redirect(w, r, coursesPath, flashSuccess, "Course updated.")
	}
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	msgs := deleteMessages{
		done:    "Course deleted.",
		inUse:   "This course has enrollments and cannot be deleted.",
		missing: "Course not found.",
	}
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, coursesPath, flashWarning, msgs.missing)
		return
	}
	s.finishDelete(w, r, s.service.DeleteCourse(r.Context(), id), coursesPath, msgs)
}
