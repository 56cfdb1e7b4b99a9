package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/web/templates"
)

const (
	enrollPath      = "/inscribir"
	enrollmentsPath = "/consultar_inscripciones"

	msgAlreadyEnrolled = "This participant is already enrolled in that course."
)

func enrollmentInput(r *http.Request) core.EnrollmentInput {
	return core.EnrollmentInput{
		ParticipantID: r.PostFormValue("id_participante"),
		CourseID:      r.PostFormValue("id_curso"),
		Date:          r.PostFormValue("fecha"),
	}
}

// enrollmentForm renders the enrollment form with every participant and course.
func (s *Server) enrollmentForm(w http.ResponseWriter, r *http.Request, status int, title, action string, in core.EnrollmentInput, editing bool, errs []string) {
	opts, err := s.service.EnrollmentOptions(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	p := s.page(w, r, title)
	s.render(w, r, status, templates.EnrollmentForm(p, action, in, opts, editing, errs))
}

func (s *Server) handleEnrollForm(w http.ResponseWriter, r *http.Request) {
	s.enrollmentForm(w, r, http.StatusOK, "Enroll participant", enrollPath, core.EnrollmentInput{}, false, nil)
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	in := enrollmentInput(r)
	_, err := s.service.Enroll(r.Context(), in)
	if msgs, ok := core.AsValidation(err); ok {
		s.enrollmentForm(w, r, http.StatusUnprocessableEntity, "Enroll participant", enrollPath, in, false, msgs)
		return
	}
	switch {
	case errors.Is(err, core.ErrAlreadyEnrolled):
		redirect(w, r, enrollPath, flashWarning, msgAlreadyEnrolled)
	case err != nil:
		s.respondError(w, r, err, http.StatusInternalServerError)
	default:
		redirect(w, r, enrollPath, flashSuccess, "Enrollment registered.")
	}
}

func (s *Server) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	es, err := s.service.ListEnrollments(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, templates.EnrollmentList(s.page(w, r, "Enrollments"), es))
}

func (s *Server) handleEditEnrollmentForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, enrollmentsPath, flashWarning, "Enrollment not found.")
		return
	}
	e, err := s.service.GetEnrollment(r.Context(), id)
	if errors.Is(err, core.ErrNotFound) {
		redirect(w, r, enrollmentsPath, flashWarning, "Enrollment not found.")
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.enrollmentForm(w, r, http.StatusOK, "Edit enrollment", idPath("/editar_inscripcion/", id), core.EnrollmentInputFrom(e), true, nil)
}

func (s *Server) handleUpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, enrollmentsPath, flashWarning, "Enrollment not found.")
		return
	}
	action := idPath("/editar_inscripcion/", id)
	in := enrollmentInput(r)
	err := s.service.UpdateEnrollment(r.Context(), id, in)
	if msgs, ok := core.AsValidation(err); ok {
		s.enrollmentForm(w, r, http.StatusUnprocessableEntity, "Edit enrollment", action, in, true, msgs)
		return
	}
	switch {
	case errors.Is(err, core.ErrAlreadyEnrolled):
		redirect(w, r, action, flashWarning, msgAlreadyEnrolled)
	case errors.Is(err, core.ErrNotFound):
		redirect(w, r, enrollmentsPath, flashWarning, "Enrollment not found.")
	case err != nil:
		s.respondError(w, r, err, http.StatusInternalServerError)
	default:
		redirect(w, r, enrollmentsPath, flashSuccess, "Enrollment updated.")
	}
}

func (s *Server) handleDeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	msgs := deleteMessages{
		done:    "Enrollment deleted.",
		missing: "Enrollment not found.",
	}
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, enrollmentsPath, flashWarning, msgs.missing)
		return
	}
	s.finishDelete(w, r, s.service.DeleteEnrollment(r.Context(), id), enrollmentsPath, msgs)
}
