package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/web/templates"
)

const participantsPath = "/consultar_participantes"

func participantInput(r *http.Request) core.ParticipantInput {
	return core.ParticipantInput{
		Name:       r.PostFormValue("nombre"),
		Email:      r.PostFormValue("correo"),
		Phone:      r.PostFormValue("telefono"),
		Address:    r.PostFormValue("direccion"),
		Age:        r.PostFormValue("edad"),
		Gender:     r.PostFormValue("genero"),
		Occupation: r.PostFormValue("ocupacion"),
		Username:   r.PostFormValue("usuario"),
		Password:   r.PostFormValue("password"),
	}
}

func (s *Server) handleParticipantForm(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r, "Register participant")
	s.render(w, r, http.StatusOK, templates.ParticipantForm(p, "/registrar_participante", core.ParticipantInput{}, false, nil))
}

func (s *Server) handleCreateParticipant(w http.ResponseWriter, r *http.Request) {
	in := participantInput(r)
	_, err := s.service.CreateParticipant(r.Context(), in)
	if msgs, ok := core.AsValidation(err); ok {
		p := s.page(w, r, "Register participant")
		s.render(w, r, http.StatusUnprocessableEntity, templates.ParticipantForm(p, "/registrar_participante", in, false, msgs))
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	redirect(w, r, participantsPath, flashSuccess, "Participant registered.")
}

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("busqueda")
	ps, err := s.service.ListParticipants(r.Context(), search)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, templates.ParticipantList(s.page(w, r, "Participants"), ps, search))
}

func (s *Server) handleEditParticipantForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, participantsPath, flashWarning, "Participant not found.")
		return
	}
	pt, err := s.service.GetParticipant(r.Context(), id)
	if errors.Is(err, core.ErrNotFound) {
		redirect(w, r, participantsPath, flashWarning, "Participant not found.")
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	p := s.page(w, r, "Edit participant")
	s.render(w, r, http.StatusOK, templates.ParticipantForm(p, idPath("/editar_participante/", id), core.ParticipantInputFrom(pt), true, nil))
}

func (s *Server) handleUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, participantsPath, flashWarning, "Participant not found.")
		return
	}
	in := participantInput(r)
	err := s.service.UpdateParticipant(r.Context(), id, in)
	if msgs, ok := core.AsValidation(err); ok {
		p := s.page(w, r, "Edit participant")
		s.render(w, r, http.StatusUnprocessableEntity, templates.ParticipantForm(p, idPath("/editar_participante/", id), in, true, msgs))
		return
	}
	switch {
	case errors.Is(err, core.ErrNotFound):
		redirect(w, r, participantsPath, flashWarning, "Participant not found.")
	case err != nil:
		s.respondError(w, r, err, http.StatusInternalServerError)
	default:
		redirect(w, r, participantsPath, flashSuccess, "Participant updated.")
	}
}

func (s *Server) handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	msgs := deleteMessages{
		done:    "Participant deleted.",
		inUse:   "This participant has enrollments and cannot be deleted.",
		missing: "Participant not found.",
	}
	id, ok := urlID(r)
	if !ok {
		redirect(w, r, participantsPath, flashWarning, msgs.missing)
		return
	}
	s.finishDelete(w, r, s.service.DeleteParticipant(r.Context(), id), participantsPath, msgs)
}
