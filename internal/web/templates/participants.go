package templates

import (
	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/database"
	"github.com/a-h/templ"
)

// ParticipantForm renders the create or edit form for a participant.
// On edit an empty password keeps the current one.
func ParticipantForm(p Page, action string, in core.ParticipantInput, editing bool, errs []string) templ.Component {
	return Layout(p, render(func(h *html) {
		h.component(errorList(errs))
		formOpen(h, action)
		input(h, "text", "nombre", "Name", in.Name, true)
		input(h, "email", "correo", "Email", in.Email, true)
		input(h, "tel", "telefono", "Phone", in.Phone, true)
		input(h, "text", "direccion", "Address", in.Address, false)
		input(h, "number", "edad", "Age", in.Age, false)
		input(h, "text", "genero", "Gender", in.Gender, false)
		input(h, "text", "ocupacion", "Occupation", in.Occupation, false)
		input(h, "text", "usuario", "Username", in.Username, false)
		label := "Password"
		if editing {
			label = "New password (leave empty to keep the current one)"
		}
		input(h, "password", "password", label, "", false)
		formClose(h, "Save")
	}))
}

// ParticipantList renders participants with a search box.
func ParticipantList(p Page, ps []database.Participant, search string) templ.Component {
	return Layout(p, render(func(h *html) {
		h.raw(`<a class="button" href="/registrar_participante">New participant</a>`)
		searchBar(h, "/consultar_participantes", "busqueda", search, "Name, email, phone or date")
		h.raw(`<table><thead><tr><th>ID</th><th>Name</th><th>Email</th><th>Phone</th><th>Address</th><th>Age</th><th>Gender</th><th>Occupation</th><th>Registered</th><th>Username</th><th></th></tr></thead><tbody>`)
		for _, pt := range ps {
			h.raw(`<tr><td>`)
			h.text(itoa(pt.ID))
			for _, v := range []string{pt.Name, pt.Email, pt.Phone, pt.Address} {
				h.raw(`</td><td>`)
				h.text(v)
			}
			h.raw(`</td><td>`)
			if pt.Age.Valid {
				h.text(itoa(pt.Age.Int32))
			}
			h.raw(`</td><td>`)
			h.text(pt.Gender)
			h.raw(`</td><td>`)
			h.text(pt.Occupation)
			h.raw(`</td><td>`)
			if pt.RegistrationDate.Valid {
				h.text(pt.RegistrationDate.Time.Format("2006-01-02"))
			}
			h.raw(`</td><td>`)
			h.text(pt.Username.String)
			h.raw(`</td>`)
			actionLinks(h, "/editar_participante/"+itoa(pt.ID), "/eliminar_participante/"+itoa(pt.ID))
			h.raw(`</tr>`)
		}
		if len(ps) == 0 {
			h.raw(`<tr><td colspan="11">No participants found.</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	}))
}
