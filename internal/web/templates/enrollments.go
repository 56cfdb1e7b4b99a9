package templates

import (
	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/database"
	"github.com/a-h/templ"
)

// EnrollmentForm renders the enroll form, or the edit form when editing.
func EnrollmentForm(p Page, action string, in core.EnrollmentInput, opts core.EnrollmentOptions, editing bool, errs []string) templ.Component {
	people := make([]Option, len(opts.Participants))
	for i, pt := range opts.Participants {
		people[i] = Option{Value: itoa(pt.ID), Label: pt.Name}
	}
	courses := make([]Option, len(opts.Courses))
	for i, c := range opts.Courses {
		courses[i] = Option{Value: itoa(c.ID), Label: c.Name}
	}

	return Layout(p, render(func(h *html) {
		h.component(errorList(errs))
		formOpen(h, action)
		selectBox(h, "id_participante", "Participant", in.ParticipantID, "Select a participant", people)
		selectBox(h, "id_curso", "Course", in.CourseID, "Select a course", courses)
		if editing {
			input(h, "date", "fecha", "Date", in.Date, true)
		}
		formClose(h, "Save")
	}))
}

// EnrollmentList renders enrollments, newest first.
func EnrollmentList(p Page, es []database.EnrollmentDetail) templ.Component {
	return Layout(p, render(func(h *html) {
		h.raw(`<a class="button" href="/inscribir">New enrollment</a>`)
		h.raw(`<table><thead><tr><th>ID</th><th>Participant</th><th>Course</th><th>Date</th><th></th></tr></thead><tbody>`)
		for _, e := range es {
			h.raw(`<tr><td>`)
			h.text(itoa(e.ID))
			h.raw(`</td><td>`)
			h.text(e.ParticipantName)
			h.raw(`</td><td>`)
			h.text(e.CourseName)
			h.raw(`</td><td>`)
			if e.Date.Valid {
				h.text(e.Date.Time.Format("2006-01-02"))
			}
			h.raw(`</td>`)
			actionLinks(h, "/editar_inscripcion/"+itoa(e.ID), "/eliminar_inscripcion/"+itoa(e.ID))
			h.raw(`</tr>`)
		}
		if len(es) == 0 {
			h.raw(`<tr><td colspan="5">No enrollments yet.</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	}))
}
