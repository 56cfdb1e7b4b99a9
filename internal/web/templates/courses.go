package templates

import (
	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/database"
	"github.com/a-h/templ"
)

// CategoryOptions builds select options from categories.
func CategoryOptions(cats []database.Category) []Option {
	opts := make([]Option, len(cats))
	for i, c := range cats {
		opts[i] = Option{Value: itoa(c.ID), Label: c.Name}
	}
	return opts
}

// CourseForm renders the create or edit form for a course.
func CourseForm(p Page, action string, in core.CourseInput, categories []Option, errs []string) templ.Component {
	return Layout(p, render(func(h *html) {
		h.component(errorList(errs))
		formOpen(h, action)
		input(h, "text", "nombre", "Name", in.Name, true)
		textarea(h, "descripcion", "Description", in.Description, true)
		input(h, "number", "duracion", "Duration (hours)", in.Duration, false)
		selectBox(h, "categoria", "Category", in.CategoryID, "Select a category", categories)
		formClose(h, "Save")
	}))
}

// CourseList renders courses with their category and a search box.
func CourseList(p Page, courses []database.CourseWithCategory, search string) templ.Component {
	return Layout(p, render(func(h *html) {
		h.raw(`<a class="button" href="/registrar_curso">New course</a>`)
		searchBar(h, "/consultar_cursos", "buscar", search, "Name, description or category")
		h.raw(`<table><thead><tr><th>ID</th><th>Name</th><th>Description</th><th>Duration</th><th>Category</th><th></th></tr></thead><tbody>`)
		for _, c := range courses {
			h.raw(`<tr><td>`)
			h.text(itoa(c.ID))
			h.raw(`</td><td>`)
			h.text(c.Name)
			h.raw(`</td><td>`)
			h.text(c.Description)
			h.raw(`</td><td>`)
			if c.Duration.Valid {
				h.text(itoa(c.Duration.Int32))
			}
			h.raw(`</td><td>`)
			h.text(c.CategoryName.String)
			h.raw(`</td>`)
			actionLinks(h, "/editar_curso/"+itoa(c.ID), "/eliminar_curso/"+itoa(c.ID))
			h.raw(`</tr>`)
		}
		if len(courses) == 0 {
			h.raw(`<tr><td colspan="6">No courses found.</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	}))
}
