package templates

import (
	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/database"
	"github.com/a-h/templ"
)

// CategoryForm renders the create or edit form for a category.
func CategoryForm(p Page, action string, in core.CategoryInput, errs []string) templ.Component {
	return Layout(p, render(func(h *html) {
		h.component(errorList(errs))
		formOpen(h, action)
		input(h, "text", "nombre", "Name", in.Name, true)
		textarea(h, "descripcion", "Description", in.Description, false)
		formClose(h, "Save")
	}))
}

// CategoryList renders all categories with the sort selector.
func CategoryList(p Page, cats []database.Category, orden string) templ.Component {
	return Layout(p, render(func(h *html) {
		h.raw(`<div class="toolbar"><a class="button" href="/registrar_categoria">New category</a> Sort: `)
		for _, o := range []Option{{"nombre_asc", "Name A-Z"}, {"nombre_desc", "Name Z-A"}, {"id", "ID"}} {
			h.raw(`<a`)
			h.attr("href", "/consultar_categorias?orden="+o.Value)
			if o.Value == orden {
				h.raw(` aria-current="true"`)
			}
			h.raw(`>`)
			h.text(o.Label)
			h.raw(`</a> `)
		}
		h.raw(`</div><table><thead><tr><th>ID</th><th>Name</th><th>Description</th><th></th></tr></thead><tbody>`)
		for _, c := range cats {
			h.raw(`<tr><td>`)
			h.text(itoa(c.ID))
			h.raw(`</td><td>`)
			h.text(c.Name)
			h.raw(`</td><td>`)
			h.text(c.Description)
			h.raw(`</td>`)
			actionLinks(h, "/editar_categoria/"+itoa(c.ID), "/eliminar_categoria/"+itoa(c.ID))
			h.raw(`</tr>`)
		}
		if len(cats) == 0 {
			h.raw(`<tr><td colspan="4">No categories yet.</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	}))
}
