package templates

import "github.com/a-h/templ"

func errorList(msgs []string) templ.Component {
	return render(func(h *html) {
		if len(msgs) == 0 {
			return
		}
		h.raw(`<ul class="errors">`)
		for _, m := range msgs {
			h.raw(`<li>`)
			h.text(m)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	})
}

func labelFor(h *html, name, label string) {
	h.raw(`<label`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(label)
	h.raw(`</label>`)
}

func input(h *html, typ, name, label, value string, required bool) {
	labelFor(h, name, label)
	h.raw(`<input`)
	h.attr("type", typ)
	h.attr("id", name)
	h.attr("name", name)
	if typ != "password" {
		h.attr("value", value)
	}
	if required {
		h.raw(` required`)
	}
	h.raw(`>`)
}

func textarea(h *html, name, label, value string, required bool) {
	labelFor(h, name, label)
	h.raw(`<textarea rows="3"`)
	h.attr("id", name)
	h.attr("name", name)
	if required {
		h.raw(` required`)
	}
	h.raw(`>`)
	h.text(value)
	h.raw(`</textarea>`)
}

func selectBox(h *html, name, label, selected, placeholder string, opts []Option) {
	labelFor(h, name, label)
	h.raw(`<select`)
	h.attr("id", name)
	h.attr("name", name)
	h.raw(` required><option value="">`)
	h.text(placeholder)
	h.raw(`</option>`)
	for _, o := range opts {
		h.raw(`<option`)
		h.attr("value", o.Value)
		if o.Value == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(o.Label)
		h.raw(`</option>`)
	}
	h.raw(`</select>`)
}

func formOpen(h *html, action string) {
	h.raw(`<form class="entity" method="post"`)
	h.attr("action", action)
	h.raw(`>`)
}

func formClose(h *html, submit string) {
	h.raw(`<button type="submit">`)
	h.text(submit)
	h.raw(`</button></form>`)
}

func searchBar(h *html, action, name, value, placeholder string) {
	h.raw(`<form class="toolbar" method="get"`)
	h.attr("action", action)
	h.raw(`><input type="search"`)
	h.attr("name", name)
	h.attr("value", value)
	h.attr("placeholder", placeholder)
	h.raw(`> <button type="submit">Search</button></form>`)
}

func actionLinks(h *html, editPath, deletePath string) {
	h.raw(`<td><a`)
	h.attr("href", editPath)
	h.raw(`>Edit</a> · <a`)
	h.attr("href", deletePath)
	h.raw(`>Delete</a></td>`)
}
