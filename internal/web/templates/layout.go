package templates

import "github.com/a-h/templ"

const styles = `
body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9;color:#222}
nav{background:#2d3e50;padding:.6rem 1rem}
nav a{color:#fff;margin-right:1rem;text-decoration:none}
nav .user{float:right;color:#cfd8e3}
main{max-width:1100px;margin:1.5rem auto;padding:0 1rem}
table{border-collapse:collapse;width:100%;background:#fff}
th,td{border:1px solid #d5d9de;padding:.4rem .6rem;text-align:left;font-size:.9rem}
th{background:#808080;color:#f5f5f5}
form.entity label{display:block;margin-top:.6rem;font-weight:600}
form.entity input,form.entity select,form.entity textarea{width:100%;padding:.4rem;box-sizing:border-box}
button,.button{margin-top:1rem;padding:.45rem 1rem;background:#2d6cdf;color:#fff;border:0;border-radius:3px;text-decoration:none;display:inline-block}
.flash{padding:.6rem 1rem;margin-bottom:.6rem;border-radius:3px}
.flash.success{background:#dff3e3}.flash.warning{background:#fff4d6}.flash.danger{background:#fbe1e1}
.errors{background:#fbe1e1;padding:.6rem 1.6rem;border-radius:3px}
.bar{background:#2d6cdf;height:.8rem}
.toolbar{margin-bottom:1rem}
.toolbar input{padding:.35rem}
`

// Layout wraps body with the document shell, navigation and flash notices.
func Layout(p Page, body templ.Component) templ.Component {
	return render(func(h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(p.Title)
		h.raw(` · Course Registration</title><style>`)
		h.raw(styles)
		h.raw(`</style></head><body><nav>`)
		for _, l := range navLinks {
			h.raw(`<a`)
			h.attr("href", l.Value)
			h.raw(`>`)
			h.text(l.Label)
			h.raw(`</a>`)
		}
		h.raw(`<span class="user">`)
		if p.LoggedIn {
			h.text(p.User.DisplayName)
			h.raw(` · <a href="/logout">Log out</a>`)
		} else {
			h.raw(`<a href="/login">Log in</a>`)
		}
		h.raw(`</span></nav><main>`)
		for _, f := range p.Flashes {
			h.raw(`<div`)
			h.attr("class", "flash "+f.Kind)
			h.raw(`>`)
			h.text(f.Message)
			h.raw(`</div>`)
		}
		h.raw(`<h1>`)
		h.text(p.Title)
		h.raw(`</h1>`)
		h.component(body)
		h.raw(`</main></body></html>`)
	})
}

var navLinks = []Option{
	{"/", "Home"},
	{"/dashboard", "Dashboard"},
	{"/consultar_categorias", "Categories"},
	{"/consultar_cursos", "Courses"},
	{"/consultar_participantes", "Participants"},
	{"/consultar_inscripciones", "Enrollments"},
	{"/inscribir", "Enroll"},
}

// Home is the landing page.
func Home(p Page) templ.Component {
	return Layout(p, render(func(h *html) {
		h.raw(`<p>Register categories, courses and participants, enroll participants in courses, and download reports.</p><ul>`)
		for _, l := range []Option{
			{"/registrar_categoria", "Register a category"},
			{"/registrar_curso", "Register a course"},
			{"/registrar_participante", "Register a participant"},
			{"/inscribir", "Enroll a participant"},
		} {
			h.raw(`<li><a`)
			h.attr("href", l.Value)
			h.raw(`>`)
			h.text(l.Label)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul>`)
		if p.LoggedIn {
			h.raw(`<h2>Reports</h2>`)
			h.component(exportLinks("participantes", "Participants"))
			h.component(exportLinks("inscripciones", "Enrollments"))
			h.component(exportLinks("cursos", "Courses"))
		}
	}))
}

// ErrorPage shows a mapped error with its support code.
func ErrorPage(p Page, message, action, code string) templ.Component {
	return Layout(p, render(func(h *html) {
		h.raw(`<div class="flash danger"><p>`)
		h.text(message)
		h.raw(`</p><p>`)
		h.text(action)
		h.raw(`</p><p><small>Code: `)
		h.text(code)
		h.raw(`</small></p></div><a class="button" href="/">Back to home</a>`)
	}))
}

func exportLinks(report, label string) templ.Component {
	return render(func(h *html) {
		h.raw(`<p>`)
		h.text(label)
		h.raw(`: <a`)
		h.attr("href", "/exportar_"+report+"_excel")
		h.raw(`>Excel</a> · <a`)
		h.attr("href", "/exportar_"+report+"_pdf")
		h.raw(`>PDF</a></p>`)
	})
}
