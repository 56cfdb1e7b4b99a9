package templates

import "github.com/a-h/templ"

// Login renders the login form. username is echoed back after a failure.
func Login(p Page, username string) templ.Component {
	return Layout(p, render(func(h *html) {
		formOpen(h, "/login")
		input(h, "text", "usuario", "Username", username, true)
		input(h, "password", "password", "Password", "", true)
		formClose(h, "Log in")
	}))
}
