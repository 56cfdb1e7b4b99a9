// Package templates renders the HTML pages as templ components.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/JonMunkholm/coursereg/internal/session"
	"github.com/a-h/templ"
)

// Flash is a one-shot notice shown at the top of the next page.
type Flash struct {
	Kind    string // success, warning, danger
	Message string
}

// Page carries what the layout needs on every page.
type Page struct {
	Title    string
	User     session.Identity
	LoggedIn bool
	Flashes  []Flash
}

// Option is one entry in a select box.
type Option struct {
	Value string
	Label string
}

// html writes markup with a sticky error.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) attr(name, value string) {
	h.raw(" " + name + `="`)
	h.text(value)
	h.raw(`"`)
}

func (h *html) num(n int64) {
	h.raw(strconv.FormatInt(n, 10))
}

func (h *html) component(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func render(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

func itoa(id int32) string {
	return strconv.Itoa(int(id))
}
