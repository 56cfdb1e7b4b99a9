package templates

import (
	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/a-h/templ"
)

type countRow struct {
	label string
	total int64
}

func countTable(title, column string, rows []countRow) templ.Component {
	peak := int64(1)
	for _, r := range rows {
		if r.total > peak {
			peak = r.total
		}
	}
	return render(func(h *html) {
		h.raw(`<h2>`)
		h.text(title)
		h.raw(`</h2><table><thead><tr><th>`)
		h.text(column)
		h.raw(`</th><th>Enrollments</th><th style="width:40%"></th></tr></thead><tbody>`)
		for _, r := range rows {
			h.raw(`<tr><td>`)
			h.text(r.label)
			h.raw(`</td><td>`)
			h.num(r.total)
			h.raw(`</td><td><div class="bar" style="width:`)
			h.num(r.total * 100 / peak)
			h.raw(`%"></div></td></tr>`)
		}
		if len(rows) == 0 {
			h.raw(`<tr><td colspan="3">No enrollments yet.</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	})
}

// Dashboard renders totals and enrollment breakdowns.
func Dashboard(p Page, d core.Dashboard) templ.Component {
	top := make([]countRow, len(d.TopCourses))
	for i, c := range d.TopCourses {
		top[i] = countRow{c.CourseName, c.Total}
	}
	byCat := make([]countRow, len(d.ByCategory))
	for i, c := range d.ByCategory {
		byCat[i] = countRow{c.CategoryName, c.Total}
	}
	byMonth := make([]countRow, len(d.ByMonth))
	for i, m := range d.ByMonth {
		byMonth[i] = countRow{m.Month, m.Total}
	}

	return Layout(p, render(func(h *html) {
		h.raw(`<p>Total courses: <strong>`)
		h.num(d.TotalCourses)
		h.raw(`</strong> · Total participants: <strong>`)
		h.num(d.TotalParticipants)
		h.raw(`</strong></p>`)
		h.component(countTable("Most popular courses", "Course", top))
		h.component(countTable("Enrollments by category", "Category", byCat))
		h.component(countTable("Enrollments by month", "Month", byMonth))
	}))
}
