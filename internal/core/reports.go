package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/coursereg/internal/export"
)

// Report identifies one downloadable report.
type Report string

const (
	ReportParticipants Report = "participantes"
	ReportEnrollments  Report = "inscripciones"
	ReportCourses      Report = "cursos"
)

// ParseReport maps a URL segment to a Report.
func ParseReport(name string) (Report, bool) {
	switch r := Report(name); r {
	case ReportParticipants, ReportEnrollments, ReportCourses:
		return r, true
	}
	return "", false
}

// FileName returns the download name for the given extension.
func (r Report) FileName(ext string) string {
	return string(r) + "." + ext
}

func newReportTable(r Report) *export.Table {
	switch r {
	case ReportParticipants:
		return export.NewTable("Participantes", export.Landscape, 6,
			export.Column{Header: "ID", Width: 0.8},
			export.Column{Header: "Name", Width: 3.2},
			export.Column{Header: "Email", Width: 3.5},
			export.Column{Header: "Phone", Width: 1.7},
			export.Column{Header: "Address", Width: 5},
			export.Column{Header: "Age", Width: 0.9},
			export.Column{Header: "Gender", Width: 1.5},
			export.Column{Header: "Occupation", Width: 1.8},
			export.Column{Header: "Registration Date", Width: 1.9},
			export.Column{Header: "Username", Width: 2},
			export.Column{Header: "Password Hash", Width: 5},
		)
	case ReportEnrollments:
		return export.NewTable("Inscripciones", export.Portrait, 8,
			export.Column{Header: "Enrollment ID", Width: 3},
			export.Column{Header: "Course ID", Width: 3},
			export.Column{Header: "Participant ID", Width: 3},
			export.Column{Header: "Date", Width: 3},
		)
	default:
		return export.NewTable("Cursos", export.Landscape, 6,
			export.Column{Header: "ID", Width: 1.2},
			export.Column{Header: "Name", Width: 3},
			export.Column{Header: "Description", Width: 6},
			export.Column{Header: "Duration", Width: 2},
			export.Column{Header: "Category ID", Width: 2.5},
		)
	}
}

// BuildReport runs the report query and returns its rows.
func (s *Service) BuildReport(ctx context.Context, r Report) (*export.Table, error) {
	if _, ok := ParseReport(string(r)); !ok {
		return nil, fmt.Errorf("unknown report %q", r)
	}
	t := newReportTable(r)

	switch r {
	case ReportParticipants:
		ps, err := s.store.ListParticipants(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("participants report: %w", err)
		}
		for _, p := range ps {
			if err := t.AddRow(p.ID, p.Name, p.Email, p.Phone, p.Address, p.Age,
				p.Gender, p.Occupation, p.RegistrationDate, p.Username, p.PasswordHash); err != nil {
				return nil, err
			}
		}

	case ReportEnrollments:
		es, err := s.store.ListEnrollments(ctx)
		if err != nil {
			return nil, fmt.Errorf("enrollments report: %w", err)
		}
		for _, e := range es {
			if err := t.AddRow(e.ID, e.CourseID, e.ParticipantID, e.Date); err != nil {
				return nil, err
			}
		}

	case ReportCourses:
		cs, err := s.store.ListCourses(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("courses report: %w", err)
		}
		for _, c := range cs {
			if err := t.AddRow(c.ID, c.Name, c.Description, c.Duration, c.CategoryID); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}
