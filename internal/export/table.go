// Package export turns query results into downloadable reports.
//
// A Table is the row-set both encoders consume: ordered columns with a fixed
// width, plus rows of raw values in column order. WriteXLSX keeps the values'
// native types; WritePDF renders every value through DisplayString.
package export

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Orientation is the page orientation of the PDF rendering.
type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

// DefaultFontSize is used when a Table does not set FontSize.
const DefaultFontSize = 8

// Column is one report column. Width is in centimetres and only affects the PDF.
type Column struct {
	Header string
	Width  float64
}

// Table is an ordered set of records with named columns.
type Table struct {
	Title       string // sheet name and document title
	Columns     []Column
	Orientation Orientation
	FontSize    float64 // points
	Rows        [][]any
}

// NewTable returns an empty table with the given layout.
func NewTable(title string, orientation Orientation, fontSize float64, cols ...Column) *Table {
	return &Table{
		Title:       title,
		Columns:     cols,
		Orientation: orientation,
		FontSize:    fontSize,
	}
}

// Headers returns the column headers in order.
func (t *Table) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}
	return headers
}

// AddRow appends a record. The number of values must match the columns.
func (t *Table) AddRow(values ...any) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("row has %d values, table %q has %d columns", len(values), t.Title, len(t.Columns))
	}
	t.Rows = append(t.Rows, values)
	return nil
}

func (t *Table) fontSize() float64 {
	if t.FontSize <= 0 {
		return DefaultFontSize
	}
	return t.FontSize
}

// DisplayString coerces a cell value to the text shown in the PDF.
// NULLs become empty strings and dates are rendered as YYYY-MM-DD.
func DisplayString(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case pgtype.Text:
		if !val.Valid {
			return ""
		}
		return val.String
	case pgtype.Int4:
		if !val.Valid {
			return ""
		}
		return fmt.Sprintf("%d", val.Int32)
	case pgtype.Date:
		if !val.Valid {
			return ""
		}
		return val.Time.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// nativeValue unwraps pgtype values so the spreadsheet keeps the underlying type.
func nativeValue(v any) any {
	switch val := v.(type) {
	case pgtype.Text:
		if !val.Valid {
			return nil
		}
		return val.String
	case pgtype.Int4:
		if !val.Valid {
			return nil
		}
		return val.Int32
	case pgtype.Date:
		if !val.Valid {
			return nil
		}
		return val.Time
	default:
		return v
	}
}
