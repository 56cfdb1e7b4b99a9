package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	pageSize   = "Letter"
	unit       = "cm"
	minMargin  = 0.3
	cellPad    = 0.08
	pointInCM  = 2.54 / 72
	lineFactor = 1.2
	gridWidth  = 0.25 * pointInCM
)

var (
	headerFill = [3]int{128, 128, 128}
	headerText = [3]int{245, 245, 245}
	bodyText   = [3]int{0, 0, 0}
	gridColor  = [3]int{0, 0, 0}
)

// WritePDF renders t as a paginated grid table on Letter pages. The header row
// is drawn with a grey background and repeated on every page. Cell text wraps
// to the column width; a row taller than a page continues on the next one.
func WritePDF(w io.Writer, t *Table) error {
	r := render(t, true)
	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func render(t *Table, compress bool) *pdfRenderer {
	orientation := t.Orientation
	if orientation == "" {
		orientation = Portrait
	}

	pdf := fpdf.New(string(orientation), unit, pageSize, "")
	pdf.SetCompression(compress)
	pdf.SetTitle(t.Title, true)
	pdf.SetAutoPageBreak(false, 0)

	pageW, pageH := pdf.GetPageSize()
	widths := fitWidths(t.Columns, pageW-2*minMargin)
	margin := (pageW - sum(widths)) / 2
	pdf.SetMargins(margin, minMargin, margin)

	size := t.fontSize()
	r := &pdfRenderer{
		pdf:    pdf,
		widths: widths,
		left:   margin,
		size:   size,
		lineH:  size * pointInCM * lineFactor,
		bottom: pageH - minMargin,
		header: append([]string(nil), t.Headers()...),
	}

	r.newPage()
	bodyTop := pdf.GetY()

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = DisplayString(v)
		}

		lines := r.wrap(cells, false)
		if !r.fits(lines) && pdf.GetY() > bodyTop {
			r.newPage()
		}
		for !r.fits(lines) {
			head, rest := splitAt(lines, r.linesLeft())
			r.drawLines(head, false)
			r.newPage()
			lines = rest
		}
		r.drawLines(lines, false)
	}
	return r
}

type pdfRenderer struct {
	pdf    *fpdf.Fpdf
	widths []float64
	left   float64
	size   float64
	lineH  float64
	bottom float64
	header []string

	// lowest is the largest y reached by any drawn row.
	lowest float64
}

func (r *pdfRenderer) newPage() {
	r.pdf.AddPage()
	r.drawRow(r.header, true)
}

func (r *pdfRenderer) fits(lines [][][]byte) bool {
	return r.pdf.GetY()+r.rowHeight(lines) <= r.bottom
}

// linesLeft is how many text lines fit between the cursor and the page
// bottom, never less than one.
func (r *pdfRenderer) linesLeft() int {
	n := int((r.bottom - r.pdf.GetY() - 2*cellPad) / r.lineH)
	if n < 1 {
		n = 1
	}
	return n
}

// splitAt cuts every cell after its first n lines.
func splitAt(lines [][][]byte, n int) (head, rest [][][]byte) {
	head = make([][][]byte, len(lines))
	rest = make([][][]byte, len(lines))
	for i, cell := range lines {
		k := min(n, len(cell))
		head[i] = cell[:k]
		rest[i] = cell[k:]
	}
	return head, rest
}

func (r *pdfRenderer) setFont(header bool) {
	if header {
		r.pdf.SetFont("Helvetica", "B", r.size)
		r.pdf.SetTextColor(headerText[0], headerText[1], headerText[2])
		return
	}
	r.pdf.SetFont("Helvetica", "", r.size)
	r.pdf.SetTextColor(bodyText[0], bodyText[1], bodyText[2])
}

// wrap splits each cell into lines that fit its column.
func (r *pdfRenderer) wrap(cells []string, header bool) [][][]byte {
	r.setFont(header)
	out := make([][][]byte, len(cells))
	for i, text := range cells {
		lines := r.pdf.SplitLines(toWinAnsi(text), r.widths[i]-2*cellPad)
		if len(lines) == 0 {
			lines = [][]byte{nil}
		}
		out[i] = lines
	}
	return out
}

func (r *pdfRenderer) rowHeight(lines [][][]byte) float64 {
	n := 1
	for _, l := range lines {
		if len(l) > n {
			n = len(l)
		}
	}
	return float64(n)*r.lineH + 2*cellPad
}

func (r *pdfRenderer) drawRow(cells []string, header bool) {
	r.drawLines(r.wrap(cells, header), header)
}

func (r *pdfRenderer) drawLines(lines [][][]byte, header bool) {
	pdf := r.pdf
	h := r.rowHeight(lines)
	y := pdf.GetY()

	pdf.SetLineWidth(gridWidth)
	pdf.SetDrawColor(gridColor[0], gridColor[1], gridColor[2])
	style := "D"
	if header {
		pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		style = "FD"
	}
	r.setFont(header)

	x := r.left
	for i, cell := range lines {
		pdf.Rect(x, y, r.widths[i], h, style)
		for j, line := range cell {
			pdf.SetXY(x+cellPad, y+cellPad+float64(j)*r.lineH)
			pdf.CellFormat(r.widths[i]-2*cellPad, r.lineH, string(line), "", 0, "L", false, 0, "")
		}
		x += r.widths[i]
	}
	pdf.SetXY(r.left, y+h)
	r.lowest = max(r.lowest, y+h)
}

// fitWidths scales the column widths down when they exceed the printable width.
func fitWidths(cols []Column, available float64) []float64 {
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = c.Width
	}
	total := sum(widths)
	if total <= available || total == 0 {
		return widths
	}
	scale := available / total
	for i := range widths {
		widths[i] *= scale
	}
	return widths
}

func sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

// toWinAnsi encodes s for the PDF core fonts. Characters outside
// Windows-1252 are replaced with '?'.
func toWinAnsi(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}
