// Package report renders a finished composition sweep as a PDF.
package report

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"Labusch/internal/calc/strength"

	"github.com/phpdave11/gofpdf"
)

const DefaultTopRows = 25

// PDF is a sweep.Sink. Consume lays out the document; Write emits it.
type PDF struct {
	Title    string
	Project  string
	Author   string
	Notes    string
	Exponent string
	Step     float64
	Date     time.Time
	TopRows  int

	doc *gofpdf.Fpdf
}

func (p *PDF) Consume(results []strength.Result, best strength.Result) error {
	title := p.Title
	if title == "" {
		title = "Solid Solution Strength Report"
	}
	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}
	top := p.TopRows
	if top <= 0 {
		top = DefaultTopRows
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", p.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", p.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("System: %s   Misfit exponent: %s   Step: %g   Points: %d",
		strings.Join(best.Elements, "-"), p.Exponent, p.Step, len(results)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Strongest composition")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("%s   G = %.2f GPa   Strength = %.2f MPa",
		Formula(best), best.ShearModulus, best.Strength))
	pdf.Ln(10)

	if p.Notes != "" {
		pdf.MultiCell(0, 6, p.Notes, "", "L", false)
		pdf.Ln(4)
	}

	ranked := Ranked(results)
	if len(ranked) > top {
		ranked = ranked[:top]
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(98, 7, "Composition", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "G, GPa", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Strength, MPa", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for i, r := range ranked {
		pdf.CellFormat(12, 6, fmt.Sprint(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(98, 6, Formula(r), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", r.ShearModulus), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", r.Strength), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	p.doc = pdf
	return nil
}

func (p *PDF) Write(w io.Writer) error {
	if p.doc == nil {
		return fmt.Errorf("report: nothing consumed")
	}
	return p.doc.Output(w)
}

func (p *PDF) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ranked returns a copy sorted by descending strength, grid order kept on ties.
func Ranked(results []strength.Result) []strength.Result {
	out := slices.Clone(results)
	slices.SortStableFunc(out, func(a, b strength.Result) int {
		return cmp.Compare(b.Strength, a.Strength)
	})
	return out
}

// Formula renders a composition as "W0.50 Mo0.50".
func Formula(r strength.Result) string {
	parts := make([]string, len(r.Elements))
	for i, name := range r.Elements {
		c := 0.0
		if i < len(r.Concentrations) {
			c = r.Concentrations[i]
		}
		parts[i] = fmt.Sprintf("%s%.2f", name, c)
	}
	return strings.Join(parts, " ")
}
