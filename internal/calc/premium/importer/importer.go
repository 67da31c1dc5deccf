// Package importer evaluates compositions listed in an xlsx sheet.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Labusch/internal/calc/strength"

	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("importer: empty sheet")

// Row is one evaluated sheet row. Line is the 1-based sheet row number.
type Row struct {
	Line   int              `json:"line"`
	Result *strength.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type Report struct {
	Count  int   `json:"count"`
	Failed int   `json:"failed"`
	Rows   []Row `json:"rows"`
}

// ReadRows returns the data rows of the first sheet, header skipped.
func ReadRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}
	return rows[1:], nil
}

// Evaluate computes every row; a bad row is reported and skipped.
func Evaluate(m strength.Model, c strength.Catalog, rows [][]string) Report {
	rep := Report{Rows: make([]Row, 0, len(rows))}
	for i, cells := range rows {
		if blank(cells) {
			continue
		}
		row := Row{Line: i + 2}
		res, err := evaluateRow(m, c, cells)
		if err != nil {
			row.Error = err.Error()
			rep.Failed++
		} else {
			row.Result = &res
			rep.Count++
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}

func evaluateRow(m strength.Model, c strength.Catalog, cells []string) (strength.Result, error) {
	names, conc, err := parseRow(cells)
	if err != nil {
		return strength.Result{}, err
	}
	elements, err := strength.Resolve(c, names...)
	if err != nil {
		return strength.Result{}, err
	}
	members, err := strength.Compose(elements, conc)
	if err != nil {
		return strength.Result{}, err
	}
	return m.SolidSolutionStrength(members)
}

// parseRow reads element, fraction pairs; trailing empty cells are ignored.
func parseRow(cells []string) ([]string, []float64, error) {
	for len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	if len(cells)%2 != 0 {
		return nil, nil, fmt.Errorf("%w: unpaired cell %q", strength.ErrInvalidComposition, cells[len(cells)-1])
	}
	var names []string
	var conc []float64
	for i := 0; i < len(cells); i += 2 {
		name := strings.TrimSpace(cells[i])
		v, err := strconv.ParseFloat(strings.TrimSpace(cells[i+1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: fraction for %q: %q", strength.ErrInvalidComposition, name, cells[i+1])
		}
		names = append(names, name)
		conc = append(conc, v)
	}
	return names, conc, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
