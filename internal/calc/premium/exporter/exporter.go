// Package exporter writes sweep results to an xlsx workbook.
package exporter

import (
	"fmt"
	"io"

	"Labusch/internal/calc/strength"

	"github.com/xuri/excelize/v2"
)

const (
	ResultsSheet = "Results"
	BestSheet    = "Best"
)

// Workbook is a sweep.Sink holding the rendered file until WriteTo.
type Workbook struct {
	Exponent string
	Step     float64

	file *excelize.File
}

func (wb *Workbook) Consume(results []strength.Result, best strength.Result) error {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		f.Close()
		return err
	}
	if _, err := f.NewSheet(BestSheet); err != nil {
		f.Close()
		return err
	}

	if err := writeTable(f, ResultsSheet, best.Elements, results); err != nil {
		f.Close()
		return fmt.Errorf("exporter: %w", err)
	}
	if err := writeTable(f, BestSheet, best.Elements, []strength.Result{best}); err != nil {
		f.Close()
		return fmt.Errorf("exporter: %w", err)
	}
	meta := [][]any{
		{"Misfit exponent", wb.Exponent},
		{"Step", wb.Step},
		{"Points", len(results)},
	}
	for i, row := range meta {
		cell, _ := excelize.CoordinatesToCellName(1, i+4)
		if err := f.SetSheetRow(BestSheet, cell, &row); err != nil {
			f.Close()
			return fmt.Errorf("exporter: %w", err)
		}
	}

	if wb.file != nil {
		wb.file.Close()
	}
	wb.file = f
	return nil
}

func writeTable(f *excelize.File, sheet string, names []string, results []strength.Result) error {
	header := make([]any, 0, len(names)+2)
	for _, n := range names {
		header = append(header, n)
	}
	header = append(header, "shear_modulus_gpa", "solid_solution_strength_mpa")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range results {
		row := make([]any, 0, len(r.Concentrations)+2)
		for _, c := range r.Concentrations {
			row = append(row, c)
		}
		row = append(row, r.ShearModulus, r.Strength)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	if wb.file == nil {
		return 0, fmt.Errorf("exporter: nothing consumed")
	}
	return wb.file.WriteTo(w)
}

func (wb *Workbook) SaveAs(path string) error {
	if wb.file == nil {
		return fmt.Errorf("exporter: nothing consumed")
	}
	return wb.file.SaveAs(path)
}

func (wb *Workbook) Close() error {
	if wb.file == nil {
		return nil
	}
	err := wb.file.Close()
	wb.file = nil
	return err
}
