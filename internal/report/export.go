package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyExport is returned when there are no rows to export.
var ErrEmptyExport = errors.New("report: nothing to export")

// Export defaults.
const (
	DefaultExportFilename = "relatorio_alunos"
	DefaultSheetName      = "Relatório de Alunos"
)

// Format is an export file format.
type Format string

// Supported export formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "xlsx" and "csv", case-insensitively. Empty means
// xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatXLSX):
		return FormatXLSX, nil
	case string(FormatCSV):
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use xlsx or csv)", s)
	}
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// ExportFilename is base with the extension of f.
func ExportFilename(base string, f Format) string {
	if base == "" {
		base = DefaultExportFilename
	}
	return base + "." + string(f)
}

// Matrix is the table as text: one header row followed by the data rows.
func (t Table) Matrix() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)

	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h.Header
	}
	out = append(out, header)

	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.Text
		}
		out = append(out, rec)
	}
	return out
}

// Export writes t to w in format f.
func Export(w io.Writer, t Table, f Format, sheet string) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t, sheet)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// WriteCSV writes t as CSV.
func WriteCSV(w io.Writer, t Table) error {
	if t.Empty() {
		return ErrEmptyExport
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Matrix()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes t as a single-sheet workbook. Linked cells keep their
// hyperlink.
func WriteXLSX(w io.Writer, t Table, sheet string) error {
	if t.Empty() {
		return ErrEmptyExport
	}
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for i, c := range row {
			values[i] = sheetValue(c)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	for r, row := range t.Rows {
		for c, cell := range row {
			if cell.Href == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellHyperLink(sheet, name, cell.Href, "External"); err != nil {
				return fmt.Errorf("link %s: %w", name, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// maxSheetDigits is the precision of a spreadsheet number. Longer numbers
// are written as text so no digit is lost.
const maxSheetDigits = 15

// sheetValue is the workbook value of c: a number for numeric cells that
// fit a spreadsheet number, the text otherwise.
func sheetValue(c Cell) any {
	if !c.Numeric {
		return c.Text
	}
	d, err := decimal.NewFromString(c.Text)
	if err != nil || d.NumDigits() > maxSheetDigits {
		return c.Text
	}
	return d.InexactFloat64()
}
