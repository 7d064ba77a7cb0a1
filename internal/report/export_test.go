package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func renderedSample(t *testing.T) Table {
	t.Helper()
	s := newTestState(sampleRows(t))
	s.SetSort(SortState{Column: KeyID, Dir: Asc})
	return s.Render()
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, renderedSample(t), ""))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"ID", "Data", "Cliente", "Documento", "Valor", "Status", "Aluno 1"}, rows[0][:7])
	assert.Equal(t, "Página de Checkout", rows[0][21])
	assert.Equal(t, "101", rows[1][0])
	assert.Equal(t, "123.456.789-01", rows[1][3])

	linked, target, err := f.GetCellHyperLink(DefaultSheetName, "A2")
	require.NoError(t, err)
	assert.True(t, linked)
	assert.Equal(t, testLinkBase+"101", target)

	for _, cell := range []string{"A2", "E2"} {
		typ, err := f.GetCellType(DefaultSheetName, cell)
		require.NoError(t, err)
		assert.NotEqual(t, excelize.CellTypeSharedString, typ, "%s should be a number", cell)
	}
	typ, err := f.GetCellType(DefaultSheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, typ, "documents stay text")

	amount, err := f.GetCellValue(DefaultSheetName, "E2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "100.25", amount)
}

func TestSheetValue(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want any
	}{
		{"text", Cell{Text: "paid"}, "paid"},
		{"number", Cell{Text: "100.25", Numeric: true}, 100.25},
		{"integer id", Cell{Text: "101", Numeric: true}, float64(101)},
		{"too many digits", Cell{Text: "12345678901234567", Numeric: true}, "12345678901234567"},
		{"numeric flag on bad text", Cell{Text: "n/a", Numeric: true}, "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sheetValue(tt.cell))
		})
	}
}

func TestWriteXLSX_CustomSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, renderedSample(t), "Pedidos"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Pedidos"}, f.GetSheetList())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, renderedSample(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "102", records[2][0])
	assert.Equal(t, "01/02/2024", records[2][1])
}

func TestExport_Empty(t *testing.T) {
	empty := newTestState(nil).Render()

	var buf bytes.Buffer
	assert.True(t, errors.Is(WriteXLSX(&buf, empty, ""), ErrEmptyExport))
	assert.True(t, errors.Is(WriteCSV(&buf, empty), ErrEmptyExport))
	assert.Zero(t, buf.Len())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatXLSX, false},
		{"xlsx", FormatXLSX, false},
		{"CSV", FormatCSV, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "relatorio_alunos.xlsx", ExportFilename("", FormatXLSX))
	assert.Equal(t, "pedidos.csv", ExportFilename("pedidos", FormatCSV))
}
