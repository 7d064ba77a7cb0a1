package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/novareport/internal/config"
	"github.com/JonMunkholm/novareport/internal/core"
	"github.com/JonMunkholm/novareport/internal/nova"
	"github.com/JonMunkholm/novareport/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeFetcher struct {
	orders []core.Record
	err    error
	got    core.OrderFilters
}

func (f *fakeFetcher) FetchOrders(ctx context.Context, filters core.OrderFilters) ([]core.Record, error) {
	f.got = filters
	return f.orders, f.err
}

func sampleOrders(t *testing.T) []core.Record {
	t.Helper()
	orders, err := nova.ParseRecords([]byte(`[
		{
			"id": 7,
			"created_at": "2024-05-02",
			"status": "paid",
			"customer": {"name": "Ana Silva", "identification": "12345678000195"},
			"payments": [{"amount": 99.9}]
		},
		{
			"id": 8,
			"created_at": "2024-05-03",
			"status": "paid",
			"customer": {"name": "Bruno"}
		}
	]`))
	require.NoError(t, err)
	return orders
}

func run(t *testing.T, f *fakeFetcher, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd(func(*config.Config) orderFetcher { return f })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList_Table(t *testing.T) {
	f := &fakeFetcher{orders: sampleOrders(t)}
	out, err := run(t, f, "list", "--status", "pending", "--from", "2024-05-01", "--to", "2024-05-31")
	require.NoError(t, err)

	assert.Equal(t, core.OrderFilters{Status: "pending", InitialDate: "2024-05-01", FinalDate: "2024-05-31"}, f.got)
	assert.Contains(t, out, "12.345.678/0001-95")
	assert.Contains(t, out, "Mostrando 2 de 2 registros | Total: R$ 99,90")
	assert.Less(t, strings.Index(out, "Bruno"), strings.Index(out, "Ana Silva"), "newest first by default")
}

func TestList_SearchAndSort(t *testing.T) {
	out, err := run(t, &fakeFetcher{orders: sampleOrders(t)}, "list", "--search", "silva", "--sort", "id", "--dir", "asc")
	require.NoError(t, err)

	assert.Contains(t, out, "Ana Silva")
	assert.NotContains(t, out, "Bruno")
	assert.Contains(t, out, "Mostrando 1 de 2 registros")
}

func TestList_JSON(t *testing.T) {
	out, err := run(t, &fakeFetcher{orders: sampleOrders(t)}, "list", "--json", "--sort", "id", "--dir", "asc")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, float64(7), got[0]["id"])
	assert.Less(t, strings.Index(out, `"id"`), strings.Index(out, `"created_at"`), "keys keep upstream order")
	assert.Less(t, strings.Index(out, `"created_at"`), strings.Index(out, `"status"`), "keys keep upstream order")
}

func TestList_Empty(t *testing.T) {
	out, err := run(t, &fakeFetcher{orders: []core.Record{}}, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhum resultado")
}

func TestList_Failure(t *testing.T) {
	upstream := &nova.HTTPError{StatusCode: 403, Status: "403 Forbidden"}
	_, err := run(t, &fakeFetcher{err: upstream}, "list")

	require.Error(t, err)
	assert.True(t, errors.Is(err, upstream))
	assert.Equal(t, "API001", core.MapError(err).Code)
}

func TestExport_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	out, err := run(t, &fakeFetcher{orders: sampleOrders(t)}, "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 pedidos exportados")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.DefaultSheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExport_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	_, err := run(t, &fakeFetcher{orders: sampleOrders(t)}, "export", "-f", "csv", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ID,Data,Cliente"))
}

func TestExport_EmptyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	_, err := run(t, &fakeFetcher{orders: []core.Record{}}, "export", "--out", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, report.ErrEmptyExport))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file is written for an empty report")
}

func TestExport_BadFormat(t *testing.T) {
	_, err := run(t, &fakeFetcher{orders: sampleOrders(t)}, "export", "--format", "pdf")
	assert.Error(t, err)
}
