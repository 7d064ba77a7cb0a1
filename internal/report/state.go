package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is shown for missing values.
const Placeholder = "---"

// dateColumns are rendered through FormatDate.
var dateColumns = map[string]bool{
	"created_at": true,
	"date":       true,
	"updated_at": true,
}

// Options configure a State.
type Options struct {
	Layout   Layout
	Sort     SortState
	LinkBase string // prefix of the order link, the id is appended
}

// State is the view state of one report: every fetched row, the rows
// currently shown, the sort and the search text.
type State struct {
	Layout   Layout
	LinkBase string
	All      []Record
	Current  []Record
	Sort     SortState
	Search   string

	columns []Column
}

// NewState builds a State over rows, sorted by opts.Sort (DefaultSort when
// the column is empty).
func NewState(rows []Record, opts Options) *State {
	if opts.Sort.Column == "" {
		opts.Sort = DefaultSort
	}
	if rows == nil {
		rows = []Record{}
	}
	s := &State{
		Layout:   opts.Layout,
		LinkBase: opts.LinkBase,
		All:      rows,
		Sort:     opts.Sort,
		columns:  opts.Layout.Columns(),
	}
	s.apply()
	return s
}

// Columns returns the layout's columns.
func (s *State) Columns() []Column { return s.columns }

// SetSort replaces the sort state and re-sorts the shown rows.
func (s *State) SetSort(sort SortState) {
	s.Sort = sort
	s.Current = Sort(s.Current, s.Sort)
}

// ToggleSort applies a header click on column.
func (s *State) ToggleSort(column string) {
	s.SetSort(s.Sort.Toggle(column))
}

// SetSearch keeps the rows whose rendered cells contain q, ignoring case.
// An empty q shows every row.
func (s *State) SetSearch(q string) {
	s.Search = strings.TrimSpace(q)
	s.apply()
}

func (s *State) apply() {
	needle := strings.ToLower(s.Search)
	if needle == "" {
		s.Current = Sort(s.All, s.Sort)
		return
	}

	matched := make([]Record, 0, len(s.All))
	for _, row := range s.All {
		if s.rowContains(row, needle) {
			matched = append(matched, row)
		}
	}
	s.Current = Sort(matched, s.Sort)
}

func (s *State) rowContains(row Record, needle string) bool {
	for _, col := range s.columns {
		if strings.Contains(strings.ToLower(CellText(row, col.Key, s.LinkBase).Text), needle) {
			return true
		}
	}
	return false
}

// Cell is one rendered table cell. Href is set for linked cells. Numeric
// marks cells whose Text is a number as upstream sent it.
type Cell struct {
	Text    string
	Href    string
	Numeric bool
}

// HeaderCell is a rendered column header.
type HeaderCell struct {
	Column
	Active    bool
	Indicator string    // "▲" or "▼" on the active column
	Next      SortState // sort state after clicking this header
}

// Table is a rendered report.
type Table struct {
	Headers     []HeaderCell
	Rows        [][]Cell
	Shown       int
	Total       int
	TotalAmount string
}

// Empty reports whether there are no rows to show.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Counter is the "shown of total" line.
func (t Table) Counter() string {
	return fmt.Sprintf("Mostrando %d de %d registros", t.Shown, t.Total)
}

// Render produces the table for the current rows.
func (s *State) Render() Table {
	t := Table{
		Headers: make([]HeaderCell, len(s.columns)),
		Rows:    make([][]Cell, 0, len(s.Current)),
		Shown:   len(s.Current),
		Total:   len(s.All),
	}

	for i, col := range s.columns {
		h := HeaderCell{Column: col, Next: s.Sort.Toggle(col.Key)}
		if s.Sort.Column == col.Key {
			h.Active = true
			h.Indicator = indicator(s.Sort.Dir)
		}
		t.Headers[i] = h
	}

	total := decimal.Zero
	for _, row := range s.Current {
		cells := make([]Cell, len(s.columns))
		for i, col := range s.columns {
			cells[i] = CellText(row, col.Key, s.LinkBase)
		}
		t.Rows = append(t.Rows, cells)

		if amount, ok := toDecimal(Value(row, KeyAmount)); ok {
			total = total.Add(amount)
		}
	}
	t.TotalAmount = formatDecimal(total)

	return t
}

func indicator(d Direction) string {
	if d == Desc {
		return "▼"
	}
	return "▲"
}

// CellText renders the value of key in row. Ids link to linkBase+id,
// documents are grouped as CPF/CNPJ, date columns are shown as DD/MM/YYYY
// and missing values as Placeholder.
func CellText(row Record, key, linkBase string) Cell {
	v := Value(row, key)

	switch {
	case key == KeyIdentification:
		return Cell{Text: FormatCPF(v)}
	case v == nil:
		return Cell{Text: Placeholder}
	case key == KeyID:
		id := plainText(v)
		return Cell{Text: id, Href: linkBase + id, Numeric: isNumber(v)}
	case dateColumns[key]:
		return Cell{Text: FormatDate(plainText(v))}
	default:
		return Cell{Text: plainText(v), Numeric: isNumber(v)}
	}
}

func isNumber(v any) bool {
	_, ok := numberValue(v)
	return ok
}
