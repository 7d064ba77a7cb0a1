package report

import "strconv"

// Column is one table column: the key used to resolve its value and the
// header shown to the user.
type Column struct {
	Key    string
	Header string
}

// Field is one member of an IndexedBlock.
type Field struct {
	Name  string // key suffix, e.g. "student_name"
	Label string // header prefix, e.g. "Aluno"
}

// IndexedBlock generates Count slots of Fields. Slot i of field f gets the
// key "<Prefix><f.Name>_<i>" and the header "<f.Label> <i>", slot-major.
type IndexedBlock struct {
	Prefix string
	Count  int
	Fields []Field
}

// Columns expands the block.
func (b IndexedBlock) Columns() []Column {
	if b.Count <= 0 {
		return nil
	}
	cols := make([]Column, 0, b.Count*len(b.Fields))
	for i := 1; i <= b.Count; i++ {
		n := strconv.Itoa(i)
		for _, f := range b.Fields {
			cols = append(cols, Column{
				Key:    b.Prefix + f.Name + "_" + n,
				Header: f.Label + " " + n,
			})
		}
	}
	return cols
}

// Layout is a fixed column list with a generated block spliced in at
// InsertAt.
type Layout struct {
	Fixed    []Column
	Block    IndexedBlock
	InsertAt int
}

// Column keys with special rendering.
const (
	KeyID             = "id"
	KeyCreatedAt      = "created_at"
	KeyIdentification = "customer.identification"
	KeyAmount         = "amount"
	KeyStatus         = "status"
	KeyPageTitle      = "page_title"
)

// DefaultStudentSlots is the number of students an order can carry.
const DefaultStudentSlots = 5

// DefaultLayout is the orders report layout with the given number of
// student slots. The student block sits after "status".
func DefaultLayout(studentSlots int) Layout {
	return Layout{
		Fixed: []Column{
			{Key: KeyID, Header: "ID"},
			{Key: KeyCreatedAt, Header: "Data"},
			{Key: "customer.name", Header: "Cliente"},
			{Key: KeyIdentification, Header: "Documento"},
			{Key: KeyAmount, Header: "Valor"},
			{Key: KeyStatus, Header: "Status"},
			{Key: KeyPageTitle, Header: "Página de Checkout"},
		},
		Block: IndexedBlock{
			Prefix: "meta.",
			Count:  studentSlots,
			Fields: []Field{
				{Name: "student_name", Label: "Aluno"},
				{Name: "study_grade", Label: "Série"},
				{Name: "study_class", Label: "Turma"},
			},
		},
		InsertAt: 6,
	}
}

// Columns returns the full column list. InsertAt is clamped to the fixed
// list bounds.
func (l Layout) Columns() []Column {
	block := l.Block.Columns()
	at := min(max(l.InsertAt, 0), len(l.Fixed))

	cols := make([]Column, 0, len(l.Fixed)+len(block))
	cols = append(cols, l.Fixed[:at]...)
	cols = append(cols, block...)
	cols = append(cols, l.Fixed[at:]...)
	return cols
}

// HasColumn reports whether key names one of the layout's columns.
func (l Layout) HasColumn(key string) bool {
	for _, c := range l.Columns() {
		if c.Key == key {
			return true
		}
	}
	return false
}

// ParseSort builds a SortState from request input. A column the layout does
// not have falls back to DefaultSort.
func (l Layout) ParseSort(column, dir string) SortState {
	if column == "" || !l.HasColumn(column) {
		return DefaultSort
	}
	return SortState{Column: column, Dir: ParseDirection(dir)}
}
