package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout_Columns(t *testing.T) {
	cols := DefaultLayout(DefaultStudentSlots).Columns()
	require.Len(t, cols, 7+15)

	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}

	assert.Equal(t, []string{"id", "created_at", "customer.name", "customer.identification", "amount", "status"}, keys[:6])
	assert.Equal(t, "meta.student_name_1", keys[6])
	assert.Equal(t, "meta.study_grade_1", keys[7])
	assert.Equal(t, "meta.study_class_1", keys[8])
	assert.Equal(t, "meta.student_name_2", keys[9])
	assert.Equal(t, "meta.study_class_5", keys[20])
	assert.Equal(t, "page_title", keys[21])

	assert.Equal(t, "Aluno 1", cols[6].Header)
	assert.Equal(t, "Série 3", cols[13].Header)
	assert.Equal(t, "Turma 5", cols[20].Header)
}

func TestIndexedBlock_Columns(t *testing.T) {
	tests := []struct {
		name  string
		block IndexedBlock
		want  []Column
	}{
		{
			name:  "zero slots",
			block: IndexedBlock{Count: 0, Fields: []Field{{Name: "a", Label: "A"}}},
			want:  nil,
		},
		{
			name:  "slot major",
			block: IndexedBlock{Prefix: "m.", Count: 2, Fields: []Field{{Name: "a", Label: "A"}, {Name: "b", Label: "B"}}},
			want: []Column{
				{Key: "m.a_1", Header: "A 1"},
				{Key: "m.b_1", Header: "B 1"},
				{Key: "m.a_2", Header: "A 2"},
				{Key: "m.b_2", Header: "B 2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.block.Columns())
		})
	}
}

func TestLayout_InsertAtClamped(t *testing.T) {
	l := Layout{
		Fixed:    []Column{{Key: "x"}, {Key: "y"}},
		Block:    IndexedBlock{Count: 1, Fields: []Field{{Name: "s", Label: "S"}}},
		InsertAt: 10,
	}
	cols := l.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, "s_1", cols[2].Key)

	l.InsertAt = -1
	assert.Equal(t, "s_1", l.Columns()[0].Key)
}

func TestLayout_HasColumn(t *testing.T) {
	l := DefaultLayout(2)
	assert.True(t, l.HasColumn("meta.study_grade_2"))
	assert.False(t, l.HasColumn("meta.study_grade_3"))
	assert.False(t, l.HasColumn("gateway_id"))
}

func TestLayout_ParseSort(t *testing.T) {
	l := DefaultLayout(DefaultStudentSlots)

	assert.Equal(t, DefaultSort, l.ParseSort("", "asc"))
	assert.Equal(t, DefaultSort, l.ParseSort("gateway_id", "asc"))
	assert.Equal(t, SortState{Column: "status", Dir: Asc}, l.ParseSort("status", ""))
	assert.Equal(t, SortState{Column: "meta.study_class_2", Dir: Desc}, l.ParseSort("meta.study_class_2", "desc"))
}
