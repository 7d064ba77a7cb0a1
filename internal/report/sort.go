package report

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"  // smallest first
	Desc Direction = "desc" // largest first
)

// ParseDirection returns Desc for "desc" and Asc for anything else.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// SortState is the active sort column and its direction.
type SortState struct {
	Column string
	Dir    Direction
}

// DefaultSort shows the newest orders first.
var DefaultSort = SortState{Column: KeyCreatedAt, Dir: Desc}

// Toggle returns the state after clicking column: the direction flips when
// column is already active, otherwise column becomes active ascending.
func (s SortState) Toggle(column string) SortState {
	if s.Column == column {
		if s.Dir == Asc {
			return SortState{Column: column, Dir: Desc}
		}
		return SortState{Column: column, Dir: Asc}
	}
	return SortState{Column: column, Dir: Asc}
}

// Sort returns a stably sorted copy of rows. Rows whose value for the sort
// column is missing or null go last whatever the direction.
func Sort(rows []Record, s SortState) []Record {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b Record) int {
		va, vb := Value(a, s.Column), Value(b, s.Column)
		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return 1
		case vb == nil:
			return -1
		}
		c := Compare(va, vb)
		if s.Dir == Desc {
			return -c
		}
		return c
	})
	return out
}

// Compare orders two non-nil values. Two numbers compare numerically;
// anything else compares as lower-cased text.
func Compare(a, b any) int {
	da, aNum := numberValue(a)
	db, bNum := numberValue(b)
	if aNum && bNum {
		return da.Cmp(db)
	}
	return strings.Compare(strings.ToLower(plainText(a)), strings.ToLower(plainText(b)))
}

// numberValue converts JSON and Go numbers. Strings are never numbers here,
// even when they look like one.
func numberValue(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case string:
		return decimal.Decimal{}, false
	}
	return toDecimal(v)
}
