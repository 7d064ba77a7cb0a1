package report

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a decoded JSON object with its keys in payload order.
type Record = *orderedmap.OrderedMap[string, any]

// Resolver extracts a column value from a row. A nil result means the value
// is missing or null.
type Resolver func(row Record) any

// Resolvers holds the columns whose value is not a plain path lookup.
var Resolvers = map[string]Resolver{
	KeyAmount: firstPaymentAmount,
}

// Value resolves key against row, using a registered resolver when there
// is one and the dotted path otherwise.
func Value(row Record, key string) any {
	if r, ok := Resolvers[key]; ok {
		return r(row)
	}
	return PathValue(row, key)
}

// PathValue walks the "."-separated segments of path through nested
// records. It returns nil when a segment is missing or the walk reaches a
// value that is not a record.
func PathValue(row Record, path string) any {
	var cur any = row
	for _, seg := range strings.Split(path, ".") {
		rec, ok := cur.(Record)
		if !ok || rec == nil {
			return nil
		}
		cur, ok = rec.Get(seg)
		if !ok {
			return nil
		}
	}
	return cur
}

// field is row[key], nil when missing.
func field(row Record, key string) any {
	if row == nil {
		return nil
	}
	v, _ := row.Get(key)
	return v
}

// firstPaymentAmount is payments[0].amount.
func firstPaymentAmount(row Record) any {
	payments, ok := field(row, "payments").([]any)
	if !ok || len(payments) == 0 {
		return nil
	}
	first, ok := payments[0].(Record)
	if !ok {
		return nil
	}
	return field(first, "amount")
}
