package core

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/JonMunkholm/novareport/internal/nova"
)

// record decodes a JSON object the way the Nova client does.
func record(t *testing.T, src string) Record {
	t.Helper()
	v, err := nova.ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("ParseJSON(%s): %v", src, err)
	}
	rec, ok := v.(Record)
	if !ok {
		t.Fatalf("ParseJSON(%s) = %T, want Record", src, v)
	}
	return rec
}

// records decodes a JSON array of objects.
func records(t *testing.T, src string) []Record {
	t.Helper()
	out, err := nova.ParseRecords([]byte(src))
	if err != nil {
		t.Fatalf("ParseRecords(%s): %v", src, err)
	}
	return out
}

// encode marshals v; key order is significant in the result.
func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return string(b)
}

// ----------------------------------------------------------------------------
// Sanitize Tests
// ----------------------------------------------------------------------------

func TestSanitize_NonRecordsUnchanged(t *testing.T) {
	arr := []any{record(t, `{"company":"x"}`)}
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"string", "paid"},
		{"number", json.Number("12.5")},
		{"bool", true},
		{"array of records", arr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if !reflect.DeepEqual(got, tt.in) {
				t.Errorf("Sanitize(%v) = %v, want unchanged", tt.in, got)
			}
		})
	}
}

func TestSanitizeRecord_IgnoredKeysAtEveryDepth(t *testing.T) {
	in := record(t, `{
		"id": "o1",
		"gateway_id": "gw",
		"company": {"name": "Acme"},
		"items": ["a"],
		"customer": {
			"name": "Ana",
			"company": "Acme",
			"address": {"city": "Recife", "gateway_id": "nested", "items": [1]}
		}
	}`)

	want := `{"id":"o1","customer":{"name":"Ana","address":{"city":"Recife"}}}`
	if got := encode(t, SanitizeRecord(in)); got != want {
		t.Errorf("SanitizeRecord() =\n%s\nwant\n%s", got, want)
	}
}

func TestSanitizeRecord_KeepsKeyOrder(t *testing.T) {
	in := record(t, `{
		"status": "paid",
		"id": "o1",
		"gateway_id": "gw",
		"created_at": "2024-01-01",
		"meta": {"study_grade_1": "5", "_token": "x", "student_name_1": "Bia"},
		"customer": {"name": "A", "company": "c", "identification": "1"}
	}`)

	want := `{"status":"paid","id":"o1","created_at":"2024-01-01",` +
		`"meta":{"study_grade_1":"5","student_name_1":"Bia"},` +
		`"customer":{"name":"A","identification":"1"}}`
	if got := encode(t, SanitizeRecord(in)); got != want {
		t.Errorf("SanitizeRecord() =\n%s\nwant\n%s", got, want)
	}
}

func TestSanitizeRecord_ArraysAreNotDescended(t *testing.T) {
	in := record(t, `{"payments":[{"amount":10,"gateway_id":"keep-me"},{"company":"also kept"}]}`)

	got := SanitizeRecord(in)
	want := `[{"amount":10,"gateway_id":"keep-me"},{"company":"also kept"}]`
	if s := encode(t, nova.Field(got, "payments")); s != want {
		t.Errorf("payments = %s, want verbatim %s", s, want)
	}
}

func TestSanitizeRecord_MetaUnderscoreFields(t *testing.T) {
	in := record(t, `{
		"meta": {
			"student_name_1": "Bia",
			"_internal": "drop",
			"_token": "drop",
			"nested": {"_kept": "meta is not recursed", "company": "also kept"}
		},
		"customer": {"_flag": "non-meta records keep underscore keys"}
	}`)

	got := SanitizeRecord(in)

	meta := nova.Field(got, "meta").(Record)
	if _, ok := meta.Get("_internal"); ok {
		t.Error("meta._internal should be removed")
	}
	if _, ok := meta.Get("_token"); ok {
		t.Error("meta._token should be removed")
	}
	if v := nova.Field(meta, "student_name_1"); v != "Bia" {
		t.Errorf("meta.student_name_1 = %v, want Bia", v)
	}

	nested := encode(t, nova.Field(meta, "nested"))
	if want := `{"_kept":"meta is not recursed","company":"also kept"}`; nested != want {
		t.Errorf("meta.nested = %s, want verbatim %s", nested, want)
	}

	customer := nova.Field(got, "customer").(Record)
	if _, ok := customer.Get("_flag"); !ok {
		t.Error("customer._flag should be kept")
	}
}

func TestSanitizeRecord_NestedMetaIsFlattened(t *testing.T) {
	in := record(t, `{"customer":{"meta":{"_secret":1,"visible":2}}}`)

	got := encode(t, SanitizeRecord(in))
	if want := `{"customer":{"meta":{"visible":2}}}`; got != want {
		t.Errorf("SanitizeRecord() = %s, want %s", got, want)
	}
}

func TestSanitizeRecord_DoesNotMutateInput(t *testing.T) {
	src := `{"gateway_id":"gw","meta":{"_x":1,"y":2},"customer":{"company":"Acme","name":"Ana"}}`
	in := record(t, src)

	_ = SanitizeRecord(in)

	if got := encode(t, in); got != src {
		t.Errorf("input changed:\n%s\nwant\n%s", got, src)
	}
}

func TestSanitizeRecord_Idempotent(t *testing.T) {
	in := record(t, `{
		"id": 7,
		"company": "x",
		"meta": {"_a": 1, "b": 2},
		"customer": {"items": [], "doc": {"gateway_id": 1, "n": "123"}},
		"payments": [{"items": 1}]
	}`)

	once := encode(t, SanitizeRecord(in))
	twice := encode(t, SanitizeRecord(SanitizeRecord(in)))
	if once != twice {
		t.Errorf("not idempotent:\nonce  %s\ntwice %s", once, twice)
	}
}

func TestSanitizeRecord_Nil(t *testing.T) {
	if got := SanitizeRecord(nil); got != nil {
		t.Errorf("SanitizeRecord(nil) = %v, want nil", got)
	}
}
