package nova

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a decoded JSON object. Keys keep the order they had in the
// payload and numbers are kept as json.Number.
type Record = *orderedmap.OrderedMap[string, any]

// NewRecord returns an empty record.
func NewRecord() Record {
	return orderedmap.New[string, any]()
}

// Field returns rec[key], or nil when rec is nil or has no such key.
func Field(rec Record, key string) any {
	if rec == nil {
		return nil
	}
	v, _ := rec.Get(key)
	return v
}

// ParseJSON decodes one JSON value. Objects become Records, arrays []any
// and numbers json.Number.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// ParseRecords decodes a JSON array of objects. null gives an empty list.
func ParseRecords(data []byte) ([]Record, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return recordList(v)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		rec := NewRecord()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", kt)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			rec.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return rec, nil

	case '[':
		list := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	}

	return nil, fmt.Errorf("unexpected %v", delim)
}

// recordList converts a decoded array into records. null items are kept as
// nil records; any other non-object item is an error.
func recordList(v any) ([]Record, error) {
	if v == nil {
		return []Record{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of objects, got %T", v)
	}

	out := make([]Record, 0, len(list))
	for i, item := range list {
		switch it := item.(type) {
		case nil:
			out = append(out, nil)
		case Record:
			out = append(out, it)
		default:
			return nil, fmt.Errorf("item %d is %T, not an object", i, item)
		}
	}
	return out, nil
}
