package core

import (
	"strings"

	"github.com/JonMunkholm/novareport/internal/nova"
)

// IgnoredKeys are stripped from records at every nesting level.
var IgnoredKeys = map[string]struct{}{
	"gateway_id": {},
	"company":    {},
	"items":      {},
}

// metaKey names the record whose underscore-prefixed keys are internal.
const metaKey = "meta"

// Sanitize returns v with ignored fields removed. Values that are not
// records, including arrays and nil, are returned unchanged.
func Sanitize(v any) any {
	rec, ok := v.(Record)
	if !ok {
		return v
	}
	return SanitizeRecord(rec)
}

// SanitizeRecord returns a new record holding every key of rec not in
// IgnoredKeys, in the order rec has them. Nested records are sanitized
// recursively, except a record under "meta", which is copied one level deep
// without its "_" keys. Arrays are kept as-is even when their elements are
// records. rec is not modified.
func SanitizeRecord(rec Record) Record {
	if rec == nil {
		return nil
	}

	out := nova.NewRecord()
	for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
		key := pair.Key
		if _, ignored := IgnoredKeys[key]; ignored {
			continue
		}

		nested, ok := pair.Value.(Record)
		switch {
		case !ok:
			out.Set(key, pair.Value)
		case key == metaKey:
			out.Set(key, publicMeta(nested))
		default:
			out.Set(key, SanitizeRecord(nested))
		}
	}
	return out
}

// publicMeta is a shallow copy of meta without internal "_" fields.
func publicMeta(meta Record) Record {
	if meta == nil {
		return nil
	}
	out := nova.NewRecord()
	for pair := meta.Oldest(); pair != nil; pair = pair.Next() {
		if strings.HasPrefix(pair.Key, "_") {
			continue
		}
		out.Set(pair.Key, pair.Value)
	}
	return out
}
