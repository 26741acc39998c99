package normalize

import (
	"encoding/json"
	"math"
	"strconv"
)

// Presence tags the three shapes the content API uses for "no data here":
// the key missing entirely, the key present with null, and the key present
// with a value.
type Presence int

const (
	Absent Presence = iota
	Null
	Populated
)

// Value is a single decoded field together with its presence tag. Decoding
// happens once at the API boundary so the per-entity normalizers never have
// to re-check shapes.
type Value struct {
	presence Presence
	raw      interface{}
}

// Presence returns the presence tag of the value.
func (v Value) Presence() Presence { return v.presence }

// IsSet reports whether the value is populated with a non-null payload.
func (v Value) IsSet() bool { return v.presence == Populated }

// Record is one upstream object with its envelope already unwrapped: the
// Strapi `{data:{id, attributes:{...}}}` shape and the flat shape both decode
// to the same flat key space, keyed by the attribute names.
type Record map[string]interface{}

// DecodeRecord parses a raw response body into a Record. A body that is not
// a JSON object, or that lacks an `id` after unwrapping, is fatal.
func DecodeRecord(raw []byte) (Record, error) {
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, malformed("invalid JSON: %v", err)
	}

	obj, ok := payload.(map[string]interface{})
	if !ok {
		return nil, malformed("expected a JSON object, got %T", payload)
	}

	return unwrapObject(obj)
}

// DecodeList parses a raw response body holding either a flat JSON array or
// a Strapi `{data:[...]}` envelope into a slice of Records.
func DecodeList(raw []byte) ([]Record, error) {
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, malformed("invalid JSON: %v", err)
	}

	items, ok := payload.([]interface{})
	if !ok {
		obj, isObj := payload.(map[string]interface{})
		if !isObj {
			return nil, malformed("expected a JSON array or envelope, got %T", payload)
		}
		items, ok = obj["data"].([]interface{})
		if !ok {
			return nil, malformed("envelope has no data array")
		}
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		obj, isObj := item.(map[string]interface{})
		if !isObj {
			return nil, malformed("list item %d is not an object", i)
		}
		rec, err := unwrapObject(obj)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeObject normalizes an already-decoded JSON object into a Record,
// applying the same envelope unwrapping and identity check as DecodeRecord.
func DecodeObject(obj map[string]interface{}) (Record, error) {
	return unwrapObject(obj)
}

// ID returns the record's numeric identity. Decoding guarantees it exists.
func (r Record) ID() int64 {
	id, _ := recordID(r)
	return id
}

// unwrapObject flattens the optional `{data:{id, attributes:{...}}}` envelope
// into a single key space and enforces the identity invariant.
func unwrapObject(obj map[string]interface{}) (Record, error) {
	if data, ok := obj["data"].(map[string]interface{}); ok && len(obj) <= 2 {
		obj = data
	}
	if attrs, ok := obj["attributes"].(map[string]interface{}); ok {
		flat := make(Record, len(attrs)+1)
		for k, v := range attrs {
			flat[k] = v
		}
		if id, ok := obj["id"]; ok {
			flat["id"] = id
		}
		return requireID(flat)
	}
	return requireID(Record(obj))
}

func requireID(rec Record) (Record, error) {
	if _, ok := recordID(rec); !ok {
		return nil, malformed("record has no id field")
	}
	return rec, nil
}

func recordID(rec Record) (int64, bool) {
	switch id := rec["id"].(type) {
	case float64:
		return int64(id), true
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case json.Number:
		n, err := id.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// field looks keys up in order and returns the first one that is present,
// tagging its presence. Aliases cover the upstream snake_case names next to
// the normalized camelCase ones, which is what makes normalization a fixed
// point.
func (r Record) field(keys ...string) Value {
	for _, key := range keys {
		raw, ok := r[key]
		if !ok {
			continue
		}
		if raw == nil {
			return Value{presence: Null}
		}
		return Value{presence: Populated, raw: raw}
	}
	return Value{presence: Absent}
}

// asString coerces a decoded scalar to its string form. Numbers show up here
// because the content API is inconsistent about quoting phone numbers and
// vitals.
func asString(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
