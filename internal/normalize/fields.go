package normalize

import (
	"strconv"
	"strings"
)

// PlaceholderAvatarURL is served whenever a person or case has no picture so
// the dashboard never renders a broken image.
const PlaceholderAvatarURL = "/images/brand/person_avatar.svg"

// UnknownName replaces a full name when either part is missing. The literal
// "undefined undefined" artifacts the old dashboard showed were a defect,
// not a contract.
const UnknownName = "Unknown"

// ComposeFullName joins the two name parts with a single space. If either
// part is empty the whole name is considered unknown.
func ComposeFullName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" || last == "" {
		return UnknownName
	}
	return first + " " + last
}

// str returns the first populated key as a string, or "" so form inputs
// always stay controlled.
func (r Record) str(keys ...string) string {
	v := r.field(keys...)
	if !v.IsSet() {
		return ""
	}
	s, ok := asString(v.raw)
	if !ok {
		return ""
	}
	return s
}

// boolean returns the first populated key as a bool, defaulting to false.
func (r Record) boolean(keys ...string) bool {
	v := r.field(keys...)
	if !v.IsSet() {
		return false
	}
	b, ok := v.raw.(bool)
	return ok && b
}

// count parses a numeric field with count semantics: parse failures and
// absence both become 0.
func (r Record) count(keys ...string) int {
	v := r.field(keys...)
	if !v.IsSet() {
		return 0
	}
	switch n := v.raw.(type) {
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return int(parsed)
	default:
		return 0
	}
}

// money parses a numeric field with monetary semantics: parse failures and
// absence become nil, which downstream forms render as an explicit "unset"
// state. Counts default, money stays nullable.
func (r Record) money(keys ...string) *float64 {
	v := r.field(keys...)
	if !v.IsSet() {
		return nil
	}
	switch n := v.raw.(type) {
	case float64:
		amount := n
		return &amount
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

// stringList coerces a field to a sequence: a scalar becomes a one-element
// list, absence and null become an empty list, and an existing sequence
// passes through. List elements that are `{fileUrl: ...}` style objects are
// projected down to their URL string.
func (r Record) stringList(keys ...string) []string {
	v := r.field(keys...)
	if !v.IsSet() {
		return []string{}
	}

	switch raw := v.raw.(type) {
	case []interface{}:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := listItemString(item); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		if s, ok := asString(raw); ok {
			return []string{s}
		}
		return []string{}
	}
}

func listItemString(item interface{}) (string, bool) {
	if obj, ok := item.(map[string]interface{}); ok {
		for _, key := range []string{"fileUrl", "file_url", "url"} {
			if s, ok := asString(obj[key]); ok {
				return s, true
			}
		}
		return "", false
	}
	return asString(item)
}

// imageURL returns the first populated key, or the placeholder asset.
func (r Record) imageURL(keys ...string) string {
	if url := r.str(keys...); url != "" {
		return url
	}
	return PlaceholderAvatarURL
}

// relation unwraps a one-to-one relation, tolerating all three absent-data
// shapes: key missing, key null, and an envelope whose data is null or empty.
func (r Record) relation(key string) (Record, bool) {
	v := r.field(key)
	if !v.IsSet() {
		return nil, false
	}

	obj, ok := v.raw.(map[string]interface{})
	if !ok {
		return nil, false
	}

	if data, hasEnvelope := obj["data"]; hasEnvelope {
		inner, ok := data.(map[string]interface{})
		if !ok || len(inner) == 0 {
			return nil, false
		}
		obj = inner
	}

	if attrs, ok := obj["attributes"].(map[string]interface{}); ok {
		flat := make(Record, len(attrs)+1)
		for k, val := range attrs {
			flat[k] = val
		}
		if id, ok := obj["id"]; ok {
			flat["id"] = id
		}
		return flat, true
	}
	if len(obj) == 0 {
		return nil, false
	}
	return Record(obj), true
}

// relationList unwraps a one-to-many relation into records, yielding an
// empty slice for every absent-data shape.
func (r Record) relationList(key string) []Record {
	v := r.field(key)
	if !v.IsSet() {
		return nil
	}

	var items []interface{}
	switch raw := v.raw.(type) {
	case []interface{}:
		items = raw
	case map[string]interface{}:
		data, ok := raw["data"].([]interface{})
		if !ok {
			return nil
		}
		items = data
	default:
		return nil
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if attrs, ok := obj["attributes"].(map[string]interface{}); ok {
			flat := make(Record, len(attrs)+1)
			for k, val := range attrs {
				flat[k] = val
			}
			if id, ok := obj["id"]; ok {
				flat["id"] = id
			}
			records = append(records, flat)
			continue
		}
		records = append(records, Record(obj))
	}
	return records
}
