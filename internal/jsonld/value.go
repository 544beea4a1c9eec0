// Package jsonld walks linked-data graphs embedded in pages and extracts
// the first Recipe node into an import result. Payload shapes are
// untrusted; every access goes through the Value variant type so a
// mismatch falls back instead of panicking.
package jsonld

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value is a tagged view over one decoded JSON value: object, array,
// string, number, bool, or null. The zero Value is null.
type Value struct {
	raw any
}

// Parse decodes a JSON document into a Value. Malformed input yields an
// error; the caller treats that as "this candidate doesn't parse" and
// moves on.
func Parse(data []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	return Value{raw: raw}, nil
}

// Wrap adapts an already-decoded value.
func Wrap(raw any) Value {
	return Value{raw: raw}
}

// Object returns the value as a map, when it is one.
func (v Value) Object() (map[string]any, bool) {
	obj, ok := v.raw.(map[string]any)
	return obj, ok
}

// Array returns the value as a slice, when it is one.
func (v Value) Array() ([]Value, bool) {
	arr, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	values := make([]Value, len(arr))
	for i, item := range arr {
		values[i] = Value{raw: item}
	}
	return values, true
}

// String returns the value as a string, when it is one.
func (v Value) String() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Number returns the value as a float64, when it is one.
func (v Value) Number() (float64, bool) {
	n, ok := v.raw.(float64)
	return n, ok
}

// IsNull reports whether the value is JSON null or absent.
func (v Value) IsNull() bool {
	return v.raw == nil
}

// Key returns the named field of an object value, or a null Value.
func (v Value) Key(name string) Value {
	obj, ok := v.Object()
	if !ok {
		return Value{}
	}
	return Value{raw: obj[name]}
}

// FirstKey returns the first present field among the given names.
// Non-standard exports use aliases like "ingredients" for
// "recipeIngredient"; the alias list is tried in order.
func (v Value) FirstKey(names ...string) Value {
	for _, name := range names {
		if val := v.Key(name); !val.IsNull() {
			return val
		}
	}
	return Value{}
}

// Text renders a string or number value as display text. Any other shape
// yields "".
func (v Value) Text() string {
	switch raw := v.raw.(type) {
	case string:
		return strings.TrimSpace(raw)
	case float64:
		if raw == float64(int64(raw)) {
			return strconv.FormatInt(int64(raw), 10)
		}
		return strconv.FormatFloat(raw, 'f', -1, 64)
	default:
		return ""
	}
}

// Strings flattens the value into a list of display texts: a scalar
// becomes one entry, an array contributes one entry per element, and
// objects contribute their "text"/"name"/"url" field when present.
func (v Value) Strings() []string {
	switch {
	case v.IsNull():
		return nil
	default:
	}

	if arr, ok := v.Array(); ok {
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			if text := item.textish(); text != "" {
				out = append(out, text)
			}
		}
		return out
	}

	if text := v.textish(); text != "" {
		return []string{text}
	}
	return nil
}

// textish renders scalars directly and digs one level into objects.
func (v Value) textish() string {
	if text := v.Text(); text != "" {
		return text
	}
	if _, ok := v.Object(); ok {
		for _, key := range []string{"text", "name", "url", "@id"} {
			if text := v.Key(key).Text(); text != "" {
				return text
			}
		}
	}
	return ""
}

// TypeMatches reports whether the node's @type is, or contains, the given
// schema type. @type may be a string or an array of strings.
func (v Value) TypeMatches(schemaType string) bool {
	typeVal := v.Key("@type")
	if s, ok := typeVal.String(); ok {
		return strings.EqualFold(s, schemaType)
	}
	if arr, ok := typeVal.Array(); ok {
		for _, item := range arr {
			if s, isStr := item.String(); isStr && strings.EqualFold(s, schemaType) {
				return true
			}
		}
	}
	return false
}
