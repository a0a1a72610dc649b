package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Attributes holds JSON members of a fixture record that have no dedicated field.
// They are kept so an import followed by an export does not drop presentation data.
// A member named after a field holds a value that did not fit that field's type.
type Attributes map[string]json.RawMessage

var knownFieldCache sync.Map // reflect.Type -> map[string]reflect.Type

func knownFields(t reflect.Type) map[string]reflect.Type {
	if cached, ok := knownFieldCache.Load(t); ok {
		return cached.(map[string]reflect.Type)
	}
	fields := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag := f.Tag.Get("json"); tag != "" {
			if tag == "-" {
				continue
			}
			if n, _, _ := strings.Cut(tag, ","); n != "" {
				name = n
			}
		}
		fields[name] = f.Type
	}
	knownFieldCache.Store(t, fields)
	return fields
}

func structType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// fits reports whether raw decodes into a value of type t
func fits(t reflect.Type, raw json.RawMessage) bool {
	return json.Unmarshal(raw, reflect.New(t).Interface()) == nil
}

func isStringField(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.String
}

// scalarText returns the literal text of a JSON number or boolean
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch c := raw[0]; {
	case c == '-' || (c >= '0' && c <= '9'), c == 't', c == 'f':
		return string(raw), true
	}
	return "", false
}

// decodeWithAttributes unmarshals data into target (a pointer to a struct without
// custom unmarshalling) and returns the members no field claimed. Numbers and
// booleans given for a string field are kept as their literal text; any other
// member whose value does not fit its field is left out of target and returned
// with the unclaimed members.
func decodeWithAttributes(data []byte, target any) (Attributes, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	known := knownFields(structType(target))

	var extra Attributes
	park := func(k string, v json.RawMessage) {
		if extra == nil {
			extra = make(Attributes)
		}
		extra[k] = v
	}

	dirty := false
	for k, v := range raw {
		ft, ok := known[k]
		if !ok {
			park(k, v)
			continue
		}
		if fits(ft, v) {
			continue
		}
		dirty = true
		if text, ok := scalarText(v); ok && isStringField(ft) {
			quoted, err := json.Marshal(text)
			if err != nil {
				return nil, err
			}
			raw[k] = quoted
			continue
		}
		park(k, v)
		delete(raw, k)
	}

	if dirty {
		cleaned, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		data = cleaned
	}
	if err := json.Unmarshal(data, target); err != nil {
		return nil, err
	}
	return extra, nil
}

// encodeWithAttributes marshals v, puts parked field values back in place and
// appends the remaining extra members in key order
func encodeWithAttributes(v any, extra Attributes) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var buf bytes.Buffer
	written := make(map[string]struct{}, len(extra))
	member := func(k string, val json.RawMessage) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	buf.WriteByte('{')
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		if parked, ok := extra[key]; ok {
			val = parked
			written[key] = struct{}{}
		}
		if err := member(key, val); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		if _, ok := written[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := member(k, extra[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Clone returns a copy of the attribute set
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Text returns the member as display text: strings unquoted, anything else verbatim
func (a Attributes) Text(name string) string {
	raw, ok := a[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

// MismatchedFields returns, sorted, the names of e's fields whose imported
// value had the wrong JSON type and was kept aside in its attributes
func MismatchedFields(e Entity) []string {
	extra := e.Extras()
	if len(extra) == 0 {
		return nil
	}
	known := knownFields(structType(e))
	var out []string
	for k := range extra {
		if _, ok := known[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
