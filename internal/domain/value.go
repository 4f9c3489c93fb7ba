package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ValueKind identifies the variant held by a Value
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Member is one key/value pair of an object Value
type Member struct {
	Key   string
	Value Value
}

// Value is an opaque structured value (null, bool, number, string, array
// or object). Numbers keep their source text and objects keep member
// order, duplicates included, so a Value re-encodes to what it decoded from.
type Value struct {
	kind    ValueKind
	boolean bool
	text    string
	items   []Value
	members []Member
}

func NullValue() Value { return Value{} }

func BoolValue(b bool) Value { return Value{kind: KindBool, boolean: b} }

// NumberValue wraps a JSON number literal; it is not validated
func NumberValue(literal string) Value { return Value{kind: KindNumber, text: literal} }

func StringValue(s string) Value { return Value{kind: KindString, text: s} }

func ArrayValue(items ...Value) Value { return Value{kind: KindArray, items: items} }

func ObjectValue(members ...Member) Value { return Value{kind: KindObject, members: members} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean and whether v is a bool
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsNumber returns the number literal and whether v is a number
func (v Value) AsNumber() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.text, true
}

// AsString returns the string and whether v is a string
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// Items returns the elements of an array, nil otherwise
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Members returns the members of an object in source order, nil otherwise
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.members
}

// Get returns the last member named key, matching JSON decoders that let
// later duplicates win
func (v Value) Get(key string) (Value, bool) {
	found := false
	var out Value
	for _, m := range v.Members() {
		if m.Key == key {
			out, found = m.Value, true
		}
	}
	return out, found
}

// Equal reports structural equality. Numbers compare by literal text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber, KindString:
		return v.text == other.text
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != other.members[i].Key || !v.members[i].Value.Equal(other.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// ParseValue decodes a JSON document into a Value
func ParseValue(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, fmt.Errorf("invalid JSON value")
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.False:
		return BoolValue(false)
	case gjson.True:
		return BoolValue(true)
	case gjson.Number:
		return NumberValue(r.Raw)
	case gjson.String:
		return StringValue(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			items := []Value{}
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, fromResult(item))
				return true
			})
			return ArrayValue(items...)
		}
		members := []Member{}
		r.ForEach(func(key, item gjson.Result) bool {
			members = append(members, Member{Key: key.Str, Value: fromResult(item)})
			return true
		})
		return ObjectValue(members...)
	}
	return NullValue()
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Strings are written without
// HTML escaping.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(v.text)
	case KindString:
		return encodeString(buf, v.text)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode value of kind %s", v.kind)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
