package ldtk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull   Kind = iota // null
	KindBool               // bool
	KindInt                // int
	KindFloat              // float
	KindString             // string
	KindArray              // array
	KindObject             // object
)

// Value is a dynamically typed JSON value: a scalar, an array of values or an
// object mapping strings to values. The zero Value is null.
//
// Empty arrays and objects are stored without backing storage so two Values
// built from the same JSON text are deeply equal.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	items []Value
	props map[string]Value
}

// NullValue returns the null value.
func NullValue() Value {
	return Value{}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// IntValue returns an integer value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// FloatValue returns a floating point value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// ArrayValue returns an array holding a copy of items.
func ArrayValue(items ...Value) Value {
	return newArray(slices.Clone(items))
}

// ObjectValue returns an object holding a copy of props.
func ObjectValue(props map[string]Value) Value {
	return newObject(maps.Clone(props))
}

func newArray(items []Value) Value {
	if len(items) == 0 {
		return Value{kind: KindArray}
	}

	return Value{kind: KindArray, items: items}
}

func newObject(props map[string]Value) Value {
	if len(props) == 0 {
		return Value{kind: KindObject}
	}

	return Value{kind: KindObject, props: props}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Int returns the integer held by v. Floats are not converted.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the number held by v, converting integers.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

// Len returns the number of array items or object members, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.props)
	default:
		return 0
	}
}

// Index returns the i-th array item, or null when v is not an array or i is
// out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}
	}

	return v.items[i]
}

// Items returns a copy of the array items, or nil when v is not an array.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}

	return slices.Clone(v.items)
}

// Get returns the object member named key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	m, ok := v.props[key]

	return m, ok
}

// Keys returns the object member names in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}

	return slices.Sorted(maps.Keys(v.props))
}

// String returns the canonical JSON text of v, or a placeholder when v holds
// something JSON cannot carry.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<invalid value: " + err.Error() + ">"
	}

	return string(b)
}

// MarshalJSON encodes v in canonical form: object keys sorted, floats always
// written with a fraction or exponent so they read back as floats.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil, "$")
}

func (v Value) appendJSON(dst []byte, path string) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...), nil

	case KindBool:
		return strconv.AppendBool(dst, v.b), nil

	case KindInt:
		return strconv.AppendInt(dst, v.i, 10), nil

	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("%s: unsupported float %v", path, v.f)
		}

		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}

		return append(dst, s...), nil

	case KindString:
		return appendJSONString(dst, v.s, path)

	case KindArray:
		dst = append(dst, '[')

		for i, item := range v.items {
			if i > 0 {
				dst = append(dst, ',')
			}

			var err error

			dst, err = item.appendJSON(dst, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
		}

		return append(dst, ']'), nil

	case KindObject:
		dst = append(dst, '{')

		for i, key := range v.Keys() {
			if i > 0 {
				dst = append(dst, ',')
			}

			var err error

			dst, err = appendJSONString(dst, key, path)
			if err != nil {
				return nil, err
			}

			dst = append(dst, ':')

			dst, err = v.props[key].appendJSON(dst, path+"."+key)
			if err != nil {
				return nil, err
			}
		}

		return append(dst, '}'), nil

	default:
		return nil, fmt.Errorf("%s: unknown value kind %v", path, v.kind)
	}
}

func appendJSONString(dst []byte, s, path string) ([]byte, error) {
	// encoding/json would silently replace invalid bytes with U+FFFD.
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%s: string %q is not valid UTF-8", path, s)
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return append(dst, bytes.TrimSuffix(buf.Bytes(), []byte("\n"))...), nil
}

// UnmarshalJSON decodes a JSON document into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// ParseValue decodes exactly one JSON document. Number literals without a
// fraction or exponent that fit an int64 become integers, every other number
// becomes a float.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	return DecodeValue(dec)
}

// DecodeValue reads one JSON document from dec and fails if anything but
// whitespace follows it.
func DecodeValue(dec *json.Decoder) (Value, error) {
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}

		return Value{}, err
	}

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return v, nil
	}

	if err == nil {
		err = &TrailingDataError{Token: tok, Offset: dec.InputOffset()}
	}

	return Value{}, err
}

// TrailingDataError reports a token following a complete JSON document.
// Offset is the input offset just past that token.
type TrailingDataError struct {
	Token  json.Token
	Offset int64
}

func (e *TrailingDataError) Error() string {
	return fmt.Sprintf("unexpected %v after top-level value", e.Token)
}

// MustParseValue is ParseValue for text the compiler embedded itself. A
// failure means the generator produced broken output, so it panics.
func MustParseValue(text string) Value {
	v, err := ParseValue([]byte(text))
	if err != nil {
		panic(fmt.Sprintf("ldtk: malformed embedded value %q: %v", text, err))
	}

	return v
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Value{}, nil

	case bool:
		return BoolValue(t), nil

	case string:
		return StringValue(t), nil

	case json.Number:
		return numberValue(t)

	case json.Delim:
		switch t {
		case '[':
			var items []Value

			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}

				items = append(items, item)
			}

			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}

			return newArray(items), nil

		case '{':
			props := make(map[string]Value)

			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}

				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key %v is not a string", keyTok)
				}

				member, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}

				props[key] = member
			}

			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}

			return newObject(props), nil
		}
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func numberValue(n json.Number) (Value, error) {
	s := n.String()

	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(i), nil
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("number %s: %w", s, err)
	}

	return FloatValue(f), nil
}
