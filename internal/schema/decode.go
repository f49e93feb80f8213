package schema

import (
	"fmt"

	"ldtkgen/ldtk"
)

// object is a JSON object together with its path in the document.
type object struct {
	path  string
	value ldtk.Value
}

// array is a JSON array together with its path in the document.
type array struct {
	path  string
	items []ldtk.Value
}

func asObject(v ldtk.Value, path, field string) (object, error) {
	if v.Kind() != ldtk.KindObject {
		return object{}, mismatch(path, field, "object", describe(v))
	}

	return object{path: path, value: v}, nil
}

// field returns a member that must be present and not null.
func (o object) field(key, expected string) (ldtk.Value, error) {
	v, ok := o.value.Get(key)
	if !ok {
		return ldtk.Value{}, mismatch(joinPath(o.path, key), key, expected, "missing field")
	}

	if v.IsNull() {
		return ldtk.Value{}, mismatch(joinPath(o.path, key), key, expected, "null")
	}

	return v, nil
}

// optional returns a member unless it is absent or null.
func (o object) optional(key string) (ldtk.Value, bool) {
	v, ok := o.value.Get(key)
	if !ok || v.IsNull() {
		return ldtk.Value{}, false
	}

	return v, true
}

// raw returns a member that must be present; null is a valid result.
func (o object) raw(key string) (ldtk.Value, error) {
	v, ok := o.value.Get(key)
	if !ok {
		return ldtk.Value{}, mismatch(joinPath(o.path, key), key, "any value", "missing field")
	}

	return v, nil
}

func (o object) object(key string) (object, error) {
	v, err := o.field(key, "object")
	if err != nil {
		return object{}, err
	}

	return asObject(v, joinPath(o.path, key), key)
}

func (o object) array(key string) (array, error) {
	v, err := o.field(key, "array")
	if err != nil {
		return array{}, err
	}

	path := joinPath(o.path, key)
	if v.Kind() != ldtk.KindArray {
		return array{}, mismatch(path, key, "array", describe(v))
	}

	return array{path: path, items: v.Items()}, nil
}

func (o object) str(key string) (string, error) {
	v, err := o.field(key, "string")
	if err != nil {
		return "", err
	}

	s, ok := v.Str()
	if !ok {
		return "", mismatch(joinPath(o.path, key), key, "string", describe(v))
	}

	return s, nil
}

// optStr returns "" for an absent or null member.
func (o object) optStr(key string) (string, error) {
	v, ok := o.optional(key)
	if !ok {
		return "", nil
	}

	s, ok := v.Str()
	if !ok {
		return "", mismatch(joinPath(o.path, key), key, "string or null", describe(v))
	}

	return s, nil
}

func (o object) uint(key string) (uint32, error) {
	v, err := o.field(key, "unsigned integer")
	if err != nil {
		return 0, err
	}

	return toUint32(v, joinPath(o.path, key), key)
}

// optUID maps an absent or null member to an absent reference.
func (o object) optUID(key string) (ldtk.OptionalUID, error) {
	v, ok := o.optional(key)
	if !ok {
		return ldtk.OptionalUID{}, nil
	}

	uid, err := toUint32(v, joinPath(o.path, key), key)
	if err != nil {
		return ldtk.OptionalUID{}, err
	}

	return ldtk.SomeUID(uid), nil
}

func (o object) uints(key string) ([]uint32, error) {
	a, err := o.array(key)
	if err != nil {
		return nil, err
	}

	if len(a.items) == 0 {
		return nil, nil
	}

	out := make([]uint32, len(a.items))
	for i, item := range a.items {
		n, err := toUint32(item, indexPath(a.path, i), "")
		if err != nil {
			return nil, err
		}

		out[i] = n
	}

	return out, nil
}

// pair decodes a coordinate pair. Any length other than 2 is rejected.
func (o object) pair(key string) ([2]uint32, error) {
	a, err := o.array(key)
	if err != nil {
		return [2]uint32{}, err
	}

	if len(a.items) != 2 {
		return [2]uint32{}, mismatch(a.path, key, "array of 2 unsigned integers", fmt.Sprintf("array of %d", len(a.items)))
	}

	var out [2]uint32
	for i, item := range a.items {
		n, err := toUint32(item, indexPath(a.path, i), "")
		if err != nil {
			return [2]uint32{}, err
		}

		out[i] = n
	}

	return out, nil
}

// mapEach maps every item of a to an object and through fn. An empty array
// yields nil.
func mapEach[T any](a array, fn func(object) (T, error)) ([]T, error) {
	if len(a.items) == 0 {
		return nil, nil
	}

	out := make([]T, 0, len(a.items))

	for i, item := range a.items {
		obj, err := asObject(item, indexPath(a.path, i), "")
		if err != nil {
			return nil, err
		}

		v, err := fn(obj)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}
