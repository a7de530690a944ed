package utils

import (
	"reflect"
	"strings"
)

func structType(i any) (reflect.Type, bool) {
	t := reflect.TypeOf(i)
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

// GetValue returns the value of a field, nil if it does not exist. Nested
// fields are separated by a period.
func GetValue(i any, field string) any {
	v := reflect.ValueOf(i)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	for _, name := range strings.Split(field, ".") {
		v = v.FieldByName(name)
		if !v.IsValid() {
			return nil
		}
	}
	return v.Interface()
}

// GetTag returns the tag of a field. For nested fields the tags of every
// level are joined with periods, e.g. `batch.time_limit`.
func GetTag(i any, field string, tag string) string {
	t, ok := structType(i)
	if !ok {
		return ""
	}
	names := strings.Split(field, ".")
	vals := make([]string, 0, len(names))
	for _, name := range names {
		f, ok := t.FieldByName(name)
		if !ok {
			return ""
		}
		vals = append(vals, f.Tag.Get(tag))
		t = f.Type
	}
	return strings.Join(vals, ".")
}

// ListLeaves lists the non-struct fields of a struct, descending into
// struct fields. If a tag is given its value is used instead of the field
// name.
func ListLeaves(i any, tag ...string) []string {
	t, ok := structType(i)
	if !ok {
		return nil
	}
	var leaves []string
	for n := range t.NumField() {
		field := t.Field(n)
		name := field.Name
		if len(tag) > 0 {
			name = field.Tag.Get(tag[0])
		}

		if field.Type.Kind() == reflect.Struct {
			for _, sub := range ListLeaves(reflect.New(field.Type).Interface(), tag...) {
				leaves = append(leaves, name+"."+sub)
			}
		} else {
			leaves = append(leaves, name)
		}
	}
	return leaves
}
