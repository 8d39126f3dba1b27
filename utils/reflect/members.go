/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflect

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"dirpx.dev/fixture/apis"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Member describes a struct member eligible for population.
type Member struct {
	// Kind is apis.Field or apis.Property.
	Kind apis.MemberKind
	// Name is the field name, or the property name without the "Set" prefix.
	Name string
	// Type is the member type.
	Type reflect.Type
	// Index is the field index path (fields only).
	Index []int
	// Method is the setter (or getter, for read-only properties) method name.
	Method string
	// Writable is false for read-only properties.
	Writable bool
	// ReturnsError reports whether the setter returns an error.
	ReturnsError bool
	// Via is the index path of the embedded field the method is promoted
	// through, nil when no embedding provides it.
	Via []int
}

// Fields returns the exported, assignable fields of struct type t in
// declaration order. Promoted fields of embedded structs are included and the
// embedded struct itself is skipped; embedded pointers are kept as a unit and
// their promoted fields are skipped, since setting through a nil pointer panics.
func Fields(t reflect.Type) []Member {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var out []Member
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			continue
		}
		if throughPointer(t, f.Index) {
			continue
		}
		out = append(out, Member{
			Kind:     apis.Field,
			Name:     f.Name,
			Type:     f.Type,
			Index:    f.Index,
			Writable: true,
		})
	}
	return out
}

// FieldByName returns the named field as it would be listed by Fields.
func FieldByName(t reflect.Type, name string) (Member, bool) {
	for _, m := range Fields(t) {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// throughPointer reports whether reaching index from t dereferences a pointer.
func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Pointer {
			return true
		}
		t = f.Type
	}
	return false
}

// Properties returns the writable properties of struct type t: methods on *t
// named SetX with one argument, returning nothing or an error. Properties are
// ordered by method name.
func Properties(t reflect.Type) []Member {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	pt := reflect.PointerTo(t)
	var out []Member
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if p, ok := setter(m); ok {
			p.Via = promotion(t, m.Name)
			out = append(out, p)
		}
	}
	return out
}

// promotion returns the index path of the embedded field that provides method
// name to *t, descending through embedded structs. It is nil when no embedded
// field provides the method.
func promotion(t reflect.Type, name string) []int {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		var ok bool
		switch ft.Kind() {
		case reflect.Interface, reflect.Pointer:
			_, ok = ft.MethodByName(name)
		case reflect.Struct:
			_, ok = reflect.PointerTo(ft).MethodByName(name)
		}
		if !ok {
			continue
		}
		path := []int{i}
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			path = append(path, promotion(ft, name)...)
		}
		return path
	}
	return nil
}

// Receivable reports whether the method of m can be called on the struct
// value v: every embedded pointer or interface on the promotion path of m must
// be non-nil.
func Receivable(v reflect.Value, m Member) bool {
	for _, i := range m.Via {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return false
			}
			v = v.Elem()
		}
		v = v.Field(i)
		switch v.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return false
			}
		}
	}
	return true
}

// PropertyByName looks up property name on t: the SetName setter first,
// then a read-only Name() getter.
func PropertyByName(t reflect.Type, name string) (Member, bool) {
	if t == nil || t.Kind() != reflect.Struct || name == "" {
		return Member{}, false
	}
	pt := reflect.PointerTo(t)
	if m, ok := pt.MethodByName("Set" + name); ok {
		if p, ok := setter(m); ok {
			return p, true
		}
	}
	if m, ok := pt.MethodByName(name); ok {
		// Receiver is In(0).
		if m.Type.NumIn() == 1 && m.Type.NumOut() == 1 {
			return Member{
				Kind:   apis.Property,
				Name:   name,
				Type:   m.Type.Out(0),
				Method: m.Name,
			}, true
		}
	}
	return Member{}, false
}

func setter(m reflect.Method) (Member, bool) {
	name, ok := strings.CutPrefix(m.Name, "Set")
	if !ok || name == "" {
		return Member{}, false
	}
	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(r) {
		return Member{}, false
	}
	mt := m.Type
	if mt.NumIn() != 2 {
		return Member{}, false
	}
	returnsErr := false
	switch mt.NumOut() {
	case 0:
	case 1:
		if mt.Out(0) != errorType {
			return Member{}, false
		}
		returnsErr = true
	default:
		return Member{}, false
	}
	return Member{
		Kind:         apis.Property,
		Name:         name,
		Type:         mt.In(1),
		Method:       m.Name,
		Writable:     true,
		ReturnsError: returnsErr,
	}, true
}
