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

// Package request builds validated apis.Request values.
//
// The apis package defines the request variants; this package is the boundary
// where missing inputs are rejected with apis.ErrInvalidArgument and where
// reflective members are looked up on real types.
package request

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/fixture/apis"
	uref "dirpx.dev/fixture/utils/reflect"
)

var (
	// ErrNoSuchMember is returned when a type has no member with the given name.
	ErrNoSuchMember = errors.New("fixture(request): no such member")
	// ErrNotStruct is returned when members are requested on a non-struct type.
	ErrNotStruct = errors.New("fixture(request): type is not a struct")
	// ErrNotFunc is returned when a parameter is requested on a non-func type.
	ErrNotFunc = errors.New("fixture(request): type is not a func")
	// ErrParameterIndex is returned when a parameter index is out of range.
	ErrParameterIndex = errors.New("fixture(request): parameter index out of range")
)

// Type returns a TypeRequest for t.
func Type(t reflect.Type) (apis.Request, error) {
	if t == nil {
		return nil, apis.InvalidArgument("type")
	}
	return apis.TypeRequest{Type: t}, nil
}

// Of returns a TypeRequest for T.
func Of[T any]() apis.Request {
	return apis.TypeRequest{Type: reflect.TypeFor[T]()}
}

// Seeded returns a SeededRequest for t with the given seed.
func Seeded(t reflect.Type, seed any) (apis.Request, error) {
	if t == nil {
		return nil, apis.InvalidArgument("type")
	}
	return apis.SeededRequest{Type: t, Seed: seed}, nil
}

// Field returns a MemberRequest for the exported field name of struct type t
// (pointers to structs are dereferenced).
func Field(t reflect.Type, name string) (apis.Request, error) {
	st, err := structType(t, name)
	if err != nil {
		return nil, err
	}
	m, ok := uref.FieldByName(st, name)
	if !ok {
		return nil, fmt.Errorf("%w: field %v.%s", ErrNoSuchMember, st, name)
	}
	return Member(st, m), nil
}

// Property returns a MemberRequest for property name of struct type t: the
// SetName setter, or a read-only Name() getter.
func Property(t reflect.Type, name string) (apis.Request, error) {
	st, err := structType(t, name)
	if err != nil {
		return nil, err
	}
	m, ok := uref.PropertyByName(st, name)
	if !ok {
		return nil, fmt.Errorf("%w: property %v.%s", ErrNoSuchMember, st, name)
	}
	return Member(st, m), nil
}

// Parameter returns a MemberRequest for parameter i of func type fn.
func Parameter(fn reflect.Type, i int) (apis.Request, error) {
	if fn == nil {
		return nil, apis.InvalidArgument("func type")
	}
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %v", ErrNotFunc, fn)
	}
	if i < 0 || i >= fn.NumIn() {
		return nil, fmt.Errorf("%w: %d of %v", ErrParameterIndex, i, fn)
	}
	return apis.MemberRequest{
		DeclaringType: fn,
		Kind:          apis.Parameter,
		Name:          fmt.Sprintf("arg%d", i),
		MemberType:    fn.In(i),
		Position:      i,
	}, nil
}

// Member converts an enumerated member of declaring type t into a request.
func Member(t reflect.Type, m uref.Member) apis.MemberRequest {
	return apis.MemberRequest{
		DeclaringType: t,
		Kind:          m.Kind,
		Name:          m.Name,
		MemberType:    m.Type,
	}
}

func structType(t reflect.Type, name string) (reflect.Type, error) {
	if t == nil {
		return nil, apis.InvalidArgument("type")
	}
	if name == "" {
		return nil, apis.InvalidArgument("name")
	}
	st := uref.Indirect(t, uref.MaxEmbedDepth)
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}
	return st, nil
}
