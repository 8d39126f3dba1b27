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

package strategy

import (
	"reflect"

	"dirpx.dev/fixture/apis"
	uref "dirpx.dev/fixture/utils/reflect"
)

// NewPointerStrategy creates a builder for *T: it resolves T and returns its address.
// An omitted T leaves the pointer omitted too.
func NewPointerStrategy() apis.Builder {
	return &pointerStrategy{}
}

type pointerStrategy struct{}

// Ensure pointerStrategy implements apis.Builder.
var _ apis.Builder = (*pointerStrategy)(nil)

func (*pointerStrategy) Create(r apis.Request, ctx apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok || tr.Type.Kind() != reflect.Pointer {
		return nil, apis.ErrNoSpecimen
	}
	elem := tr.Type.Elem()
	v, err := ctx.Resolve(apis.TypeRequest{Type: elem})
	if err != nil {
		return nil, err
	}
	if apis.IsOmit(v) {
		return apis.Omit, nil
	}
	p := reflect.New(elem)
	p.Elem().Set(uref.ValueFor(v, elem))
	return p.Interface(), nil
}

// NewSliceStrategy creates a builder for slices and arrays. Slices get
// Config.RepeatCount elements; arrays are filled to their length. Omitted
// elements are skipped in slices and left zero in arrays.
func NewSliceStrategy() apis.Builder {
	return &sliceStrategy{}
}

type sliceStrategy struct{}

// Ensure sliceStrategy implements apis.Builder.
var _ apis.Builder = (*sliceStrategy)(nil)

func (*sliceStrategy) Create(r apis.Request, ctx apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok {
		return nil, apis.ErrNoSpecimen
	}
	t := tr.Type
	switch t.Kind() {
	case reflect.Slice:
		n := ctx.Config().RepeatCount
		out := reflect.MakeSlice(t, 0, n)
		for i := 0; i < n; i++ {
			v, err := ctx.Resolve(apis.TypeRequest{Type: t.Elem()})
			if err != nil {
				return nil, err
			}
			if apis.IsOmit(v) {
				continue
			}
			out = reflect.Append(out, uref.ValueFor(v, t.Elem()))
		}
		return out.Interface(), nil
	case reflect.Array:
		out := reflect.New(t).Elem()
		for i := 0; i < t.Len(); i++ {
			v, err := ctx.Resolve(apis.TypeRequest{Type: t.Elem()})
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(uref.ValueFor(v, t.Elem()))
		}
		return out.Interface(), nil
	default:
		return nil, apis.ErrNoSpecimen
	}
}

// NewMapStrategy creates a builder for maps with up to Config.RepeatCount
// entries (duplicate keys collapse).
func NewMapStrategy() apis.Builder {
	return &mapStrategy{}
}

type mapStrategy struct{}

// Ensure mapStrategy implements apis.Builder.
var _ apis.Builder = (*mapStrategy)(nil)

func (*mapStrategy) Create(r apis.Request, ctx apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok || tr.Type.Kind() != reflect.Map {
		return nil, apis.ErrNoSpecimen
	}
	t := tr.Type
	n := ctx.Config().RepeatCount
	out := reflect.MakeMapWithSize(t, n)
	for i := 0; i < n; i++ {
		k, err := ctx.Resolve(apis.TypeRequest{Type: t.Key()})
		if err != nil {
			return nil, err
		}
		v, err := ctx.Resolve(apis.TypeRequest{Type: t.Elem()})
		if err != nil {
			return nil, err
		}
		if apis.IsOmit(k) || apis.IsOmit(v) {
			continue
		}
		out.SetMapIndex(uref.ValueFor(k, t.Key()), uref.ValueFor(v, t.Elem()))
	}
	return out.Interface(), nil
}
