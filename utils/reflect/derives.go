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
)

// MaxEmbedDepth bounds the walk through pointers and embedded structs when
// checking type compatibility. It guards against pathological nesting.
const MaxEmbedDepth = 8

// DerivesFrom reports whether t is base or a Go "subtype" of it.
//
// Compatibility policy:
//   - identical types derive from each other;
//   - if base is an interface, any t (or *t) implementing it derives from it;
//   - a pointer derives from base when its element does;
//   - a struct derives from base when one of its embedded (anonymous) fields does;
//   - a pointer base is matched through its element.
//
// The walk is bounded by MaxEmbedDepth. Nil inputs never derive.
func DerivesFrom(t, base reflect.Type) bool {
	if t == nil || base == nil {
		return false
	}
	return derives(t, base, MaxEmbedDepth)
}

func derives(t, base reflect.Type, budget int) bool {
	if budget <= 0 || t == nil {
		return false
	}
	if t == base {
		return true
	}
	if base.Kind() == reflect.Interface {
		if t.Implements(base) {
			return true
		}
		if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(base) {
			return true
		}
	}
	if base.Kind() == reflect.Pointer && derives(t, base.Elem(), budget-1) {
		return true
	}

	switch t.Kind() {
	case reflect.Pointer:
		return derives(t.Elem(), base, budget-1)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Anonymous && derives(f.Type, base, budget-1) {
				return true
			}
		}
	}
	return false
}

// Indirect strips up to max pointer levels and returns the element type.
func Indirect(t reflect.Type, max int) reflect.Type {
	for i := 0; t != nil && t.Kind() == reflect.Pointer && i < max; i++ {
		t = t.Elem()
	}
	return t
}
