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

	"dirpx.dev/fixture/apis"
)

// ValueFor converts a specimen into a reflect.Value of type t, ready for Set or
// Call. Nil and apis.Omit become the zero value of t; values of a different but
// assignable type are wrapped (for example, a concrete value for an interface).
func ValueFor(v any, t reflect.Type) reflect.Value {
	if v == nil || apis.IsOmit(v) {
		return reflect.Zero(t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type() == t {
		return rv
	}
	out := reflect.New(t).Elem()
	out.Set(rv)
	return out
}
