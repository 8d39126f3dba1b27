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
)

// NewOmitOnRecursion creates a recursion handler resolving cycles to apis.Omit.
func NewOmitOnRecursion() apis.Builder {
	return apis.BuilderFunc(func(apis.Request, apis.Context) (any, error) {
		return apis.Omit, nil
	})
}

// NewZeroOnRecursion creates a recursion handler resolving cycles to the zero
// value of the requested type.
func NewZeroOnRecursion() apis.Builder {
	return apis.BuilderFunc(func(r apis.Request, _ apis.Context) (any, error) {
		t := r.TargetType()
		if t == nil {
			return nil, apis.ErrNoSpecimen
		}
		return reflect.Zero(t).Interface(), nil
	})
}

// RecursionHandler returns the handler for p, or nil for apis.RecursionThrow.
func RecursionHandler(p apis.RecursionPolicy) apis.Builder {
	switch p {
	case apis.RecursionOmit:
		return NewOmitOnRecursion()
	case apis.RecursionZero:
		return NewZeroOnRecursion()
	default:
		return nil
	}
}
