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

// NewReflectStrategy creates the universal struct fallback: it constructs the
// zero value of a requested struct type. Types with a registered factory are
// left to the factory, so an unresolvable factory is never bypassed.
func NewReflectStrategy(reg apis.Registry) apis.Builder {
	return &reflectStrategy{reg: reg}
}

type reflectStrategy struct {
	reg apis.Registry
}

// Ensure reflectStrategy implements apis.Builder.
var _ apis.Builder = (*reflectStrategy)(nil)

func (s *reflectStrategy) Create(r apis.Request, _ apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok || tr.Type.Kind() != reflect.Struct {
		return nil, apis.ErrNoSpecimen
	}
	if s.reg != nil {
		if _, registered := s.reg.Lookup(tr.Type); registered {
			return nil, apis.ErrNoSpecimen
		}
	}
	return reflect.New(tr.Type).Elem().Interface(), nil
}
