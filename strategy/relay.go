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

// NewMemberRelay creates a builder that turns member requests into value
// requests: string members become seeded requests named after the member,
// everything else becomes a type request for the member type.
func NewMemberRelay() apis.Builder {
	return &memberRelay{}
}

type memberRelay struct{}

// Ensure memberRelay implements apis.Builder.
var _ apis.Builder = (*memberRelay)(nil)

func (*memberRelay) Create(r apis.Request, ctx apis.Context) (any, error) {
	mr, ok := r.(apis.MemberRequest)
	if !ok {
		return nil, apis.ErrNoSpecimen
	}
	if mr.MemberType.Kind() == reflect.String {
		return ctx.Resolve(apis.SeededRequest{Type: mr.MemberType, Seed: mr.Name})
	}
	return ctx.Resolve(apis.TypeRequest{Type: mr.MemberType})
}

// NewSeedRelay creates a builder that drops the seed of seeded requests no
// other builder handled.
func NewSeedRelay() apis.Builder {
	return &seedRelay{}
}

type seedRelay struct{}

// Ensure seedRelay implements apis.Builder.
var _ apis.Builder = (*seedRelay)(nil)

func (*seedRelay) Create(r apis.Request, ctx apis.Context) (any, error) {
	sr, ok := r.(apis.SeededRequest)
	if !ok {
		return nil, apis.ErrNoSpecimen
	}
	return ctx.Resolve(apis.TypeRequest{Type: sr.Type})
}
