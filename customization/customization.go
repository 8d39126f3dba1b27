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

// Package customization provides general-purpose customizations: pinning a
// value for a type, routing matching requests to a builder, omitting members,
// and composing customizations.
package customization

import (
	"fmt"
	"reflect"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/kernel"
	"dirpx.dev/fixture/specification"
)

// Filtered returns a customization that places builder in front of the
// customized chain, consulted only for requests matching spec.
func Filtered(spec apis.Specification, builder apis.Builder) (apis.Customization, error) {
	if spec == nil {
		return nil, apis.InvalidArgument("specification")
	}
	if builder == nil {
		return nil, apis.InvalidArgument("builder")
	}
	f := &filter{spec: spec, builder: builder}
	return apis.CustomizationFunc(func(b apis.Builder) apis.Builder {
		return kernel.NewChain(f, b)
	}), nil
}

// Inject returns a customization that answers every type request for t with value.
func Inject(t reflect.Type, value any) (apis.Customization, error) {
	spec, err := specification.NewExactTypeSpecification(t)
	if err != nil {
		return nil, err
	}
	if value != nil && !reflect.TypeOf(value).AssignableTo(t) {
		return nil, fmt.Errorf("%w: %T is not assignable to %v", apis.ErrInvalidArgument, value, t)
	}
	return Filtered(spec, apis.BuilderFunc(func(apis.Request, apis.Context) (any, error) {
		return value, nil
	}))
}

// Freeze resolves one specimen of t through k and injects it, so every later
// request for t yields that same specimen.
func Freeze(k apis.Kernel, t reflect.Type) (apis.Customization, any, error) {
	if k == nil {
		return nil, nil, apis.InvalidArgument("kernel")
	}
	if t == nil {
		return nil, nil, apis.InvalidArgument("type")
	}
	v, err := k.Resolve(apis.TypeRequest{Type: t})
	if err != nil {
		return nil, nil, err
	}
	c, err := Inject(t, v)
	if err != nil {
		return nil, nil, err
	}
	return c, v, nil
}

// Omit returns a customization that leaves members matching spec unassigned.
func Omit(spec apis.Specification) (apis.Customization, error) {
	return Filtered(spec, apis.BuilderFunc(func(apis.Request, apis.Context) (any, error) {
		return apis.Omit, nil
	}))
}

// Composite applies customizations in order. Nil entries are skipped.
func Composite(cs ...apis.Customization) apis.Customization {
	return apis.CustomizationFunc(func(b apis.Builder) apis.Builder {
		for _, c := range cs {
			if c != nil {
				b = c.Customize(b)
			}
		}
		return b
	})
}

// filter consults builder for requests matching spec and declines otherwise.
type filter struct {
	spec    apis.Specification
	builder apis.Builder
}

func (f *filter) Create(r apis.Request, ctx apis.Context) (any, error) {
	if !f.spec.IsSatisfiedBy(r) {
		return nil, apis.ErrNoSpecimen
	}
	return f.builder.Create(r, ctx)
}
