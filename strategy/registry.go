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
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/request"
	uref "dirpx.dev/fixture/utils/reflect"
)

// ErrFactoryFailed wraps an error returned by a registered factory.
var ErrFactoryFailed = errors.New("fixture(strategy): factory failed")

// NewRegistryStrategy creates a builder that invokes the factory registered for
// the requested type, resolving each factory parameter through the context.
func NewRegistryStrategy(reg apis.Registry) apis.Builder {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults a provided apis.Registry.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Builder.
var _ apis.Builder = (*registryStrategy)(nil)

// Create calls the registered factory. An unresolved parameter makes the whole
// request unresolved; the cause (for example a circular reference) is kept.
func (s *registryStrategy) Create(r apis.Request, ctx apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok || s.reg == nil {
		return nil, apis.ErrNoSpecimen
	}
	f, ok := s.reg.Lookup(tr.Type)
	if !ok {
		return nil, apis.ErrNoSpecimen
	}

	ft := f.Type()
	args := make([]reflect.Value, ft.NumIn())
	for i := range args {
		pr, err := request.Parameter(ft, i)
		if err != nil {
			return nil, err
		}
		v, err := ctx.Resolve(pr)
		if err != nil {
			return nil, fmt.Errorf("fixture(strategy): parameter %d of %v: %w", i, ft, err)
		}
		args[i] = uref.ValueFor(v, ft.In(i))
	}

	out := f.Func.Call(args)
	if f.ReturnsError && !out[1].IsNil() {
		return nil, fmt.Errorf("%w: %v: %w", ErrFactoryFailed, ft, out[1].Interface().(error))
	}
	return out[0].Interface(), nil
}
