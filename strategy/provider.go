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

var providerType = reflect.TypeFor[apis.SpecimenProvider]()

// NewProviderStrategy creates a builder that lets types implementing
// apis.SpecimenProvider produce their own specimens.
func NewProviderStrategy() apis.Builder {
	return &providerStrategy{}
}

// providerStrategy is a fast path: if T (or *T) implements
// apis.SpecimenProvider, ask its zero value and stop the chain.
type providerStrategy struct{}

// Ensure providerStrategy implements apis.Builder.
var _ apis.Builder = (*providerStrategy)(nil)

// Create calls ProvideSpecimen on a zero T (or a new *T for pointer receivers).
// Pointer requests are left to the pointer builder, which wraps the T specimen.
func (*providerStrategy) Create(r apis.Request, ctx apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok || tr.Type.Kind() == reflect.Interface || tr.Type.Kind() == reflect.Pointer {
		return nil, apis.ErrNoSpecimen
	}
	var p apis.SpecimenProvider
	switch {
	case tr.Type.Implements(providerType):
		p = reflect.Zero(tr.Type).Interface().(apis.SpecimenProvider)
	case reflect.PointerTo(tr.Type).Implements(providerType):
		p = reflect.New(tr.Type).Interface().(apis.SpecimenProvider)
	default:
		return nil, apis.ErrNoSpecimen
	}
	return p.ProvideSpecimen(ctx)
}
