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

// Package autoprop implements the auto-property post-processor: a decorator
// that fills the fields and writable properties of constructed structs by
// resolving member requests through the same context, and the customizations
// that suppress it for selected requests.
package autoprop

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/request"
	"dirpx.dev/fixture/specification"
	uref "dirpx.dev/fixture/utils/reflect"
)

// ErrSetterFailed wraps an error returned by a property setter.
var ErrSetterFailed = errors.New("fixture(autoprop): property setter failed")

// NewPopulator decorates base. Specimens produced for requests satisfying spec
// (every request when spec is nil) get their members populated.
func NewPopulator(base apis.Builder, spec apis.Specification) *Populator {
	if spec == nil {
		spec = specification.True()
	}
	return &Populator{base: base, spec: spec}
}

// Populator is the auto-property post-processor. It never replaces the base
// builder: construction is always delegated, only the follow-up is added.
type Populator struct {
	base apis.Builder
	spec apis.Specification
}

// Ensure Populator implements apis.Node.
var _ apis.Node = (*Populator)(nil)

// Create delegates construction to the base builder, then populates struct
// specimens (or pointers to structs) member by member, fields first in
// declaration order, then properties by name. Unresolved and omitted members
// are left untouched; fatal errors abort. Setters promoted through a nil
// embedded pointer or interface are skipped.
func (p *Populator) Create(r apis.Request, ctx apis.Context) (any, error) {
	v, err := p.base.Create(r, ctx)
	if err != nil || v == nil || apis.IsOmit(v) {
		return v, err
	}
	if !p.spec.IsSatisfiedBy(r) || suppressed(ctx, r) {
		return v, nil
	}
	return populate(v, ctx)
}

// Children implements apis.Node.
func (p *Populator) Children() []apis.Builder { return []apis.Builder{p.base} }

// WithChildren implements apis.Node. It expects exactly one child.
func (p *Populator) WithChildren(children []apis.Builder) apis.Builder {
	if len(children) != 1 {
		panic(fmt.Sprintf("fixture(autoprop): populator wraps exactly one builder, got %d", len(children)))
	}
	return &Populator{base: children[0], spec: p.spec}
}

// Without returns a copy that skips population for requests matching spec.
func (p *Populator) Without(spec apis.Specification) *Populator {
	if spec == nil {
		return p
	}
	return &Populator{base: p.base, spec: specification.And(p.spec, specification.Not(spec))}
}

func populate(v any, ctx apis.Context) (any, error) {
	rv := reflect.ValueOf(v)
	var target reflect.Value
	switch {
	case rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct:
		target = rv.Elem()
	case rv.Kind() == reflect.Struct:
		// Copy into an addressable value so fields can be set and pointer
		// setters called.
		target = reflect.New(rv.Type()).Elem()
		target.Set(rv)
	default:
		return v, nil
	}

	st := target.Type()
	for _, m := range uref.Fields(st) {
		val, ok, err := resolveMember(st, m, ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if fv := target.FieldByIndex(m.Index); fv.CanSet() {
			fv.Set(uref.ValueFor(val, m.Type))
		}
	}
	for _, m := range uref.Properties(st) {
		if !uref.Receivable(target, m) {
			continue
		}
		val, ok, err := resolveMember(st, m, ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out := target.Addr().MethodByName(m.Method).Call([]reflect.Value{uref.ValueFor(val, m.Type)})
		if m.ReturnsError && !out[0].IsNil() {
			return nil, fmt.Errorf("%w: %v.%s: %w", ErrSetterFailed, st, m.Method, out[0].Interface().(error))
		}
	}

	if rv.Kind() == reflect.Pointer {
		return v, nil
	}
	return target.Interface(), nil
}

// resolveMember resolves one member. ok is false when the member must be left
// untouched (unresolved or omitted).
func resolveMember(st reflect.Type, m uref.Member, ctx apis.Context) (val any, ok bool, err error) {
	val, err = ctx.Resolve(request.Member(st, m))
	if err != nil {
		if apis.IsUnresolved(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if apis.IsOmit(val) {
		return nil, false, nil
	}
	return val, true, nil
}
