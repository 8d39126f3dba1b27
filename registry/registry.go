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

// Package registry stores the factory functions used to construct types.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/fixture/apis"
)

var (
	// ErrNilFactory is returned when a nil factory is provided.
	ErrNilFactory = errors.New("fixture(registry): nil factory provided")
	// ErrInvalidFactory is returned when the factory is not a func producing the target type.
	ErrInvalidFactory = errors.New("fixture(registry): factory must be a func returning the target type and an optional error")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different factory.
	ErrConflictingRegistration = errors.New("fixture(registry): conflicting type registration")
)

var errorType = reflect.TypeFor[error]()

// New constructs an empty, concurrency-safe Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to apis.Factory.
	m sync.Map // map[reflect.Type]apis.Factory
	// count tracks the number of registered entries.
	count int
}

// Register associates t with factory.
// It is idempotent for the same (type, factory) pair.
func (r *registry) Register(t reflect.Type, factory any) error {
	// Validate inputs early.
	if t == nil {
		return apis.InvalidArgument("type")
	}
	if factory == nil {
		return ErrNilFactory
	}
	f, err := validate(t, factory)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(t); ok {
		return sameFactory(old.(apis.Factory), f)
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(t); ok {
		return sameFactory(old.(apis.Factory), f)
	}

	r.m.Store(t, f)
	r.count++
	return nil
}

// Lookup returns the factory registered for t.
func (r *registry) Lookup(t reflect.Type) (apis.Factory, bool) {
	if t == nil {
		return apis.Factory{}, false
	}
	if v, ok := r.m.Load(t); ok {
		return v.(apis.Factory), true
	}
	return apis.Factory{}, false
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:    key.(reflect.Type),
			Factory: value.(apis.Factory),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}

// validate checks that factory is func(...) T or func(...) (T, error) with T
// assignable to t. Variadic factories are rejected.
func validate(t reflect.Type, factory any) (apis.Factory, error) {
	v := reflect.ValueOf(factory)
	ft := v.Type()
	if ft.Kind() != reflect.Func || v.IsNil() || ft.IsVariadic() {
		return apis.Factory{}, fmt.Errorf("%w: got %v", ErrInvalidFactory, ft)
	}
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return apis.Factory{}, fmt.Errorf("%w: second result of %v is not error", ErrInvalidFactory, ft)
		}
	default:
		return apis.Factory{}, fmt.Errorf("%w: got %v", ErrInvalidFactory, ft)
	}
	if !ft.Out(0).AssignableTo(t) {
		return apis.Factory{}, fmt.Errorf("%w: %v is not assignable to %v", ErrInvalidFactory, ft.Out(0), t)
	}
	return apis.Factory{Func: v, ReturnsError: ft.NumOut() == 2}, nil
}

// sameFactory returns nil when a and b are the same function.
func sameFactory(a, b apis.Factory) error {
	if a.Func.Type() == b.Func.Type() && a.Func.Pointer() == b.Func.Pointer() {
		return nil
	}
	return ErrConflictingRegistration
}
