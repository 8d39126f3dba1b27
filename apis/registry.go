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

package apis

import "reflect"

// Registry maps target types to factory functions. Go has no constructors, so
// a registered factory plays that role: its parameters are resolved through the
// kernel as Parameter requests.
type Registry interface {
	// Register associates t with factory, a func whose first result is
	// assignable to t and whose optional second result is an error.
	// Re-registering the same factory is a no-op; a different one is a conflict.
	Register(t reflect.Type, factory any) error
	// Lookup returns the factory registered for t, if any.
	Lookup(t reflect.Type) (Factory, bool)
	// Entries returns a snapshot for diagnostics (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Factory is a validated factory function.
type Factory struct {
	// Func is the factory function value.
	Func reflect.Value
	// ReturnsError reports whether the factory's second result is an error.
	ReturnsError bool
}

// Type returns the factory's function type.
func (f Factory) Type() reflect.Type { return f.Func.Type() }

// Entry is a single (type, factory) association in a Registry snapshot.
type Entry struct {
	// Type is the registered target type.
	Type reflect.Type
	// Factory is the associated factory.
	Factory Factory
}
