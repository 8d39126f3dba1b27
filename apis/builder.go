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

// Builder is a pluggable specimen-producing step. A kernel chains builders in
// order (customizations first, defaults last) and the first one that produces
// a specimen wins.
//
// Builders must be stateless with respect to any single resolution: recursion
// state belongs to the Context, never to the builder.
type Builder interface {
	// Create returns a specimen for r. To decline, it returns an error matching
	// ErrNoSpecimen; any other error is fatal and aborts the resolution.
	// Nested values are requested through ctx.
	Create(r Request, ctx Context) (specimen any, err error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(r Request, ctx Context) (any, error)

// Create implements Builder.
func (f BuilderFunc) Create(r Request, ctx Context) (any, error) {
	return f(r, ctx)
}

// Context is the per-resolution view of the active chain. It is created for one
// top-level request and discarded afterwards.
type Context interface {
	// Resolve resolves a nested request through the same chain, one level deeper.
	Resolve(r Request) (any, error)
	// Depth returns the nesting level of the request currently being built.
	Depth() int
	// Config returns the configuration of the kernel that owns this context.
	Config() Config
}

// Node is implemented by builders that wrap other builders. Customizations use
// it to rewrite a chain structurally without replacing it.
type Node interface {
	Builder
	// Children returns the wrapped builders in order.
	Children() []Builder
	// WithChildren returns a copy of the node over the given builders.
	WithChildren(children []Builder) Builder
}

// omitSpecimen is the type of Omit.
type omitSpecimen struct{}

// Omit is a specimen meaning "leave the target unassigned". Recursion handlers
// return it, and post-processors skip members resolved to it.
var Omit any = omitSpecimen{}

// IsOmit reports whether v is the Omit specimen.
func IsOmit(v any) bool {
	_, ok := v.(omitSpecimen)
	return ok
}

// SpecimenProvider is implemented by types that know how to produce their own
// specimens. The default chain calls it on the zero value of the requested type
// before any reflective construction.
type SpecimenProvider interface {
	ProvideSpecimen(ctx Context) (any, error)
}
