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

// Package fixture creates anonymous test data ("specimens") for arbitrary Go
// types.
//
// A request for a value travels through a chain of builders. The first
// builder that produces a specimen wins; builders that do not handle the
// request decline and the next one is consulted. Builders ask for nested
// values (struct fields, factory parameters, slice elements) through the same
// chain, and the kernel guards every resolution path against cycles and
// unbounded depth.
//
// # Design
//
// The package is organized in layers:
//
//   - apis: the contracts. Requests, builders, specifications,
//     customizations, the registry and the composer.
//
//   - request and specification: constructors for requests and the
//     predicates that select them. specification/rule adds predicates
//     written as expr, CEL or JavaScript expressions.
//
//   - kernel: the builder chain and the per-resolution context that tracks
//     the in-flight path.
//
//   - strategy: the default leaf and container builders.
//
//   - autoprop: the post-processor that fills exported fields and setters
//     of constructed structs, and the customization that suppresses it.
//
//   - customization: value injection, freezing and filtering.
//
//   - compose: assembles a kernel from a Config, a factory registry and a
//     list of customizations.
//
// A Fixture holds an immutable snapshot of its configuration, registry and
// kernel. Reads load the snapshot without locking; writers build a new
// snapshot and publish it atomically, so concurrent callers always see a
// consistent chain.
//
// # Usage
//
//	f, err := fixture.New()
//	if err != nil {
//		return err
//	}
//	order, err := fixture.Create[Order](f)
//
// Register a factory to control construction. Its parameters are resolved
// through the chain:
//
//	_ = f.Register(reflect.TypeFor[*Client](), NewClient)
//
// Suppress population for a type:
//
//	c, _ := autoprop.NewNoAutoPropertiesCustomization(reflect.TypeFor[Order]())
//	_ = f.Customize(c)
//
// Cycles are reported as errors by default. Configure a recursion policy to
// leave the recurring member unset instead:
//
//	f, _ := fixture.New(fixture.WithConfig(config.NewConfig(
//		config.WithRecursion(apis.RecursionOmit),
//	)))
package fixture
