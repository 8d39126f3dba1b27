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

// Kernel resolves top-level requests through a configured chain of builders.
// Implementations are immutable after construction and safe for concurrent use.
type Kernel interface {
	// Resolve returns a specimen for r, or an *ObjectCreationError.
	Resolve(r Request) (any, error)
	// Builder returns the root of the configured chain.
	Builder() Builder
	// Config returns the kernel configuration.
	Config() Config
}

// Composer assembles Registry and Kernel instances from a Config.
// Implementations may migrate state from previous instances, or ignore them.
type Composer interface {
	// BuildRegistry constructs a Registry for cfg. May migrate entries from prev.
	BuildRegistry(cfg Config, prev Registry) Registry
	// BuildKernel constructs a Kernel over reg, applying customs in order on top
	// of the default chain.
	BuildKernel(cfg Config, reg Registry, customs []Customization) Kernel
}
