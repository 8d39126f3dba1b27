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

// Customization is a builder factory: it transforms the chain it is applied to.
// Customizations compose additively; each one wraps or rewrites the builder it
// receives and must keep everything it does not target intact.
type Customization interface {
	Customize(b Builder) Builder
}

// CustomizationFunc adapts a function to Customization.
type CustomizationFunc func(b Builder) Builder

// Customize implements Customization.
func (f CustomizationFunc) Customize(b Builder) Builder {
	return f(b)
}

// Customizer is the declarative extension point handed to the kernel by a
// discovery layer (for example, a test helper that inspects parameters).
// Given the request that carries the declaration, it returns the customization
// to apply, or nil when it does not apply.
type Customizer interface {
	// GetCustomization returns an error wrapping ErrInvalidArgument for a nil request.
	GetCustomization(r Request) (Customization, error)
}
