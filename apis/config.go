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

// RecursionPolicy selects what the kernel does when a request reappears on its
// own resolution path.
type RecursionPolicy string

const (
	// RecursionThrow reports the cycle as a CircularReferenceError (unresolved
	// for the parent, fatal at the top level).
	RecursionThrow RecursionPolicy = "throw"
	// RecursionOmit resolves the cycle to Omit, leaving the member unassigned.
	RecursionOmit RecursionPolicy = "omit"
	// RecursionZero resolves the cycle to the zero value of the target type.
	RecursionZero RecursionPolicy = "zero"
)

// Config carries read-only generation knobs. It is passed by value and should
// be treated as immutable by implementations.
type Config struct {
	// MaxDepth is the hard ceiling on resolution nesting. It is enforced
	// independently of cycle detection.
	MaxDepth int

	// RepeatCount is the number of elements generated for slices and maps.
	RepeatCount int

	// Recursion selects the cycle handling policy.
	Recursion RecursionPolicy

	// AutoProperties enables populating fields and properties of constructed structs.
	AutoProperties bool

	// Suppress lists rule specifications; requests matching any of them are
	// constructed without populating their members.
	Suppress []Rule
}

// Rule is an expression evaluated over a request by a named engine
// ("expr", "cel" or "js").
type Rule struct {
	Engine string `yaml:"engine"`
	Expr   string `yaml:"expr"`
}
