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

// Specification is a predicate over requests.
//
// IsSatisfiedBy must be total for non-nil requests: it returns false for any
// request shape it does not understand and never fails. A nil request is caller
// misuse and panics with an error wrapping ErrInvalidArgument.
type Specification interface {
	IsSatisfiedBy(r Request) bool
}

// SpecificationFunc adapts a function to Specification.
type SpecificationFunc func(r Request) bool

// IsSatisfiedBy implements Specification.
func (f SpecificationFunc) IsSatisfiedBy(r Request) bool {
	if r == nil {
		panic(InvalidArgument("request"))
	}
	return f(r)
}

// Criterion is an equality criterion over T, used by specifications that
// delegate matching entirely to the caller.
type Criterion[T any] interface {
	Equals(other T) bool
}
