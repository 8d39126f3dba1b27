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

package specification

import (
	"reflect"

	"dirpx.dev/fixture/apis"
	uref "dirpx.dev/fixture/utils/reflect"
)

// Criterion compares candidates against a fixed target with a comparer.
type Criterion[T any] struct {
	target T
	eq     func(target, candidate T) bool
}

// Ensure Criterion implements apis.Criterion.
var _ apis.Criterion[string] = Criterion[string]{}

// NewCriterion returns a criterion over target. eq receives the target first.
func NewCriterion[T any](target T, eq func(target, candidate T) bool) (Criterion[T], error) {
	if eq == nil {
		return Criterion[T]{}, apis.InvalidArgument("comparer")
	}
	return Criterion[T]{target: target, eq: eq}, nil
}

// Equals implements apis.Criterion.
func (c Criterion[T]) Equals(candidate T) bool {
	return c.eq(c.target, candidate)
}

// Target returns the criterion target.
func (c Criterion[T]) Target() T { return c.target }

// CriterionFunc adapts a function to apis.Criterion.
type CriterionFunc[T any] func(candidate T) bool

// Equals implements apis.Criterion.
func (f CriterionFunc[T]) Equals(candidate T) bool { return f(candidate) }

// Ordinal compares strings exactly, case-sensitively.
func Ordinal(target, candidate string) bool { return target == candidate }

// SameType compares types for identity.
func SameType(target, candidate reflect.Type) bool { return target == candidate }

// DerivedType reports whether candidate is target or derives from it.
func DerivedType(target, candidate reflect.Type) bool { return uref.DerivesFrom(candidate, target) }

// memberCriterion matches member requests by declaring type and name.
type memberCriterion struct {
	declaring Criterion[reflect.Type]
	name      Criterion[string]
}

func (c memberCriterion) Equals(r apis.MemberRequest) bool {
	return c.declaring.Equals(r.DeclaringType) && c.name.Equals(r.Name)
}

func newMemberCriterion(t reflect.Type, name string) (memberCriterion, error) {
	if t == nil {
		return memberCriterion{}, apis.InvalidArgument("type")
	}
	if name == "" {
		return memberCriterion{}, apis.InvalidArgument("name")
	}
	tc, _ := NewCriterion(t, DerivedType)
	nc, _ := NewCriterion(name, Ordinal)
	return memberCriterion{declaring: tc, name: nc}, nil
}

// mustRequest panics on a nil request.
func mustRequest(r apis.Request) {
	if r == nil {
		panic(apis.InvalidArgument("request"))
	}
}
