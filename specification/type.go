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
)

// TypeSpecification matches type requests (plain or seeded) by their type.
type TypeSpecification struct {
	criterion Criterion[reflect.Type]
}

// Ensure TypeSpecification implements apis.Specification.
var _ apis.Specification = (*TypeSpecification)(nil)

// NewExactTypeSpecification matches type requests for exactly t.
func NewExactTypeSpecification(t reflect.Type) (*TypeSpecification, error) {
	if t == nil {
		return nil, apis.InvalidArgument("type")
	}
	c, _ := NewCriterion(t, SameType)
	return &TypeSpecification{criterion: c}, nil
}

// NewDerivedTypeSpecification matches type requests for t or any type deriving from t.
func NewDerivedTypeSpecification(t reflect.Type) (*TypeSpecification, error) {
	if t == nil {
		return nil, apis.InvalidArgument("type")
	}
	c, _ := NewCriterion(t, DerivedType)
	return &TypeSpecification{criterion: c}, nil
}

// IsSatisfiedBy implements apis.Specification.
func (s *TypeSpecification) IsSatisfiedBy(r apis.Request) bool {
	mustRequest(r)
	switch r := r.(type) {
	case apis.TypeRequest:
		return s.criterion.Equals(r.Type)
	case apis.SeededRequest:
		return s.criterion.Equals(r.Type)
	default:
		return false
	}
}

// TargetTypeSpecification matches any request whose target type is exactly t,
// including member requests.
type TargetTypeSpecification struct {
	typ reflect.Type
}

// NewTargetTypeSpecification returns a TargetTypeSpecification for t.
func NewTargetTypeSpecification(t reflect.Type) (*TargetTypeSpecification, error) {
	if t == nil {
		return nil, apis.InvalidArgument("type")
	}
	return &TargetTypeSpecification{typ: t}, nil
}

// IsSatisfiedBy implements apis.Specification.
func (s *TargetTypeSpecification) IsSatisfiedBy(r apis.Request) bool {
	mustRequest(r)
	return r.TargetType() == s.typ
}
