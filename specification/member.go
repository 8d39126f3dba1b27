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

// PropertySpecification matches property requests.
//
// Built from (type, name), it matches a MemberRequest of kind Property whose
// declaring type derives from the target type and whose name equals the target
// name exactly. Built from a criterion, it hands every property request to the
// criterion and returns its verdict, consulting nothing else.
type PropertySpecification struct {
	memberSpecification
}

// NewPropertySpecification matches properties named name declared on t or on
// any type deriving from t.
func NewPropertySpecification(t reflect.Type, name string) (*PropertySpecification, error) {
	c, err := newMemberCriterion(t, name)
	if err != nil {
		return nil, err
	}
	return &PropertySpecification{memberSpecification{kind: apis.Property, criterion: c}}, nil
}

// NewPropertySpecificationFor delegates matching of property requests to c.
func NewPropertySpecificationFor(c apis.Criterion[apis.MemberRequest]) (*PropertySpecification, error) {
	if c == nil {
		return nil, apis.InvalidArgument("criterion")
	}
	return &PropertySpecification{memberSpecification{kind: apis.Property, criterion: c}}, nil
}

// FieldSpecification is the field-targeting counterpart of PropertySpecification.
type FieldSpecification struct {
	memberSpecification
}

// NewFieldSpecification matches fields named name declared on t or on any type
// deriving from t.
func NewFieldSpecification(t reflect.Type, name string) (*FieldSpecification, error) {
	c, err := newMemberCriterion(t, name)
	if err != nil {
		return nil, err
	}
	return &FieldSpecification{memberSpecification{kind: apis.Field, criterion: c}}, nil
}

// NewFieldSpecificationFor delegates matching of field requests to c.
func NewFieldSpecificationFor(c apis.Criterion[apis.MemberRequest]) (*FieldSpecification, error) {
	if c == nil {
		return nil, apis.InvalidArgument("criterion")
	}
	return &FieldSpecification{memberSpecification{kind: apis.Field, criterion: c}}, nil
}

// Ensure member specifications implement apis.Specification.
var (
	_ apis.Specification = (*PropertySpecification)(nil)
	_ apis.Specification = (*FieldSpecification)(nil)
	_ apis.Specification = (*ParameterSpecification)(nil)
)

// memberSpecification restricts a criterion to one member kind.
type memberSpecification struct {
	kind      apis.MemberKind
	criterion apis.Criterion[apis.MemberRequest]
}

// IsSatisfiedBy implements apis.Specification.
func (s memberSpecification) IsSatisfiedBy(r apis.Request) bool {
	mustRequest(r)
	mr, ok := r.(apis.MemberRequest)
	if !ok || mr.Kind != s.kind {
		return false
	}
	return s.criterion.Equals(mr)
}

// AnyPosition makes a ParameterSpecification ignore the parameter position.
const AnyPosition = -1

// ParameterSpecification matches factory parameter requests by parameter type
// and position.
type ParameterSpecification struct {
	typ      reflect.Type
	position int
}

// NewParameterSpecification matches parameters of exactly type t at position
// (AnyPosition for any).
func NewParameterSpecification(t reflect.Type, position int) (*ParameterSpecification, error) {
	if t == nil {
		return nil, apis.InvalidArgument("type")
	}
	return &ParameterSpecification{typ: t, position: position}, nil
}

// IsSatisfiedBy implements apis.Specification.
func (s *ParameterSpecification) IsSatisfiedBy(r apis.Request) bool {
	mustRequest(r)
	mr, ok := r.(apis.MemberRequest)
	if !ok || mr.Kind != apis.Parameter || mr.MemberType != s.typ {
		return false
	}
	return s.position == AnyPosition || s.position == mr.Position
}
