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

import (
	"fmt"
	"reflect"
)

// Request describes what must be produced. It is a closed sum type:
// TypeRequest, SeededRequest and MemberRequest are the only variants.
//
// Requests are immutable values and compare structurally. Two requests that
// describe the same thing are interchangeable for specifications and for the
// kernel's cycle detection.
type Request interface {
	// TargetType returns the type of the value that satisfies the request.
	TargetType() reflect.Type
	// Equal reports whether other describes the same request.
	Equal(other Request) bool
	// String returns a human-readable description used in diagnostics.
	String() string

	isRequest()
}

// MemberKind tells which kind of reflective member a MemberRequest reflects.
type MemberKind uint8

const (
	// Property is a setter-backed member: SetX(v V) on *T, or a read-only X() V getter.
	Property MemberKind = iota + 1
	// Field is an exported struct field.
	Field
	// Parameter is a positional parameter of a factory function.
	Parameter
)

// String implements fmt.Stringer.
func (k MemberKind) String() string {
	switch k {
	case Property:
		return "property"
	case Field:
		return "field"
	case Parameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// TypeRequest asks for a value of Type.
type TypeRequest struct {
	Type reflect.Type
}

// TargetType implements Request.
func (r TypeRequest) TargetType() reflect.Type { return r.Type }

// Equal implements Request.
func (r TypeRequest) Equal(other Request) bool {
	o, ok := other.(TypeRequest)
	return ok && o == r
}

// String implements Request.
func (r TypeRequest) String() string { return fmt.Sprintf("type %v", r.Type) }

func (TypeRequest) isRequest() {}

// SeededRequest asks for a value of Type, hinting the builder with Seed.
// String builders use the seed as the prefix of the generated value.
type SeededRequest struct {
	Type reflect.Type
	Seed any
}

// TargetType implements Request.
func (r SeededRequest) TargetType() reflect.Type { return r.Type }

// Equal implements Request. Seeds are compared deeply, so non-comparable seeds are safe.
func (r SeededRequest) Equal(other Request) bool {
	o, ok := other.(SeededRequest)
	return ok && o.Type == r.Type && reflect.DeepEqual(o.Seed, r.Seed)
}

// String implements Request.
func (r SeededRequest) String() string { return fmt.Sprintf("seeded %v (%v)", r.Type, r.Seed) }

func (SeededRequest) isRequest() {}

// MemberRequest asks for a value to assign into a reflective member.
//
// For fields and properties DeclaringType is the struct type that owns the member
// (the outer struct for promoted members). For parameters DeclaringType is the
// factory function type and Position is the parameter index; Name is then
// synthesized as "argN".
type MemberRequest struct {
	DeclaringType reflect.Type
	Kind          MemberKind
	Name          string
	MemberType    reflect.Type
	Position      int
}

// TargetType implements Request.
func (r MemberRequest) TargetType() reflect.Type { return r.MemberType }

// Equal implements Request.
func (r MemberRequest) Equal(other Request) bool {
	o, ok := other.(MemberRequest)
	return ok && o == r
}

// String implements Request.
func (r MemberRequest) String() string {
	return fmt.Sprintf("%s %v.%s (%v)", r.Kind, r.DeclaringType, r.Name, r.MemberType)
}

func (MemberRequest) isRequest() {}

// Compile-time checks.
var (
	_ Request = TypeRequest{}
	_ Request = SeededRequest{}
	_ Request = MemberRequest{}
)
