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

package strategy

import (
	"fmt"
	"math"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"dirpx.dev/fixture/apis"
)

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	uuidType     = reflect.TypeFor[uuid.UUID]()
)

// NewStringStrategy creates a builder for string kinds. Seeded requests yield
// "<seed><uuid>", so a field Name becomes "Name3f1c...". Named string types are
// converted.
func NewStringStrategy() apis.Builder {
	return &stringStrategy{}
}

type stringStrategy struct{}

// Ensure stringStrategy implements apis.Builder.
var _ apis.Builder = (*stringStrategy)(nil)

func (*stringStrategy) Create(r apis.Request, _ apis.Context) (any, error) {
	var (
		t      reflect.Type
		prefix string
	)
	switch r := r.(type) {
	case apis.TypeRequest:
		t = r.Type
	case apis.SeededRequest:
		t = r.Type
		if r.Seed != nil {
			prefix = fmt.Sprint(r.Seed)
		}
	default:
		return nil, apis.ErrNoSpecimen
	}
	if t.Kind() != reflect.String {
		return nil, apis.ErrNoSpecimen
	}
	return convert(prefix+uuid.NewString(), t), nil
}

// NewUUIDStrategy creates a builder for github.com/google/uuid.UUID values.
func NewUUIDStrategy() apis.Builder {
	return &uuidStrategy{}
}

type uuidStrategy struct{}

// Ensure uuidStrategy implements apis.Builder.
var _ apis.Builder = (*uuidStrategy)(nil)

func (*uuidStrategy) Create(r apis.Request, _ apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok || tr.Type != uuidType {
		return nil, apis.ErrNoSpecimen
	}
	return uuid.New(), nil
}

// NewNumberStrategy creates a builder for integer and floating point kinds.
// Values come from a shared, strictly increasing sequence and stay within the
// positive range of the requested kind.
func NewNumberStrategy() apis.Builder {
	return &numberStrategy{}
}

type numberStrategy struct {
	seq atomic.Uint64
}

// Ensure numberStrategy implements apis.Builder.
var _ apis.Builder = (*numberStrategy)(nil)

func (s *numberStrategy) Create(r apis.Request, _ apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok {
		return nil, apis.ErrNoSpecimen
	}
	t := tr.Type
	var limit uint64
	switch t.Kind() {
	case reflect.Int8:
		limit = math.MaxInt8
	case reflect.Uint8:
		limit = math.MaxUint8
	case reflect.Int16:
		limit = math.MaxInt16
	case reflect.Uint16:
		limit = math.MaxUint16
	case reflect.Int32:
		limit = math.MaxInt32
	case reflect.Uint32:
		limit = math.MaxUint32
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Uintptr:
		limit = math.MaxInt64
	case reflect.Float32, reflect.Float64:
		limit = 1 << 24
	default:
		return nil, apis.ErrNoSpecimen
	}
	n := (s.seq.Add(1)-1)%limit + 1

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		v.SetFloat(float64(n))
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int, reflect.Int64:
		v.SetInt(int64(n))
	default:
		v.SetUint(n)
	}
	return v.Interface(), nil
}

// NewBoolStrategy creates a builder for bool kinds that alternates true, false.
func NewBoolStrategy() apis.Builder {
	return &boolStrategy{}
}

type boolStrategy struct {
	seq atomic.Uint64
}

// Ensure boolStrategy implements apis.Builder.
var _ apis.Builder = (*boolStrategy)(nil)

func (s *boolStrategy) Create(r apis.Request, _ apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok || tr.Type.Kind() != reflect.Bool {
		return nil, apis.ErrNoSpecimen
	}
	return convert(s.seq.Add(1)%2 == 1, tr.Type), nil
}

// NewTimeStrategy creates a builder for time.Time and time.Duration.
// Times are whole seconds in UTC, one day apart, counting from now.
// Durations are whole seconds.
func NewTimeStrategy() apis.Builder {
	return &timeStrategy{}
}

type timeStrategy struct {
	seq atomic.Int64
}

// Ensure timeStrategy implements apis.Builder.
var _ apis.Builder = (*timeStrategy)(nil)

func (s *timeStrategy) Create(r apis.Request, _ apis.Context) (any, error) {
	tr, ok := r.(apis.TypeRequest)
	if !ok {
		return nil, apis.ErrNoSpecimen
	}
	switch tr.Type {
	case timeType:
		n := s.seq.Add(1)
		return time.Now().UTC().Truncate(time.Second).AddDate(0, 0, int(n)), nil
	case durationType:
		return time.Duration(s.seq.Add(1)) * time.Second, nil
	default:
		return nil, apis.ErrNoSpecimen
	}
}

// convert returns v as type t (for named basic types).
func convert(v any, t reflect.Type) any {
	rv := reflect.ValueOf(v)
	if rv.Type() == t {
		return v
	}
	return rv.Convert(t).Interface()
}
