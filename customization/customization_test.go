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

package customization_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/compose"
	"dirpx.dev/fixture/config"
	"dirpx.dev/fixture/customization"
	"dirpx.dev/fixture/specification"
)

type Clock struct{ Zone string }

type Job struct {
	Name  string
	Clock *Clock
	Retry int
}

func newKernel(t *testing.T, cs ...apis.Customization) apis.Kernel {
	t.Helper()
	cmp := compose.New()
	cfg := config.DefaultConfig()
	return cmp.BuildKernel(cfg, cmp.BuildRegistry(cfg, nil), cs)
}

func resolve[T any](t *testing.T, k apis.Kernel) T {
	t.Helper()
	v, err := k.Resolve(apis.TypeRequest{Type: reflect.TypeFor[T]()})
	require.NoError(t, err)
	return v.(T)
}

func TestInject(t *testing.T) {
	clock := &Clock{Zone: "UTC"}
	c, err := customization.Inject(reflect.TypeFor[*Clock](), clock)
	require.NoError(t, err)

	k := newKernel(t, c)
	assert.Same(t, clock, resolve[*Clock](t, k))
	assert.Same(t, clock, resolve[Job](t, k).Clock)
}

func TestInject_Errors(t *testing.T) {
	_, err := customization.Inject(nil, 1)
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)
	_, err = customization.Inject(reflect.TypeFor[int](), "one")
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)
}

func TestFiltered(t *testing.T) {
	spec, err := specification.NewFieldSpecification(reflect.TypeFor[Job](), "Retry")
	require.NoError(t, err)
	c, err := customization.Filtered(spec, apis.BuilderFunc(func(apis.Request, apis.Context) (any, error) {
		return 5, nil
	}))
	require.NoError(t, err)

	k := newKernel(t, c)
	j := resolve[Job](t, k)
	assert.Equal(t, 5, j.Retry)
	assert.NotEqual(t, 5, resolve[int](t, k), "only the matching member is affected")

	_, err = customization.Filtered(nil, apis.BuilderFunc(nil))
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)
	_, err = customization.Filtered(spec, nil)
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)
}

func TestOmit(t *testing.T) {
	spec, err := specification.NewFieldSpecification(reflect.TypeFor[Job](), "Clock")
	require.NoError(t, err)
	c, err := customization.Omit(spec)
	require.NoError(t, err)

	j := resolve[Job](t, newKernel(t, c))
	assert.Nil(t, j.Clock)
	assert.NotEmpty(t, j.Name)
}

func TestFreeze(t *testing.T) {
	k := newKernel(t)
	c, v, err := customization.Freeze(k, reflect.TypeFor[string]())
	require.NoError(t, err)
	frozen := v.(string)
	require.NotEmpty(t, frozen)

	k = newKernel(t, c)
	assert.Equal(t, frozen, resolve[string](t, k))
	assert.Equal(t, []string{frozen, frozen, frozen}, resolve[[]string](t, k))

	_, _, err = customization.Freeze(nil, reflect.TypeFor[string]())
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)
	_, _, err = customization.Freeze(k, nil)
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)
	_, _, err = customization.Freeze(k, reflect.TypeFor[chan int]())
	assert.ErrorIs(t, err, apis.ErrObjectCreation)
}

func TestComposite_LastAppliedWins(t *testing.T) {
	one, err := customization.Inject(reflect.TypeFor[int](), 1)
	require.NoError(t, err)
	two, err := customization.Inject(reflect.TypeFor[int](), 2)
	require.NoError(t, err)

	k := newKernel(t, customization.Composite(one, nil, two))
	for i := 0; i < 10; i++ {
		assert.Equal(t, 2, resolve[int](t, k))
	}
}
