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

package compose_test

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/compose"
	"dirpx.dev/fixture/config"
	"dirpx.dev/fixture/customization"
)

type Profile struct {
	Handle string
	Score  int
}

type Account struct {
	Owner   Profile
	Backup  *Profile
	Aliases []string
}

func newProfile(handle string) Profile { return Profile{Handle: "@" + handle} }

func resolve[T any](t *testing.T, k apis.Kernel) T {
	t.Helper()
	v, err := k.Resolve(apis.TypeRequest{Type: reflect.TypeFor[T]()})
	require.NoError(t, err)
	return v.(T)
}

func TestBuildRegistry_Migrates(t *testing.T) {
	cmp := compose.New()
	cfg := config.DefaultConfig()

	prev := cmp.BuildRegistry(cfg, nil)
	require.NoError(t, prev.Register(reflect.TypeFor[Profile](), newProfile))

	next := cmp.BuildRegistry(cfg, prev)
	require.NotSame(t, prev, next)
	assert.Equal(t, 1, next.Count())
	_, ok := next.Lookup(reflect.TypeFor[Profile]())
	assert.True(t, ok)

	// The registries are independent afterwards.
	prev.Reset()
	assert.Equal(t, 1, next.Count())
}

func TestBuildKernel_Defaults(t *testing.T) {
	cmp := compose.New()
	cfg := config.DefaultConfig()
	k := cmp.BuildKernel(cfg, cmp.BuildRegistry(cfg, nil), nil)

	a := resolve[Account](t, k)
	assert.True(t, strings.HasPrefix(a.Owner.Handle, "Handle"))
	assert.Positive(t, a.Owner.Score)
	require.NotNil(t, a.Backup)
	assert.NotEmpty(t, a.Backup.Handle)
	assert.Len(t, a.Aliases, cfg.RepeatCount)
	assert.Equal(t, cfg, k.Config())
}

func TestBuildKernel_FactoryBeforeStruct(t *testing.T) {
	cmp := compose.New()
	cfg := config.DefaultConfig()
	reg := cmp.BuildRegistry(cfg, nil)
	require.NoError(t, reg.Register(reflect.TypeFor[Profile](), newProfile))
	k := cmp.BuildKernel(cfg, reg, nil)

	// The factory ran, then population overwrote the fields.
	p := resolve[Profile](t, k)
	assert.True(t, strings.HasPrefix(p.Handle, "Handle"))

	// Without auto properties the factory result is returned as is.
	cfg = config.NewConfig(config.WithAutoProperties(false))
	k = cmp.BuildKernel(cfg, reg, nil)
	p = resolve[Profile](t, k)
	assert.True(t, strings.HasPrefix(p.Handle, "@arg0"))
	assert.Zero(t, p.Score)
}

func TestBuildKernel_AutoPropertiesOff(t *testing.T) {
	cmp := compose.New()
	cfg := config.NewConfig(config.WithAutoProperties(false))
	k := cmp.BuildKernel(cfg, cmp.BuildRegistry(cfg, nil), nil)
	assert.Equal(t, Account{}, resolve[Account](t, k))
}

func TestBuildKernel_SuppressRules(t *testing.T) {
	cmp := compose.New()
	cfg := config.NewConfig(config.WithSuppress(
		apis.Rule{Engine: "expr", Expr: `targetType == "compose_test.Profile"`},
	))
	k := cmp.BuildKernel(cfg, cmp.BuildRegistry(cfg, nil), nil)

	a := resolve[Account](t, k)
	assert.Equal(t, Profile{}, a.Owner)
	require.NotNil(t, a.Backup)
	assert.Equal(t, Profile{}, *a.Backup)
	assert.NotEmpty(t, a.Aliases)
}

func TestBuildKernel_InvalidRuleIsLogged(t *testing.T) {
	var buf bytes.Buffer
	cmp := compose.New(compose.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	cfg := config.NewConfig(config.WithSuppress(apis.Rule{Engine: "nope", Expr: "true"}))
	k := cmp.BuildKernel(cfg, cmp.BuildRegistry(cfg, nil), nil)

	assert.NotEmpty(t, resolve[Account](t, k).Owner.Handle)
	assert.Contains(t, buf.String(), "skipping invalid suppress rule")
}

func TestBuildKernel_CustomizationsOrder(t *testing.T) {
	cmp := compose.New()
	cfg := config.DefaultConfig()
	first, err := customization.Inject(reflect.TypeFor[int](), 1)
	require.NoError(t, err)
	second, err := customization.Inject(reflect.TypeFor[int](), 2)
	require.NoError(t, err)

	k := cmp.BuildKernel(cfg, cmp.BuildRegistry(cfg, nil), []apis.Customization{first, nil, second})
	assert.Equal(t, 2, resolve[int](t, k))
	assert.Equal(t, 2, resolve[Profile](t, k).Score)
}

func TestBuildKernel_Recursion(t *testing.T) {
	type tree struct {
		Children []tree
		Parent   *tree
	}
	cmp := compose.New()

	cfg := config.NewConfig(config.WithRecursion(apis.RecursionOmit))
	k := cmp.BuildKernel(cfg, cmp.BuildRegistry(cfg, nil), nil)
	tr := resolve[tree](t, k)
	assert.Nil(t, tr.Parent)
	assert.Empty(t, tr.Children)

	cfg = config.NewConfig(config.WithRecursion(apis.RecursionZero))
	k = cmp.BuildKernel(cfg, cmp.BuildRegistry(cfg, nil), nil)
	tr = resolve[tree](t, k)
	require.NotNil(t, tr.Parent)
	assert.Len(t, tr.Children, cfg.RepeatCount)
}
