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

package registry_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/registry"
)

// A few named types to avoid anonymous/unnamed pitfalls.
type T0 struct{}
type T1 struct{}
type T2 struct{}
type T3 struct{}
type T4 struct{}
type T5 struct{}
type T6 struct{}
type T7 struct{}
type T8 struct{}
type T9 struct{}

func f0() T0 { return T0{} }
func f1() T1 { return T1{} }
func f2() T2 { return T2{} }
func f3() T3 { return T3{} }
func f4() T4 { return T4{} }
func f5() T5 { return T5{} }
func f6() T6 { return T6{} }
func f7() T7 { return T7{} }
func f8() T8 { return T8{} }
func f9() T9 { return T9{} }

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New()

	types := []reflect.Type{
		reflect.TypeOf(T0{}), reflect.TypeOf(T1{}), reflect.TypeOf(T2{}),
		reflect.TypeOf(T3{}), reflect.TypeOf(T4{}), reflect.TypeOf(T5{}),
		reflect.TypeOf(T6{}), reflect.TypeOf(T7{}), reflect.TypeOf(T8{}),
		reflect.TypeOf(T9{}),
	}
	factories := []any{f0, f1, f2, f3, f4, f5, f6, f7, f8, f9}

	// Register once (sequential) to establish baseline.
	for i, tt := range types {
		if err := reg.Register(tt, factories[i]); err != nil {
			t.Fatalf("register %s: %v", tt, err)
		}
	}

	// Hammer with concurrent lookups and idempotent re-registrations.
	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				tt := types[i%len(types)]
				if f, ok := reg.Lookup(tt); !ok || f.Type().Out(0) != tt {
					t.Errorf("lookup failed for %v: ok=%v", tt, ok)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (idempotent re-register)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(types)
				if err := reg.Register(types[j], factories[j]); err != nil {
					t.Errorf("re-register %v: %v", types[j], err)
					return
				}
			}
		}(w)
	}

	wg.Wait()

	// Final consistency checks.
	if reg.Count() != len(types) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(types))
	}
	got := map[reflect.Type]reflect.Type{}
	for _, e := range reg.Entries() {
		got[e.Type] = e.Factory.Type()
	}
	for i, tt := range types {
		if got[tt] != reflect.TypeOf(factories[i]) {
			t.Fatalf("entry mismatch for %v: got %v", tt, got[tt])
		}
	}
}

// TestConcurrentFirstRegistration races distinct factories for one type:
// exactly one wins, every other writer sees a conflict.
func TestConcurrentFirstRegistration(t *testing.T) {
	reg := registry.New()
	tt := reflect.TypeFor[int]()

	workers := runtime.GOMAXPROCS(0) * 4
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	factories := []any{
		func() int { return 1 },
		func() int { return 2 },
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			if err := reg.Register(tt, factories[id%2]); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	if reg.Count() != 1 {
		t.Fatalf("count: got %d want 1", reg.Count())
	}
	if wins < 1 {
		t.Fatalf("no registration succeeded")
	}
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	reg := registry.New()

	_ = reg.Register(reflect.TypeOf(T0{}), f0)
	_ = reg.Register(reflect.TypeOf(T1{}), f1)

	snap := reg.Entries() // snapshot copy expected
	reg.Reset()

	// After Reset, Count() should be 0, but previous snapshot must still be usable.
	if reg.Count() != 0 {
		t.Fatalf("count after reset: got %d want 0", reg.Count())
	}
	if _, ok := reg.Lookup(reflect.TypeOf(T0{})); ok {
		t.Fatalf("lookup after reset: unexpected hit")
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot length changed unexpectedly: %d", len(snap))
	}
	for _, e := range snap {
		if !e.Factory.Func.IsValid() {
			t.Fatalf("snapshot contents invalid after reset")
		}
	}
}

func BenchmarkLookup(b *testing.B) {
	reg := registry.New()
	_ = reg.Register(reflect.TypeOf(T0{}), f0)
	tt := reflect.TypeOf(T0{})
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = reg.Lookup(tt)
		}
	})
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New()
