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

// Package strategy holds the default specimen builders of the chain: factory
// invocation, self-providing types, leaf values (strings, numbers, booleans,
// time, UUIDs), containers (pointers, slices, arrays, maps), request relays,
// struct construction and recursion handlers.
//
// Every builder declines with the bare apis.ErrNoSpecimen for requests it does
// not handle, so falling through the chain stays cheap.
package strategy
