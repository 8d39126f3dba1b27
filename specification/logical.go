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

import "dirpx.dev/fixture/apis"

// And matches when every specification matches. An empty And matches everything.
func And(specs ...apis.Specification) apis.Specification {
	specs = compact(specs)
	return apis.SpecificationFunc(func(r apis.Request) bool {
		for _, s := range specs {
			if !s.IsSatisfiedBy(r) {
				return false
			}
		}
		return true
	})
}

// Or matches when any specification matches. An empty Or matches nothing.
func Or(specs ...apis.Specification) apis.Specification {
	specs = compact(specs)
	return apis.SpecificationFunc(func(r apis.Request) bool {
		for _, s := range specs {
			if s.IsSatisfiedBy(r) {
				return true
			}
		}
		return false
	})
}

// Not inverts spec. A nil spec is treated as False, so Not(nil) matches everything.
func Not(spec apis.Specification) apis.Specification {
	return apis.SpecificationFunc(func(r apis.Request) bool {
		return spec == nil || !spec.IsSatisfiedBy(r)
	})
}

// True matches every request.
func True() apis.Specification {
	return apis.SpecificationFunc(func(apis.Request) bool { return true })
}

// False matches no request.
func False() apis.Specification {
	return apis.SpecificationFunc(func(apis.Request) bool { return false })
}

// compact drops nil specifications.
func compact(specs []apis.Specification) []apis.Specification {
	out := make([]apis.Specification, 0, len(specs))
	for _, s := range specs {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
