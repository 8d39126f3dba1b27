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
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned (or panicked with) when a required input
	// such as a type, name, request or criterion is missing. It signals caller
	// misuse and is never swallowed.
	ErrInvalidArgument = errors.New("fixture: invalid argument")

	// ErrNoSpecimen is the "unresolved" signal: a builder does not handle the
	// request. It is a value, not a failure, and lets the chain fall through to
	// the next builder.
	ErrNoSpecimen = errors.New("fixture: no specimen")

	// ErrCircularReference marks a request that reappeared on its own
	// resolution path.
	ErrCircularReference = errors.New("fixture: circular reference")

	// ErrDepthExceeded is returned when a resolution path grows beyond
	// Config.MaxDepth. It is fatal and aborts the whole resolution.
	ErrDepthExceeded = errors.New("fixture: recursion depth exceeded")

	// ErrObjectCreation marks a top-level resolution that produced no specimen.
	ErrObjectCreation = errors.New("fixture: object creation failed")
)

// InvalidArgument returns an error wrapping ErrInvalidArgument for the named argument.
func InvalidArgument(name string) error {
	return fmt.Errorf("%w: %s must not be nil", ErrInvalidArgument, name)
}

// IsUnresolved reports whether err is the "no specimen" signal (including
// circular references), as opposed to a fatal failure.
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrNoSpecimen)
}

// CircularReferenceError describes a detected cycle. It matches both
// ErrCircularReference and ErrNoSpecimen with errors.Is, so the parent frame
// treats it as an unresolved sub-request.
type CircularReferenceError struct {
	// Request is the request that reappeared.
	Request Request
	// Path is the active resolution path, outermost first.
	Path []Request
}

// Error implements error.
func (e *CircularReferenceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("fixture: circular reference detected for %s (path depth %d)", e.Request, len(e.Path))
}

// Is implements errors.Is matching.
func (e *CircularReferenceError) Is(target error) bool {
	return target == ErrCircularReference || target == ErrNoSpecimen
}

// ObjectCreationError is reported to the caller when a top-level resolution ends
// without a specimen or with a fatal error.
type ObjectCreationError struct {
	// Request is the top-level request that could not be satisfied.
	Request Request
	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *ObjectCreationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("fixture: unable to create a specimen for %s: %v", e.Request, e.Err)
}

// Unwrap exposes both the cause and ErrObjectCreation.
func (e *ObjectCreationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{ErrObjectCreation, e.Err}
}
