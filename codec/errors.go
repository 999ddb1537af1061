// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel errors so callers can use errors.Is
var (
	ErrConfiguration   = errors.New("codec configuration error")
	ErrTruncatedInput  = errors.New("truncated CBOR input")
	ErrTagMismatch     = errors.New("CBOR tag mismatch")
	ErrUnresolvedUnion = errors.New("unresolved union variant")
	ErrTypeMismatch    = errors.New("CBOR type mismatch")
	ErrDepthLimit      = errors.New("CBOR nesting depth limit exceeded")
)

// ConfigurationError indicates a type with no resolvable encoding shape
type ConfigurationError struct {
	Type   reflect.Type
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("cannot encode type %v: %s", e.Type, e.Reason)
}

func (ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// TruncatedInputError indicates the input ended before a claimed length was satisfied.
// Need is zero when the shortfall could not be determined
type TruncatedInputError struct {
	Offset int
	Need   int
	Have   int
}

func (e TruncatedInputError) Error() string {
	if e.Need > 0 {
		return fmt.Sprintf(
			"truncated CBOR input at offset %d: need %d bytes, have %d",
			e.Offset,
			e.Need,
			e.Have,
		)
	}
	return fmt.Sprintf(
		"truncated CBOR input at offset %d: %d bytes remaining",
		e.Offset,
		e.Have,
	)
}

func (TruncatedInputError) Is(target error) bool {
	return target == ErrTruncatedInput
}

// TagMismatchError indicates a tag outside the valid range for the expected shape
type TagMismatchError struct {
	Offset   int
	Tag      uint64
	Expected string
}

func (e TagMismatchError) Error() string {
	return fmt.Sprintf(
		"unexpected CBOR tag %d at offset %d: expected %s",
		e.Tag,
		e.Offset,
		e.Expected,
	)
}

func (TagMismatchError) Is(target error) bool {
	return target == ErrTagMismatch
}

// UnresolvedUnionError indicates that no variant of a union could be selected.
// Hint is set when the union was dispatched on a sibling discriminant, otherwise
// Causes holds the error from each rejected trial candidate in declaration order
type UnresolvedUnionError struct {
	Union        reflect.Type
	Offset       int
	Hint         string
	Discriminant uint64
	Causes       []error
}

func (e UnresolvedUnionError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf(
			"no variant of %v mapped for %s=%d at offset %d",
			e.Union,
			e.Hint,
			e.Discriminant,
			e.Offset,
		)
	}
	causes := make([]string, 0, len(e.Causes))
	for _, cause := range e.Causes {
		causes = append(causes, cause.Error())
	}
	return fmt.Sprintf(
		"no variant of %v matched at offset %d: [%s]",
		e.Union,
		e.Offset,
		strings.Join(causes, "; "),
	)
}

func (e UnresolvedUnionError) Unwrap() []error { return e.Causes }

func (UnresolvedUnionError) Is(target error) bool {
	return target == ErrUnresolvedUnion
}

// TypeMismatchError indicates the decoded shape is incompatible with the declared type
type TypeMismatchError struct {
	Offset int
	Type   reflect.Type
	Reason string
	Err    error
}

func (e TypeMismatchError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("CBOR type mismatch at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf(
		"cannot decode %v at offset %d: %s",
		e.Type,
		e.Offset,
		e.Reason,
	)
}

func (e TypeMismatchError) Unwrap() error { return e.Err }

func (TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// DepthLimitError indicates nesting deeper than the configured maximum
type DepthLimitError struct {
	Offset int
	Limit  int
}

func (e DepthLimitError) Error() string {
	return fmt.Sprintf(
		"CBOR nesting exceeds depth limit %d at offset %d",
		e.Limit,
		e.Offset,
	)
}

func (DepthLimitError) Is(target error) bool {
	return target == ErrDepthLimit
}

// abortsTrial reports whether an error must stop structural trial decoding instead of
// moving on to the next candidate
func abortsTrial(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrDepthLimit)
}
