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

package operation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvariantViolation is a sentinel error that can be used with
// errors.Is() to match any error reporting a broken processing invariant,
// regardless of the underlying error type
var ErrInvariantViolation = errors.New("operation invariant violated")

// UnknownOperationTypeError is returned when an operation carries a type
// outside the supported set
type UnknownOperationTypeError struct {
	Type OpType
}

func (e UnknownOperationTypeError) Error() string {
	return fmt.Sprintf("unknown operation type: %d", uint8(e.Type))
}

// Is allows errors.Is() to match ErrInvariantViolation
func (UnknownOperationTypeError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// InvariantViolationError reports an internal processing state that should
// be unreachable. Details carry the values that identify the broken state
type InvariantViolationError struct {
	Message string
	Details map[string]any
}

func newInvariantViolation(
	message string,
	details map[string]any,
) InvariantViolationError {
	return InvariantViolationError{
		Message: message,
		Details: details,
	}
}

func (e InvariantViolationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(e.Message)
	sb.WriteString(":")
	for _, k := range keys {
		sb.WriteString(
			fmt.Sprintf(" %s=%v", k, e.Details[k]),
		)
	}
	return sb.String()
}

// Is allows errors.Is() to match ErrInvariantViolation
func (InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}
