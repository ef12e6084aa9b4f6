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

// Rejection and failure reasons reported to the Observer
const (
	ReasonNoAccount               = "no-account"
	ReasonBadAuth                 = "bad-auth"
	ReasonMalformedChangeTrust    = "malformed-change-trust-op"
	ReasonInvalidLimitChangeTrust = "invalid-limit-change-trust-op"
)

// Observer receives notifications about operation outcomes that are worth
// counting, such as rejected operations during validation and internal
// failures during apply. Notifications are fire-and-forget and never affect
// processing
type Observer interface {
	// OperationInvalid is called when an operation is rejected during
	// validation
	OperationInvalid(reason string)
	// OperationFailure is called when an operation fails in a way that
	// indicates an internal defect rather than a normal rejection
	OperationFailure(reason string)
}

// NopObserver is an Observer that ignores every notification
type NopObserver struct{}

func (NopObserver) OperationInvalid(string) {}

func (NopObserver) OperationFailure(string) {}
