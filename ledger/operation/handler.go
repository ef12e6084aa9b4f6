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

import "github.com/blinklabs-io/meridian/ledger"

// Handler implements the kind-specific logic for one operation type. The
// frame drives the shared prerequisite checks and delegates to the handler
// pinned at construction
type Handler interface {
	// RequiredThreshold returns the threshold level the parent
	// transaction's signature weight must reach on the acting account
	RequiredThreshold() ledger.ThresholdLevel
	// CheckValid validates the operation against the given state without
	// modifying anything. A false return means the operation was rejected
	// and the inner result carries the reason
	CheckValid(env *Env, st ledger.StateReader) (bool, error)
	// Apply records the operation's effects in the delta. A false return
	// means the operation failed and the inner result carries the reason
	Apply(env *Env, delta *ledger.Delta) (bool, error)
}

// baseHandler carries the frame a handler works against and supplies the
// default medium threshold
type baseHandler struct {
	frame *Frame
}

func (baseHandler) RequiredThreshold() ledger.ThresholdLevel {
	return ledger.ThresholdMedium
}

// canAddSubEntry reports whether the account's balance covers the reserve
// for one additional subentry
func canAddSubEntry(acct *ledger.Account, hdr *ledger.Header) bool {
	needed, ok := ledger.SafeMul(
		int64(acct.NumSubEntries)+3,
		hdr.BaseReserve,
	)
	if !ok {
		return false
	}
	return acct.Balance >= needed
}
