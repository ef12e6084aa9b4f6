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

	"github.com/blinklabs-io/meridian/cbor"
	"github.com/blinklabs-io/meridian/ledger"
)

type AccountMergeResultCode int32

const (
	AccountMergeResultCodeSuccess       AccountMergeResultCode = 0
	AccountMergeResultCodeMalformed     AccountMergeResultCode = -1
	AccountMergeResultCodeNoAccount     AccountMergeResultCode = -2
	AccountMergeResultCodeImmutableSet  AccountMergeResultCode = -3
	AccountMergeResultCodeHasSubEntries AccountMergeResultCode = -4
	AccountMergeResultCodeDestFull      AccountMergeResultCode = -5
)

func (c AccountMergeResultCode) String() string {
	switch c {
	case AccountMergeResultCodeSuccess:
		return "success"
	case AccountMergeResultCodeMalformed:
		return "malformed"
	case AccountMergeResultCodeNoAccount:
		return "noAccount"
	case AccountMergeResultCodeImmutableSet:
		return "immutableSet"
	case AccountMergeResultCodeHasSubEntries:
		return "hasSubEntries"
	case AccountMergeResultCodeDestFull:
		return "destFull"
	}
	return fmt.Sprintf("unknown (%d)", int32(c))
}

func (c AccountMergeResultCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// AccountMergeResult carries the balance moved to the destination so
// downstream consumers do not have to reconstruct it from state diffs
type AccountMergeResult struct {
	cbor.StructAsArray
	Code          AccountMergeResultCode `json:"code"`
	MergedBalance int64                  `json:"mergedBalance"`
}

func (*AccountMergeResult) OpType() OpType {
	return OpTypeAccountMerge
}

func (r *AccountMergeResult) Succeeded() bool {
	return r.Code == AccountMergeResultCodeSuccess
}

type accountMergeHandler struct {
	baseHandler
}

// Merging gives away the whole account, so it needs high-threshold
// signatures
func (*accountMergeHandler) RequiredThreshold() ledger.ThresholdLevel {
	return ledger.ThresholdHigh
}

func (h *accountMergeHandler) op() *AccountMerge {
	return h.frame.op.Body.(*AccountMerge)
}

func (h *accountMergeHandler) res() *AccountMergeResult {
	return h.frame.res.Inner().(*AccountMergeResult)
}

func (h *accountMergeHandler) CheckValid(
	env *Env,
	st ledger.StateReader,
) (bool, error) {
	if h.op().Destination == h.frame.SourceID() {
		h.res().Code = AccountMergeResultCodeMalformed
		return false, nil
	}
	return true, nil
}

func (h *accountMergeHandler) Apply(
	env *Env,
	delta *ledger.Delta,
) (bool, error) {
	body := h.op()
	src, err := delta.Account(h.frame.SourceID())
	if err != nil {
		return false, err
	}
	dest, err := delta.Account(body.Destination)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			h.res().Code = AccountMergeResultCodeNoAccount
			return false, nil
		}
		return false, err
	}
	// Subentries hold reserves that would be orphaned by the merge
	if src.NumSubEntries > 0 {
		h.res().Code = AccountMergeResultCodeHasSubEntries
		return false, nil
	}
	if src.Flags&ledger.FlagAuthImmutable != 0 {
		h.res().Code = AccountMergeResultCodeImmutableSet
		return false, nil
	}
	newBalance, ok := ledger.SafeAdd(dest.Balance, src.Balance)
	if !ok {
		h.res().Code = AccountMergeResultCodeDestFull
		return false, nil
	}
	dest.Balance = newBalance
	delta.PutAccount(dest)
	delta.DeleteAccount(src.ID)
	h.res().Code = AccountMergeResultCodeSuccess
	h.res().MergedBalance = src.Balance
	return true, nil
}
