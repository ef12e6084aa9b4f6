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
	"math"

	"github.com/blinklabs-io/meridian/ledger"
)

// newSyntheticChangeTrust builds the frame for a ledger-generated
// change-trust operation opening a maximum-limit line for the account. The
// result slot is pre-set to the inner variant and the fee descriptor
// charges nothing
func newSyntheticChangeTrust(
	account *ledger.Account,
	asset ledger.Asset,
	tx Transaction,
) (*Frame, error) {
	op := Operation{
		SourceAccount: &account.ID,
		Body: &ChangeTrust{
			Line:  asset,
			Limit: math.MaxInt64,
		},
	}
	res := NewResult()
	res.opType = OpTypeChangeTrust
	res.initInner()
	f, err := NewFrame(op, res, FeeNone(), tx)
	if err != nil {
		return nil, err
	}
	// Source resolution and signature authorization are bypassed: the
	// account was already resolved by the invoking handler
	f.source = account
	return f, nil
}

// CreateTrustLine opens a trust line for the account on the given asset by
// running a synthetic change-trust operation against the delta. It returns
// the created line, or (nil, nil) when the ledger cannot hold the line (the
// asset has no live issuer, or the account cannot cover the reserve). Any
// other rejection means the invoking handler built a request that breaks
// the synthetic contract, which is a defect
func CreateTrustLine(
	env *Env,
	delta *ledger.Delta,
	tx Transaction,
	account *ledger.Account,
	asset ledger.Asset,
) (*ledger.TrustLine, error) {
	if env == nil {
		return nil, errors.New("no environment provided")
	}
	if delta == nil {
		return nil, errors.New("no delta provided")
	}
	if account == nil {
		return nil, errors.New("no account provided")
	}
	f, err := newSyntheticChangeTrust(account, asset, tx)
	if err != nil {
		return nil, err
	}
	ok, err := f.handler.CheckValid(env, delta)
	if err != nil {
		return nil, err
	}
	if ok {
		ok, err = f.handler.Apply(env, delta)
		if err != nil {
			return nil, err
		}
	}
	if f.res.Code() != ResultCodeInner {
		return nil, newInvariantViolation(
			"synthetic change trust lost its inner result",
			map[string]any{
				"code": f.res.Code().String(),
			},
		)
	}
	if !ok {
		inner, innerOk := f.res.Inner().(*ChangeTrustResult)
		if !innerOk {
			return nil, newInvariantViolation(
				"synthetic change trust carries a foreign inner result",
				nil,
			)
		}
		switch inner.Code {
		case ChangeTrustResultCodeNoIssuer,
			ChangeTrustResultCodeLowReserve:
			// The line cannot exist on the current ledger. Not a defect:
			// the invoking handler reports its own rejection
			return nil, nil
		case ChangeTrustResultCodeMalformed:
			env.observer.OperationFailure(ReasonMalformedChangeTrust)
			return nil, newInvariantViolation(
				"synthetic change trust rejected as malformed",
				map[string]any{
					"account": account.ID.String(),
					"asset":   asset.String(),
				},
			)
		case ChangeTrustResultCodeInvalidLimit:
			env.observer.OperationFailure(ReasonInvalidLimitChangeTrust)
			return nil, newInvariantViolation(
				"synthetic change trust rejected for its limit",
				map[string]any{
					"account": account.ID.String(),
					"asset":   asset.String(),
				},
			)
		default:
			return nil, newInvariantViolation(
				"synthetic change trust failed",
				map[string]any{
					"account": account.ID.String(),
					"asset":   asset.String(),
					"code":    inner.Code.String(),
				},
			)
		}
	}
	line, err := delta.TrustLine(account.ID, asset)
	if err != nil {
		return nil, err
	}
	return line, nil
}
