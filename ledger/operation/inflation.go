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

type InflationResultCode int32

const (
	InflationResultCodeSuccess       InflationResultCode = 0
	InflationResultCodeNotTime       InflationResultCode = -1
	InflationResultCodeNoDestination InflationResultCode = -2
)

func (c InflationResultCode) String() string {
	switch c {
	case InflationResultCodeSuccess:
		return "success"
	case InflationResultCodeNotTime:
		return "notTime"
	case InflationResultCodeNoDestination:
		return "noDestination"
	}
	return fmt.Sprintf("unknown (%d)", int32(c))
}

func (c InflationResultCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// InflationPayout records one minted credit of an inflation round
type InflationPayout struct {
	cbor.StructAsArray
	Destination ledger.AccountID `json:"destination"`
	Amount      int64            `json:"amount"`
}

type InflationResult struct {
	cbor.StructAsArray
	Code    InflationResultCode `json:"code"`
	Payouts []InflationPayout   `json:"payouts,omitempty"`
}

func (*InflationResult) OpType() OpType {
	return OpTypeInflation
}

func (r *InflationResult) Succeeded() bool {
	return r.Code == InflationResultCodeSuccess
}

type inflationHandler struct {
	baseHandler
}

func (*inflationHandler) RequiredThreshold() ledger.ThresholdLevel {
	return ledger.ThresholdLow
}

func (h *inflationHandler) res() *InflationResult {
	return h.frame.res.Inner().(*InflationResult)
}

func (h *inflationHandler) CheckValid(
	env *Env,
	st ledger.StateReader,
) (bool, error) {
	return true, nil
}

func (h *inflationHandler) Apply(
	env *Env,
	delta *ledger.Delta,
) (bool, error) {
	hdr, err := delta.Header()
	if err != nil {
		return false, err
	}
	if uint64(hdr.LedgerSeq) <
		uint64(hdr.InflationSeq)+ledger.InflationInterval {
		h.res().Code = InflationResultCodeNotTime
		return false, nil
	}
	dest, err := delta.Account(hdr.InflationDest)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			h.res().Code = InflationResultCodeNoDestination
			return false, nil
		}
		return false, err
	}
	minted := hdr.TotalCoins / ledger.InflationRateDivisor
	payout, ok := ledger.SafeAdd(minted, hdr.FeePool)
	var newBalance, newTotal int64
	if ok {
		newBalance, ok = ledger.SafeAdd(dest.Balance, payout)
	}
	if ok {
		newTotal, ok = ledger.SafeAdd(hdr.TotalCoins, minted)
	}
	if ok {
		dest.Balance = newBalance
		delta.PutAccount(dest)
		hdr.TotalCoins = newTotal
		hdr.FeePool = 0
		h.res().Payouts = []InflationPayout{
			{
				Destination: dest.ID,
				Amount:      payout,
			},
		}
	} else {
		// The destination cannot absorb the round. The round still counts:
		// the schedule advances and the coins stay unminted
		env.logger.Debug(
			"inflation payout skipped",
			"component", "operation",
			"destination", dest.ID.String(),
		)
	}
	hdr.InflationSeq = hdr.LedgerSeq
	delta.SetHeader(hdr)
	h.res().Code = InflationResultCodeSuccess
	return true, nil
}
