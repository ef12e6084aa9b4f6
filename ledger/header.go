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

package ledger

import "github.com/blinklabs-io/meridian/cbor"

const (
	// InflationInterval is the minimum number of ledgers between inflation
	// rounds
	InflationInterval = 64

	// InflationRateDivisor determines the per-round inflation amount as a
	// fraction of total coins (one basis point per round)
	InflationRateDivisor = 10000
)

// Header carries the ledger-wide parameters and running totals. It is part
// of ledger state: operations read it for reserve calculations and the
// inflation operation updates it through the overlay
type Header struct {
	cbor.StructAsArray
	LedgerSeq     uint32    `json:"ledgerSeq"`
	BaseFee       int64     `json:"baseFee"`
	BaseReserve   int64     `json:"baseReserve"`
	TotalCoins    int64     `json:"totalCoins"`
	FeePool       int64     `json:"feePool"`
	InflationSeq  uint32    `json:"inflationSeq"`
	InflationDest AccountID `json:"inflationDest"`
}

// StartingSeqNum returns the sequence number a newly created account starts
// with in the ledger this header describes
func (h *Header) StartingSeqNum() uint64 {
	return uint64(h.LedgerSeq) << 32
}
