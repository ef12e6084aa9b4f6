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

// TrustLine records an account's willingness to hold a credit asset up to a
// limit, along with its current balance of that asset
type TrustLine struct {
	cbor.StructAsArray
	Account    AccountID `json:"account"`
	Asset      Asset     `json:"asset"`
	Balance    int64     `json:"balance"`
	Limit      int64     `json:"limit"`
	Authorized bool      `json:"authorized"`
}

// Headroom returns how much more of the asset the line can hold
func (t *TrustLine) Headroom() int64 {
	return t.Limit - t.Balance
}

// Credit adds amount to the line's balance, reporting whether it fits within
// the limit
func (t *TrustLine) Credit(amount int64) bool {
	balance, ok := SafeAdd(t.Balance, amount)
	if !ok || balance > t.Limit {
		return false
	}
	t.Balance = balance
	return true
}

// Debit subtracts amount from the line's balance, reporting whether the
// balance covers it
func (t *TrustLine) Debit(amount int64) bool {
	if amount > t.Balance {
		return false
	}
	t.Balance -= amount
	return true
}

func cloneTrustLine(line *TrustLine) *TrustLine {
	ret := *line
	return &ret
}
