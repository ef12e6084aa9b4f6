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
	"fmt"

	"github.com/blinklabs-io/meridian/cbor"
)

// FeeType classifies how an operation participates in fee charging
type FeeType uint8

const (
	// FeeTypeNone marks operations that charge no fee, such as synthetic
	// operations the ledger generates internally
	FeeTypeNone FeeType = 0
	// FeeTypeCharged marks operations that charge the given amount
	FeeTypeCharged FeeType = 1
)

func (t FeeType) String() string {
	switch t {
	case FeeTypeNone:
		return "none"
	case FeeTypeCharged:
		return "charged"
	}
	return fmt.Sprintf("unknown (%d)", uint8(t))
}

// Fee describes the fee attached to one operation
type Fee struct {
	cbor.StructAsArray
	Type   FeeType `json:"type"`
	Amount int64   `json:"amount"`
}

// FeeNone returns a fee declaration for operations that charge nothing
func FeeNone() Fee {
	return Fee{Type: FeeTypeNone}
}

// FeeCharged returns a fee declaration for the given amount
func FeeCharged(amount int64) Fee {
	return Fee{Type: FeeTypeCharged, Amount: amount}
}
