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

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel matched (via errors.Is) by all lookup errors
// for absent ledger entries
var ErrNotFound = errors.New("ledger entry not found")

// AccountNotFoundError is returned when looking up an absent account
type AccountNotFoundError struct {
	ID AccountID
}

func (e AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.ID)
}

func (e AccountNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TrustLineNotFoundError is returned when looking up an absent trust line
type TrustLineNotFoundError struct {
	Account AccountID
	Asset   Asset
}

func (e TrustLineNotFoundError) Error() string {
	return fmt.Sprintf(
		"trust line for %s to %s not found",
		e.Asset,
		e.Account,
	)
}

func (e TrustLineNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidAssetError is returned for assets that fail validation
type InvalidAssetError struct {
	Asset  Asset
	Reason string
}

func (e InvalidAssetError) Error() string {
	return fmt.Sprintf("invalid asset %s: %s", e.Asset, e.Reason)
}
