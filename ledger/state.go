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

// StateReader provides read access to ledger state. Lookups of absent
// entries return errors matching ErrNotFound. Implementations return
// caller-owned copies: mutating a returned entity never affects the
// underlying state
type StateReader interface {
	Account(id AccountID) (*Account, error)
	TrustLine(account AccountID, asset Asset) (*TrustLine, error)
	Header() (*Header, error)
}

// Store extends StateReader with mutation. Put operations store a copy of
// the provided entity; deletes of absent entries are no-ops
type Store interface {
	StateReader
	PutAccount(acct *Account) error
	DeleteAccount(id AccountID) error
	PutTrustLine(line *TrustLine) error
	DeleteTrustLine(account AccountID, asset Asset) error
	SetHeader(hdr *Header) error
}
