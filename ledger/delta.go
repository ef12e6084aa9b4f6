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
	"bytes"
	"sort"
)

type trustLineKey struct {
	account AccountID
	asset   Asset
}

func compareTrustLineKeys(a, b trustLineKey) int {
	if c := bytes.Compare(a.account[:], b.account[:]); c != 0 {
		return c
	}
	if a.asset.Code != b.asset.Code {
		if a.asset.Code < b.asset.Code {
			return -1
		}
		return 1
	}
	return bytes.Compare(a.asset.Issuer[:], b.asset.Issuer[:])
}

// Delta is a mutable overlay over a base StateReader. Reads fall through to
// the base until an entry is written locally; writes are buffered until
// Commit. Discarding the Delta without committing is the rollback. A nil
// entry in the local maps marks a buffered delete
type Delta struct {
	base       StateReader
	accounts   map[AccountID]*Account
	trustLines map[trustLineKey]*TrustLine
	header     *Header
}

func NewDelta(base StateReader) *Delta {
	return &Delta{
		base:       base,
		accounts:   map[AccountID]*Account{},
		trustLines: map[trustLineKey]*TrustLine{},
	}
}

func (d *Delta) Account(id AccountID) (*Account, error) {
	if acct, ok := d.accounts[id]; ok {
		if acct == nil {
			return nil, AccountNotFoundError{ID: id}
		}
		return cloneAccount(acct), nil
	}
	return d.base.Account(id)
}

func (d *Delta) TrustLine(account AccountID, asset Asset) (*TrustLine, error) {
	key := trustLineKey{account: account, asset: asset}
	if line, ok := d.trustLines[key]; ok {
		if line == nil {
			return nil, TrustLineNotFoundError{Account: account, Asset: asset}
		}
		return cloneTrustLine(line), nil
	}
	return d.base.TrustLine(account, asset)
}

func (d *Delta) Header() (*Header, error) {
	if d.header != nil {
		hdr := *d.header
		return &hdr, nil
	}
	return d.base.Header()
}

// PutAccount buffers an account write. The account is copied, so the caller
// may keep mutating its own instance. Auth stand-in accounts are never
// persisted; writing one is a programmer defect and panics
func (d *Delta) PutAccount(acct *Account) {
	if acct == nil {
		panic("put of nil account")
	}
	if acct.AuthStandIn() {
		panic("put of auth stand-in account")
	}
	d.accounts[acct.ID] = cloneAccount(acct)
}

func (d *Delta) DeleteAccount(id AccountID) {
	d.accounts[id] = nil
}

func (d *Delta) PutTrustLine(line *TrustLine) {
	if line == nil {
		panic("put of nil trust line")
	}
	key := trustLineKey{account: line.Account, asset: line.Asset}
	d.trustLines[key] = cloneTrustLine(line)
}

func (d *Delta) DeleteTrustLine(account AccountID, asset Asset) {
	d.trustLines[trustLineKey{account: account, asset: asset}] = nil
}

func (d *Delta) SetHeader(hdr *Header) {
	tmp := *hdr
	d.header = &tmp
}

// Changed reports whether the delta has buffered any writes
func (d *Delta) Changed() bool {
	return len(d.accounts) > 0 || len(d.trustLines) > 0 || d.header != nil
}

// Commit applies the buffered writes to the store in deterministic order:
// accounts sorted by ID, then trust lines sorted by (account, asset), then
// the header
func (d *Delta) Commit(st Store) error {
	accountIDs := make([]AccountID, 0, len(d.accounts))
	for id := range d.accounts {
		accountIDs = append(accountIDs, id)
	}
	sort.Slice(accountIDs, func(i, j int) bool {
		return bytes.Compare(accountIDs[i][:], accountIDs[j][:]) < 0
	})
	for _, id := range accountIDs {
		if acct := d.accounts[id]; acct == nil {
			if err := st.DeleteAccount(id); err != nil {
				return err
			}
		} else if err := st.PutAccount(acct); err != nil {
			return err
		}
	}
	lineKeys := make([]trustLineKey, 0, len(d.trustLines))
	for key := range d.trustLines {
		lineKeys = append(lineKeys, key)
	}
	sort.Slice(lineKeys, func(i, j int) bool {
		return compareTrustLineKeys(lineKeys[i], lineKeys[j]) < 0
	})
	for _, key := range lineKeys {
		if line := d.trustLines[key]; line == nil {
			if err := st.DeleteTrustLine(key.account, key.asset); err != nil {
				return err
			}
		} else if err := st.PutTrustLine(line); err != nil {
			return err
		}
	}
	if d.header != nil {
		if err := st.SetHeader(d.header); err != nil {
			return err
		}
	}
	return nil
}
