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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/blinklabs-io/meridian/cbor"
)

// GenesisDoc describes the initial ledger state
type GenesisDoc struct {
	Header     Header      `json:"header"`
	Accounts   []Account   `json:"accounts"`
	TrustLines []TrustLine `json:"trustLines,omitempty"`
}

func NewGenesisFromReader(r io.Reader) (GenesisDoc, error) {
	var ret GenesisDoc
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ret); err != nil {
		return ret, err
	}
	return ret, nil
}

func NewGenesisFromFile(path string) (GenesisDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return GenesisDoc{}, err
	}
	defer f.Close()
	return NewGenesisFromReader(f)
}

// Validate checks the genesis document for internal consistency
func (g GenesisDoc) Validate() error {
	if g.Header.BaseReserve < 0 || g.Header.BaseFee < 0 {
		return fmt.Errorf("negative base fee or reserve")
	}
	seenAccounts := map[AccountID]bool{}
	for _, acct := range g.Accounts {
		if acct.ID.IsZero() {
			return fmt.Errorf("genesis account with zero ID")
		}
		if seenAccounts[acct.ID] {
			return fmt.Errorf("duplicate genesis account: %s", acct.ID)
		}
		seenAccounts[acct.ID] = true
		if acct.Balance < 0 {
			return fmt.Errorf(
				"genesis account %s has negative balance",
				acct.ID,
			)
		}
	}
	seenLines := map[trustLineKey]bool{}
	for _, line := range g.TrustLines {
		if err := line.Asset.Validate(); err != nil {
			return err
		}
		if line.Asset.IsNative() {
			return fmt.Errorf("genesis trust line for native asset")
		}
		if !seenAccounts[line.Account] {
			return fmt.Errorf(
				"genesis trust line for unknown account: %s",
				line.Account,
			)
		}
		key := trustLineKey{account: line.Account, asset: line.Asset}
		if seenLines[key] {
			return fmt.Errorf(
				"duplicate genesis trust line: %s for %s",
				line.Asset,
				line.Account,
			)
		}
		seenLines[key] = true
		if line.Balance < 0 || line.Limit < line.Balance {
			return fmt.Errorf(
				"genesis trust line %s for %s has invalid balance or limit",
				line.Asset,
				line.Account,
			)
		}
	}
	return nil
}

// Store builds a MemStore populated with the genesis state
func (g GenesisDoc) Store() (*MemStore, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	st := NewMemStore(g.Header)
	for i := range g.Accounts {
		if err := st.PutAccount(&g.Accounts[i]); err != nil {
			return nil, err
		}
	}
	for i := range g.TrustLines {
		if err := st.PutTrustLine(&g.TrustLines[i]); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Hash returns the Blake2b-256 hash of the canonical CBOR encoding of the
// genesis document
func (g GenesisDoc) Hash() ([32]byte, error) {
	data, err := cbor.Encode(g)
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(data), nil
}
