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
	"sync"
)

// MemStore is an in-memory Store. Reads return copies and may run
// concurrently; writes are serialized by an internal RWMutex
type MemStore struct {
	mu         sync.RWMutex
	header     Header
	accounts   map[AccountID]*Account
	trustLines map[trustLineKey]*TrustLine
}

func NewMemStore(hdr Header) *MemStore {
	return &MemStore{
		header:     hdr,
		accounts:   map[AccountID]*Account{},
		trustLines: map[trustLineKey]*TrustLine{},
	}
}

func (s *MemStore) Account(id AccountID) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	if !ok {
		return nil, AccountNotFoundError{ID: id}
	}
	return cloneAccount(acct), nil
}

func (s *MemStore) TrustLine(account AccountID, asset Asset) (*TrustLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	line, ok := s.trustLines[trustLineKey{account: account, asset: asset}]
	if !ok {
		return nil, TrustLineNotFoundError{Account: account, Asset: asset}
	}
	return cloneTrustLine(line), nil
}

func (s *MemStore) Header() (*Header, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hdr := s.header
	return &hdr, nil
}

func (s *MemStore) PutAccount(acct *Account) error {
	if acct == nil {
		return errors.New("put of nil account")
	}
	if acct.AuthStandIn() {
		return errors.New("auth stand-in account cannot be persisted")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[acct.ID] = cloneAccount(acct)
	return nil
}

func (s *MemStore) DeleteAccount(id AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, id)
	return nil
}

func (s *MemStore) PutTrustLine(line *TrustLine) error {
	if line == nil {
		return errors.New("put of nil trust line")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := trustLineKey{account: line.Account, asset: line.Asset}
	s.trustLines[key] = cloneTrustLine(line)
	return nil
}

func (s *MemStore) DeleteTrustLine(account AccountID, asset Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trustLines, trustLineKey{account: account, asset: asset})
	return nil
}

func (s *MemStore) SetHeader(hdr *Header) error {
	if hdr == nil {
		return errors.New("set of nil header")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.header = *hdr
	return nil
}
