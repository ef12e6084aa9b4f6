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
	"testing"

	"github.com/blinklabs-io/meridian/internal/test"
	"github.com/blinklabs-io/meridian/ledger"
)

const testBaseReserve = 5_000_000

func testID(n byte) ledger.AccountID {
	var id ledger.AccountID
	for i := range id {
		id[i] = n
	}
	return id
}

func testHeader() ledger.Header {
	return ledger.Header{
		LedgerSeq:   100,
		BaseFee:     100,
		BaseReserve: testBaseReserve,
		TotalCoins:  1_000_000_000_000,
		FeePool:     50_000,
	}
}

func newTestStore(
	t *testing.T,
	accts ...*ledger.Account,
) *ledger.MemStore {
	t.Helper()
	st := ledger.NewMemStore(testHeader())
	for _, acct := range accts {
		if err := st.PutAccount(acct); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	return st
}

func newFundedAccount(id ledger.AccountID, balance int64) *ledger.Account {
	acct := ledger.NewAccount(id)
	acct.Balance = balance
	return acct
}

type countingObserver struct {
	invalid map[string]int
	failure map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		invalid: map[string]int{},
		failure: map[string]int{},
	}
}

func (o *countingObserver) OperationInvalid(reason string) {
	o.invalid[reason]++
}

func (o *countingObserver) OperationFailure(reason string) {
	o.failure[reason]++
}

func newTestEnv(
	t *testing.T,
	st ledger.StateReader,
) (*Env, *countingObserver) {
	t.Helper()
	obs := newCountingObserver()
	env, err := NewEnv(st, WithObserver(obs))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return env, obs
}

func mustFrame(t *testing.T, op Operation, tx Transaction) *Frame {
	t.Helper()
	f, err := NewFrame(op, NewResult(), FeeCharged(100), tx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return f
}

// checkOp builds a frame for the operation and runs check-only validation
// against committed state
func checkOp(
	t *testing.T,
	env *Env,
	op Operation,
	tx Transaction,
) (*Frame, bool) {
	t.Helper()
	f := mustFrame(t, op, tx)
	ok, err := f.CheckValid(env, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return f, ok
}

// applyOp builds a frame for the operation and applies it against a fresh
// delta over the store, committing on success
func applyOp(
	t *testing.T,
	env *Env,
	st *ledger.MemStore,
	op Operation,
	tx Transaction,
) (*Frame, bool) {
	t.Helper()
	f := mustFrame(t, op, tx)
	delta := ledger.NewDelta(st)
	ok, err := f.Apply(env, delta)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ok {
		if err := delta.Commit(st); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	return f, ok
}

// simpleTx builds a parent transaction with no signatures. Accounts with
// zero operation thresholds authorize against it
func simpleTx(source ledger.AccountID) *test.Tx {
	return test.NewTx(source, test.Digest([]byte("test-tx")))
}
