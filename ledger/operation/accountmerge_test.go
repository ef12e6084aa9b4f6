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
	"math"
	"testing"

	"github.com/blinklabs-io/meridian/ledger"
)

func accountMergeCode(t *testing.T, f *Frame) AccountMergeResultCode {
	t.Helper()
	return f.Result().Inner().(*AccountMergeResult).Code
}

func TestAccountMergeThreshold(t *testing.T) {
	f := mustFrame(
		t,
		Operation{Body: &AccountMerge{Destination: testID(2)}},
		simpleTx(testID(1)),
	)
	if f.handler.RequiredThreshold() != ledger.ThresholdHigh {
		t.Fatalf(
			"unexpected threshold: %s",
			f.handler.RequiredThreshold().String(),
		)
	}
}

func TestAccountMergeSelf(t *testing.T) {
	st := newTestStore(t, newFundedAccount(testID(1), 100_000_000))
	env, _ := newTestEnv(t, st)
	op := Operation{Body: &AccountMerge{Destination: testID(1)}}
	f, ok := checkOp(t, env, op, simpleTx(testID(1)))
	if ok {
		t.Fatal("expected operation to be rejected")
	}
	if code := accountMergeCode(t, f); code != AccountMergeResultCodeMalformed {
		t.Fatalf("unexpected inner code: %s", code.String())
	}
}

func TestAccountMergeApply(t *testing.T) {
	srcID := testID(1)
	destID := testID(2)
	testDefs := []struct {
		name        string
		srcFlags    ledger.AccountFlags
		srcSubs     uint32
		destBalance int64
		noDest      bool
		wantOk      bool
		wantCode    AccountMergeResultCode
	}{
		{
			name:        "success",
			destBalance: 50_000_000,
			wantOk:      true,
			wantCode:    AccountMergeResultCodeSuccess,
		},
		{
			name:     "destination missing",
			noDest:   true,
			wantCode: AccountMergeResultCodeNoAccount,
		},
		{
			name:        "source has subentries",
			srcSubs:     1,
			destBalance: 50_000_000,
			wantCode:    AccountMergeResultCodeHasSubEntries,
		},
		{
			name:        "source immutable",
			srcFlags:    ledger.FlagAuthImmutable,
			destBalance: 50_000_000,
			wantCode:    AccountMergeResultCodeImmutableSet,
		},
		{
			name:        "destination full",
			destBalance: math.MaxInt64,
			wantCode:    AccountMergeResultCodeDestFull,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			src := newFundedAccount(srcID, 100_000_000)
			src.Flags = testDef.srcFlags
			src.NumSubEntries = testDef.srcSubs
			accts := []*ledger.Account{src}
			if !testDef.noDest {
				accts = append(
					accts,
					newFundedAccount(destID, testDef.destBalance),
				)
			}
			st := newTestStore(t, accts...)
			env, _ := newTestEnv(t, st)
			op := Operation{Body: &AccountMerge{Destination: destID}}
			f, ok := applyOp(t, env, st, op, simpleTx(srcID))
			if ok != testDef.wantOk {
				t.Fatalf("unexpected outcome: got %v, wanted %v", ok, testDef.wantOk)
			}
			res := f.Result().Inner().(*AccountMergeResult)
			if res.Code != testDef.wantCode {
				t.Fatalf(
					"unexpected inner code: got %s, wanted %s",
					res.Code.String(),
					testDef.wantCode.String(),
				)
			}
			if !testDef.wantOk {
				return
			}
			if res.MergedBalance != 100_000_000 {
				t.Fatalf("unexpected merged balance: %d", res.MergedBalance)
			}
			if _, err := st.Account(srcID); !errors.Is(err, ledger.ErrNotFound) {
				t.Fatal("expected source account to be deleted")
			}
			dest, err := st.Account(destID)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if dest.Balance != testDef.destBalance+100_000_000 {
				t.Fatalf("unexpected destination balance: %d", dest.Balance)
			}
		})
	}
}
