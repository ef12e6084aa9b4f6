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
	"math"
	"testing"

	"github.com/blinklabs-io/meridian/ledger"
)

func paymentCode(t *testing.T, f *Frame) PaymentResultCode {
	t.Helper()
	return f.Result().Inner().(*PaymentResult).Code
}

// putTestTrustLine stores a trust line directly, bumping the holder's
// subentry count the way change-trust would have
func putTestTrustLine(
	t *testing.T,
	st *ledger.MemStore,
	line *ledger.TrustLine,
) {
	t.Helper()
	acct, err := st.Account(line.Account)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	acct.NumSubEntries++
	if err := st.PutAccount(acct); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := st.PutTrustLine(line); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestPaymentMalformed(t *testing.T) {
	st := newTestStore(t, newFundedAccount(testID(1), 100_000_000))
	env, _ := newTestEnv(t, st)
	tx := simpleTx(testID(1))
	testDefs := []struct {
		name string
		body *Payment
	}{
		{
			name: "zero amount",
			body: &Payment{
				Destination: testID(2),
				Asset:       ledger.NativeAsset(),
			},
		},
		{
			name: "negative amount",
			body: &Payment{
				Destination: testID(2),
				Asset:       ledger.NativeAsset(),
				Amount:      -5,
			},
		},
		{
			name: "invalid asset code",
			body: &Payment{
				Destination: testID(2),
				Asset:       ledger.CreditAsset("bad code!", testID(3)),
				Amount:      100,
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			f, ok := checkOp(t, env, Operation{Body: testDef.body}, tx)
			if ok {
				t.Fatal("expected operation to be rejected")
			}
			if code := paymentCode(t, f); code != PaymentResultCodeMalformed {
				t.Fatalf("unexpected inner code: %s", code.String())
			}
		})
	}
}

func TestPaymentNative(t *testing.T) {
	srcID := testID(1)
	destID := testID(2)
	testDefs := []struct {
		name        string
		srcBalance  int64
		destBalance int64
		noDest      bool
		amount      int64
		wantOk      bool
		wantCode    PaymentResultCode
	}{
		{
			name:        "success",
			srcBalance:  100_000_000,
			destBalance: 50_000_000,
			amount:      1000,
			wantOk:      true,
			wantCode:    PaymentResultCodeSuccess,
		},
		{
			name:       "underfunded",
			srcBalance: 2 * testBaseReserve,
			amount:     1000,
			wantCode:   PaymentResultCodeUnderfunded,
		},
		{
			name:       "no destination",
			srcBalance: 100_000_000,
			noDest:     true,
			amount:     1000,
			wantCode:   PaymentResultCodeNoDestination,
		},
		{
			name:        "destination full",
			srcBalance:  100_000_000,
			destBalance: math.MaxInt64,
			amount:      1000,
			wantCode:    PaymentResultCodeLineFull,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			accts := []*ledger.Account{
				newFundedAccount(srcID, testDef.srcBalance),
			}
			if !testDef.noDest {
				accts = append(
					accts,
					newFundedAccount(destID, testDef.destBalance),
				)
			}
			st := newTestStore(t, accts...)
			env, _ := newTestEnv(t, st)
			op := Operation{
				Body: &Payment{
					Destination: destID,
					Asset:       ledger.NativeAsset(),
					Amount:      testDef.amount,
				},
			}
			f, ok := applyOp(t, env, st, op, simpleTx(srcID))
			if ok != testDef.wantOk {
				t.Fatalf("unexpected outcome: got %v, wanted %v", ok, testDef.wantOk)
			}
			if code := paymentCode(t, f); code != testDef.wantCode {
				t.Fatalf(
					"unexpected inner code: got %s, wanted %s",
					code.String(),
					testDef.wantCode.String(),
				)
			}
			if !testDef.wantOk {
				return
			}
			src, err := st.Account(srcID)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if src.Balance != testDef.srcBalance-testDef.amount {
				t.Fatalf("unexpected source balance: %d", src.Balance)
			}
			dest, err := st.Account(destID)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if dest.Balance != testDef.destBalance+testDef.amount {
				t.Fatalf("unexpected destination balance: %d", dest.Balance)
			}
		})
	}
}

func TestPaymentNativeToSelf(t *testing.T) {
	srcID := testID(1)
	st := newTestStore(t, newFundedAccount(srcID, 100_000_000))
	env, _ := newTestEnv(t, st)
	op := Operation{
		Body: &Payment{
			Destination: srcID,
			Asset:       ledger.NativeAsset(),
			Amount:      1000,
		},
	}
	_, ok := applyOp(t, env, st, op, simpleTx(srcID))
	if !ok {
		t.Fatal("expected operation to succeed")
	}
	src, err := st.Account(srcID)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if src.Balance != 100_000_000 {
		t.Fatalf("unexpected balance after self payment: %d", src.Balance)
	}
}

func TestPaymentCredit(t *testing.T) {
	srcID := testID(1)
	destID := testID(2)
	issuerID := testID(3)
	asset := ledger.CreditAsset("USD", issuerID)
	testDefs := []struct {
		name     string
		srcLine  *ledger.TrustLine
		destLine *ledger.TrustLine
		amount   int64
		wantOk   bool
		wantCode PaymentResultCode
	}{
		{
			name: "success",
			srcLine: &ledger.TrustLine{
				Account:    srcID,
				Asset:      asset,
				Balance:    5000,
				Limit:      10_000,
				Authorized: true,
			},
			destLine: &ledger.TrustLine{
				Account:    destID,
				Asset:      asset,
				Limit:      10_000,
				Authorized: true,
			},
			amount:   1000,
			wantOk:   true,
			wantCode: PaymentResultCodeSuccess,
		},
		{
			name: "source has no trust line",
			destLine: &ledger.TrustLine{
				Account:    destID,
				Asset:      asset,
				Limit:      10_000,
				Authorized: true,
			},
			amount:   1000,
			wantCode: PaymentResultCodeSrcNoTrust,
		},
		{
			name: "source not authorized",
			srcLine: &ledger.TrustLine{
				Account: srcID,
				Asset:   asset,
				Balance: 5000,
				Limit:   10_000,
			},
			amount:   1000,
			wantCode: PaymentResultCodeSrcNotAuthorized,
		},
		{
			name: "source line underfunded",
			srcLine: &ledger.TrustLine{
				Account:    srcID,
				Asset:      asset,
				Balance:    500,
				Limit:      10_000,
				Authorized: true,
			},
			amount:   1000,
			wantCode: PaymentResultCodeUnderfunded,
		},
		{
			name: "destination has no trust line",
			srcLine: &ledger.TrustLine{
				Account:    srcID,
				Asset:      asset,
				Balance:    5000,
				Limit:      10_000,
				Authorized: true,
			},
			amount:   1000,
			wantCode: PaymentResultCodeNoTrust,
		},
		{
			name: "destination not authorized",
			srcLine: &ledger.TrustLine{
				Account:    srcID,
				Asset:      asset,
				Balance:    5000,
				Limit:      10_000,
				Authorized: true,
			},
			destLine: &ledger.TrustLine{
				Account: destID,
				Asset:   asset,
				Limit:   10_000,
			},
			amount:   1000,
			wantCode: PaymentResultCodeNotAuthorized,
		},
		{
			name: "destination line full",
			srcLine: &ledger.TrustLine{
				Account:    srcID,
				Asset:      asset,
				Balance:    5000,
				Limit:      10_000,
				Authorized: true,
			},
			destLine: &ledger.TrustLine{
				Account:    destID,
				Asset:      asset,
				Balance:    9800,
				Limit:      10_000,
				Authorized: true,
			},
			amount:   1000,
			wantCode: PaymentResultCodeLineFull,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			st := newTestStore(
				t,
				newFundedAccount(srcID, 100_000_000),
				newFundedAccount(destID, 100_000_000),
				newFundedAccount(issuerID, 100_000_000),
			)
			if testDef.srcLine != nil {
				putTestTrustLine(t, st, testDef.srcLine)
			}
			if testDef.destLine != nil {
				putTestTrustLine(t, st, testDef.destLine)
			}
			env, _ := newTestEnv(t, st)
			op := Operation{
				Body: &Payment{
					Destination: destID,
					Asset:       asset,
					Amount:      testDef.amount,
				},
			}
			f, ok := applyOp(t, env, st, op, simpleTx(srcID))
			if ok != testDef.wantOk {
				t.Fatalf("unexpected outcome: got %v, wanted %v", ok, testDef.wantOk)
			}
			if code := paymentCode(t, f); code != testDef.wantCode {
				t.Fatalf(
					"unexpected inner code: got %s, wanted %s",
					code.String(),
					testDef.wantCode.String(),
				)
			}
			if !testDef.wantOk {
				return
			}
			srcLine, err := st.TrustLine(srcID, asset)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if srcLine.Balance != testDef.srcLine.Balance-testDef.amount {
				t.Fatalf("unexpected source line balance: %d", srcLine.Balance)
			}
			destLine, err := st.TrustLine(destID, asset)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if destLine.Balance != testDef.destLine.Balance+testDef.amount {
				t.Fatalf(
					"unexpected destination line balance: %d",
					destLine.Balance,
				)
			}
		})
	}
}

// The issuer needs no trust line on its own asset: sending mints, receiving
// burns
func TestPaymentCreditIssuerEndpoints(t *testing.T) {
	holderID := testID(1)
	issuerID := testID(3)
	asset := ledger.CreditAsset("USD", issuerID)

	// Issuer pays a holder
	st := newTestStore(
		t,
		newFundedAccount(holderID, 100_000_000),
		newFundedAccount(issuerID, 100_000_000),
	)
	putTestTrustLine(t, st, &ledger.TrustLine{
		Account:    holderID,
		Asset:      asset,
		Limit:      10_000,
		Authorized: true,
	})
	env, _ := newTestEnv(t, st)
	op := Operation{
		Body: &Payment{
			Destination: holderID,
			Asset:       asset,
			Amount:      1000,
		},
	}
	_, ok := applyOp(t, env, st, op, simpleTx(issuerID))
	if !ok {
		t.Fatal("expected mint to succeed")
	}
	line, err := st.TrustLine(holderID, asset)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if line.Balance != 1000 {
		t.Fatalf("unexpected holder line balance: %d", line.Balance)
	}

	// Holder pays the issuer back
	op = Operation{
		Body: &Payment{
			Destination: issuerID,
			Asset:       asset,
			Amount:      400,
		},
	}
	_, ok = applyOp(t, env, st, op, simpleTx(holderID))
	if !ok {
		t.Fatal("expected burn to succeed")
	}
	line, err = st.TrustLine(holderID, asset)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if line.Balance != 600 {
		t.Fatalf("unexpected holder line balance: %d", line.Balance)
	}
	if _, err := st.TrustLine(issuerID, asset); err == nil {
		t.Fatal("expected no trust line for the issuer")
	}
}
