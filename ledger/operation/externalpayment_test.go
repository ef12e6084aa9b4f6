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

func externalPaymentCode(t *testing.T, f *Frame) ExternalPaymentResultCode {
	t.Helper()
	return f.Result().Inner().(*ExternalPaymentResult).Code
}

func TestExternalPaymentMalformed(t *testing.T) {
	issuerID := testID(1)
	st := newTestStore(t, newFundedAccount(issuerID, 100_000_000))
	env, _ := newTestEnv(t, st)
	tx := simpleTx(issuerID)
	testDefs := []struct {
		name string
		body *ExternalPayment
	}{
		{
			name: "zero amount",
			body: &ExternalPayment{
				Destination: testID(2),
				Asset:       ledger.CreditAsset("USD", issuerID),
			},
		},
		{
			name: "native asset",
			body: &ExternalPayment{
				Destination: testID(2),
				Asset:       ledger.NativeAsset(),
				Amount:      100,
			},
		},
		{
			name: "invalid asset code",
			body: &ExternalPayment{
				Destination: testID(2),
				Asset:       ledger.CreditAsset("", issuerID),
				Amount:      100,
			},
		},
		{
			name: "destination is issuer",
			body: &ExternalPayment{
				Destination: issuerID,
				Asset:       ledger.CreditAsset("USD", issuerID),
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
			if code := externalPaymentCode(t, f); code != ExternalPaymentResultCodeMalformed {
				t.Fatalf("unexpected inner code: %s", code.String())
			}
		})
	}
}

func TestExternalPaymentNotIssuer(t *testing.T) {
	st := newTestStore(
		t,
		newFundedAccount(testID(1), 100_000_000),
		newFundedAccount(testID(3), 100_000_000),
	)
	env, _ := newTestEnv(t, st)
	op := Operation{
		Body: &ExternalPayment{
			Destination: testID(2),
			Asset:       ledger.CreditAsset("USD", testID(3)),
			Amount:      100,
		},
	}
	f, ok := applyOp(t, env, st, op, simpleTx(testID(1)))
	if ok {
		t.Fatal("expected operation to fail")
	}
	if code := externalPaymentCode(t, f); code != ExternalPaymentResultCodeNotIssuer {
		t.Fatalf("unexpected inner code: %s", code.String())
	}
}

func TestExternalPaymentNoDestination(t *testing.T) {
	issuerID := testID(1)
	st := newTestStore(t, newFundedAccount(issuerID, 100_000_000))
	env, _ := newTestEnv(t, st)
	op := Operation{
		Body: &ExternalPayment{
			Destination: testID(2),
			Asset:       ledger.CreditAsset("USD", issuerID),
			Amount:      100,
		},
	}
	f, ok := applyOp(t, env, st, op, simpleTx(issuerID))
	if ok {
		t.Fatal("expected operation to fail")
	}
	if code := externalPaymentCode(t, f); code != ExternalPaymentResultCodeNoDestination {
		t.Fatalf("unexpected inner code: %s", code.String())
	}
}

// A deposit to a destination with an existing line just credits it
func TestExternalPaymentExistingLine(t *testing.T) {
	issuerID := testID(1)
	destID := testID(2)
	asset := ledger.CreditAsset("USD", issuerID)
	st := newTestStore(
		t,
		newFundedAccount(issuerID, 100_000_000),
		newFundedAccount(destID, 100_000_000),
	)
	putTestTrustLine(t, st, &ledger.TrustLine{
		Account:    destID,
		Asset:      asset,
		Balance:    500,
		Limit:      10_000,
		Authorized: true,
	})
	env, _ := newTestEnv(t, st)
	op := Operation{
		Body: &ExternalPayment{
			Destination: destID,
			Asset:       asset,
			Amount:      100,
		},
	}
	f, ok := applyOp(t, env, st, op, simpleTx(issuerID))
	if !ok {
		t.Fatal("expected operation to succeed")
	}
	if code := externalPaymentCode(t, f); code != ExternalPaymentResultCodeSuccess {
		t.Fatalf("unexpected inner code: %s", code.String())
	}
	line, err := st.TrustLine(destID, asset)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if line.Balance != 600 {
		t.Fatalf("unexpected line balance: %d", line.Balance)
	}
}

// A deposit to a destination without a line creates it through the
// synthetic change-trust operation
func TestExternalPaymentCreatesLine(t *testing.T) {
	issuerID := testID(1)
	destID := testID(2)
	asset := ledger.CreditAsset("USD", issuerID)
	st := newTestStore(
		t,
		newFundedAccount(issuerID, 100_000_000),
		newFundedAccount(destID, 100_000_000),
	)
	env, _ := newTestEnv(t, st)
	op := Operation{
		Body: &ExternalPayment{
			Destination: destID,
			Asset:       asset,
			Amount:      100,
		},
	}
	f, ok := applyOp(t, env, st, op, simpleTx(issuerID))
	if !ok {
		t.Fatal("expected operation to succeed")
	}
	if code := externalPaymentCode(t, f); code != ExternalPaymentResultCodeSuccess {
		t.Fatalf("unexpected inner code: %s", code.String())
	}
	line, err := st.TrustLine(destID, asset)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if line.Balance != 100 {
		t.Fatalf("unexpected line balance: %d", line.Balance)
	}
	if line.Limit != math.MaxInt64 {
		t.Fatalf("unexpected line limit: %d", line.Limit)
	}
	dest, err := st.Account(destID)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if dest.NumSubEntries != 1 {
		t.Fatalf("unexpected subentry count: %d", dest.NumSubEntries)
	}
}

// A destination that cannot cover the reserve for the new line fails
// cleanly
func TestExternalPaymentLowReserve(t *testing.T) {
	issuerID := testID(1)
	destID := testID(2)
	asset := ledger.CreditAsset("USD", issuerID)
	st := newTestStore(
		t,
		newFundedAccount(issuerID, 100_000_000),
		newFundedAccount(destID, 2*testBaseReserve),
	)
	env, _ := newTestEnv(t, st)
	op := Operation{
		Body: &ExternalPayment{
			Destination: destID,
			Asset:       asset,
			Amount:      100,
		},
	}
	f, ok := applyOp(t, env, st, op, simpleTx(issuerID))
	if ok {
		t.Fatal("expected operation to fail")
	}
	if code := externalPaymentCode(t, f); code != ExternalPaymentResultCodeLowReserve {
		t.Fatalf("unexpected inner code: %s", code.String())
	}
}

func TestExternalPaymentLineFull(t *testing.T) {
	issuerID := testID(1)
	destID := testID(2)
	asset := ledger.CreditAsset("USD", issuerID)
	st := newTestStore(
		t,
		newFundedAccount(issuerID, 100_000_000),
		newFundedAccount(destID, 100_000_000),
	)
	putTestTrustLine(t, st, &ledger.TrustLine{
		Account:    destID,
		Asset:      asset,
		Balance:    9990,
		Limit:      10_000,
		Authorized: true,
	})
	env, _ := newTestEnv(t, st)
	op := Operation{
		Body: &ExternalPayment{
			Destination: destID,
			Asset:       asset,
			Amount:      100,
		},
	}
	f, ok := applyOp(t, env, st, op, simpleTx(issuerID))
	if ok {
		t.Fatal("expected operation to fail")
	}
	if code := externalPaymentCode(t, f); code != ExternalPaymentResultCodeLineFull {
		t.Fatalf("unexpected inner code: %s", code.String())
	}
}
