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
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/blinklabs-io/meridian/cbor"
	"github.com/blinklabs-io/meridian/ledger"
)

func TestOperationCborRoundTrip(t *testing.T) {
	override := testID(7)
	weight := uint32(3)
	domain := "example.com"
	testDefs := []struct {
		name string
		op   Operation
	}{
		{
			name: "create account",
			op: Operation{
				Body: &CreateAccount{
					Destination:     testID(2),
					StartingBalance: 500,
				},
			},
		},
		{
			name: "payment with source override",
			op: Operation{
				SourceAccount: &override,
				Body: &Payment{
					Destination: testID(2),
					Asset:       ledger.CreditAsset("USD", testID(3)),
					Amount:      42,
				},
			},
		},
		{
			name: "set options",
			op: Operation{
				Body: &SetOptions{
					MasterWeight: &weight,
					HomeDomain:   &domain,
					Signer: &ledger.Signer{
						Key:    testID(9),
						Weight: 2,
					},
				},
			},
		},
		{
			name: "inflation",
			op: Operation{
				Body: &Inflation{},
			},
		},
		{
			name: "manage data",
			op: Operation{
				Body: &ManageData{
					Name:  "config",
					Value: []byte{0x01, 0x02, 0x03},
				},
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := cbor.Encode(testDef.op)
			if err != nil {
				t.Fatalf("failed to encode operation: %s", err)
			}
			var decoded Operation
			if _, err := cbor.Decode(data, &decoded); err != nil {
				t.Fatalf("failed to decode operation: %s", err)
			}
			if !reflect.DeepEqual(decoded.Body, testDef.op.Body) {
				t.Fatalf(
					"operation body did not round-trip: got %#v, wanted %#v",
					decoded.Body,
					testDef.op.Body,
				)
			}
			if testDef.op.SourceAccount == nil {
				if decoded.SourceAccount != nil {
					t.Fatalf(
						"unexpected source account override: %s",
						decoded.SourceAccount,
					)
				}
			} else if decoded.SourceAccount == nil ||
				*decoded.SourceAccount != *testDef.op.SourceAccount {
				t.Fatalf(
					"source account override did not round-trip: got %v, wanted %s",
					decoded.SourceAccount,
					testDef.op.SourceAccount,
				)
			}
			// Decoding stores the original bytes, so re-encoding must
			// reproduce them exactly
			if decoded.Cbor() == nil {
				t.Fatalf("decoded operation did not store original CBOR")
			}
			reencoded, err := cbor.Encode(decoded)
			if err != nil {
				t.Fatalf("failed to re-encode operation: %s", err)
			}
			if !bytes.Equal(reencoded, data) {
				t.Fatalf(
					"operation did not round-trip: got %x, wanted %x",
					reencoded,
					data,
				)
			}
		})
	}
}

func TestOperationUnmarshalUnknownType(t *testing.T) {
	bodyData, err := cbor.Encode(Inflation{})
	if err != nil {
		t.Fatalf("failed to encode placeholder body: %s", err)
	}
	data, err := cbor.Encode(
		operationWire{
			Type: OpType(99),
			Body: bodyData,
		},
	)
	if err != nil {
		t.Fatalf("failed to encode wire form: %s", err)
	}
	var decoded Operation
	_, err = cbor.Decode(data, &decoded)
	if err == nil {
		t.Fatalf("expected error decoding unknown operation type")
	}
	if !strings.Contains(err.Error(), "unknown operation type: 99") {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestOperationMarshalWithoutBody(t *testing.T) {
	if _, err := cbor.Encode(Operation{}); err == nil {
		t.Fatalf("expected error encoding operation without body")
	}
}

func TestOpTypeString(t *testing.T) {
	testDefs := []struct {
		opType   OpType
		expected string
	}{
		{opType: OpTypeCreateAccount, expected: "createAccount"},
		{opType: OpTypePayment, expected: "payment"},
		{opType: OpTypeExternalPayment, expected: "externalPayment"},
		{opType: OpTypeChangeTrust, expected: "changeTrust"},
		{opType: OpTypeAllowTrust, expected: "allowTrust"},
		{opType: OpTypeSetOptions, expected: "setOptions"},
		{opType: OpTypeAccountMerge, expected: "accountMerge"},
		{opType: OpTypeInflation, expected: "inflation"},
		{opType: OpTypeManageData, expected: "manageData"},
		{opType: OpType(42), expected: "unknown (42)"},
	}
	for _, testDef := range testDefs {
		if testDef.opType.String() != testDef.expected {
			t.Fatalf(
				"unexpected string for operation type: got %s, wanted %s",
				testDef.opType.String(),
				testDef.expected,
			)
		}
	}
}
