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
	"fmt"

	"github.com/blinklabs-io/meridian/cbor"
	"github.com/blinklabs-io/meridian/ledger"
)

// OpType identifies an operation kind. The set is closed: every value this
// module will ever process appears below
type OpType uint8

const (
	OpTypeCreateAccount   OpType = 0
	OpTypePayment         OpType = 1
	OpTypeExternalPayment OpType = 2
	OpTypeChangeTrust     OpType = 3
	OpTypeAllowTrust      OpType = 4
	OpTypeSetOptions      OpType = 5
	OpTypeAccountMerge    OpType = 6
	OpTypeInflation       OpType = 7
	OpTypeManageData      OpType = 8
)

func (t OpType) String() string {
	switch t {
	case OpTypeCreateAccount:
		return "createAccount"
	case OpTypePayment:
		return "payment"
	case OpTypeExternalPayment:
		return "externalPayment"
	case OpTypeChangeTrust:
		return "changeTrust"
	case OpTypeAllowTrust:
		return "allowTrust"
	case OpTypeSetOptions:
		return "setOptions"
	case OpTypeAccountMerge:
		return "accountMerge"
	case OpTypeInflation:
		return "inflation"
	case OpTypeManageData:
		return "manageData"
	}
	return fmt.Sprintf("unknown (%d)", uint8(t))
}

// Body is the kind-specific payload of an operation. It is implemented only
// by the pointer payload types in this package
type Body interface {
	OpType() OpType
}

// Operation is one requested ledger action: an optional acting-account
// override plus the kind-specific payload
type Operation struct {
	cbor.DecodeStoreCbor
	// SourceAccount overrides the parent transaction's source account as
	// the acting account when non-nil
	SourceAccount *ledger.AccountID
	Body          Body
}

type operationWire struct {
	cbor.StructAsArray
	Type   OpType
	Source *ledger.AccountID
	Body   cbor.RawMessage
}

func (o Operation) MarshalCBOR() ([]byte, error) {
	// Return stored CBOR if we have any
	if cborData := o.Cbor(); cborData != nil {
		return cborData, nil
	}
	if o.Body == nil {
		return nil, errors.New("operation has no body")
	}
	bodyData, err := cbor.Encode(o.Body)
	if err != nil {
		return nil, err
	}
	return cbor.Encode(
		operationWire{
			Type:   o.Body.OpType(),
			Source: o.SourceAccount,
			Body:   bodyData,
		},
	)
}

func (o *Operation) UnmarshalCBOR(data []byte) error {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	body := newBody(OpType(id))
	if body == nil {
		return UnknownOperationTypeError{Type: OpType(id)}
	}
	var wire operationWire
	if _, err := cbor.Decode(data, &wire); err != nil {
		return err
	}
	if _, err := cbor.Decode(wire.Body, body); err != nil {
		return err
	}
	o.SourceAccount = wire.Source
	o.Body = body
	o.SetCbor(data)
	return nil
}

// newBody returns a fresh payload for the given operation type, or nil for
// unknown types
func newBody(opType OpType) Body {
	switch opType {
	case OpTypeCreateAccount:
		return &CreateAccount{}
	case OpTypePayment:
		return &Payment{}
	case OpTypeExternalPayment:
		return &ExternalPayment{}
	case OpTypeChangeTrust:
		return &ChangeTrust{}
	case OpTypeAllowTrust:
		return &AllowTrust{}
	case OpTypeSetOptions:
		return &SetOptions{}
	case OpTypeAccountMerge:
		return &AccountMerge{}
	case OpTypeInflation:
		return &Inflation{}
	case OpTypeManageData:
		return &ManageData{}
	}
	return nil
}

// CreateAccount funds a new account with a starting balance
type CreateAccount struct {
	cbor.StructAsArray
	Destination     ledger.AccountID `json:"destination"`
	StartingBalance int64            `json:"startingBalance"`
}

func (*CreateAccount) OpType() OpType { return OpTypeCreateAccount }

// Payment transfers an amount of an asset from the acting account to the
// destination
type Payment struct {
	cbor.StructAsArray
	Destination ledger.AccountID `json:"destination"`
	Asset       ledger.Asset     `json:"asset"`
	Amount      int64            `json:"amount"`
}

func (*Payment) OpType() OpType { return OpTypePayment }

// ExternalPayment credits a destination with an issuer-backed asset
// deposited on an external network. Only the asset issuer may perform it;
// the destination's trust line is created on the fly when missing
type ExternalPayment struct {
	cbor.StructAsArray
	Destination ledger.AccountID `json:"destination"`
	Asset       ledger.Asset     `json:"asset"`
	Amount      int64            `json:"amount"`
}

func (*ExternalPayment) OpType() OpType { return OpTypeExternalPayment }

// ChangeTrust creates, adjusts, or deletes the acting account's trust line
// for a credit asset
type ChangeTrust struct {
	cbor.StructAsArray
	Line  ledger.Asset `json:"line"`
	Limit int64        `json:"limit"`
}

func (*ChangeTrust) OpType() OpType { return OpTypeChangeTrust }

// AllowTrust authorizes or revokes a trustor's line for an asset issued by
// the acting account
type AllowTrust struct {
	cbor.StructAsArray
	Trustor   ledger.AccountID `json:"trustor"`
	AssetCode string           `json:"assetCode"`
	Authorize bool             `json:"authorize"`
}

func (*AllowTrust) OpType() OpType { return OpTypeAllowTrust }

// SetOptions adjusts account settings. Nil fields are left untouched
type SetOptions struct {
	cbor.StructAsArray
	InflationDest   *ledger.AccountID `json:"inflationDest,omitempty"`
	ClearFlags      *uint32           `json:"clearFlags,omitempty"`
	SetFlags        *uint32           `json:"setFlags,omitempty"`
	MasterWeight    *uint32           `json:"masterWeight,omitempty"`
	LowThreshold    *uint32           `json:"lowThreshold,omitempty"`
	MediumThreshold *uint32           `json:"mediumThreshold,omitempty"`
	HighThreshold   *uint32           `json:"highThreshold,omitempty"`
	HomeDomain      *string           `json:"homeDomain,omitempty"`
	Signer          *ledger.Signer    `json:"signer,omitempty"`
}

func (*SetOptions) OpType() OpType { return OpTypeSetOptions }

// touchesAuth reports whether the payload modifies signing weights or
// thresholds, which requires high-threshold authorization
func (o *SetOptions) touchesAuth() bool {
	return o.MasterWeight != nil ||
		o.LowThreshold != nil ||
		o.MediumThreshold != nil ||
		o.HighThreshold != nil ||
		o.Signer != nil
}

// AccountMerge transfers the acting account's balance to the destination
// and removes the acting account from the ledger
type AccountMerge struct {
	cbor.StructAsArray
	Destination ledger.AccountID `json:"destination"`
}

func (*AccountMerge) OpType() OpType { return OpTypeAccountMerge }

// Inflation runs an inflation round if one is due
type Inflation struct {
	cbor.StructAsArray
}

func (*Inflation) OpType() OpType { return OpTypeInflation }

// ManageData sets or (with a nil value) deletes a named data entry on the
// acting account
type ManageData struct {
	cbor.StructAsArray
	Name  string `json:"name"`
	Value []byte `json:"value,omitempty"`
}

func (*ManageData) OpType() OpType { return OpTypeManageData }
