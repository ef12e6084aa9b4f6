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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blinklabs-io/meridian/cbor"
)

// ResultCode classifies the outcome of an operation at the outermost level.
// Negative codes reject the operation before its kind-specific logic runs
type ResultCode int8

const (
	// ResultCodeInner means the prerequisites passed and the kind-specific
	// inner result carries the outcome
	ResultCodeInner ResultCode = 0
	// ResultCodeBadAuth means the signatures on the parent transaction do
	// not meet the acting account's required threshold
	ResultCodeBadAuth ResultCode = -1
	// ResultCodeNoAccount means the acting account does not exist
	ResultCodeNoAccount ResultCode = -2
)

func (c ResultCode) String() string {
	switch c {
	case ResultCodeInner:
		return "inner"
	case ResultCodeBadAuth:
		return "badAuth"
	case ResultCodeNoAccount:
		return "noAccount"
	}
	return fmt.Sprintf("unknown (%d)", int8(c))
}

// InnerResult is the kind-specific outcome of an operation whose acting
// account resolved and whose signatures passed. Implementations live next
// to their handlers
type InnerResult interface {
	OpType() OpType
	Succeeded() bool
}

// newInnerResult returns a fresh inner result for the given operation type,
// or nil for unknown types
func newInnerResult(opType OpType) InnerResult {
	switch opType {
	case OpTypeCreateAccount:
		return &CreateAccountResult{}
	case OpTypePayment:
		return &PaymentResult{}
	case OpTypeExternalPayment:
		return &ExternalPaymentResult{}
	case OpTypeChangeTrust:
		return &ChangeTrustResult{}
	case OpTypeAllowTrust:
		return &AllowTrustResult{}
	case OpTypeSetOptions:
		return &SetOptionsResult{}
	case OpTypeAccountMerge:
		return &AccountMergeResult{}
	case OpTypeInflation:
		return &InflationResult{}
	case OpTypeManageData:
		return &ManageDataResult{}
	}
	return nil
}

// Result records the outcome of processing one operation. The code is
// written exactly once per processing pass: rewriting a set code panics.
// Reset rearms the result so the same operation can be checked and later
// applied
type Result struct {
	opType  OpType
	code    ResultCode
	codeSet bool
	inner   InnerResult
}

// NewResult returns an empty result slot. Binding it to a frame stamps the
// operation type
func NewResult() *Result {
	return &Result{}
}

// Processed reports whether a code has been recorded since the last Reset
func (r *Result) Processed() bool {
	return r.codeSet
}

// Code returns the recorded outer code. It panics if no code has been
// recorded
func (r *Result) Code() ResultCode {
	if !r.codeSet {
		panic("operation result code read before it was set")
	}
	return r.code
}

// Inner returns the kind-specific result. It panics unless the recorded
// code is ResultCodeInner
func (r *Result) Inner() InnerResult {
	if !r.codeSet || r.code != ResultCodeInner {
		panic("operation inner result read without an inner code")
	}
	return r.inner
}

// Succeeded reports whether the operation fully succeeded
func (r *Result) Succeeded() bool {
	return r.codeSet && r.code == ResultCodeInner && r.inner.Succeeded()
}

// Reset clears the recorded outcome so the operation can be processed again
func (r *Result) Reset() {
	r.code = 0
	r.codeSet = false
	r.inner = nil
}

// setCode records a rejection code. It panics if a code was already
// recorded
func (r *Result) setCode(code ResultCode) {
	if r.codeSet {
		panic(
			fmt.Sprintf(
				"operation result for %s written twice",
				r.opType.String(),
			),
		)
	}
	r.code = code
	r.codeSet = true
}

// initInner records ResultCodeInner and creates the kind-specific inner
// result. It panics if a code was already recorded
func (r *Result) initInner() {
	if r.codeSet {
		panic(
			fmt.Sprintf(
				"operation result for %s written twice",
				r.opType.String(),
			),
		)
	}
	inner := newInnerResult(r.opType)
	if inner == nil {
		panic(
			fmt.Sprintf(
				"no inner result for operation type %s",
				r.opType.String(),
			),
		)
	}
	r.code = ResultCodeInner
	r.codeSet = true
	r.inner = inner
}

type resultRejectionWire struct {
	cbor.StructAsArray
	Code ResultCode
}

type resultInnerWire struct {
	cbor.StructAsArray
	Code   ResultCode
	OpType OpType
	Inner  cbor.RawMessage
}

func (r Result) MarshalCBOR() ([]byte, error) {
	if !r.codeSet {
		return nil, errors.New("operation result not processed")
	}
	if r.code != ResultCodeInner {
		return cbor.Encode(resultRejectionWire{Code: r.code})
	}
	innerData, err := cbor.Encode(r.inner)
	if err != nil {
		return nil, err
	}
	return cbor.Encode(
		resultInnerWire{
			Code:   r.code,
			OpType: r.opType,
			Inner:  innerData,
		},
	)
}

func (r *Result) UnmarshalCBOR(data []byte) error {
	length, err := cbor.ListLength(data)
	if err != nil {
		return err
	}
	switch length {
	case 1:
		var wire resultRejectionWire
		if _, err := cbor.Decode(data, &wire); err != nil {
			return err
		}
		if wire.Code == ResultCodeInner {
			return errors.New("inner result code without inner result")
		}
		r.code = wire.Code
		r.codeSet = true
		r.inner = nil
		return nil
	case 3:
		var wire resultInnerWire
		if _, err := cbor.Decode(data, &wire); err != nil {
			return err
		}
		if wire.Code != ResultCodeInner {
			return fmt.Errorf(
				"unexpected result code for inner result: %d",
				int8(wire.Code),
			)
		}
		inner := newInnerResult(wire.OpType)
		if inner == nil {
			return UnknownOperationTypeError{Type: wire.OpType}
		}
		if _, err := cbor.Decode(wire.Inner, inner); err != nil {
			return err
		}
		r.opType = wire.OpType
		r.code = wire.Code
		r.codeSet = true
		r.inner = inner
		return nil
	}
	return fmt.Errorf("unexpected result list length: %d", length)
}

func (r Result) MarshalJSON() ([]byte, error) {
	if !r.codeSet {
		return nil, errors.New("operation result not processed")
	}
	if r.code != ResultCodeInner {
		return json.Marshal(
			struct {
				Code string `json:"code"`
			}{
				Code: r.code.String(),
			},
		)
	}
	return json.Marshal(
		struct {
			Code   string      `json:"code"`
			OpType string      `json:"opType"`
			Inner  InnerResult `json:"inner"`
		}{
			Code:   r.code.String(),
			OpType: r.opType.String(),
			Inner:  r.inner,
		},
	)
}
