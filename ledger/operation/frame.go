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

	"github.com/blinklabs-io/meridian/ledger"
)

// Frame binds one operation to its result slot, fee descriptor, parent
// transaction, and dispatched handler for a single processing run
type Frame struct {
	op          Operation
	res         *Result
	fee         Fee
	tx          Transaction
	handler     Handler
	source      *ledger.Account
	usedSigners []ledger.AccountID
}

// NewFrame dispatches the operation to its handler and binds it to the
// provided result slot, fee descriptor, and parent transaction. An
// operation outside the supported set returns UnknownOperationTypeError
func NewFrame(
	op Operation,
	res *Result,
	fee Fee,
	tx Transaction,
) (*Frame, error) {
	if op.Body == nil {
		return nil, newInvariantViolation("operation has no body", nil)
	}
	if res == nil {
		return nil, newInvariantViolation(
			"operation has no result slot",
			nil,
		)
	}
	if tx == nil {
		return nil, newInvariantViolation(
			"operation has no parent transaction",
			nil,
		)
	}
	f := &Frame{
		op:  op,
		res: res,
		fee: fee,
		tx:  tx,
	}
	switch op.Body.(type) {
	case *CreateAccount:
		f.handler = &createAccountHandler{baseHandler{frame: f}}
	case *Payment:
		f.handler = &paymentHandler{baseHandler{frame: f}}
	case *ExternalPayment:
		f.handler = &externalPaymentHandler{baseHandler{frame: f}}
	case *ChangeTrust:
		f.handler = &changeTrustHandler{baseHandler{frame: f}}
	case *AllowTrust:
		f.handler = &allowTrustHandler{baseHandler{frame: f}}
	case *SetOptions:
		f.handler = &setOptionsHandler{baseHandler{frame: f}}
	case *AccountMerge:
		f.handler = &accountMergeHandler{baseHandler{frame: f}}
	case *Inflation:
		f.handler = &inflationHandler{baseHandler{frame: f}}
	case *ManageData:
		f.handler = &manageDataHandler{baseHandler{frame: f}}
	default:
		return nil, UnknownOperationTypeError{Type: op.Body.OpType()}
	}
	res.opType = op.Body.OpType()
	return f, nil
}

// Type returns the operation's type
func (f *Frame) Type() OpType {
	return f.op.Body.OpType()
}

// SourceID returns the acting account for the operation: the explicit
// override when present, else the parent transaction's source account
func (f *Frame) SourceID() ledger.AccountID {
	if f.op.SourceAccount != nil {
		return *f.op.SourceAccount
	}
	return f.tx.SourceAccount()
}

// Fee returns the operation's fee descriptor
func (f *Frame) Fee() Fee {
	return f.fee
}

// Result returns the operation's result slot
func (f *Frame) Result() *Result {
	return f.res
}

// UsedSigners returns the signer keys consumed by the most recent
// successful signature check
func (f *Frame) UsedSigners() []ledger.AccountID {
	return f.usedSigners
}

// CheckValid validates the operation without applying it. With a nil delta
// it checks against committed state only and an explicit source account
// that does not exist yet is represented by an optimistic stand-in; with a
// non-nil delta it checks against the pending overlay and missing source
// accounts are rejected. A false return means the operation was rejected
// and the result carries the reason; errors are defects or storage
// failures, never ordinary rejections
func (f *Frame) CheckValid(env *Env, delta *ledger.Delta) (bool, error) {
	if env == nil {
		return false, errors.New("no environment provided")
	}
	f.res.Reset()
	return f.checkValid(env, delta)
}

// Apply validates the operation against the delta and records its effects.
// The full check phase always runs first in the same call; the handler's
// apply step runs only if it passes
func (f *Frame) Apply(env *Env, delta *ledger.Delta) (bool, error) {
	if env == nil {
		return false, errors.New("no environment provided")
	}
	if delta == nil {
		return false, errors.New("no delta provided")
	}
	f.res.Reset()
	ok, err := f.checkValid(env, delta)
	if err != nil || !ok {
		return ok, err
	}
	return f.handler.Apply(env, delta)
}

// checkValid runs the shared check phase: source account resolution,
// signature authorization, then kind-specific validation
func (f *Frame) checkValid(env *Env, delta *ledger.Delta) (bool, error) {
	forApply := delta != nil
	st := env.reader(delta)
	f.source = nil
	f.usedSigners = nil
	sourceID := f.SourceID()
	acct, err := st.Account(sourceID)
	if err != nil {
		if !errors.Is(err, ledger.ErrNotFound) {
			return false, err
		}
		if forApply || f.op.SourceAccount == nil {
			env.logger.Debug(
				"operation source account not found",
				"component", "operation",
				"op_type", f.Type().String(),
				"source", sourceID.String(),
			)
			env.observer.OperationInvalid(ReasonNoAccount)
			f.res.setCode(ResultCodeNoAccount)
			return false, nil
		}
		// The explicit source account may be created earlier in the same
		// transaction. Validate against a stand-in carrying the initial
		// account thresholds rather than rejecting outright
		acct = ledger.NewAuthStandIn(sourceID)
	}
	f.source = acct
	required := acct.Thresholds.Weight(f.handler.RequiredThreshold())
	usedSigners, ok := Authorize(
		acct,
		required,
		f.tx.SignaturePayload(),
		f.tx.Signatures(),
	)
	if !ok {
		env.logger.Debug(
			"operation signature check failed",
			"component", "operation",
			"op_type", f.Type().String(),
			"source", sourceID.String(),
		)
		env.observer.OperationInvalid(ReasonBadAuth)
		f.res.setCode(ResultCodeBadAuth)
		return false, nil
	}
	f.usedSigners = usedSigners
	if !forApply {
		// The resolved account may be a stand-in, so kind-specific
		// validation must not see it. Handlers read ledger state only
		// through the passed reader
		f.source = nil
	}
	f.res.initInner()
	return f.handler.CheckValid(env, st)
}
