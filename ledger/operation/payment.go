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

type PaymentResultCode int32

const (
	PaymentResultCodeSuccess          PaymentResultCode = 0
	PaymentResultCodeMalformed        PaymentResultCode = -1
	PaymentResultCodeUnderfunded      PaymentResultCode = -2
	PaymentResultCodeSrcNoTrust       PaymentResultCode = -3
	PaymentResultCodeSrcNotAuthorized PaymentResultCode = -4
	PaymentResultCodeNoDestination    PaymentResultCode = -5
	PaymentResultCodeNoTrust          PaymentResultCode = -6
	PaymentResultCodeNotAuthorized    PaymentResultCode = -7
	PaymentResultCodeLineFull         PaymentResultCode = -8
)

func (c PaymentResultCode) String() string {
	switch c {
	case PaymentResultCodeSuccess:
		return "success"
	case PaymentResultCodeMalformed:
		return "malformed"
	case PaymentResultCodeUnderfunded:
		return "underfunded"
	case PaymentResultCodeSrcNoTrust:
		return "srcNoTrust"
	case PaymentResultCodeSrcNotAuthorized:
		return "srcNotAuthorized"
	case PaymentResultCodeNoDestination:
		return "noDestination"
	case PaymentResultCodeNoTrust:
		return "noTrust"
	case PaymentResultCodeNotAuthorized:
		return "notAuthorized"
	case PaymentResultCodeLineFull:
		return "lineFull"
	}
	return fmt.Sprintf("unknown (%d)", int32(c))
}

func (c PaymentResultCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

type PaymentResult struct {
	cbor.StructAsArray
	Code PaymentResultCode `json:"code"`
}

func (*PaymentResult) OpType() OpType {
	return OpTypePayment
}

func (r *PaymentResult) Succeeded() bool {
	return r.Code == PaymentResultCodeSuccess
}

type paymentHandler struct {
	baseHandler
}

func (h *paymentHandler) op() *Payment {
	return h.frame.op.Body.(*Payment)
}

func (h *paymentHandler) res() *PaymentResult {
	return h.frame.res.Inner().(*PaymentResult)
}

func (h *paymentHandler) CheckValid(
	env *Env,
	st ledger.StateReader,
) (bool, error) {
	body := h.op()
	if body.Amount <= 0 {
		h.res().Code = PaymentResultCodeMalformed
		return false, nil
	}
	if err := body.Asset.Validate(); err != nil {
		h.res().Code = PaymentResultCodeMalformed
		return false, nil
	}
	return true, nil
}

func (h *paymentHandler) Apply(
	env *Env,
	delta *ledger.Delta,
) (bool, error) {
	src, err := delta.Account(h.frame.SourceID())
	if err != nil {
		return false, err
	}
	if h.op().Asset.IsNative() {
		return h.applyNative(delta, src)
	}
	return h.applyCredit(delta, src)
}

func (h *paymentHandler) applyNative(
	delta *ledger.Delta,
	src *ledger.Account,
) (bool, error) {
	body := h.op()
	hdr, err := delta.Header()
	if err != nil {
		return false, err
	}
	if body.Amount > src.SpendableBalance(hdr) {
		h.res().Code = PaymentResultCodeUnderfunded
		return false, nil
	}
	dest, err := delta.Account(body.Destination)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			h.res().Code = PaymentResultCodeNoDestination
			return false, nil
		}
		return false, err
	}
	if dest.ID == src.ID {
		// Self payment moves nothing but still had to pass validation
		h.res().Code = PaymentResultCodeSuccess
		return true, nil
	}
	newBalance, ok := ledger.SafeAdd(dest.Balance, body.Amount)
	if !ok {
		h.res().Code = PaymentResultCodeLineFull
		return false, nil
	}
	dest.Balance = newBalance
	src.Balance -= body.Amount
	delta.PutAccount(src)
	delta.PutAccount(dest)
	h.res().Code = PaymentResultCodeSuccess
	return true, nil
}

func (h *paymentHandler) applyCredit(
	delta *ledger.Delta,
	src *ledger.Account,
) (bool, error) {
	body := h.op()
	issuer := body.Asset.Issuer
	var srcLine *ledger.TrustLine
	if src.ID != issuer {
		var err error
		srcLine, err = delta.TrustLine(src.ID, body.Asset)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				h.res().Code = PaymentResultCodeSrcNoTrust
				return false, nil
			}
			return false, err
		}
		if !srcLine.Authorized {
			h.res().Code = PaymentResultCodeSrcNotAuthorized
			return false, nil
		}
		if !srcLine.Debit(body.Amount) {
			h.res().Code = PaymentResultCodeUnderfunded
			return false, nil
		}
	}
	if body.Destination == src.ID {
		// Self payment moves nothing; the debited local copy is discarded
		h.res().Code = PaymentResultCodeSuccess
		return true, nil
	}
	// A destination that is the issuer burns the credit: only the source
	// line is debited
	if body.Destination != issuer {
		destLine, err := delta.TrustLine(body.Destination, body.Asset)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				h.res().Code = PaymentResultCodeNoTrust
				return false, nil
			}
			return false, err
		}
		if !destLine.Authorized {
			h.res().Code = PaymentResultCodeNotAuthorized
			return false, nil
		}
		if !destLine.Credit(body.Amount) {
			h.res().Code = PaymentResultCodeLineFull
			return false, nil
		}
		delta.PutTrustLine(destLine)
	}
	if srcLine != nil {
		delta.PutTrustLine(srcLine)
	}
	h.res().Code = PaymentResultCodeSuccess
	return true, nil
}
