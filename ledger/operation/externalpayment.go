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

type ExternalPaymentResultCode int32

const (
	ExternalPaymentResultCodeSuccess       ExternalPaymentResultCode = 0
	ExternalPaymentResultCodeMalformed     ExternalPaymentResultCode = -1
	ExternalPaymentResultCodeNotIssuer     ExternalPaymentResultCode = -2
	ExternalPaymentResultCodeNoDestination ExternalPaymentResultCode = -3
	ExternalPaymentResultCodeLowReserve    ExternalPaymentResultCode = -4
	ExternalPaymentResultCodeLineFull      ExternalPaymentResultCode = -5
)

func (c ExternalPaymentResultCode) String() string {
	switch c {
	case ExternalPaymentResultCodeSuccess:
		return "success"
	case ExternalPaymentResultCodeMalformed:
		return "malformed"
	case ExternalPaymentResultCodeNotIssuer:
		return "notIssuer"
	case ExternalPaymentResultCodeNoDestination:
		return "noDestination"
	case ExternalPaymentResultCodeLowReserve:
		return "lowReserve"
	case ExternalPaymentResultCodeLineFull:
		return "lineFull"
	}
	return fmt.Sprintf("unknown (%d)", int32(c))
}

func (c ExternalPaymentResultCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

type ExternalPaymentResult struct {
	cbor.StructAsArray
	Code ExternalPaymentResultCode `json:"code"`
}

func (*ExternalPaymentResult) OpType() OpType {
	return OpTypeExternalPayment
}

func (r *ExternalPaymentResult) Succeeded() bool {
	return r.Code == ExternalPaymentResultCodeSuccess
}

type externalPaymentHandler struct {
	baseHandler
}

func (h *externalPaymentHandler) op() *ExternalPayment {
	return h.frame.op.Body.(*ExternalPayment)
}

func (h *externalPaymentHandler) res() *ExternalPaymentResult {
	return h.frame.res.Inner().(*ExternalPaymentResult)
}

func (h *externalPaymentHandler) CheckValid(
	env *Env,
	st ledger.StateReader,
) (bool, error) {
	body := h.op()
	if body.Amount <= 0 {
		h.res().Code = ExternalPaymentResultCodeMalformed
		return false, nil
	}
	if body.Asset.IsNative() {
		h.res().Code = ExternalPaymentResultCodeMalformed
		return false, nil
	}
	if err := body.Asset.Validate(); err != nil {
		h.res().Code = ExternalPaymentResultCodeMalformed
		return false, nil
	}
	// The issuer cannot hold a line on its own asset, so a deposit to the
	// issuer has nowhere to land
	if body.Destination == body.Asset.Issuer {
		h.res().Code = ExternalPaymentResultCodeMalformed
		return false, nil
	}
	return true, nil
}

func (h *externalPaymentHandler) Apply(
	env *Env,
	delta *ledger.Delta,
) (bool, error) {
	body := h.op()
	src, err := delta.Account(h.frame.SourceID())
	if err != nil {
		return false, err
	}
	if src.ID != body.Asset.Issuer {
		h.res().Code = ExternalPaymentResultCodeNotIssuer
		return false, nil
	}
	dest, err := delta.Account(body.Destination)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			h.res().Code = ExternalPaymentResultCodeNoDestination
			return false, nil
		}
		return false, err
	}
	destLine, err := delta.TrustLine(body.Destination, body.Asset)
	if err != nil {
		if !errors.Is(err, ledger.ErrNotFound) {
			return false, err
		}
		// The destination never opted in to the asset; open the line for
		// it. The synthetic operation charges the destination's reserve,
		// so it can come back empty-handed without it being a defect
		destLine, err = CreateTrustLine(
			env,
			delta,
			h.frame.tx,
			dest,
			body.Asset,
		)
		if err != nil {
			return false, err
		}
		if destLine == nil {
			h.res().Code = ExternalPaymentResultCodeLowReserve
			return false, nil
		}
		// The synthetic operation rewrote the destination account in the
		// delta, so the copy loaded above must not be stored back
	}
	if !destLine.Credit(body.Amount) {
		h.res().Code = ExternalPaymentResultCodeLineFull
		return false, nil
	}
	delta.PutTrustLine(destLine)
	h.res().Code = ExternalPaymentResultCodeSuccess
	return true, nil
}
