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

type AllowTrustResultCode int32

const (
	AllowTrustResultCodeSuccess          AllowTrustResultCode = 0
	AllowTrustResultCodeMalformed        AllowTrustResultCode = -1
	AllowTrustResultCodeNoTrustLine      AllowTrustResultCode = -2
	AllowTrustResultCodeTrustNotRequired AllowTrustResultCode = -3
	AllowTrustResultCodeCantRevoke       AllowTrustResultCode = -4
)

func (c AllowTrustResultCode) String() string {
	switch c {
	case AllowTrustResultCodeSuccess:
		return "success"
	case AllowTrustResultCodeMalformed:
		return "malformed"
	case AllowTrustResultCodeNoTrustLine:
		return "noTrustLine"
	case AllowTrustResultCodeTrustNotRequired:
		return "trustNotRequired"
	case AllowTrustResultCodeCantRevoke:
		return "cantRevoke"
	}
	return fmt.Sprintf("unknown (%d)", int32(c))
}

func (c AllowTrustResultCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

type AllowTrustResult struct {
	cbor.StructAsArray
	Code AllowTrustResultCode `json:"code"`
}

func (*AllowTrustResult) OpType() OpType {
	return OpTypeAllowTrust
}

func (r *AllowTrustResult) Succeeded() bool {
	return r.Code == AllowTrustResultCodeSuccess
}

type allowTrustHandler struct {
	baseHandler
}

// Granting or revoking authorization does not move funds, so it only needs
// low-threshold signatures
func (*allowTrustHandler) RequiredThreshold() ledger.ThresholdLevel {
	return ledger.ThresholdLow
}

func (h *allowTrustHandler) op() *AllowTrust {
	return h.frame.op.Body.(*AllowTrust)
}

func (h *allowTrustHandler) res() *AllowTrustResult {
	return h.frame.res.Inner().(*AllowTrustResult)
}

func (h *allowTrustHandler) CheckValid(
	env *Env,
	st ledger.StateReader,
) (bool, error) {
	body := h.op()
	// The authorized asset is issued by the acting account, so only the
	// code travels in the payload
	asset := ledger.CreditAsset(body.AssetCode, h.frame.SourceID())
	if asset.IsNative() {
		h.res().Code = AllowTrustResultCodeMalformed
		return false, nil
	}
	if err := asset.Validate(); err != nil {
		h.res().Code = AllowTrustResultCodeMalformed
		return false, nil
	}
	if body.Trustor == h.frame.SourceID() {
		h.res().Code = AllowTrustResultCodeMalformed
		return false, nil
	}
	return true, nil
}

func (h *allowTrustHandler) Apply(
	env *Env,
	delta *ledger.Delta,
) (bool, error) {
	body := h.op()
	src, err := delta.Account(h.frame.SourceID())
	if err != nil {
		return false, err
	}
	if src.Flags&ledger.FlagAuthRequired == 0 {
		h.res().Code = AllowTrustResultCodeTrustNotRequired
		return false, nil
	}
	if !body.Authorize && src.Flags&ledger.FlagAuthRevocable == 0 {
		h.res().Code = AllowTrustResultCodeCantRevoke
		return false, nil
	}
	asset := ledger.CreditAsset(body.AssetCode, src.ID)
	line, err := delta.TrustLine(body.Trustor, asset)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			h.res().Code = AllowTrustResultCodeNoTrustLine
			return false, nil
		}
		return false, err
	}
	line.Authorized = body.Authorize
	delta.PutTrustLine(line)
	h.res().Code = AllowTrustResultCodeSuccess
	return true, nil
}
