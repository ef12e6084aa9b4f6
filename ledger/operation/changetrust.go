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

type ChangeTrustResultCode int32

const (
	ChangeTrustResultCodeSuccess      ChangeTrustResultCode = 0
	ChangeTrustResultCodeMalformed    ChangeTrustResultCode = -1
	ChangeTrustResultCodeNoIssuer     ChangeTrustResultCode = -2
	ChangeTrustResultCodeInvalidLimit ChangeTrustResultCode = -3
	ChangeTrustResultCodeLowReserve   ChangeTrustResultCode = -4
)

func (c ChangeTrustResultCode) String() string {
	switch c {
	case ChangeTrustResultCodeSuccess:
		return "success"
	case ChangeTrustResultCodeMalformed:
		return "malformed"
	case ChangeTrustResultCodeNoIssuer:
		return "noIssuer"
	case ChangeTrustResultCodeInvalidLimit:
		return "invalidLimit"
	case ChangeTrustResultCodeLowReserve:
		return "lowReserve"
	}
	return fmt.Sprintf("unknown (%d)", int32(c))
}

func (c ChangeTrustResultCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

type ChangeTrustResult struct {
	cbor.StructAsArray
	Code ChangeTrustResultCode `json:"code"`
}

func (*ChangeTrustResult) OpType() OpType {
	return OpTypeChangeTrust
}

func (r *ChangeTrustResult) Succeeded() bool {
	return r.Code == ChangeTrustResultCodeSuccess
}

type changeTrustHandler struct {
	baseHandler
}

func (h *changeTrustHandler) op() *ChangeTrust {
	return h.frame.op.Body.(*ChangeTrust)
}

func (h *changeTrustHandler) res() *ChangeTrustResult {
	return h.frame.res.Inner().(*ChangeTrustResult)
}

func (h *changeTrustHandler) CheckValid(
	env *Env,
	st ledger.StateReader,
) (bool, error) {
	body := h.op()
	if body.Line.IsNative() {
		h.res().Code = ChangeTrustResultCodeMalformed
		return false, nil
	}
	if err := body.Line.Validate(); err != nil {
		h.res().Code = ChangeTrustResultCodeMalformed
		return false, nil
	}
	if body.Limit < 0 {
		h.res().Code = ChangeTrustResultCodeInvalidLimit
		return false, nil
	}
	if h.frame.SourceID() == body.Line.Issuer {
		h.res().Code = ChangeTrustResultCodeMalformed
		return false, nil
	}
	return true, nil
}

func (h *changeTrustHandler) Apply(
	env *Env,
	delta *ledger.Delta,
) (bool, error) {
	body := h.op()
	src, err := delta.Account(h.frame.SourceID())
	if err != nil {
		return false, err
	}
	line, err := delta.TrustLine(src.ID, body.Line)
	if err == nil {
		if body.Limit == 0 && line.Balance == 0 {
			delta.DeleteTrustLine(src.ID, body.Line)
			if src.NumSubEntries > 0 {
				src.NumSubEntries--
			}
			delta.PutAccount(src)
			h.res().Code = ChangeTrustResultCodeSuccess
			return true, nil
		}
		if body.Limit < line.Balance {
			h.res().Code = ChangeTrustResultCodeInvalidLimit
			return false, nil
		}
		line.Limit = body.Limit
		delta.PutTrustLine(line)
		h.res().Code = ChangeTrustResultCodeSuccess
		return true, nil
	}
	if !errors.Is(err, ledger.ErrNotFound) {
		return false, err
	}
	if body.Limit == 0 {
		h.res().Code = ChangeTrustResultCodeInvalidLimit
		return false, nil
	}
	issuer, err := delta.Account(body.Line.Issuer)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			h.res().Code = ChangeTrustResultCodeNoIssuer
			return false, nil
		}
		return false, err
	}
	hdr, err := delta.Header()
	if err != nil {
		return false, err
	}
	if !canAddSubEntry(src, hdr) {
		h.res().Code = ChangeTrustResultCodeLowReserve
		return false, nil
	}
	newLine := &ledger.TrustLine{
		Account:    src.ID,
		Asset:      body.Line,
		Limit:      body.Limit,
		Authorized: issuer.Flags&ledger.FlagAuthRequired == 0,
	}
	src.NumSubEntries++
	delta.PutAccount(src)
	delta.PutTrustLine(newLine)
	h.res().Code = ChangeTrustResultCodeSuccess
	return true, nil
}
