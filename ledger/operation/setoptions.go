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
	"math"

	"github.com/blinklabs-io/meridian/cbor"
	"github.com/blinklabs-io/meridian/ledger"
)

type SetOptionsResultCode int32

const (
	SetOptionsResultCodeSuccess             SetOptionsResultCode = 0
	SetOptionsResultCodeLowReserve          SetOptionsResultCode = -1
	SetOptionsResultCodeTooManySigners      SetOptionsResultCode = -2
	SetOptionsResultCodeBadFlags            SetOptionsResultCode = -3
	SetOptionsResultCodeInvalidInflation    SetOptionsResultCode = -4
	SetOptionsResultCodeCantChange          SetOptionsResultCode = -5
	SetOptionsResultCodeUnknownFlag         SetOptionsResultCode = -6
	SetOptionsResultCodeThresholdOutOfRange SetOptionsResultCode = -7
	SetOptionsResultCodeBadSigner           SetOptionsResultCode = -8
	SetOptionsResultCodeInvalidHomeDomain   SetOptionsResultCode = -9
)

func (c SetOptionsResultCode) String() string {
	switch c {
	case SetOptionsResultCodeSuccess:
		return "success"
	case SetOptionsResultCodeLowReserve:
		return "lowReserve"
	case SetOptionsResultCodeTooManySigners:
		return "tooManySigners"
	case SetOptionsResultCodeBadFlags:
		return "badFlags"
	case SetOptionsResultCodeInvalidInflation:
		return "invalidInflation"
	case SetOptionsResultCodeCantChange:
		return "cantChange"
	case SetOptionsResultCodeUnknownFlag:
		return "unknownFlag"
	case SetOptionsResultCodeThresholdOutOfRange:
		return "thresholdOutOfRange"
	case SetOptionsResultCodeBadSigner:
		return "badSigner"
	case SetOptionsResultCodeInvalidHomeDomain:
		return "invalidHomeDomain"
	}
	return fmt.Sprintf("unknown (%d)", int32(c))
}

func (c SetOptionsResultCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

type SetOptionsResult struct {
	cbor.StructAsArray
	Code SetOptionsResultCode `json:"code"`
}

func (*SetOptionsResult) OpType() OpType {
	return OpTypeSetOptions
}

func (r *SetOptionsResult) Succeeded() bool {
	return r.Code == SetOptionsResultCodeSuccess
}

type setOptionsHandler struct {
	baseHandler
}

// Changing who can sign for the account needs high-threshold signatures;
// everything else rides on the default
func (h *setOptionsHandler) RequiredThreshold() ledger.ThresholdLevel {
	if h.op().touchesAuth() {
		return ledger.ThresholdHigh
	}
	return ledger.ThresholdMedium
}

func (h *setOptionsHandler) op() *SetOptions {
	return h.frame.op.Body.(*SetOptions)
}

func (h *setOptionsHandler) res() *SetOptionsResult {
	return h.frame.res.Inner().(*SetOptionsResult)
}

func (h *setOptionsHandler) CheckValid(
	env *Env,
	st ledger.StateReader,
) (bool, error) {
	body := h.op()
	if body.SetFlags != nil && body.ClearFlags != nil &&
		*body.SetFlags&*body.ClearFlags != 0 {
		h.res().Code = SetOptionsResultCodeBadFlags
		return false, nil
	}
	for _, flags := range []*uint32{body.SetFlags, body.ClearFlags} {
		if flags != nil && *flags&^uint32(ledger.FlagsAll) != 0 {
			h.res().Code = SetOptionsResultCodeUnknownFlag
			return false, nil
		}
	}
	for _, weight := range []*uint32{
		body.MasterWeight,
		body.LowThreshold,
		body.MediumThreshold,
		body.HighThreshold,
	} {
		if weight != nil && *weight > math.MaxUint8 {
			h.res().Code = SetOptionsResultCodeThresholdOutOfRange
			return false, nil
		}
	}
	if body.Signer != nil {
		if body.Signer.Key == h.frame.SourceID() {
			h.res().Code = SetOptionsResultCodeBadSigner
			return false, nil
		}
		if body.Signer.Weight > math.MaxUint8 {
			h.res().Code = SetOptionsResultCodeThresholdOutOfRange
			return false, nil
		}
	}
	if body.HomeDomain != nil &&
		len(*body.HomeDomain) > ledger.MaxHomeDomainLen {
		h.res().Code = SetOptionsResultCodeInvalidHomeDomain
		return false, nil
	}
	return true, nil
}

func (h *setOptionsHandler) Apply(
	env *Env,
	delta *ledger.Delta,
) (bool, error) {
	body := h.op()
	src, err := delta.Account(h.frame.SourceID())
	if err != nil {
		return false, err
	}
	if body.SetFlags != nil || body.ClearFlags != nil {
		if src.Flags&ledger.FlagAuthImmutable != 0 {
			h.res().Code = SetOptionsResultCodeCantChange
			return false, nil
		}
		// Immutability is a one-way switch
		if body.ClearFlags != nil &&
			*body.ClearFlags&uint32(ledger.FlagAuthImmutable) != 0 {
			h.res().Code = SetOptionsResultCodeCantChange
			return false, nil
		}
	}
	if body.InflationDest != nil {
		if _, err := delta.Account(*body.InflationDest); err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				h.res().Code = SetOptionsResultCodeInvalidInflation
				return false, nil
			}
			return false, err
		}
	}
	if body.Signer != nil && body.Signer.Weight > 0 {
		if _, exists := src.Signer(body.Signer.Key); !exists {
			if len(src.Signers) >= ledger.MaxSigners {
				h.res().Code = SetOptionsResultCodeTooManySigners
				return false, nil
			}
			hdr, err := delta.Header()
			if err != nil {
				return false, err
			}
			if !canAddSubEntry(src, hdr) {
				h.res().Code = SetOptionsResultCodeLowReserve
				return false, nil
			}
			src.NumSubEntries++
		}
		src.SetSigner(*body.Signer)
	}
	if body.Signer != nil && body.Signer.Weight == 0 {
		if src.RemoveSigner(body.Signer.Key) && src.NumSubEntries > 0 {
			src.NumSubEntries--
		}
	}
	if body.InflationDest != nil {
		dest := *body.InflationDest
		src.InflationDest = &dest
	}
	if body.ClearFlags != nil {
		src.Flags &^= ledger.AccountFlags(*body.ClearFlags)
	}
	if body.SetFlags != nil {
		src.Flags |= ledger.AccountFlags(*body.SetFlags)
	}
	if body.MasterWeight != nil {
		src.Thresholds[ledger.ThresholdMaster] = uint8(*body.MasterWeight)
	}
	if body.LowThreshold != nil {
		src.Thresholds[ledger.ThresholdLow] = uint8(*body.LowThreshold)
	}
	if body.MediumThreshold != nil {
		src.Thresholds[ledger.ThresholdMedium] = uint8(*body.MediumThreshold)
	}
	if body.HighThreshold != nil {
		src.Thresholds[ledger.ThresholdHigh] = uint8(*body.HighThreshold)
	}
	if body.HomeDomain != nil {
		src.HomeDomain = *body.HomeDomain
	}
	delta.PutAccount(src)
	h.res().Code = SetOptionsResultCodeSuccess
	return true, nil
}
