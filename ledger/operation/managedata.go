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
	"fmt"

	"github.com/blinklabs-io/meridian/cbor"
	"github.com/blinklabs-io/meridian/ledger"
)

type ManageDataResultCode int32

const (
	ManageDataResultCodeSuccess      ManageDataResultCode = 0
	ManageDataResultCodeInvalidName  ManageDataResultCode = -1
	ManageDataResultCodeNameNotFound ManageDataResultCode = -2
	ManageDataResultCodeLowReserve   ManageDataResultCode = -3
)

func (c ManageDataResultCode) String() string {
	switch c {
	case ManageDataResultCodeSuccess:
		return "success"
	case ManageDataResultCodeInvalidName:
		return "invalidName"
	case ManageDataResultCodeNameNotFound:
		return "nameNotFound"
	case ManageDataResultCodeLowReserve:
		return "lowReserve"
	}
	return fmt.Sprintf("unknown (%d)", int32(c))
}

func (c ManageDataResultCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

type ManageDataResult struct {
	cbor.StructAsArray
	Code ManageDataResultCode `json:"code"`
}

func (*ManageDataResult) OpType() OpType {
	return OpTypeManageData
}

func (r *ManageDataResult) Succeeded() bool {
	return r.Code == ManageDataResultCodeSuccess
}

type manageDataHandler struct {
	baseHandler
}

func (h *manageDataHandler) op() *ManageData {
	return h.frame.op.Body.(*ManageData)
}

func (h *manageDataHandler) res() *ManageDataResult {
	return h.frame.res.Inner().(*ManageDataResult)
}

func (h *manageDataHandler) CheckValid(
	env *Env,
	st ledger.StateReader,
) (bool, error) {
	body := h.op()
	if len(body.Name) == 0 || len(body.Name) > ledger.MaxDataKeyLen {
		h.res().Code = ManageDataResultCodeInvalidName
		return false, nil
	}
	if len(body.Value) > ledger.MaxDataValueLen {
		h.res().Code = ManageDataResultCodeInvalidName
		return false, nil
	}
	return true, nil
}

func (h *manageDataHandler) Apply(
	env *Env,
	delta *ledger.Delta,
) (bool, error) {
	body := h.op()
	src, err := delta.Account(h.frame.SourceID())
	if err != nil {
		return false, err
	}
	if body.Value == nil {
		if _, exists := src.Data[body.Name]; !exists {
			h.res().Code = ManageDataResultCodeNameNotFound
			return false, nil
		}
		delete(src.Data, body.Name)
		if src.NumSubEntries > 0 {
			src.NumSubEntries--
		}
		delta.PutAccount(src)
		h.res().Code = ManageDataResultCodeSuccess
		return true, nil
	}
	if _, exists := src.Data[body.Name]; !exists {
		hdr, err := delta.Header()
		if err != nil {
			return false, err
		}
		if !canAddSubEntry(src, hdr) {
			h.res().Code = ManageDataResultCodeLowReserve
			return false, nil
		}
		src.NumSubEntries++
	}
	if src.Data == nil {
		src.Data = make(map[string][]byte)
	}
	src.Data[body.Name] = bytes.Clone(body.Value)
	delta.PutAccount(src)
	h.res().Code = ManageDataResultCodeSuccess
	return true, nil
}
