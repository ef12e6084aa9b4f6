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

type CreateAccountResultCode int32

const (
	CreateAccountResultCodeSuccess       CreateAccountResultCode = 0
	CreateAccountResultCodeMalformed     CreateAccountResultCode = -1
	CreateAccountResultCodeUnderfunded   CreateAccountResultCode = -2
	CreateAccountResultCodeLowReserve    CreateAccountResultCode = -3
	CreateAccountResultCodeAlreadyExists CreateAccountResultCode = -4
)

func (c CreateAccountResultCode) String() string {
	switch c {
	case CreateAccountResultCodeSuccess:
		return "success"
	case CreateAccountResultCodeMalformed:
		return "malformed"
	case CreateAccountResultCodeUnderfunded:
		return "underfunded"
	case CreateAccountResultCodeLowReserve:
		return "lowReserve"
	case CreateAccountResultCodeAlreadyExists:
		return "alreadyExists"
	}
	return fmt.Sprintf("unknown (%d)", int32(c))
}

func (c CreateAccountResultCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

type CreateAccountResult struct {
	cbor.StructAsArray
	Code CreateAccountResultCode `json:"code"`
}

func (*CreateAccountResult) OpType() OpType {
	return OpTypeCreateAccount
}

func (r *CreateAccountResult) Succeeded() bool {
	return r.Code == CreateAccountResultCodeSuccess
}

type createAccountHandler struct {
	baseHandler
}

func (h *createAccountHandler) op() *CreateAccount {
	return h.frame.op.Body.(*CreateAccount)
}

func (h *createAccountHandler) res() *CreateAccountResult {
	return h.frame.res.Inner().(*CreateAccountResult)
}

func (h *createAccountHandler) CheckValid(
	env *Env,
	st ledger.StateReader,
) (bool, error) {
	body := h.op()
	if body.StartingBalance <= 0 {
		h.res().Code = CreateAccountResultCodeMalformed
		return false, nil
	}
	if body.Destination.IsZero() {
		h.res().Code = CreateAccountResultCodeMalformed
		return false, nil
	}
	if body.Destination == h.frame.SourceID() {
		h.res().Code = CreateAccountResultCodeMalformed
		return false, nil
	}
	return true, nil
}

func (h *createAccountHandler) Apply(
	env *Env,
	delta *ledger.Delta,
) (bool, error) {
	body := h.op()
	src, err := delta.Account(h.frame.SourceID())
	if err != nil {
		return false, err
	}
	hdr, err := delta.Header()
	if err != nil {
		return false, err
	}
	if _, err := delta.Account(body.Destination); err == nil {
		h.res().Code = CreateAccountResultCodeAlreadyExists
		return false, nil
	} else if !errors.Is(err, ledger.ErrNotFound) {
		return false, err
	}
	if body.StartingBalance > src.SpendableBalance(hdr) {
		h.res().Code = CreateAccountResultCodeUnderfunded
		return false, nil
	}
	newAcct := ledger.NewAccount(body.Destination)
	if body.StartingBalance < newAcct.MinBalance(hdr) {
		h.res().Code = CreateAccountResultCodeLowReserve
		return false, nil
	}
	newAcct.Balance = body.StartingBalance
	newAcct.SeqNum = hdr.StartingSeqNum()
	src.Balance -= body.StartingBalance
	delta.PutAccount(src)
	delta.PutAccount(newAcct)
	h.res().Code = CreateAccountResultCodeSuccess
	return true, nil
}
