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

package ledger

import (
	"fmt"

	"github.com/blinklabs-io/meridian/cbor"
)

// MaxAssetCodeLen is the maximum length of a credit asset code
const MaxAssetCodeLen = 12

const (
	assetTypeNative = 0
	assetTypeCredit = 1
)

// Asset identifies a transferable asset. The zero value is the native asset;
// credit assets carry a short alphanumeric code and the issuing account
type Asset struct {
	Code   string    `json:"code"`
	Issuer AccountID `json:"issuer"`
}

func NativeAsset() Asset {
	return Asset{}
}

func CreditAsset(code string, issuer AccountID) Asset {
	return Asset{
		Code:   code,
		Issuer: issuer,
	}
}

func (a Asset) IsNative() bool {
	return a.Code == "" && a.Issuer.IsZero()
}

// Validate checks that the asset is either native or a well-formed credit
// asset
func (a Asset) Validate() error {
	if a.IsNative() {
		return nil
	}
	if a.Code == "" || len(a.Code) > MaxAssetCodeLen {
		return InvalidAssetError{
			Asset:  a,
			Reason: "asset code length out of range",
		}
	}
	for _, c := range []byte(a.Code) {
		if !isAlphanumeric(c) {
			return InvalidAssetError{
				Asset:  a,
				Reason: "asset code contains non-alphanumeric characters",
			}
		}
	}
	if a.Issuer.IsZero() {
		return InvalidAssetError{
			Asset:  a,
			Reason: "credit asset has no issuer",
		}
	}
	return nil
}

func (a Asset) String() string {
	if a.IsNative() {
		return "native"
	}
	return fmt.Sprintf("%s:%s", a.Code, a.Issuer)
}

type creditAssetCbor struct {
	cbor.StructAsArray
	Type   uint8
	Code   string
	Issuer AccountID
}

func (a Asset) MarshalCBOR() ([]byte, error) {
	if a.IsNative() {
		return cbor.Encode([]any{assetTypeNative})
	}
	return cbor.Encode(
		creditAssetCbor{
			Type:   assetTypeCredit,
			Code:   a.Code,
			Issuer: a.Issuer,
		},
	)
}

func (a *Asset) UnmarshalCBOR(data []byte) error {
	assetType, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	switch assetType {
	case assetTypeNative:
		*a = Asset{}
		return nil
	case assetTypeCredit:
		var tmp creditAssetCbor
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		a.Code = tmp.Code
		a.Issuer = tmp.Issuer
		return nil
	default:
		return fmt.Errorf("unknown asset type: %d", assetType)
	}
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
