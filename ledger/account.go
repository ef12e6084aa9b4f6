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
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/jinzhu/copier"

	"github.com/blinklabs-io/meridian/cbor"
)

const (
	// AccountIDSize is the size of an account identifier (an ed25519 public key)
	AccountIDSize = 32

	// AccountIDPrefix is the bech32 human-readable prefix for account IDs
	AccountIDPrefix = "mer"

	// MaxSigners is the maximum number of secondary signers per account
	MaxSigners = 20

	// MaxHomeDomainLen is the maximum length of an account home domain
	MaxHomeDomainLen = 32

	// MaxDataKeyLen and MaxDataValueLen bound managed data entries
	MaxDataKeyLen   = 64
	MaxDataValueLen = 64
)

// AccountID is an account identifier. It doubles as the account's master
// signing key
type AccountID [AccountIDSize]byte

func NewAccountID(data []byte) (AccountID, error) {
	if len(data) != AccountIDSize {
		return AccountID{}, fmt.Errorf(
			"incorrect account ID length: expected %d, got %d",
			AccountIDSize,
			len(data),
		)
	}
	var id AccountID
	copy(id[:], data)
	return id, nil
}

// NewAccountIDFromBech32 returns an AccountID based on the provided bech32
// address string
func NewAccountIDFromBech32(addr string) (AccountID, error) {
	hrp, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return AccountID{}, err
	}
	if hrp != AccountIDPrefix {
		return AccountID{}, fmt.Errorf(
			"unexpected bech32 prefix: expected %q, got %q",
			AccountIDPrefix,
			hrp,
		)
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return AccountID{}, err
	}
	return NewAccountID(decoded)
}

func (a AccountID) Bytes() []byte {
	return a[:]
}

// String returns the bech32-encoded version of the account ID
func (a AccountID) String() string {
	convData, err := bech32.ConvertBits(a.Bytes(), 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(AccountIDPrefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

func (a AccountID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a AccountID) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the ID is zero-valued
	idBytes := make([]byte, AccountIDSize)
	copy(idBytes, a[:])
	return cbor.Encode(idBytes)
}

func (a *AccountID) UnmarshalJSON(data []byte) error {
	var addr string
	if err := json.Unmarshal(data, &addr); err != nil {
		return err
	}
	id, err := NewAccountIDFromBech32(addr)
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// Signer is a secondary signing key attached to an account with an
// authorization weight
type Signer struct {
	cbor.StructAsArray
	Key    AccountID `json:"key"`
	Weight uint32    `json:"weight"`
}

// ThresholdLevel selects one of the account's authorization threshold slots
type ThresholdLevel uint8

const (
	ThresholdMaster ThresholdLevel = 0
	ThresholdLow    ThresholdLevel = 1
	ThresholdMedium ThresholdLevel = 2
	ThresholdHigh   ThresholdLevel = 3
)

func (l ThresholdLevel) String() string {
	switch l {
	case ThresholdMaster:
		return "master"
	case ThresholdLow:
		return "low"
	case ThresholdMedium:
		return "medium"
	case ThresholdHigh:
		return "high"
	}
	return fmt.Sprintf("unknown (%d)", l)
}

// Thresholds packs the master key weight and the three authorization
// threshold values
type Thresholds [4]uint8

func (t Thresholds) MasterWeight() uint32 {
	return uint32(t[ThresholdMaster])
}

// Weight returns the weight required to authorize at the given level
func (t Thresholds) Weight(level ThresholdLevel) uint32 {
	return uint32(t[level])
}

func (t Thresholds) MarshalCBOR() ([]byte, error) {
	thresholdBytes := make([]byte, len(t))
	copy(thresholdBytes, t[:])
	return cbor.Encode(thresholdBytes)
}

// AccountFlags is a bitmask of account-level authorization flags
type AccountFlags uint32

const (
	// FlagAuthRequired requires the issuer to authorize trust lines before
	// holders can receive the asset
	FlagAuthRequired AccountFlags = 1 << iota

	// FlagAuthRevocable allows the issuer to revoke an existing trust line
	// authorization
	FlagAuthRevocable

	// FlagAuthImmutable forbids any further flag changes and account merge
	FlagAuthImmutable
)

// FlagsAll is the set of all defined flag bits
const FlagsAll = FlagAuthRequired | FlagAuthRevocable | FlagAuthImmutable

// Account is a ledger account entry
type Account struct {
	cbor.StructAsArray
	ID            AccountID         `json:"id"`
	Balance       int64             `json:"balance"`
	SeqNum        uint64            `json:"seqNum"`
	NumSubEntries uint32            `json:"numSubEntries"`
	Thresholds    Thresholds        `json:"thresholds"`
	Signers       []Signer          `json:"signers,omitempty"`
	Flags         AccountFlags      `json:"flags,omitempty"`
	HomeDomain    string            `json:"homeDomain,omitempty"`
	InflationDest *AccountID        `json:"inflationDest,omitempty"`
	Data          map[string][]byte `json:"data,omitempty"`

	authStandIn bool
}

// NewAccount returns an account with the initial thresholds every account
// starts with: master weight 1, all operation thresholds 0
func NewAccount(id AccountID) *Account {
	return &Account{
		ID:         id,
		Thresholds: Thresholds{1, 0, 0, 0},
	}
}

// NewAuthStandIn returns an optimistic stand-in account used only for
// signature checking while validating operations whose source account does
// not exist yet. It carries the same thresholds a freshly created account
// would. Stand-ins are never persisted
func NewAuthStandIn(id AccountID) *Account {
	acct := NewAccount(id)
	acct.authStandIn = true
	return acct
}

// AuthStandIn reports whether the account is an optimistic stand-in rather
// than a loaded ledger entry
func (a *Account) AuthStandIn() bool {
	return a.authStandIn
}

// MinBalance returns the reserve the account must hold: the base reserve
// times (2 + the number of subentries)
func (a *Account) MinBalance(hdr *Header) int64 {
	reserve, ok := SafeMul(int64(a.NumSubEntries)+2, hdr.BaseReserve)
	if !ok {
		return math.MaxInt64
	}
	return reserve
}

// SpendableBalance returns the balance above the account's own reserve
func (a *Account) SpendableBalance(hdr *Header) int64 {
	return a.Balance - a.MinBalance(hdr)
}

// Signer returns the secondary signer with the given key, if present
func (a *Account) Signer(key AccountID) (Signer, bool) {
	idx, found := a.findSigner(key)
	if !found {
		return Signer{}, false
	}
	return a.Signers[idx], true
}

// SetSigner inserts or updates a secondary signer, keeping the signer list
// sorted by key
func (a *Account) SetSigner(signer Signer) {
	idx, found := a.findSigner(signer.Key)
	if found {
		a.Signers[idx] = signer
		return
	}
	a.Signers = append(a.Signers, Signer{})
	copy(a.Signers[idx+1:], a.Signers[idx:])
	a.Signers[idx] = signer
}

// RemoveSigner removes the secondary signer with the given key and reports
// whether it was present
func (a *Account) RemoveSigner(key AccountID) bool {
	idx, found := a.findSigner(key)
	if !found {
		return false
	}
	a.Signers = append(a.Signers[:idx], a.Signers[idx+1:]...)
	return true
}

func (a *Account) findSigner(key AccountID) (int, bool) {
	idx := sort.Search(len(a.Signers), func(i int) bool {
		return bytes.Compare(a.Signers[i].Key[:], key[:]) >= 0
	})
	if idx < len(a.Signers) && a.Signers[idx].Key == key {
		return idx, true
	}
	return idx, false
}

func cloneAccount(acct *Account) *Account {
	var ret Account
	if err := copier.CopyWithOption(
		&ret,
		acct,
		copier.Option{DeepCopy: true},
	); err != nil {
		panic(fmt.Sprintf("unexpected error copying account: %s", err))
	}
	// copier doesn't see unexported fields
	ret.authStandIn = acct.authStandIn
	return &ret
}
