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
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/blinklabs-io/meridian/cbor"
)

const (
	// SignatureSize is the size of an ed25519 signature
	SignatureSize = ed25519.SignatureSize

	// SeedSize is the size of an ed25519 private key seed
	SeedSize = ed25519.SeedSize

	// SignatureHintSize is the size of a signature hint
	SignatureHintSize = 4
)

// SignatureHint is the last few bytes of a signing key, used to cheaply
// match signatures to candidate signers before verifying
type SignatureHint [SignatureHintSize]byte

// Hint returns the account ID's signature hint
func (a AccountID) Hint() SignatureHint {
	var hint SignatureHint
	copy(hint[:], a[AccountIDSize-SignatureHintSize:])
	return hint
}

func (h SignatureHint) MarshalCBOR() ([]byte, error) {
	hintBytes := make([]byte, SignatureHintSize)
	copy(hintBytes, h[:])
	return cbor.Encode(hintBytes)
}

// DecoratedSignature pairs an ed25519 signature with the hint of the key
// that produced it
type DecoratedSignature struct {
	cbor.StructAsArray
	Hint      SignatureHint
	Signature []byte
}

// VerifySignature verifies an ed25519 signature over msg against the
// account's master key. Verification is strict: public keys that are not
// canonical curve points are rejected before the signature is checked
func VerifySignature(key AccountID, msg, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	if _, err := new(edwards25519.Point).SetBytes(key.Bytes()); err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(key.Bytes()), msg, sig)
}

// GenerateKeypair generates a new random account keypair
func GenerateKeypair() (AccountID, ed25519.PrivateKey, error) {
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return AccountID{}, nil, err
	}
	id, err := NewAccountID(pubKey)
	if err != nil {
		return AccountID{}, nil, err
	}
	return id, privKey, nil
}

// KeypairFromSeed derives an account keypair from an ed25519 seed
func KeypairFromSeed(seed []byte) (AccountID, ed25519.PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return AccountID{}, nil, fmt.Errorf(
			"incorrect seed length: expected %d, got %d",
			ed25519.SeedSize,
			len(seed),
		)
	}
	privKey := ed25519.NewKeyFromSeed(seed)
	id, err := NewAccountID(privKey.Public().(ed25519.PublicKey))
	if err != nil {
		return AccountID{}, nil, err
	}
	return id, privKey, nil
}

// Sign produces a decorated signature over msg with the provided key
func Sign(privKey ed25519.PrivateKey, msg []byte) DecoratedSignature {
	pubKey := privKey.Public().(ed25519.PublicKey)
	var id AccountID
	copy(id[:], pubKey)
	return DecoratedSignature{
		Hint:      id.Hint(),
		Signature: ed25519.Sign(privKey, msg),
	}
}
