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

// Package test provides shared helpers for tests
package test

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/blinklabs-io/meridian/ledger"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// Keypair derives a deterministic account keypair from a seed filled with
// the given byte
func Keypair(fill byte) (ledger.AccountID, ed25519.PrivateKey) {
	seed := bytes.Repeat([]byte{fill}, ledger.SeedSize)
	id, privKey, err := ledger.KeypairFromSeed(seed)
	if err != nil {
		panic(fmt.Sprintf("error deriving keypair: %s", err))
	}
	return id, privKey
}

// Digest returns the blake2b-256 digest signatures cover in tests
func Digest(data []byte) []byte {
	digest := blake2b.Sum256(data)
	return digest[:]
}

// Tx is a minimal parent transaction for driving operations in tests
type Tx struct {
	Source  ledger.AccountID
	Sigs    []ledger.DecoratedSignature
	Payload []byte
}

// NewTx builds a test transaction over the given payload, signed by each of
// the provided keys
func NewTx(
	source ledger.AccountID,
	payload []byte,
	keys ...ed25519.PrivateKey,
) *Tx {
	tx := &Tx{
		Source:  source,
		Payload: payload,
	}
	for _, key := range keys {
		tx.Sigs = append(tx.Sigs, ledger.Sign(key, payload))
	}
	return tx
}

func (t *Tx) SourceAccount() ledger.AccountID {
	return t.Source
}

func (t *Tx) Signatures() []ledger.DecoratedSignature {
	return t.Sigs
}

func (t *Tx) SignaturePayload() []byte {
	return t.Payload
}
