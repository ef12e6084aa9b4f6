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

package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/meridian/ledger"
)

func main() {
	flagset := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var seedHex string
	flagset.StringVar(
		&seedHex,
		"seed",
		"",
		"derive the keypair from the given hex seed instead of generating one",
	)
	if err := flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	var id ledger.AccountID
	var privKey ed25519.PrivateKey
	var err error
	if seedHex == "" {
		id, privKey, err = ledger.GenerateKeypair()
	} else {
		var seed []byte
		seed, err = hex.DecodeString(seedHex)
		if err == nil {
			id, privKey, err = ledger.KeypairFromSeed(seed)
		}
	}
	if err != nil {
		fmt.Printf("failed to derive keypair: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Account ID: %s\n", id.String())
	fmt.Printf("Seed: %s\n", hex.EncodeToString(privKey.Seed()))
}
