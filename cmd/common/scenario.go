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

package common

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/blinklabs-io/meridian/cbor"
	"github.com/blinklabs-io/meridian/ledger"
	"github.com/blinklabs-io/meridian/ledger/operation"
)

// Scenario is a JSON-described transaction: a source account, the seeds of
// the keys signing it, and its operations
type Scenario struct {
	Source     ledger.AccountID `json:"source"`
	Seeds      []string         `json:"seeds,omitempty"`
	Operations []ScenarioOp     `json:"operations"`
}

// ScenarioOp is one operation in a scenario file. Type selects the
// operation kind; the remaining fields are read as that kind's payload
// needs them
type ScenarioOp struct {
	Type            string            `json:"type"`
	Source          *ledger.AccountID `json:"source,omitempty"`
	Destination     ledger.AccountID  `json:"destination,omitempty"`
	Asset           ledger.Asset      `json:"asset,omitempty"`
	Amount          int64             `json:"amount,omitempty"`
	StartingBalance int64             `json:"startingBalance,omitempty"`
	Limit           int64             `json:"limit,omitempty"`
	Trustor         ledger.AccountID  `json:"trustor,omitempty"`
	AssetCode       string            `json:"assetCode,omitempty"`
	Authorize       bool              `json:"authorize,omitempty"`
	Name            string            `json:"name,omitempty"`
	Value           []byte            `json:"value,omitempty"`
	Options         *operation.SetOptions `json:"options,omitempty"`
}

// NewScenarioFromReader decodes a scenario document
func NewScenarioFromReader(r io.Reader) (Scenario, error) {
	var ret Scenario
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ret); err != nil {
		return ret, err
	}
	return ret, nil
}

func NewScenarioFromFile(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, err
	}
	defer f.Close()
	return NewScenarioFromReader(f)
}

// body builds the operation payload for the scenario entry
func (o ScenarioOp) body() (operation.Body, error) {
	switch o.Type {
	case "createAccount":
		return &operation.CreateAccount{
			Destination:     o.Destination,
			StartingBalance: o.StartingBalance,
		}, nil
	case "payment":
		return &operation.Payment{
			Destination: o.Destination,
			Asset:       o.Asset,
			Amount:      o.Amount,
		}, nil
	case "externalPayment":
		return &operation.ExternalPayment{
			Destination: o.Destination,
			Asset:       o.Asset,
			Amount:      o.Amount,
		}, nil
	case "changeTrust":
		return &operation.ChangeTrust{
			Line:  o.Asset,
			Limit: o.Limit,
		}, nil
	case "allowTrust":
		return &operation.AllowTrust{
			Trustor:   o.Trustor,
			AssetCode: o.AssetCode,
			Authorize: o.Authorize,
		}, nil
	case "setOptions":
		opts := o.Options
		if opts == nil {
			opts = &operation.SetOptions{}
		}
		return opts, nil
	case "accountMerge":
		return &operation.AccountMerge{
			Destination: o.Destination,
		}, nil
	case "inflation":
		return &operation.Inflation{}, nil
	case "manageData":
		return &operation.ManageData{
			Name:  o.Name,
			Value: o.Value,
		}, nil
	}
	return nil, fmt.Errorf("unknown operation type: %s", o.Type)
}

// BuildOperations builds the operation values described by the scenario
func (s Scenario) BuildOperations() ([]operation.Operation, error) {
	ret := make([]operation.Operation, 0, len(s.Operations))
	for _, scenarioOp := range s.Operations {
		body, err := scenarioOp.body()
		if err != nil {
			return nil, err
		}
		ret = append(
			ret,
			operation.Operation{
				SourceAccount: scenarioOp.Source,
				Body:          body,
			},
		)
	}
	return ret, nil
}

// Tx is the parent transaction a scenario runs as. The signature payload is
// the blake2b-256 digest of the CBOR encoding of the source account and
// operation list
type Tx struct {
	source  ledger.AccountID
	sigs    []ledger.DecoratedSignature
	payload []byte
}

// Tx signs the scenario's payload with each of the scenario's seeds
func (s Scenario) Tx(ops []operation.Operation) (*Tx, error) {
	opsData, err := cbor.Encode(ops)
	if err != nil {
		return nil, err
	}
	digest := blake2b.Sum256(append(s.Source.Bytes(), opsData...))
	tx := &Tx{
		source:  s.Source,
		payload: digest[:],
	}
	for _, seedHex := range s.Seeds {
		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return nil, fmt.Errorf("invalid seed: %w", err)
		}
		_, privKey, err := ledger.KeypairFromSeed(seed)
		if err != nil {
			return nil, err
		}
		tx.sigs = append(tx.sigs, ledger.Sign(privKey, digest[:]))
	}
	return tx, nil
}

func (t *Tx) SourceAccount() ledger.AccountID {
	return t.source
}

func (t *Tx) Signatures() []ledger.DecoratedSignature {
	return t.sigs
}

func (t *Tx) SignaturePayload() []byte {
	return t.payload
}
