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

import "github.com/blinklabs-io/meridian/ledger"

type candidateSigner struct {
	key    ledger.AccountID
	weight uint32
}

// Authorize reports whether the decorated signatures over payload carry
// enough combined signer weight on the account to reach the required
// threshold. Candidate signers are the account's master key at its master
// weight plus the account's signer list; each signer counts at most once,
// and signatures are matched to candidates by hint before the signature is
// verified. On success it also returns the keys of the signers that
// contributed, in the order their signatures appear
func Authorize(
	acct *ledger.Account,
	required uint32,
	payload []byte,
	sigs []ledger.DecoratedSignature,
) ([]ledger.AccountID, bool) {
	if required == 0 {
		return nil, true
	}
	candidates := make([]candidateSigner, 0, len(acct.Signers)+1)
	if weight := acct.Thresholds.MasterWeight(); weight > 0 {
		candidates = append(
			candidates,
			candidateSigner{
				key:    acct.ID,
				weight: weight,
			},
		)
	}
	for _, signer := range acct.Signers {
		if signer.Weight == 0 {
			continue
		}
		candidates = append(
			candidates,
			candidateSigner{
				key:    signer.Key,
				weight: signer.Weight,
			},
		)
	}
	// Weights are summed in uint64 so a full signer list at maximum weight
	// cannot wrap
	var totalWeight uint64
	var usedKeys []ledger.AccountID
	for _, sig := range sigs {
		for i, candidate := range candidates {
			if candidate.key.Hint() != sig.Hint {
				continue
			}
			if !ledger.VerifySignature(
				candidate.key,
				payload,
				sig.Signature,
			) {
				continue
			}
			totalWeight += uint64(candidate.weight)
			usedKeys = append(usedKeys, candidate.key)
			if totalWeight >= uint64(required) {
				return usedKeys, true
			}
			candidates = append(candidates[:i], candidates[i+1:]...)
			break
		}
	}
	return nil, false
}
