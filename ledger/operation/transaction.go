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

// Transaction is the envelope an operation runs inside. It supplies the
// default acting account, the signatures to authorize against, and the
// payload those signatures cover
type Transaction interface {
	// SourceAccount returns the transaction-level source account, used as
	// the acting account for operations without their own override
	SourceAccount() ledger.AccountID
	// Signatures returns the decorated signatures attached to the
	// transaction
	Signatures() []ledger.DecoratedSignature
	// SignaturePayload returns the bytes the signatures are expected to
	// cover
	SignaturePayload() []byte
}
