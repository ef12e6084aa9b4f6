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

// Package ledger defines the ledger entity model and state access layer
// shared by the operation pipeline.
//
// # AI Navigation Guide
//
// This package has no opinion about operation semantics; it provides the
// entities (Account, TrustLine, Asset, Header), the identifiers and crypto
// helpers (AccountID, DecoratedSignature, VerifySignature), and the state
// plumbing (StateReader, Store, Delta, MemStore) the operation package works
// against.
//
// # Key Types
//
//   - AccountID: 32-byte ed25519 public key; bech32 "mer" strings
//   - Account: balance, sequence number, thresholds, signers, flags,
//     managed data; NewAuthStandIn creates the never-persisted optimistic
//     variant used for signature checks on absent accounts
//   - Asset: zero value = native; credit assets are (code, issuer)
//   - TrustLine: per-account holding of a credit asset with limit and
//     authorization flag
//   - Header: ledger-wide parameters and running totals
//
// # State Access
//
//   - StateReader: read-only view; lookups of absent entries match
//     ErrNotFound via errors.Is
//   - Store: StateReader plus mutation; MemStore is the in-memory
//     implementation
//   - Delta: copy-on-write overlay over a StateReader; buffered writes are
//     visible to subsequent reads through the same Delta and applied to a
//     Store in deterministic order by Commit. Discarding the Delta is the
//     rollback
//
// # Critical Pattern: Copy Isolation
//
// Every read returns a caller-owned deep copy (jinzhu/copier for accounts).
// Handlers mutate their copies freely and make changes visible only through
// Delta.PutAccount / Delta.PutTrustLine. Forgetting the put means the
// mutation is silently dropped, never half-applied.
package ledger
