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

// Package operation implements the per-operation validation and apply
// pipeline: it takes one requested ledger action, decides whether it is
// well-formed and authorized, and in mutating mode records its effect on a
// ledger.Delta. Identical inputs yield identical result codes and state
// mutations on every replica.
//
// # AI Navigation Guide
//
// # Processing Model
//
// An Operation is dispatched to a Frame with NewFrame, which binds it to a
// Result slot, a Fee descriptor, its parent Transaction, and the handler
// for its kind. Frame.CheckValid(env, nil) validates without touching
// state; Frame.Apply(env, delta) re-runs the full check and then applies.
// Rejections are result codes with a false return; errors are defects or
// storage failures and abort the whole transaction.
//
// # Check Phase Order
//
//  1. Resolve the acting account (explicit override or the transaction's
//     source). Absent: rejection ResultCodeNoAccount — except in check-only
//     mode with an explicit override, where an optimistic stand-in carries
//     the initial account thresholds through the signature check.
//  2. Authorize the transaction's signatures against the handler's
//     required threshold. Failure: rejection ResultCodeBadAuth.
//  3. Kind-specific static validation (payload only, never ledger state).
//
// # Critical Pattern: Static vs Applied Validation
//
// Handler CheckValid must not read accounts or trust lines: in check-only
// mode the acting account may not exist yet. Every state-dependent check
// belongs in handler Apply, which runs against the delta.
//
// # Critical Pattern: Single-Write Results
//
// A Result's outer code is written exactly once per processing run;
// rewriting panics. Frame.CheckValid and Frame.Apply rearm the slot via
// Reset, so the same frame can be flood-checked and later applied.
//
// # Synthetic Operations
//
// CreateTrustLine runs a ledger-generated change-trust operation to open a
// line the external-payment handler needs. It bypasses resolution and
// authorization, charges no fee, and distinguishes "the ledger cannot hold
// the line" (nil, nil) from contract breaches (InvariantViolationError).
// The change-trust handler itself never invokes synthetic work, so the
// recursion is bounded at depth one.
package operation
