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

// Package cbor provides CBOR encoding/decoding utilities for ledger data structures.
//
// # AI Navigation Guide
//
// This package wraps github.com/fxamacker/cbor/v2 with the patterns the rest of
// the module relies on: deterministic encoding, struct-as-array layouts, and
// type dispatch on tagged lists.
//
// # Key Types
//
// Embeddable types for struct encoding:
//   - StructAsArray: Embed to encode struct fields as a CBOR array instead of a map
//   - DecodeStoreCbor: Embed to preserve original CBOR bytes for hashing/signing
//
// Utility types:
//   - RawMessage: Deferred decoding (like json.RawMessage)
//
// # Critical Pattern: DecodeStoreCbor
//
// When a type needs its original CBOR bytes preserved (signature payloads are
// computed over the wire bytes, not a re-encoding):
//
//	type MyType struct {
//	    cbor.DecodeStoreCbor
//	    Field1 string
//	    Field2 int
//	}
//
//	func (m *MyType) UnmarshalCBOR(data []byte) error {
//	    type tMyType MyType  // Type alias to avoid recursion
//	    var tmp tMyType
//	    if _, err := cbor.Decode(data, &tmp); err != nil {
//	        return err
//	    }
//	    *m = MyType(tmp)
//	    m.SetCbor(data)  // CRITICAL: Store original bytes
//	    return nil
//	}
//
// Later, m.Cbor() returns the original bytes.
//
// # Type Dispatch
//
// Union-style values are encoded as a list with a leading numeric identifier.
// DecodeIdFromList() extracts the identifier without decoding the full list, so
// callers can pick a concrete destination type before the real decode.
//
// # Encoding Gotchas
//
//  1. Signature payloads: Always use Cbor(), not re-encoded data
//  2. Map key ordering: Encode() sorts map keys core-deterministically
//  3. Missing SetCbor call: Forgetting to call SetCbor() breaks payload hashing
package cbor
