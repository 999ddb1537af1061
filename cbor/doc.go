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

// Package cbor provides the CBOR wire layer used by the ledger codec.
//
// It wraps github.com/fxamacker/cbor/v2 for scalar encoding and decoding and
// adds the low-level helpers the codec engine needs: item header parsing and
// emission, item length measurement, Plutus constructor tag arithmetic and
// chunked "bounded bytes" output.
//
// # Shape Markers
//
// Embeddable types select the encoded shape of a record struct:
//   - StructAsArray: fields are encoded as a positional CBOR array
//   - StructAsMap: fields are encoded as a CBOR map keyed by integer or text keys
//   - Constructor: fields are wrapped in a Plutus constructor tag
//   - DecodeStoreCbor: the exact bytes a value was decoded from are retained
//
// Utility types:
//   - RawMessage: Deferred decoding (like json.RawMessage)
//   - ByteString: Bytestrings that can be used as map keys
//   - WrappedCbor: Nested CBOR carried under tag 24
//   - Tag, RawTag: CBOR semantic tags
//
// # Encoding Gotchas
//
//  1. Hash computation: use the retained bytes from Cbor(), not re-encoded data
//  2. Indefinite vs definite length: Plutus data uses indefinite arrays for non-empty fields
//  3. Byte strings over 64 bytes in Plutus data must be chunked
package cbor
