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

// Package codec maps Go types onto CBOR using descriptors derived from their declared shape.
//
// # Declaring Shapes
//
// Struct types select a record shape by embedding a marker from package cbor:
//
//	type Input struct {
//	    cbor.StructAsArray
//	    TxId  [32]byte
//	    Index uint32
//	}
//
//	type Body struct {
//	    cbor.StructAsMap
//	    cbor.DecodeStoreCbor
//	    Inputs []Input `cbor:"0,keyasint,set"`
//	    Fee    uint64  `cbor:"2,keyasint"`
//	    Ttl    uint64  `cbor:"3,keyasint,omitempty"`
//	}
//
//	type Constr struct {
//	    cbor.Constructor
//	    Fields []Data `cbor:",fields,indef,emptydef"`
//	}
//
// Member options:
//   - omitempty: optional member, left out on write when empty
//   - indef, emptydef, set: array form of a slice member
//   - fields: the member is the body of the record itself
//   - hint=Sibling: union member selected by the integer field Sibling
//   - const=N: unsigned member that must equal N
//
// Union types are interfaces whose ordered variants are registered before first use:
//
//	codec.RegisterUnion[Data](registry,
//	    codec.Variant[Constr](),
//	    codec.Variant[Integer](),
//	)
//
// Embedding cbor.DecodeStoreCbor retains the exact bytes a value was decoded from.
// Those bytes are written back verbatim on serialize and returned by Codec.Bytes for
// hashing. Detach drops them from a copy that is about to be modified.
package codec
