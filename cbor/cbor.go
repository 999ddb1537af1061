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

package cbor

import (
	_cbor "github.com/fxamacker/cbor/v2"
)

// CBOR major types, pre-shifted into the top 3 bits of the initial byte
const (
	CborTypeUint        uint8 = 0x00
	CborTypeNegInt      uint8 = 0x20
	CborTypeByteString  uint8 = 0x40
	CborTypeTextString  uint8 = 0x60
	CborTypeArray       uint8 = 0x80
	CborTypeMap         uint8 = 0xa0
	CborTypeTag         uint8 = 0xc0
	CborTypeSimpleFloat uint8 = 0xe0

	// Only the top 3 bits are used to specify the type
	CborTypeMask uint8 = 0xe0

	// Max value able to be stored in a single byte without type prefix
	CborMaxUintSimple uint8 = 0x17

	// Additional info value marking an indefinite-length item
	CborIndefinite uint8 = 0x1f

	CborSimpleFalse     uint8 = 0xf4
	CborSimpleTrue      uint8 = 0xf5
	CborSimpleNull      uint8 = 0xf6
	CborSimpleUndefined uint8 = 0xf7
	CborBreak           uint8 = 0xff
)

// Create an alias for RawMessage for convenience
type RawMessage = _cbor.RawMessage

// Alias for Tag for convenience
type Tag = _cbor.Tag

// Alias for RawTag for convenience
type RawTag = _cbor.RawTag

// Marshaler is implemented by types that produce their own CBOR encoding
type Marshaler = _cbor.Marshaler

// Unmarshaler is implemented by types that decode their own CBOR encoding
type Unmarshaler = _cbor.Unmarshaler

// StructAsArray is embedded in a struct to encode its fields as a positional CBOR array.
// Array-level options go in the embedded field's tag, e.g. `cbor:",indef"`
type StructAsArray struct {
	// Tells the CBOR decoder to convert to/from a struct and a CBOR array
	_ struct{} `cbor:",toarray"`
}

// StructAsMap is embedded in a struct to encode its fields as a CBOR map keyed by
// each field's tag key, e.g. `cbor:"0,keyasint,omitempty"`
type StructAsMap struct{}

// Constructor is embedded in a struct to encode it as a Plutus-style constructor: a
// tag derived from the constructor index wrapping an array of the fields.
//
// A fixed index is given in the embedded field's tag (`cbor:"3"`). When no index is
// given, any index is accepted on decode and the index is carried in Index.
type Constructor struct {
	Index uint
}

// NewConstructor returns a Constructor carrying the given index
func NewConstructor(index uint) Constructor {
	return Constructor{Index: index}
}

type DecodeStoreCborInterface interface {
	Cbor() []byte
}

// DecodeStoreCbor is embedded in a struct to preserve the exact CBOR it was decoded from
type DecodeStoreCbor struct {
	cborData []byte
}

// Cbor returns the original CBOR for the object
func (d DecodeStoreCbor) Cbor() []byte {
	return d.cborData
}

// SetCbor stores the original CBOR for the object. The slice is retained, not copied
func (d *DecodeStoreCbor) SetCbor(cborData []byte) {
	if len(cborData) == 0 {
		d.cborData = nil
		return
	}
	d.cborData = cborData
}
