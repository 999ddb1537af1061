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
	"math"
	"reflect"

	_cbor "github.com/fxamacker/cbor/v2"
)

const (
	// Useful tag numbers
	CborTagBigUint = 2
	CborTagBigNint = 3
	CborTagCbor    = 24
	CborTagSet     = 258

	// Tag ranges for "alternatives"
	// https://www.ietf.org/archive/id/draft-bormann-cbor-notable-tags-07.html#name-enumerated-alternative-data
	CborTagAlternative1Min = 121
	CborTagAlternative1Max = 127
	CborTagAlternative2Min = 1280
	CborTagAlternative3    = 101
)

var customTagSet _cbor.TagSet

func init() {
	// Build custom tagset
	customTagSet = _cbor.NewTagSet()
	tagOpts := _cbor.TagOptions{EncTag: _cbor.EncTagRequired, DecTag: _cbor.DecTagRequired}
	// Wrapped CBOR
	if err := customTagSet.Add(
		tagOpts,
		reflect.TypeOf(WrappedCbor{}),
		CborTagCbor,
	); err != nil {
		panic(err)
	}
}

// WrappedCbor corresponds to CBOR tag 24 and is used to encode nested CBOR data
type WrappedCbor []byte

func (w WrappedCbor) Bytes() []byte {
	return w[:]
}

// MaxConstructorIndex is the largest index whose tag fits in a CBOR tag number
const MaxConstructorIndex = math.MaxUint64 - (CborTagAlternative2Min - 7)

// ConstructorTag returns the CBOR tag number for a constructor index.
// Indexes 0-6 use tags 121-127 and larger indexes continue from tag 1280. The result
// is only meaningful up to MaxConstructorIndex
func ConstructorTag(index uint64) uint64 {
	if index <= CborTagAlternative1Max-CborTagAlternative1Min {
		return CborTagAlternative1Min + index
	}
	return CborTagAlternative2Min + (index - 7)
}

// ConstructorIndex inverts ConstructorTag. It returns false for tags outside
// both constructor ranges. Tag 101, which carries the index in its content,
// is not handled here
func ConstructorIndex(tagNum uint64) (uint64, bool) {
	switch {
	case tagNum >= CborTagAlternative1Min && tagNum <= CborTagAlternative1Max:
		return tagNum - CborTagAlternative1Min, true
	case tagNum >= CborTagAlternative2Min:
		return tagNum - CborTagAlternative2Min + 7, true
	default:
		return 0, false
	}
}

// IsAlternativeTag returns true if the given CBOR tag number represents
// a constructor/alternative (tags 121-127, 1280 and up, or 101).
func IsAlternativeTag(tagNum uint64) bool {
	if _, ok := ConstructorIndex(tagNum); ok {
		return true
	}
	return tagNum == CborTagAlternative3
}
