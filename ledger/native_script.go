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

package ledger

import (
	"github.com/blinklabs-io/ledgercodec/cbor"
)

const (
	NativeScriptTypePubkey           = 0
	NativeScriptTypeAll              = 1
	NativeScriptTypeAny              = 2
	NativeScriptTypeNofK             = 3
	NativeScriptTypeInvalidBefore    = 4
	NativeScriptTypeInvalidHereafter = 5
)

// nativeScriptHashPrefix is the script language tag prepended when hashing native scripts
const nativeScriptHashPrefix = 0x00

// NativeScript is a timelock/multisig script. Each variant starts with its own
// fixed type number, which is what tells them apart on decode
type NativeScript interface {
	isNativeScript()
	Hash() (Blake2b224, error)
	// Evaluate reports whether the script is satisfied by the given signers within
	// the validity interval [validFrom, validTo). A zero bound is unset, and an unset
	// bound never satisfies a timelock on that side
	Evaluate(signers map[Blake2b224]bool, validFrom, validTo uint64) bool
}

type NativeScriptPubkey struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type    uint `cbor:",const=0"`
	KeyHash Blake2b224
}

type NativeScriptAll struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type    uint `cbor:",const=1"`
	Scripts []NativeScript
}

type NativeScriptAny struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type    uint `cbor:",const=2"`
	Scripts []NativeScript
}

type NativeScriptNofK struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type    uint `cbor:",const=3"`
	N       uint
	Scripts []NativeScript
}

type NativeScriptInvalidBefore struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type uint `cbor:",const=4"`
	Slot uint64
}

type NativeScriptInvalidHereafter struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type uint `cbor:",const=5"`
	Slot uint64
}

func (NativeScriptPubkey) isNativeScript()           {}
func (NativeScriptAll) isNativeScript()              {}
func (NativeScriptAny) isNativeScript()              {}
func (NativeScriptNofK) isNativeScript()             {}
func (NativeScriptInvalidBefore) isNativeScript()    {}
func (NativeScriptInvalidHereafter) isNativeScript() {}

func (s NativeScriptPubkey) Hash() (Blake2b224, error)           { return nativeScriptHash(s) }
func (s NativeScriptAll) Hash() (Blake2b224, error)              { return nativeScriptHash(s) }
func (s NativeScriptAny) Hash() (Blake2b224, error)              { return nativeScriptHash(s) }
func (s NativeScriptNofK) Hash() (Blake2b224, error)             { return nativeScriptHash(s) }
func (s NativeScriptInvalidBefore) Hash() (Blake2b224, error)    { return nativeScriptHash(s) }
func (s NativeScriptInvalidHereafter) Hash() (Blake2b224, error) { return nativeScriptHash(s) }

func nativeScriptHash(script NativeScript) (Blake2b224, error) {
	cborData, err := DefaultCodec().Bytes(script)
	if err != nil {
		return Blake2b224{}, err
	}
	return Blake2b224Hash(append([]byte{nativeScriptHashPrefix}, cborData...)), nil
}

func (s NativeScriptPubkey) Evaluate(signers map[Blake2b224]bool, _, _ uint64) bool {
	return signers[s.KeyHash]
}

func (s NativeScriptAll) Evaluate(signers map[Blake2b224]bool, validFrom, validTo uint64) bool {
	for _, script := range s.Scripts {
		if !script.Evaluate(signers, validFrom, validTo) {
			return false
		}
	}
	return true
}

func (s NativeScriptAny) Evaluate(signers map[Blake2b224]bool, validFrom, validTo uint64) bool {
	for _, script := range s.Scripts {
		if script.Evaluate(signers, validFrom, validTo) {
			return true
		}
	}
	return false
}

func (s NativeScriptNofK) Evaluate(signers map[Blake2b224]bool, validFrom, validTo uint64) bool {
	var count uint
	for _, script := range s.Scripts {
		if script.Evaluate(signers, validFrom, validTo) {
			count++
			if count >= s.N {
				return true
			}
		}
	}
	return count >= s.N
}

func (s NativeScriptInvalidBefore) Evaluate(_ map[Blake2b224]bool, validFrom, _ uint64) bool {
	return validFrom != 0 && s.Slot <= validFrom
}

func (s NativeScriptInvalidHereafter) Evaluate(_ map[Blake2b224]bool, _, validTo uint64) bool {
	return validTo != 0 && validTo <= s.Slot
}
