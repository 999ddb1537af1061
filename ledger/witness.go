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

type TransactionWitnessSet struct {
	cbor.StructAsMap
	cbor.DecodeStoreCbor
	VkeyWitnesses      []VkeyWitness      `cbor:"0,keyasint,omitempty"`
	WsNativeScripts    []NativeScript     `cbor:"1,keyasint,omitempty"`
	BootstrapWitnesses []BootstrapWitness `cbor:"2,keyasint,omitempty"`
	WsPlutusV1Scripts  [][]byte           `cbor:"3,keyasint,omitempty"`
	WsPlutusData       []Datum            `cbor:"4,keyasint,omitempty"`
	WsRedeemers        Redeemers          `cbor:"5,keyasint,omitempty"`
	WsPlutusV2Scripts  [][]byte           `cbor:"6,keyasint,omitempty"`
	WsPlutusV3Scripts  [][]byte           `cbor:"7,keyasint,omitempty"`
}

func (w TransactionWitnessSet) Vkey() []VkeyWitness {
	return w.VkeyWitnesses
}

func (w TransactionWitnessSet) NativeScripts() []NativeScript {
	return w.WsNativeScripts
}

func (w TransactionWitnessSet) PlutusData() []Datum {
	return w.WsPlutusData
}

// Redeemers returns the redeemers in the legacy list form, whichever form was used
// on the wire
func (w TransactionWitnessSet) Redeemers() []Redeemer {
	switch r := w.WsRedeemers.(type) {
	case LegacyRedeemers:
		return r
	case RedeemerMap:
		ret := make([]Redeemer, 0, len(r.Pairs))
		for _, pair := range r.Pairs {
			ret = append(ret, Redeemer{
				Tag:     pair.Key.Tag,
				Index:   pair.Key.Index,
				Data:    pair.Value.Data,
				ExUnits: pair.Value.ExUnits,
			})
		}
		return ret
	}
	return nil
}

type VkeyWitness struct {
	cbor.StructAsArray
	Vkey      []byte
	Signature []byte
}

type BootstrapWitness struct {
	cbor.StructAsArray
	PublicKey  []byte
	Signature  []byte
	ChainCode  []byte
	Attributes []byte
}

type RedeemerTag uint8

const (
	RedeemerTagSpend     RedeemerTag = 0
	RedeemerTagMint      RedeemerTag = 1
	RedeemerTagCert      RedeemerTag = 2
	RedeemerTagReward    RedeemerTag = 3
	RedeemerTagVoting    RedeemerTag = 4
	RedeemerTagProposing RedeemerTag = 5
)

type ExUnits struct {
	cbor.StructAsArray
	Memory uint64
	Steps  uint64
}

// Redeemer is the legacy list form [tag, index, data, ex_units]
type Redeemer struct {
	cbor.StructAsArray
	Tag     RedeemerTag
	Index   uint32
	Data    PlutusData
	ExUnits ExUnits
}

// Redeemers is either a list of Redeemer or, from Conway on, a map keyed by
// [tag, index]
type Redeemers interface {
	isRedeemers()
}

type LegacyRedeemers []Redeemer

func (LegacyRedeemers) isRedeemers() {}

type RedeemerKey struct {
	cbor.StructAsArray
	Tag   RedeemerTag
	Index uint32
}

type RedeemerValue struct {
	cbor.StructAsArray
	Data    PlutusData
	ExUnits ExUnits
}

type RedeemerMapPair struct {
	Key   RedeemerKey
	Value RedeemerValue
}

type RedeemerMap struct {
	cbor.StructAsMap
	cbor.DecodeStoreCbor
	Pairs []RedeemerMapPair `cbor:",fields"`
}

func (RedeemerMap) isRedeemers() {}
