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
	"fmt"

	"github.com/blinklabs-io/ledgercodec/cbor"
)

// Block is a Shelley-or-later block. Variants of the same layout cannot be told
// apart structurally, so the era tag of the enclosing BlockWithEra selects between them
type Block interface {
	isBlock()
	Era() Era
	BlockHeader() BlockHeader
	Transactions() []Transaction
	Hash() (Blake2b256, error)
}

type blockBody struct {
	Header                 BlockHeader
	TransactionBodies      []TransactionBody
	TransactionWitnessSets []TransactionWitnessSet
	TransactionMetadataSet map[uint]AuxiliaryData
	InvalidTransactions    []uint `cbor:",omitempty"`
}

// ShelleyBlock has no invalid transactions list. Allegra and Mary share its layout
type ShelleyBlock struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Header                 BlockHeader
	TransactionBodies      []TransactionBody
	TransactionWitnessSets []TransactionWitnessSet
	TransactionMetadataSet map[uint]AuxiliaryData
}

type AllegraBlock struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Header                 BlockHeader
	TransactionBodies      []TransactionBody
	TransactionWitnessSets []TransactionWitnessSet
	TransactionMetadataSet map[uint]AuxiliaryData
}

type MaryBlock struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Header                 BlockHeader
	TransactionBodies      []TransactionBody
	TransactionWitnessSets []TransactionWitnessSet
	TransactionMetadataSet map[uint]AuxiliaryData
}

type AlonzoBlock struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Header                 BlockHeader
	TransactionBodies      []TransactionBody
	TransactionWitnessSets []TransactionWitnessSet
	TransactionMetadataSet map[uint]AuxiliaryData
	InvalidTransactions    []uint `cbor:",omitempty"`
}

type BabbageBlock struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Header                 BlockHeader
	TransactionBodies      []TransactionBody
	TransactionWitnessSets []TransactionWitnessSet
	TransactionMetadataSet map[uint]AuxiliaryData
	InvalidTransactions    []uint `cbor:",omitempty"`
}

type ConwayBlock struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Header                 BlockHeader
	TransactionBodies      []TransactionBody
	TransactionWitnessSets []TransactionWitnessSet
	TransactionMetadataSet map[uint]AuxiliaryData
	InvalidTransactions    []uint `cbor:",omitempty"`
}

func (ShelleyBlock) isBlock() {}
func (AllegraBlock) isBlock() {}
func (MaryBlock) isBlock()    {}
func (AlonzoBlock) isBlock()  {}
func (BabbageBlock) isBlock() {}
func (ConwayBlock) isBlock()  {}

func (ShelleyBlock) Era() Era { return eras[EraIdShelley] }
func (AllegraBlock) Era() Era { return eras[EraIdAllegra] }
func (MaryBlock) Era() Era    { return eras[EraIdMary] }
func (AlonzoBlock) Era() Era  { return eras[EraIdAlonzo] }
func (BabbageBlock) Era() Era { return eras[EraIdBabbage] }
func (ConwayBlock) Era() Era  { return eras[EraIdConway] }

func (b ShelleyBlock) BlockHeader() BlockHeader { return b.Header }
func (b AllegraBlock) BlockHeader() BlockHeader { return b.Header }
func (b MaryBlock) BlockHeader() BlockHeader    { return b.Header }
func (b AlonzoBlock) BlockHeader() BlockHeader  { return b.Header }
func (b BabbageBlock) BlockHeader() BlockHeader { return b.Header }
func (b ConwayBlock) BlockHeader() BlockHeader  { return b.Header }

func (b ShelleyBlock) Hash() (Blake2b256, error) { return b.Header.Hash() }
func (b AllegraBlock) Hash() (Blake2b256, error) { return b.Header.Hash() }
func (b MaryBlock) Hash() (Blake2b256, error)    { return b.Header.Hash() }
func (b AlonzoBlock) Hash() (Blake2b256, error)  { return b.Header.Hash() }
func (b BabbageBlock) Hash() (Blake2b256, error) { return b.Header.Hash() }
func (b ConwayBlock) Hash() (Blake2b256, error)  { return b.Header.Hash() }

func (b ShelleyBlock) Transactions() []Transaction {
	return blockBody{b.Header, b.TransactionBodies, b.TransactionWitnessSets, b.TransactionMetadataSet, nil}.transactions()
}

func (b AllegraBlock) Transactions() []Transaction {
	return blockBody{b.Header, b.TransactionBodies, b.TransactionWitnessSets, b.TransactionMetadataSet, nil}.transactions()
}

func (b MaryBlock) Transactions() []Transaction {
	return blockBody{b.Header, b.TransactionBodies, b.TransactionWitnessSets, b.TransactionMetadataSet, nil}.transactions()
}

func (b AlonzoBlock) Transactions() []Transaction {
	return b.body().transactions()
}

func (b BabbageBlock) Transactions() []Transaction {
	return b.body().transactions()
}

func (b ConwayBlock) Transactions() []Transaction {
	return b.body().transactions()
}

func (b AlonzoBlock) body() blockBody {
	return blockBody{b.Header, b.TransactionBodies, b.TransactionWitnessSets, b.TransactionMetadataSet, b.InvalidTransactions}
}

func (b BabbageBlock) body() blockBody {
	return blockBody{b.Header, b.TransactionBodies, b.TransactionWitnessSets, b.TransactionMetadataSet, b.InvalidTransactions}
}

func (b ConwayBlock) body() blockBody {
	return blockBody{b.Header, b.TransactionBodies, b.TransactionWitnessSets, b.TransactionMetadataSet, b.InvalidTransactions}
}

func (b blockBody) transactions() []Transaction {
	invalidTxMap := make(map[uint]bool, len(b.InvalidTransactions))
	for _, invalidTxIdx := range b.InvalidTransactions {
		invalidTxMap[invalidTxIdx] = true
	}
	ret := make([]Transaction, len(b.TransactionBodies))
	for idx := range b.TransactionBodies {
		tx := Transaction{
			Body:      b.TransactionBodies[idx],
			TxIsValid: !invalidTxMap[uint(idx)],
		}
		if idx < len(b.TransactionWitnessSets) {
			tx.WitnessSet = b.TransactionWitnessSets[idx]
		}
		if auxData, ok := b.TransactionMetadataSet[uint(idx)]; ok {
			tx.AuxiliaryData = &auxData
		}
		ret[idx] = tx
	}
	return ret
}

// BlockWithEra is the [era, block] envelope used by the chain-sync and block-fetch
// protocols
type BlockWithEra struct {
	cbor.StructAsArray
	Era   uint
	Block Block `cbor:",hint=Era"`
}

// NewBlockFromCbor decodes an era-tagged block with the default codec
func NewBlockFromCbor(data []byte) (Block, error) {
	var wrapped BlockWithEra
	if err := DefaultCodec().Deserialize(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode block: %w", err)
	}
	return wrapped.Block, nil
}
