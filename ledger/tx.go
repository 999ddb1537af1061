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
	"bytes"
	"fmt"

	"github.com/blinklabs-io/ledgercodec/cbor"
	"github.com/blinklabs-io/ledgercodec/codec"
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

type TransactionInput struct {
	cbor.StructAsArray
	TxId        Blake2b256
	OutputIndex uint32
}

func NewTransactionInput(txId Blake2b256, index uint32) TransactionInput {
	return TransactionInput{
		TxId:        txId,
		OutputIndex: index,
	}
}

func (i TransactionInput) Id() Blake2b256 {
	return i.TxId
}

func (i TransactionInput) Index() uint32 {
	return i.OutputIndex
}

func (i TransactionInput) Utxorpc() *utxorpc.TxInput {
	return &utxorpc.TxInput{
		TxHash:      i.TxId.Bytes(),
		OutputIndex: i.OutputIndex,
	}
}

func (i TransactionInput) String() string {
	return fmt.Sprintf("%s#%d", i.TxId, i.OutputIndex)
}

func (i TransactionInput) MarshalJSON() ([]byte, error) {
	return []byte("\"" + i.String() + "\""), nil
}

// DatumOption is the datum attached to a Babbage-style output: a datum hash or an
// inline datum
type DatumOption interface {
	isDatumOption()
}

type DatumOptionHash struct {
	cbor.StructAsArray
	Type uint `cbor:",const=0"`
	Hash DatumHash
}

// DatumOptionInline carries the datum CBOR wrapped in tag 24
type DatumOptionInline struct {
	cbor.StructAsArray
	Type uint `cbor:",const=1"`
	Data cbor.WrappedCbor
}

func (DatumOptionHash) isDatumOption()   {}
func (DatumOptionInline) isDatumOption() {}

// Datum decodes the inline datum
func (d DatumOptionInline) Datum() (*Datum, error) {
	var ret Datum
	if err := DefaultCodec().Deserialize(d.Data.Bytes(), &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// TransactionOutput is either the legacy list form or the Babbage map form
type TransactionOutput interface {
	isTransactionOutput()
	Address() Address
	Amount() Value
	DatumHash() *DatumHash
	Cbor() []byte
}

type LegacyTransactionOutput struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	OutputAddress   Address     `json:"address"`
	OutputAmount    Value       `json:"amount"`
	OutputDatumHash *Blake2b256 `cbor:",omitempty" json:"datumHash,omitempty"`
}

func (LegacyTransactionOutput) isTransactionOutput() {}

func (o LegacyTransactionOutput) Address() Address {
	return o.OutputAddress
}

func (o LegacyTransactionOutput) Amount() Value {
	return o.OutputAmount
}

func (o LegacyTransactionOutput) DatumHash() *DatumHash {
	return o.OutputDatumHash
}

type BabbageTransactionOutput struct {
	cbor.StructAsMap
	cbor.DecodeStoreCbor
	OutputAddress Address          `cbor:"0,keyasint" json:"address"`
	OutputAmount  Value            `cbor:"1,keyasint" json:"amount"`
	DatumOption   DatumOption      `cbor:"2,keyasint,omitempty" json:"-"`
	ScriptRef     cbor.WrappedCbor `cbor:"3,keyasint,omitempty" json:"-"`
}

func (BabbageTransactionOutput) isTransactionOutput() {}

func (o BabbageTransactionOutput) Address() Address {
	return o.OutputAddress
}

func (o BabbageTransactionOutput) Amount() Value {
	return o.OutputAmount
}

func (o BabbageTransactionOutput) DatumHash() *DatumHash {
	if datumHash, ok := o.DatumOption.(DatumOptionHash); ok {
		return &datumHash.Hash
	}
	return nil
}

// Datum returns the inline datum, if any
func (o BabbageTransactionOutput) Datum() (*Datum, error) {
	if inline, ok := o.DatumOption.(DatumOptionInline); ok {
		return inline.Datum()
	}
	return nil, nil
}

// TransactionBody covers the body keys of the Shelley through Conway eras.
// Certificates, governance actions and other structures outside of this package's
// model are carried as raw CBOR
type TransactionBody struct {
	cbor.StructAsMap
	cbor.DecodeStoreCbor
	TxInputs                []TransactionInput  `cbor:"0,keyasint"`
	TxOutputs               []TransactionOutput `cbor:"1,keyasint"`
	TxFee                   uint64              `cbor:"2,keyasint"`
	Ttl                     uint64              `cbor:"3,keyasint,omitempty"`
	TxCertificates          cbor.RawMessage     `cbor:"4,keyasint,omitempty"`
	TxWithdrawals           cbor.RawMessage     `cbor:"5,keyasint,omitempty"`
	Update                  cbor.RawMessage     `cbor:"6,keyasint,omitempty"`
	TxAuxDataHash           *Blake2b256         `cbor:"7,keyasint"`
	TxValidityIntervalStart uint64              `cbor:"8,keyasint,omitempty"`
	TxMint                  MintAsset           `cbor:"9,keyasint,omitempty"`
	TxScriptDataHash        *Blake2b256         `cbor:"11,keyasint"`
	TxCollateral            []TransactionInput  `cbor:"13,keyasint,omitempty"`
	TxRequiredSigners       []Blake2b224        `cbor:"14,keyasint,omitempty"`
	NetworkId               *uint8              `cbor:"15,keyasint"`
	TxCollateralReturn      TransactionOutput   `cbor:"16,keyasint,omitempty"`
	TxTotalCollateral       uint64              `cbor:"17,keyasint,omitempty"`
	TxReferenceInputs       []TransactionInput  `cbor:"18,keyasint,omitempty"`
	TxVotingProcedures      cbor.RawMessage     `cbor:"19,keyasint,omitempty"`
	TxProposalProcedures    cbor.RawMessage     `cbor:"20,keyasint,omitempty"`
	TxCurrentTreasuryValue  uint64              `cbor:"21,keyasint,omitempty"`
	TxDonation              uint64              `cbor:"22,keyasint,omitempty"`
}

// Hash returns the transaction ID
func (b TransactionBody) Hash() (Blake2b256, error) {
	cborData, err := DefaultCodec().Bytes(b)
	if err != nil {
		return Blake2b256{}, err
	}
	return Blake2b256Hash(cborData), nil
}

func (b TransactionBody) Inputs() []TransactionInput {
	return b.TxInputs
}

func (b TransactionBody) Outputs() []TransactionOutput {
	return b.TxOutputs
}

func (b TransactionBody) Fee() uint64 {
	return b.TxFee
}

// AuxiliaryData is kept as raw CBOR. Its hash is referenced from the body
type AuxiliaryData []byte

func (a AuxiliaryData) MarshalCBOR() ([]byte, error) {
	if len(a) == 0 {
		return []byte{cbor.CborSimpleNull}, nil
	}
	return a, nil
}

func (a *AuxiliaryData) UnmarshalCBOR(cborData []byte) error {
	*a = bytes.Clone(cborData)
	return nil
}

func (a AuxiliaryData) Hash() Blake2b256 {
	return Blake2b256Hash(a)
}

type Transaction struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Body          TransactionBody
	WitnessSet    TransactionWitnessSet
	TxIsValid     bool
	AuxiliaryData *AuxiliaryData
}

// NewTransactionFromCbor decodes a transaction with the default codec
func NewTransactionFromCbor(data []byte) (*Transaction, error) {
	var tx Transaction
	if err := DefaultCodec().Deserialize(data, &tx); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	return &tx, nil
}

// Hash returns the transaction ID, which is the hash of the body
func (t Transaction) Hash() (Blake2b256, error) {
	return t.Body.Hash()
}

func (t Transaction) IsValid() bool {
	return t.TxIsValid
}

// Detached returns a copy of the transaction that is serialized from its fields
func (t Transaction) Detached() (Transaction, error) {
	return codec.Detach(t)
}
