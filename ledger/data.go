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
	"math/big"

	"github.com/blinklabs-io/ledgercodec/cbor"
	"github.com/blinklabs-io/ledgercodec/codec"
	"github.com/blinklabs-io/plutigo/data"
)

// PlutusData is the data model shared by datums and redeemers. Variants are
// resolved by trial in the order Constr, Map, List, Integer, Bytes
type PlutusData interface {
	isPlutusData()
	// ToPlutigo converts the value to the plutigo data model used for script evaluation
	ToPlutigo() data.PlutusData
}

// PlutusConstr is a constructor application with any index
type PlutusConstr struct {
	cbor.Constructor
	cbor.DecodeStoreCbor
	Fields []PlutusData `cbor:",fields,indef,emptydef"`
}

func NewPlutusConstr(index uint, fields ...PlutusData) PlutusConstr {
	if fields == nil {
		fields = []PlutusData{}
	}
	return PlutusConstr{
		Constructor: cbor.NewConstructor(index),
		Fields:      fields,
	}
}

func (PlutusConstr) isPlutusData() {}

func (c PlutusConstr) ToPlutigo() data.PlutusData {
	return data.NewConstr(c.Index, toPlutigoList(c.Fields)...)
}

// PlutusMapPair is one entry of a PlutusMap
type PlutusMapPair struct {
	Key   PlutusData
	Value PlutusData
}

// PlutusMap keeps its entries in wire order, including repeated keys. The original
// encoding is kept, since a map may have been written with an indefinite length
type PlutusMap struct {
	cbor.StructAsMap
	cbor.DecodeStoreCbor
	Pairs []PlutusMapPair `cbor:",fields"`
}

func (PlutusMap) isPlutusData() {}

func (m PlutusMap) ToPlutigo() data.PlutusData {
	pairs := make([][2]data.PlutusData, 0, len(m.Pairs))
	for _, pair := range m.Pairs {
		pairs = append(
			pairs,
			[2]data.PlutusData{pair.Key.ToPlutigo(), pair.Value.ToPlutigo()},
		)
	}
	return data.NewMap(pairs)
}

// PlutusList is written with an indefinite length unless empty. A decoded list keeps
// its original encoding
type PlutusList struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Items []PlutusData `cbor:",fields,indef,emptydef"`
}

func NewPlutusList(items ...PlutusData) PlutusList {
	if items == nil {
		items = []PlutusData{}
	}
	return PlutusList{Items: items}
}

func (PlutusList) isPlutusData() {}

func (l PlutusList) ToPlutigo() data.PlutusData {
	return data.NewList(toPlutigoList(l.Items)...)
}

// PlutusInteger is an arbitrary precision integer. Values outside the 64-bit range
// use the bignum tags 2 and 3
type PlutusInteger struct {
	Inner *big.Int
}

func NewPlutusInteger(v int64) PlutusInteger {
	return PlutusInteger{Inner: big.NewInt(v)}
}

func (PlutusInteger) isPlutusData() {}

func (i PlutusInteger) ToPlutigo() data.PlutusData {
	return data.NewInteger(i.value())
}

func (i PlutusInteger) value() *big.Int {
	if i.Inner == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(i.Inner)
}

func (i PlutusInteger) MarshalCBOR() ([]byte, error) {
	v := i.value()
	if v.Sign() >= 0 {
		if v.IsUint64() {
			return cbor.AppendHead(nil, cbor.CborTypeUint, v.Uint64()), nil
		}
		buf := cbor.AppendHead(nil, cbor.CborTypeTag, cbor.CborTagBigUint)
		return cbor.AppendBoundedBytes(buf, v.Bytes(), cbor.BoundedBytesChunkSize), nil
	}
	// Negative values are stored as -1 - n
	n := new(big.Int).Neg(v)
	n.Sub(n, big.NewInt(1))
	if n.IsUint64() {
		return cbor.AppendHead(nil, cbor.CborTypeNegInt, n.Uint64()), nil
	}
	buf := cbor.AppendHead(nil, cbor.CborTypeTag, cbor.CborTagBigNint)
	return cbor.AppendBoundedBytes(buf, n.Bytes(), cbor.BoundedBytesChunkSize), nil
}

func (i *PlutusInteger) UnmarshalCBOR(cborData []byte) error {
	majorType, tagNum, headLen, _, err := cbor.HeadInfo(cborData)
	if err != nil {
		return err
	}
	if majorType == cbor.CborTypeTag &&
		(tagNum == cbor.CborTagBigUint || tagNum == cbor.CborTagBigNint) {
		// The magnitude may be split into chunks
		var magnitude []byte
		if _, err := cbor.Decode(cborData[headLen:], &magnitude); err != nil {
			return err
		}
		tmpInt := new(big.Int).SetBytes(magnitude)
		if tagNum == cbor.CborTagBigNint {
			tmpInt.Add(tmpInt, big.NewInt(1))
			tmpInt.Neg(tmpInt)
		}
		i.Inner = tmpInt
		return nil
	}
	tmpInt := new(big.Int)
	if _, err := cbor.Decode(cborData, tmpInt); err != nil {
		return err
	}
	i.Inner = tmpInt
	return nil
}

// PlutusBytes is a byte string written as bounded bytes
type PlutusBytes []byte

func (PlutusBytes) isPlutusData() {}

func (PlutusBytes) CborChunkSize() int {
	return cbor.BoundedBytesChunkSize
}

func (b PlutusBytes) ToPlutigo() data.PlutusData {
	return data.NewByteString(bytes.Clone(b))
}

func toPlutigoList(items []PlutusData) []data.PlutusData {
	ret := make([]data.PlutusData, 0, len(items))
	for _, item := range items {
		ret = append(ret, item.ToPlutigo())
	}
	return ret
}

type DatumHash = Blake2b256

// DatumHashToBech32 encodes a DatumHash as a CIP-0005 bech32 string with "datum" prefix.
func DatumHashToBech32(d DatumHash) string {
	return d.Bech32("datum")
}

// Datum represents a Plutus datum. The original CBOR is kept, since the datum hash
// is computed over it
type Datum struct {
	cbor.DecodeStoreCbor
	Data PlutusData `json:"data"`
}

func (d *Datum) UnmarshalCBOR(cborData []byte) error {
	tmpData, err := codec.Deserialize[PlutusData](DefaultCodec(), cborData)
	if err != nil {
		return err
	}
	d.SetCbor(bytes.Clone(cborData))
	d.Data = tmpData
	return nil
}

func (d Datum) MarshalCBOR() ([]byte, error) {
	if raw := d.Cbor(); len(raw) > 0 {
		return raw, nil
	}
	return codec.Serialize(DefaultCodec(), d.Data)
}

func (d Datum) Hash() (DatumHash, error) {
	cborData, err := d.MarshalCBOR()
	if err != nil {
		return DatumHash{}, err
	}
	return Blake2b256Hash(cborData), nil
}
