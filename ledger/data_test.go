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
package ledger_test

import (
	"encoding/hex"
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/blinklabs-io/ledgercodec/cbor"
	"github.com/blinklabs-io/ledgercodec/codec"
	"github.com/blinklabs-io/ledgercodec/internal/test"
	"github.com/blinklabs-io/ledgercodec/ledger"
	"github.com/blinklabs-io/plutigo/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDatumHex = "d8799fd8799fd8799f581cb255e2283f9b495dd663b841090c42bc5a5103283fc2aef5c6cd2f5cffd8799fd8799fd8799f581c07d8b4b15e9609e76a38b25637900d60cdf13a6abce984757bbc1349ffffffffd8799f581cf5808c2c990d86da54bfc97d89cee6efa20cd8461616359478d96b4c582073e1518e92f367fd5820ac2da1d40ab24fbca1d6cb2c28121ad92f57aff8abceff1b0000000148f3f3579fd8799fd8799f4040ff1a094f78d8ffd8799fd8799f581cf13ac4d66b3ee19a6aa0f2a22298737bd907cc95121662fc971b527546535452494b45ff1af7c5c601ffffff"

func TestDatumHash(t *testing.T) {
	testDatumBytes := test.DecodeHexString(testDatumHex)
	expectedHash := "4dfec91f63f946d7c91af0041e5d92a45531790a4a104637dd8691f46fdce842"
	var tmpDatum ledger.Datum
	require.NoError(t, ledger.DefaultCodec().Deserialize(testDatumBytes, &tmpDatum))
	datumHash, err := tmpDatum.Hash()
	require.NoError(t, err)
	assert.Equal(t, expectedHash, datumHash.String())
	encoded, err := ledger.DefaultCodec().Serialize(tmpDatum)
	require.NoError(t, err)
	assert.Equal(t, testDatumBytes, encoded)
}

func TestDatumDecode(t *testing.T) {
	var tmpDatum ledger.Datum
	require.NoError(
		t,
		ledger.DefaultCodec().Deserialize(test.DecodeHexString(testDatumHex), &tmpDatum),
	)
	constr, ok := tmpDatum.Data.(ledger.PlutusConstr)
	require.True(t, ok, "unexpected datum type %T", tmpDatum.Data)
	assert.Equal(t, uint(0), constr.Index)
	require.Len(t, constr.Fields, 4)
	integer, ok := constr.Fields[2].(ledger.PlutusInteger)
	require.True(t, ok, "unexpected field type %T", constr.Fields[2])
	assert.Equal(t, int64(5518914391), integer.Inner.Int64())
	list, ok := constr.Fields[3].(ledger.PlutusList)
	require.True(t, ok, "unexpected field type %T", constr.Fields[3])
	assert.Len(t, list.Items, 2)
}

func TestPlutusDataToPlutigo(t *testing.T) {
	cborData := test.DecodeHexString("d8799f 41aa 02 9f03ff a141bb04 ff")
	tmpData, err := codec.Deserialize[ledger.PlutusData](ledger.DefaultCodec(), cborData)
	require.NoError(t, err)
	expected := data.NewConstr(
		0,
		data.NewByteString([]byte{0xaa}),
		data.NewInteger(big.NewInt(2)),
		data.NewList(data.NewInteger(big.NewInt(3))),
		data.NewMap([][2]data.PlutusData{
			{data.NewByteString([]byte{0xbb}), data.NewInteger(big.NewInt(4))},
		}),
	)
	assert.Equal(t, expected, tmpData.ToPlutigo())
}

func TestPlutusDataRoundTrip(t *testing.T) {
	testDefs := []string{
		"d8799f 41aa 02 9f03ff a141bb04 ff",
		"d87980",
		"d9050a9f01ff",
		"c249010000000000000000",
		"3903e7",
		"a2 01 02 01 03",
		"5840" + test.RepeatHex(0x01, 64),
	}
	for _, testDef := range testDefs {
		cborData := test.DecodeHexString(testDef)
		tmpData, err := codec.Deserialize[ledger.PlutusData](ledger.DefaultCodec(), cborData)
		require.NoError(t, err, testDef)
		detached, err := codec.Detach(tmpData)
		require.NoError(t, err, testDef)
		encoded, err := ledger.DefaultCodec().Serialize(detached)
		require.NoError(t, err, testDef)
		assert.Equal(t, cborData, encoded, testDef)
	}
}

func TestPlutusDataKeepsEncoding(t *testing.T) {
	testDefs := []struct {
		cborHex     string
		detachedHex string
	}{
		// A definite list is written back as given, not as the indefinite default
		{cborHex: "820102", detachedHex: "9f0102ff"},
		// An indefinite map is written back as given, not as a definite one
		{cborHex: "bf0102ff", detachedHex: "a10102"},
		{cborHex: "d87982 820102 bf0102ff", detachedHex: "d8799f 9f0102ff a10102 ff"},
		{cborHex: "81 bf 820102 80 ff", detachedHex: "9f a1 9f0102ff 80 ff"},
	}
	for _, testDef := range testDefs {
		cborData := test.DecodeHexString(testDef.cborHex)
		tmpData, err := codec.Deserialize[ledger.PlutusData](ledger.DefaultCodec(), cborData)
		require.NoError(t, err, testDef.cborHex)
		encoded, err := ledger.DefaultCodec().Serialize(tmpData)
		require.NoError(t, err, testDef.cborHex)
		assert.Equal(t, cborData, encoded, testDef.cborHex)
		hashBytes, err := ledger.DefaultCodec().Bytes(tmpData)
		require.NoError(t, err, testDef.cborHex)
		assert.Equal(t, cborData, hashBytes, testDef.cborHex)
		// Without the captures the value is written in its default form
		detached, err := codec.Detach(tmpData)
		require.NoError(t, err, testDef.cborHex)
		encoded, err = ledger.DefaultCodec().Serialize(detached)
		require.NoError(t, err, testDef.cborHex)
		assert.Equal(t, test.DecodeHexString(testDef.detachedHex), encoded, testDef.cborHex)
	}
}

func TestPlutusIntegerBignumChunking(t *testing.T) {
	magnitude := new(big.Int).Lsh(big.NewInt(1), 600)
	testDefs := []struct {
		name  string
		value *big.Int
		tag   string
	}{
		{name: "positive", value: magnitude, tag: "c2"},
		// -1 - 2^600 has the same stored magnitude
		{name: "negative", value: new(big.Int).Sub(new(big.Int).Neg(magnitude), big.NewInt(1)), tag: "c3"},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			encoded, err := ledger.DefaultCodec().Serialize(ledger.PlutusInteger{Inner: testDef.value})
			require.NoError(t, err)
			// 2^600 takes 76 bytes: a full 64-byte chunk and a 12-byte chunk
			expected := test.DecodeHexString(
				testDef.tag + " 5f 5840 01" + test.RepeatHex(0, 63) + " 4c" + test.RepeatHex(0, 12) + " ff",
			)
			assert.Equal(t, expected, encoded)
			decoded, err := codec.Deserialize[ledger.PlutusData](ledger.DefaultCodec(), encoded)
			require.NoError(t, err)
			integer, ok := decoded.(ledger.PlutusInteger)
			require.True(t, ok, "unexpected type %T", decoded)
			assert.Equal(t, 0, testDef.value.Cmp(integer.Inner))
		})
	}
	// Values within 64 bits keep the plain integer encoding
	testInts := map[string]*big.Int{
		"1bffffffffffffffff": new(big.Int).SetUint64(math.MaxUint64),
		"3bffffffffffffffff": new(big.Int).Sub(new(big.Int).Neg(new(big.Int).SetUint64(math.MaxUint64)), big.NewInt(1)),
		"20":                 big.NewInt(-1),
		"00":                 big.NewInt(0),
	}
	for cborHex, value := range testInts {
		encoded, err := ledger.DefaultCodec().Serialize(ledger.PlutusInteger{Inner: value})
		require.NoError(t, err)
		assert.Equal(t, cborHex, hex.EncodeToString(encoded))
	}
}

func TestPlutusConstrIndexOutOfRange(t *testing.T) {
	index := uint64(cbor.MaxConstructorIndex) + 1
	_, err := ledger.DefaultCodec().Serialize(ledger.NewPlutusConstr(uint(index)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrTypeMismatch))
}

func TestPlutusDataDeepNesting(t *testing.T) {
	// The limit counts CBOR nesting levels, like the wire decoder's own limit
	deep := test.DecodeHexString(strings.Repeat("81", 200) + "01")
	tmpData, err := codec.Deserialize[ledger.PlutusData](ledger.DefaultCodec(), deep)
	require.NoError(t, err)
	encoded, err := ledger.DefaultCodec().Serialize(tmpData)
	require.NoError(t, err)
	assert.Equal(t, deep, encoded)
	deepConstr := test.DecodeHexString(strings.Repeat("d87981", 100) + "01")
	_, err = codec.Deserialize[ledger.PlutusData](ledger.DefaultCodec(), deepConstr)
	require.NoError(t, err)
	tooDeep := test.DecodeHexString(strings.Repeat("81", 300) + "01")
	_, err = codec.Deserialize[ledger.PlutusData](ledger.DefaultCodec(), tooDeep)
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrDepthLimit))
}

func TestPlutusMapKeepsRepeatedKeys(t *testing.T) {
	tmpData, err := codec.Deserialize[ledger.PlutusData](
		ledger.DefaultCodec(),
		test.DecodeHexString("a2 01 02 01 03"),
	)
	require.NoError(t, err)
	plutusMap, ok := tmpData.(ledger.PlutusMap)
	require.True(t, ok, "unexpected type %T", tmpData)
	require.Len(t, plutusMap.Pairs, 2)
	assert.Equal(t, ledger.NewPlutusInteger(2), plutusMap.Pairs[0].Value)
	assert.Equal(t, ledger.NewPlutusInteger(3), plutusMap.Pairs[1].Value)
}

func TestPlutusBytesChunking(t *testing.T) {
	encoded, err := ledger.DefaultCodec().Serialize(ledger.PlutusBytes(make([]byte, 65)))
	require.NoError(t, err)
	expected := test.DecodeHexString(
		"5f 5840" + test.RepeatHex(0, 64) + " 4100 ff",
	)
	assert.Equal(t, expected, encoded)
}

func TestPlutusDataUnresolved(t *testing.T) {
	_, err := codec.Deserialize[ledger.PlutusData](
		ledger.DefaultCodec(),
		test.DecodeHexString("f5"),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrUnresolvedUnion))
}

func TestPlutusDataDepthLimit(t *testing.T) {
	c, err := ledger.NewCodec(codec.WithMaxDepth(8))
	require.NoError(t, err)
	cborData := test.DecodeHexString(
		"9f9f9f9f9f9f9f9f9f9f 01 ffffffffffffffffffff",
	)
	_, err = codec.Deserialize[ledger.PlutusData](c, cborData)
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrDepthLimit))
	// The default limit allows it
	_, err = codec.Deserialize[ledger.PlutusData](ledger.DefaultCodec(), cborData)
	assert.NoError(t, err)
}
