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

package cbor_test

import (
	"encoding/hex"
	"math"
	"reflect"
	"testing"

	"github.com/blinklabs-io/ledgercodec/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tagsTestDefs = []struct {
	cborHex string
	object  any
}{
	{
		cborHex: "d81843abcdef",
		object:  cbor.WrappedCbor([]byte{0xab, 0xcd, 0xef}),
	},
}

func TestTagsDecode(t *testing.T) {
	for _, testDef := range tagsTestDefs {
		cborData, err := hex.DecodeString(testDef.cborHex)
		require.NoError(t, err)
		tmpObj := reflect.New(reflect.TypeOf(testDef.object)).Interface()
		_, err = cbor.Decode(cborData, tmpObj)
		require.NoError(t, err)
		assert.Equal(t, testDef.object, reflect.ValueOf(tmpObj).Elem().Interface())
	}
}

func TestTagsEncode(t *testing.T) {
	for _, testDef := range tagsTestDefs {
		cborData, err := cbor.Encode(testDef.object)
		require.NoError(t, err)
		assert.Equal(t, testDef.cborHex, hex.EncodeToString(cborData))
	}
}

func TestWrappedCborBytes(t *testing.T) {
	w := cbor.WrappedCbor([]byte{0x01, 0x02})
	assert.Equal(t, []byte{0x01, 0x02}, w.Bytes())
}

func TestConstructorTag(t *testing.T) {
	tests := []struct {
		index uint64
		tag   uint64
	}{
		{0, 121},
		{6, 127},
		{7, 1280},
		{8, 1281},
		{127, 1400},
		{130, 1403},
		{140, 1413},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.tag, cbor.ConstructorTag(tc.index), "index %d", tc.index)
		index, ok := cbor.ConstructorIndex(tc.tag)
		assert.True(t, ok)
		assert.Equal(t, tc.index, index)
	}
}

func TestMaxConstructorIndex(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint64), cbor.ConstructorTag(cbor.MaxConstructorIndex))
	index, ok := cbor.ConstructorIndex(math.MaxUint64)
	require.True(t, ok)
	assert.Equal(t, uint64(cbor.MaxConstructorIndex), index)
}

func TestConstructorIndexOutOfRange(t *testing.T) {
	for _, tagNum := range []uint64{0, 24, 101, 120, 128, 258, 999, 1279} {
		_, ok := cbor.ConstructorIndex(tagNum)
		assert.False(t, ok, "tag %d", tagNum)
	}
}

func TestIsAlternativeTag(t *testing.T) {
	assert.True(t, cbor.IsAlternativeTag(121))
	assert.True(t, cbor.IsAlternativeTag(101))
	assert.True(t, cbor.IsAlternativeTag(1400))
	assert.False(t, cbor.IsAlternativeTag(128))
	assert.False(t, cbor.IsAlternativeTag(258))
}
