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
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/ledgercodec/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type encodeTestDefinition struct {
	CborHex string
	Object  any
}

var encodeTests = []encodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []any{1, 2, 3},
	},
	// Map keys are sorted
	{
		CborHex: "a20102182a03",
		Object:  map[uint]uint{42: 3, 1: 2},
	},
}

func TestEncode(t *testing.T) {
	for _, test := range encodeTests {
		cborData, err := cbor.Encode(test.Object)
		if err != nil {
			t.Fatalf("failed to encode object to CBOR: %s", err)
		}
		cborHex := hex.EncodeToString(cborData)
		if cborHex != test.CborHex {
			t.Fatalf(
				"object did not encode to expected CBOR\n  got: %s\n  wanted: %s",
				cborHex,
				test.CborHex,
			)
		}
	}
}

func TestAppendHead(t *testing.T) {
	tests := []struct {
		major   uint8
		arg     uint64
		wantHex string
	}{
		{cbor.CborTypeUint, 0, "00"},
		{cbor.CborTypeUint, 23, "17"},
		{cbor.CborTypeUint, 24, "1818"},
		{cbor.CborTypeArray, 255, "98ff"},
		{cbor.CborTypeMap, 256, "b90100"},
		{cbor.CborTypeTag, 1280, "d90500"},
		{cbor.CborTypeByteString, 65536, "5a00010000"},
		{cbor.CborTypeUint, 1 << 32, "1b0000000100000000"},
	}
	for _, tc := range tests {
		got := cbor.AppendHead(nil, tc.major, tc.arg)
		assert.Equal(t, tc.wantHex, hex.EncodeToString(got))
	}
}

func TestAppendIndefinite(t *testing.T) {
	buf := cbor.AppendIndefHead(nil, cbor.CborTypeArray)
	buf = cbor.AppendHead(buf, cbor.CborTypeUint, 1)
	buf = cbor.AppendBreak(buf)
	assert.Equal(t, "9f01ff", hex.EncodeToString(buf))
}

func TestAppendBoundedBytes(t *testing.T) {
	short := bytes.Repeat([]byte{0xab}, 64)
	out := cbor.AppendBoundedBytes(nil, short, cbor.BoundedBytesChunkSize)
	assert.Equal(t, []byte{0x58, 0x40}, out[:2])
	assert.Len(t, out, 66)

	long := bytes.Repeat([]byte{0xcd}, 65)
	out = cbor.AppendBoundedBytes(nil, long, cbor.BoundedBytesChunkSize)
	require.Len(t, out, 1+2+64+1+1+1)
	assert.Equal(t, cbor.CborTypeByteString|cbor.CborIndefinite, out[0])
	assert.Equal(t, []byte{0x58, 0x40}, out[1:3])
	assert.Equal(t, []byte{0x41, 0xcd}, out[67:69])
	assert.Equal(t, cbor.CborBreak, out[len(out)-1])

	// Both forms decode to the same value
	var decoded []byte
	_, err := cbor.Decode(out, &decoded)
	require.NoError(t, err)
	assert.Equal(t, long, decoded)

	// Chunking disabled
	out = cbor.AppendBoundedBytes(nil, long, 0)
	assert.Equal(t, []byte{0x58, 0x41}, out[:2])
}
