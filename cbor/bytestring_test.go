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
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteString(t *testing.T) {
	testDefs := []struct {
		name    string
		data    []byte
		hex     string
		cborHex string
	}{
		{
			name:    "Empty",
			data:    []byte{},
			hex:     "",
			cborHex: "40",
		},
		{
			name:    "AssetName",
			data:    []byte("blinklabs"),
			hex:     "626c696e6b6c616273",
			cborHex: "49626c696e6b6c616273",
		},
		{
			name:    "PolicyId",
			data:    bytes.Repeat([]byte{0x11}, 28),
			hex:     strings.Repeat("11", 28),
			cborHex: "581c" + strings.Repeat("11", 28),
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			bs := NewByteString(testDef.data)
			assert.Equal(t, testDef.hex, bs.String())
			assert.True(t, bytes.Equal(testDef.data, bs.Bytes()))

			jsonData, err := json.Marshal(bs)
			require.NoError(t, err)
			assert.Equal(t, `"`+testDef.hex+`"`, string(jsonData))

			cborData, err := Encode(bs)
			require.NoError(t, err)
			assert.Equal(t, testDef.cborHex, hex.EncodeToString(cborData))

			var decoded ByteString
			_, err = Decode(cborData, &decoded)
			require.NoError(t, err)
			assert.Equal(t, bs, decoded)
		})
	}
}

func TestByteStringCopiesInput(t *testing.T) {
	data := []byte{0x01, 0x02}
	bs := NewByteString(data)
	data[0] = 0xff
	assert.Equal(t, []byte{0x01, 0x02}, bs.Bytes())
}

func TestByteStringMapKey(t *testing.T) {
	// Asset names are map keys inside a policy
	assets := map[ByteString]uint64{
		NewByteString([]byte("a")): 1,
		NewByteString([]byte("b")): 2,
	}
	cborData, err := Encode(assets)
	require.NoError(t, err)

	var decoded map[ByteString]uint64
	_, err = Decode(cborData, &decoded)
	require.NoError(t, err)
	assert.Equal(t, assets, decoded)
	assert.Equal(t, uint64(2), decoded[NewByteString([]byte("b"))])
}

func TestByteStringDecodeChunked(t *testing.T) {
	// Indefinite-length byte strings are accepted and joined
	cborData := []byte{0x5f, 0x41, 0xaa, 0x41, 0xbb, 0xff}
	var decoded ByteString
	_, err := Decode(cborData, &decoded)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xaa, 0xbb}, decoded.Bytes())
}

func TestAppendBoundedBytes(t *testing.T) {
	testDefs := []struct {
		name      string
		length    int
		chunkSize int
		// Expected header bytes before the payload
		prefix []byte
		chunks int
	}{
		{name: "Unchunked", length: 100, chunkSize: 0, prefix: []byte{0x58, 0x64}},
		{name: "AtLimit", length: 64, chunkSize: BoundedBytesChunkSize, prefix: []byte{0x58, 0x40}},
		{name: "OverLimit", length: 65, chunkSize: BoundedBytesChunkSize, prefix: []byte{0x5f, 0x58, 0x40}, chunks: 2},
		{name: "ThreeChunks", length: 130, chunkSize: BoundedBytesChunkSize, prefix: []byte{0x5f, 0x58, 0x40}, chunks: 3},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{0xcc}, testDef.length)
			encoded := AppendBoundedBytes([]byte{0x80}, data, testDef.chunkSize)
			// Existing buffer contents are kept
			require.Equal(t, byte(0x80), encoded[0])
			encoded = encoded[1:]
			assert.Equal(t, testDef.prefix, encoded[:len(testDef.prefix)])
			if testDef.chunks > 0 {
				assert.Equal(t, CborBreak, encoded[len(encoded)-1])
				// Bytes left after the payload, the indefinite head and the break are chunk heads
				heads := len(encoded) - testDef.length - 2
				assert.GreaterOrEqual(t, heads, testDef.chunks)
			}
			var decoded []byte
			_, err := Decode(encoded, &decoded)
			require.NoError(t, err)
			assert.Equal(t, data, decoded)
		})
	}
}
