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

package codec_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/ledgercodec/codec"
	"github.com/blinklabs-io/ledgercodec/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawCaptureStability(t *testing.T) {
	c := newTestCodec(t)
	// The indefinite inner list would be written as a definite one from the fields
	input := test.DecodeHexString("829f0102fff5")
	decoded, err := codec.Deserialize[testCaptured](c, input)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, decoded.Items)
	assert.True(t, decoded.Flag)
	assert.Equal(t, input, decoded.Cbor())
	data, err := c.Serialize(decoded)
	require.NoError(t, err)
	assert.Equal(t, input, data)
	hashBytes, err := c.Bytes(decoded)
	require.NoError(t, err)
	assert.Equal(t, input, hashBytes)
	// A value built from fields has no capture
	fresh := testCaptured{Items: []uint64{1, 2}, Flag: true}
	data, err = c.Serialize(fresh)
	require.NoError(t, err)
	assert.Equal(t, "82820102f5", hex.EncodeToString(data))
	hashBytes, err = c.Bytes(fresh)
	require.NoError(t, err)
	assert.Equal(t, data, hashBytes)
}

func TestRawCaptureOwnsInput(t *testing.T) {
	c := newTestCodec(t)
	input := test.DecodeHexString("829f0102fff5")
	expected := append([]byte(nil), input...)
	decoded, err := codec.Deserialize[testCaptured](c, input)
	require.NoError(t, err)
	for i := range input {
		input[i] = 0
	}
	assert.Equal(t, expected, decoded.Cbor())
}

func TestRawCaptureNested(t *testing.T) {
	c := newTestCodec(t)
	input := test.DecodeHexString("a200" + "81" + "829f01fff4" + "01" + "829f02fff5")
	decoded, err := codec.Deserialize[testCapturedParent](c, input)
	require.NoError(t, err)
	assert.Equal(t, input, decoded.Cbor())
	require.Len(t, decoded.Children, 1)
	assert.Equal(t, "829f01fff4", hex.EncodeToString(decoded.Children[0].Cbor()))
	require.NotNil(t, decoded.Single)
	assert.Equal(t, "829f02fff5", hex.EncodeToString(decoded.Single.Cbor()))
	// Re-encoding after dropping only the outer capture keeps the inner ones
	decoded.SetCbor(nil)
	data, err := c.Serialize(decoded)
	require.NoError(t, err)
	assert.Equal(t, input, data)
}

func TestDetach(t *testing.T) {
	c := newTestCodec(t)
	input := test.DecodeHexString("a200" + "81" + "829f01fff4" + "01" + "829f02fff5")
	decoded, err := codec.Deserialize[testCapturedParent](c, input)
	require.NoError(t, err)
	detached, err := codec.Detach(decoded)
	require.NoError(t, err)
	assert.Nil(t, detached.Cbor())
	require.Len(t, detached.Children, 1)
	assert.Nil(t, detached.Children[0].Cbor())
	require.NotNil(t, detached.Single)
	assert.Nil(t, detached.Single.Cbor())
	assert.Equal(t, decoded.Children[0].Items, detached.Children[0].Items)
	// The copy is deep, so changes do not reach the decoded value
	detached.Single.Items[0] = 9
	detached.Single.Flag = false
	assert.Equal(t, []uint64{2}, decoded.Single.Items)
	assert.True(t, decoded.Single.Flag)
	data, err := c.Serialize(detached)
	require.NoError(t, err)
	assert.Equal(t, "a200"+"81"+"828101f4"+"01"+"828109f4", hex.EncodeToString(data))
	// The original keeps its captures
	data, err = c.Serialize(decoded)
	require.NoError(t, err)
	assert.Equal(t, input, data)
}

func TestDetachKeepsMembers(t *testing.T) {
	c := newTestCodec(t)
	input := test.DecodeHexString("829f0102fff5")
	decoded, err := codec.Deserialize[testCaptured](c, input)
	require.NoError(t, err)
	detached, err := codec.Detach(decoded)
	require.NoError(t, err)
	assert.Nil(t, detached.Cbor())
	assert.True(t, detached.Flag)
	assert.Equal(t, []uint64{1, 2}, detached.Items)
	data, err := c.Serialize(detached)
	require.NoError(t, err)
	assert.Equal(t, "82820102f5", hex.EncodeToString(data))
	// Empty members stay empty
	detached, err = codec.Detach(testCaptured{Flag: true})
	require.NoError(t, err)
	assert.Nil(t, detached.Items)
	assert.True(t, detached.Flag)
}

func TestDetachUnion(t *testing.T) {
	values := []testShape{shapePair{A: 1, B: 2}, shapeAmount(3)}
	detached, err := codec.Detach(values)
	require.NoError(t, err)
	assert.Equal(t, values, detached)
}
