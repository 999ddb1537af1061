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
	"testing"
)

// Plutus data shapes: constructors in both tag ranges, tag 101, big integers,
// chunked bytes and maps with repeated keys
var fuzzSeeds = [][]byte{
	{0xd8, 0x79, 0x80},
	{0xd8, 0x7a, 0x9f, 0x01, 0xff},
	{0xd9, 0x05, 0x0a, 0x9f, 0x01, 0xff},
	{0xd8, 0x65, 0x82, 0x18, 0x64, 0x80},
	{0xc2, 0x49, 0x01, 0, 0, 0, 0, 0, 0, 0, 0},
	{0x39, 0x03, 0xe7},
	{0xa2, 0x01, 0x02, 0x01, 0x03},
	{0x5f, 0x41, 0xaa, 0x41, 0xbb, 0xff},
	{0xd8, 0x18, 0x43, 0xab, 0xcd, 0xef},
	{0xd9, 0x01, 0x02, 0x82, 0x01, 0x02},
	{0x1b, 0, 0, 0, 0, 0, 0, 0, 1},
	{0xff},
}

func FuzzDecode(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		var result any
		n, err := Decode(data, &result)
		if err == nil && n > len(data) {
			t.Fatalf("consumed %d bytes of %d", n, len(data))
		}
		var wrapped WrappedCbor
		_, _ = DecodeFirst(data, &wrapped)
		var key ByteString
		_, _ = DecodeFirst(data, &key)
	})
}

func FuzzHeadInfo(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		majorType, _, headLen, indef, err := HeadInfo(data)
		if err == nil {
			if headLen < 1 || headLen > len(data) {
				t.Fatalf("header length %d out of range for %d bytes", headLen, len(data))
			}
			if indef && headLen != 1 {
				t.Fatalf("indefinite head with length %d", headLen)
			}
			if majorType&^CborTypeMask != 0 {
				t.Fatalf("unmasked major type 0x%x", majorType)
			}
		}
		n, err := ItemLength(data)
		if err == nil && (n < 1 || n > len(data)) {
			t.Fatalf("item length %d out of range for %d bytes", n, len(data))
		}
	})
}

func FuzzConstructorTag(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(6))
	f.Add(uint64(7))
	f.Add(uint64(127))
	f.Fuzz(func(t *testing.T, index uint64) {
		index &= 0xffffffff
		tagNum := ConstructorTag(index)
		if !IsAlternativeTag(tagNum) {
			t.Fatalf("tag %d for index %d is not a constructor tag", tagNum, index)
		}
		got, ok := ConstructorIndex(tagNum)
		if !ok || got != index {
			t.Fatalf("index %d -> tag %d -> index %d (%v)", index, tagNum, got, ok)
		}
	})
}

func FuzzAppendBoundedBytes(f *testing.F) {
	f.Add([]byte{}, 0)
	f.Add(bytes.Repeat([]byte{0xaa}, 64), BoundedBytesChunkSize)
	f.Add(bytes.Repeat([]byte{0xbb}, 65), BoundedBytesChunkSize)
	f.Add([]byte{0x01, 0x02, 0x03}, 1)
	f.Fuzz(func(t *testing.T, data []byte, chunkSize int) {
		encoded := AppendBoundedBytes(nil, data, chunkSize)
		n, err := ItemLength(encoded)
		if err != nil {
			t.Fatalf("encoded bytes are not a single item: %v", err)
		}
		if n != len(encoded) {
			t.Fatalf("item length %d, encoded %d bytes", n, len(encoded))
		}
		var decoded []byte
		if _, err := Decode(encoded, &decoded); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("got %x, want %x", decoded, data)
		}
	})
}
