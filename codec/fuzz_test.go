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
	"bytes"
	"testing"

	"github.com/blinklabs-io/ledgercodec/codec"
	"github.com/blinklabs-io/ledgercodec/internal/test"
)

func FuzzDeserializeUnion(f *testing.F) {
	f.Add(test.DecodeHexString("820102"))
	f.Add(test.DecodeHexString("82016161"))
	f.Add(test.DecodeHexString("9f0102ff"))
	f.Add(test.DecodeHexString("d9010283010203"))
	f.Add([]byte{0x00})
	c := newTestCodec(f)
	f.Fuzz(func(t *testing.T, data []byte) {
		// Should not panic
		_, _ = codec.Deserialize[[]testShape](c, data)
		_, _ = codec.Deserialize[testShape](c, data)
	})
}

func FuzzDeserializeRecords(f *testing.F) {
	f.Add(test.DecodeHexString("a2008101020a"))
	f.Add(test.DecodeHexString("d8799f01ff"))
	f.Add(test.DecodeHexString("d865820282820141aa"))
	f.Add(test.DecodeHexString("82028105"))
	f.Add(test.DecodeHexString("81818181f6"))
	c := newTestCodec(f, codec.WithMaxDepth(32))
	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = codec.Deserialize[testMap](c, data)
		_, _ = codec.Deserialize[testConstr](c, data)
		_, _ = codec.Deserialize[testFixedConstr](c, data)
		_, _ = codec.Deserialize[testWithEra](c, data)
		_, _ = codec.Deserialize[testNested](c, data)
		_, _ = codec.Deserialize[map[uint64]string](c, data)
	})
}

func FuzzRawCapture(f *testing.F) {
	f.Add(test.DecodeHexString("829f0102fff5"))
	f.Add(test.DecodeHexString("82820102f4"))
	c := newTestCodec(f)
	f.Fuzz(func(t *testing.T, data []byte) {
		decoded, err := codec.Deserialize[testCaptured](c, data)
		if err != nil {
			return
		}
		// Whatever was accepted must be written back unchanged
		out, err := c.Serialize(decoded)
		if err != nil {
			t.Fatalf("serialize failed: %s", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("captured bytes changed: %x != %x", out, data)
		}
	})
}
