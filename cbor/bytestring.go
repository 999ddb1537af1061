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
	"encoding/hex"
	"encoding/json"
)

// BoundedBytesChunkSize is the maximum length of a single definite byte string
// in the Plutus "bounded bytes" encoding
const BoundedBytesChunkSize = 64

// Wrapper for bytestrings that allows them to be used as keys for a map
type ByteString struct {
	// We use a string because []byte isn't comparable, which means it can't be used as a map key
	data string
}

func NewByteString(data []byte) ByteString {
	bs := ByteString{
		data: string(data),
	}
	return bs
}

func (bs *ByteString) UnmarshalCBOR(data []byte) error {
	tmpValue := []byte{}
	if _, err := Decode(data, &tmpValue); err != nil {
		return err
	}
	bs.data = string(tmpValue)
	return nil
}

func (bs ByteString) MarshalCBOR() ([]byte, error) {
	return AppendBoundedBytes(nil, []byte(bs.data), 0), nil
}

func (bs ByteString) Bytes() []byte {
	return []byte(bs.data)
}

func (bs ByteString) String() string {
	return hex.EncodeToString([]byte(bs.data))
}

func (bs ByteString) MarshalJSON() ([]byte, error) {
	return json.Marshal(bs.String())
}

// AppendBoundedBytes appends data as a CBOR byte string. When chunkSize is positive and
// data is longer than chunkSize, the indefinite-length form is used with chunks of at
// most chunkSize bytes
func AppendBoundedBytes(buf []byte, data []byte, chunkSize int) []byte {
	if chunkSize <= 0 || len(data) <= chunkSize {
		buf = AppendHead(buf, CborTypeByteString, uint64(len(data)))
		return append(buf, data...)
	}
	buf = AppendIndefHead(buf, CborTypeByteString)
	for len(data) > 0 {
		n := min(chunkSize, len(data))
		buf = AppendHead(buf, CborTypeByteString, uint64(n))
		buf = append(buf, data[:n]...)
		data = data[n:]
	}
	return AppendBreak(buf)
}
