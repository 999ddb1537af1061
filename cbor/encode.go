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
	"encoding/binary"
	"errors"
	"math"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedEncMode     _cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once
)

func getEncMode() (_cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		opts := _cbor.EncOptions{
			// Make sure that maps have ordered keys
			Sort: _cbor.SortCoreDeterministic,
		}
		cachedEncMode, cachedEncModeErr = opts.EncModeWithTags(customTagSet)
	})
	return cachedEncMode, cachedEncModeErr
}

func Encode(data any) ([]byte, error) {
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	if em == nil {
		return nil, errors.New("CBOR encoder mode not initialized")
	}
	return em.Marshal(data)
}

// AppendHead appends a CBOR item header with the shortest encoding of arg
func AppendHead(buf []byte, majorType uint8, arg uint64) []byte {
	switch {
	case arg <= uint64(CborMaxUintSimple):
		return append(buf, majorType|uint8(arg))
	case arg <= math.MaxUint8:
		return append(buf, majorType|24, uint8(arg))
	case arg <= math.MaxUint16:
		buf = append(buf, majorType|25)
		return binary.BigEndian.AppendUint16(buf, uint16(arg))
	case arg <= math.MaxUint32:
		buf = append(buf, majorType|26)
		return binary.BigEndian.AppendUint32(buf, uint32(arg))
	default:
		buf = append(buf, majorType|27)
		return binary.BigEndian.AppendUint64(buf, arg)
	}
}

// AppendIndefHead appends the start of an indefinite-length item of the given major type
func AppendIndefHead(buf []byte, majorType uint8) []byte {
	return append(buf, majorType|CborIndefinite)
}

// AppendBreak appends the stop code that ends an indefinite-length item
func AppendBreak(buf []byte) []byte {
	return append(buf, CborBreak)
}
