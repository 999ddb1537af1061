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
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	// ErrUnexpectedEnd is returned when the data ends inside an item header
	ErrUnexpectedEnd = errors.New("unexpected end of CBOR data")
	// ErrMalformedHead is returned for reserved or invalid additional info values
	ErrMalformedHead = errors.New("malformed CBOR item header")
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
// Uses sync.Once for thread-safe lazy initialization.
// Returns the cached error if initialization failed.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
			// This defaults to 32, but there are blocks in the wild using >64 nested levels
			MaxNestedLevels: 256,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecModeWithTags(customTagSet)
	})
	return cachedDecMode, cachedDecModeErr
}

func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// DecodeFirst decodes the first CBOR item in data into dest, ignoring anything after it.
// It returns the number of bytes consumed by the item
func DecodeFirst(data []byte, dest any) (int, error) {
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	rest, err := decMode.UnmarshalFirst(data, dest)
	if err != nil {
		return 0, err
	}
	return len(data) - len(rest), nil
}

// ItemLength returns the encoded length of the first CBOR item in data without decoding it
func ItemLength(data []byte) (int, error) {
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	dec := decMode.NewDecoder(bytes.NewReader(data))
	if err := dec.Skip(); err != nil {
		return 0, err
	}
	return dec.NumBytesRead(), nil
}

// HeadInfo parses the initial byte and argument of the first CBOR item in data.
// It returns the major type (already masked), the argument, the header size in bytes,
// and whether the item uses the indefinite-length encoding. For a break byte (0xff),
// the major type is CborTypeSimpleFloat and indefinite is true
func HeadInfo(data []byte) (uint8, uint64, int, bool, error) {
	if len(data) == 0 {
		return 0, 0, 0, false, ErrUnexpectedEnd
	}
	firstByte := data[0]
	majorType := firstByte & CborTypeMask
	additionalInfo := firstByte & 0x1f
	switch {
	case additionalInfo < 24:
		return majorType, uint64(additionalInfo), 1, false, nil
	case additionalInfo == 24:
		if len(data) < 2 {
			return 0, 0, 0, false, ErrUnexpectedEnd
		}
		return majorType, uint64(data[1]), 2, false, nil
	case additionalInfo == 25:
		if len(data) < 3 {
			return 0, 0, 0, false, ErrUnexpectedEnd
		}
		return majorType, uint64(binary.BigEndian.Uint16(data[1:3])), 3, false, nil
	case additionalInfo == 26:
		if len(data) < 5 {
			return 0, 0, 0, false, ErrUnexpectedEnd
		}
		return majorType, uint64(binary.BigEndian.Uint32(data[1:5])), 5, false, nil
	case additionalInfo == 27:
		if len(data) < 9 {
			return 0, 0, 0, false, ErrUnexpectedEnd
		}
		return majorType, binary.BigEndian.Uint64(data[1:9]), 9, false, nil
	case additionalInfo == CborIndefinite:
		switch majorType {
		case CborTypeByteString, CborTypeTextString, CborTypeArray, CborTypeMap, CborTypeSimpleFloat:
			return majorType, 0, 1, true, nil
		}
		return 0, 0, 0, false, fmt.Errorf(
			"%w: indefinite length not allowed for major type 0x%x",
			ErrMalformedHead,
			majorType,
		)
	default:
		return 0, 0, 0, false, fmt.Errorf(
			"%w: reserved additional info %d",
			ErrMalformedHead,
			additionalInfo,
		)
	}
}

// ArrayInfo extracts array item count and header size from CBOR array data.
// Returns (count, headerSize, isIndefinite). Count is -1 for invalid headers.
func ArrayInfo(data []byte) (int, uint32, bool) {
	return containerInfo(data, CborTypeArray)
}

// MapInfo extracts map item count and header size from CBOR map data.
// Returns (count, headerSize, isIndefinite). Count is -1 for invalid headers.
func MapInfo(data []byte) (int, uint32, bool) {
	return containerInfo(data, CborTypeMap)
}

func containerInfo(data []byte, wantType uint8) (int, uint32, bool) {
	majorType, arg, headLen, indef, err := HeadInfo(data)
	if err != nil || majorType != wantType {
		return -1, 0, false
	}
	if indef {
		return 0, 1, true // Indefinite length
	}
	// Use MaxInt32 to prevent overflow when values are later used for offset calculations
	if arg > uint64(math.MaxInt32) {
		return -1, 0, false // Too large to handle
	}
	// #nosec G115
	return int(arg), uint32(headLen), false
}
