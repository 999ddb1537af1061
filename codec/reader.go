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

package codec

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/blinklabs-io/ledgercodec/cbor"
)

var majorTypeNames = map[uint8]string{
	cbor.CborTypeUint:        "unsigned integer",
	cbor.CborTypeNegInt:      "negative integer",
	cbor.CborTypeByteString:  "byte string",
	cbor.CborTypeTextString:  "text string",
	cbor.CborTypeArray:       "array",
	cbor.CborTypeMap:         "map",
	cbor.CborTypeTag:         "tag",
	cbor.CborTypeSimpleFloat: "simple value",
}

// decoder is a resettable cursor over a private copy of the input
type decoder struct {
	data     []byte
	pos      int
	depth    int
	maxDepth int
	logger   *slog.Logger
}

func (d *decoder) remaining() int {
	return len(d.data) - d.pos
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > d.maxDepth {
		return DepthLimitError{Offset: d.pos, Limit: d.maxDepth}
	}
	return nil
}

func (d *decoder) leave() {
	d.depth--
}

func (d *decoder) truncated(need int) error {
	return TruncatedInputError{Offset: d.pos, Need: need, Have: d.remaining()}
}

func (d *decoder) mismatch(t reflect.Type, format string, args ...any) error {
	return TypeMismatchError{Offset: d.pos, Type: t, Reason: fmt.Sprintf(format, args...)}
}

// wrapErr maps an error from the wire layer to one of the codec error kinds
func (d *decoder) wrapErr(t reflect.Type, err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) ||
		errors.Is(err, cbor.ErrUnexpectedEnd) {
		return TruncatedInputError{Offset: d.pos, Have: d.remaining()}
	}
	return TypeMismatchError{Offset: d.pos, Type: t, Reason: err.Error(), Err: err}
}

// peekHead parses the header of the next item without consuming it
func (d *decoder) peekHead(t reflect.Type) (uint8, uint64, int, bool, error) {
	majorType, arg, headLen, indef, err := cbor.HeadInfo(d.data[d.pos:])
	if err != nil {
		if errors.Is(err, cbor.ErrUnexpectedEnd) {
			return 0, 0, 0, false, d.truncated(headSize(d.data[d.pos:]))
		}
		return 0, 0, 0, false, d.wrapErr(t, err)
	}
	return majorType, arg, headLen, indef, nil
}

// expectHead consumes the header of the next item, which must have the given major type
func (d *decoder) expectHead(t reflect.Type, want uint8) (uint64, bool, error) {
	majorType, arg, headLen, indef, err := d.peekHead(t)
	if err != nil {
		return 0, false, err
	}
	if majorType != want || (indef && want == cbor.CborTypeSimpleFloat) {
		return 0, false, d.mismatch(
			t,
			"expected %s, found %s",
			majorTypeNames[want],
			d.describe(majorType, indef),
		)
	}
	d.pos += headLen
	return arg, indef, nil
}

// expectMajor checks the major type of the next item without consuming it
func (d *decoder) expectMajor(t reflect.Type, want uint8) error {
	majorType, _, _, indef, err := d.peekHead(t)
	if err != nil {
		return err
	}
	if majorType != want {
		return d.mismatch(
			t,
			"expected %s, found %s",
			majorTypeNames[want],
			d.describe(majorType, indef),
		)
	}
	return nil
}

func (d *decoder) describe(majorType uint8, indef bool) string {
	if majorType == cbor.CborTypeSimpleFloat && indef {
		return "break"
	}
	return majorTypeNames[majorType]
}

// readArrayHeader consumes an array header. Definite lengths are checked against the
// remaining input before any allocation
func (d *decoder) readArrayHeader(t reflect.Type) (int, bool, error) {
	arg, indef, err := d.expectHead(t, cbor.CborTypeArray)
	if err != nil {
		return 0, false, err
	}
	if indef {
		return 0, true, nil
	}
	if arg > uint64(d.remaining()) {
		return 0, false, d.truncated(int(min(arg, uint64(len(d.data)+1))))
	}
	return int(arg), false, nil
}

// readMapHeader consumes a map header, checking that each claimed entry can fit
func (d *decoder) readMapHeader(t reflect.Type) (int, bool, error) {
	arg, indef, err := d.expectHead(t, cbor.CborTypeMap)
	if err != nil {
		return 0, false, err
	}
	if indef {
		return 0, true, nil
	}
	if arg > uint64(d.remaining())/2 {
		return 0, false, d.truncated(int(min(arg, uint64(len(d.data)+1))) * 2)
	}
	return int(arg), false, nil
}

func (d *decoder) atBreak() bool {
	return d.pos < len(d.data) && d.data[d.pos] == cbor.CborBreak
}

// more reports whether another element follows in a container with n definite items
// or, when indefinite, before the break
func (d *decoder) more(i, n int, indef bool) (bool, error) {
	if !indef {
		return i < n, nil
	}
	if d.pos >= len(d.data) {
		return false, d.truncated(1)
	}
	if d.atBreak() {
		d.pos++
		return false, nil
	}
	return true, nil
}

// readUint consumes an unsigned integer
func (d *decoder) readUint(t reflect.Type) (uint64, error) {
	arg, _, err := d.expectHead(t, cbor.CborTypeUint)
	return arg, err
}

// skip consumes the next item and returns its bytes
func (d *decoder) skip(t reflect.Type) ([]byte, error) {
	if d.remaining() == 0 {
		return nil, d.truncated(1)
	}
	n, err := cbor.ItemLength(d.data[d.pos:])
	if err != nil {
		return nil, d.wrapErr(t, err)
	}
	start := d.pos
	d.pos += n
	return d.data[start:d.pos:d.pos], nil
}

// decodeScalar decodes the next item with the wire layer's decode mode
func (d *decoder) decodeScalar(t reflect.Type, dest any) error {
	if d.remaining() == 0 {
		return d.truncated(1)
	}
	n, err := cbor.DecodeFirst(d.data[d.pos:], dest)
	if err != nil {
		return d.wrapErr(t, err)
	}
	d.pos += n
	return nil
}

// headSize returns the header length implied by the initial byte, used to report
// how many bytes a truncated header needed
func headSize(data []byte) int {
	if len(data) == 0 {
		return 1
	}
	switch data[0] & 0x1f {
	case 24:
		return 2
	case 25:
		return 3
	case 26:
		return 5
	case 27:
		return 9
	default:
		return 1
	}
}
