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
	"math"
	"reflect"

	"github.com/blinklabs-io/ledgercodec/cbor"
)

const (
	simpleFalse = 20
	simpleTrue  = 21
)

type boolConverter struct{}

func (boolConverter) encode(e *encoder, _ *TypeDescriptor, v reflect.Value) error {
	if v.Bool() {
		e.writeRaw([]byte{cbor.CborSimpleTrue})
	} else {
		e.writeRaw([]byte{cbor.CborSimpleFalse})
	}
	return nil
}

func (boolConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	start := d.pos
	arg, _, err := d.expectHead(desc.Type, cbor.CborTypeSimpleFloat)
	if err != nil {
		return err
	}
	switch arg {
	case simpleFalse:
		v.SetBool(false)
	case simpleTrue:
		v.SetBool(true)
	default:
		d.pos = start
		return d.mismatch(desc.Type, "expected boolean, found simple value %d", arg)
	}
	return nil
}

type uintConverter struct{}

func (uintConverter) encode(e *encoder, _ *TypeDescriptor, v reflect.Value) error {
	e.writeHead(cbor.CborTypeUint, v.Uint())
	return nil
}

func (uintConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	start := d.pos
	arg, err := d.readUint(desc.Type)
	if err != nil {
		return err
	}
	if v.OverflowUint(arg) {
		d.pos = start
		return d.mismatch(desc.Type, "value %d overflows", arg)
	}
	v.SetUint(arg)
	return nil
}

type intConverter struct{}

func (intConverter) encode(e *encoder, _ *TypeDescriptor, v reflect.Value) error {
	n := v.Int()
	if n >= 0 {
		e.writeHead(cbor.CborTypeUint, uint64(n))
	} else {
		// #nosec G115
		e.writeHead(cbor.CborTypeNegInt, uint64(-1-n))
	}
	return nil
}

func (intConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	start := d.pos
	majorType, arg, headLen, _, err := d.peekHead(desc.Type)
	if err != nil {
		return err
	}
	if majorType != cbor.CborTypeUint && majorType != cbor.CborTypeNegInt {
		return d.mismatch(desc.Type, "expected integer, found %s", majorTypeNames[majorType])
	}
	if arg > math.MaxInt64 {
		return d.mismatch(desc.Type, "integer out of range")
	}
	n := int64(arg)
	if majorType == cbor.CborTypeNegInt {
		n = -1 - n
	}
	if v.OverflowInt(n) {
		return d.mismatch(desc.Type, "value %d overflows", n)
	}
	d.pos = start + headLen
	v.SetInt(n)
	return nil
}

type textConverter struct{}

func (textConverter) encode(e *encoder, _ *TypeDescriptor, v reflect.Value) error {
	s := v.String()
	e.writeHead(cbor.CborTypeTextString, uint64(len(s)))
	e.writeRaw([]byte(s))
	return nil
}

func (textConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	if err := d.expectMajor(desc.Type, cbor.CborTypeTextString); err != nil {
		return err
	}
	var s string
	if err := d.decodeScalar(desc.Type, &s); err != nil {
		return err
	}
	v.SetString(s)
	return nil
}

// bytesConverter handles byte strings, chunking them on write when the type is bounded
type bytesConverter struct{}

func (bytesConverter) encode(e *encoder, desc *TypeDescriptor, v reflect.Value) error {
	e.buf = cbor.AppendBoundedBytes(e.buf, v.Bytes(), desc.ChunkSize)
	return nil
}

func (bytesConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	if err := d.expectMajor(desc.Type, cbor.CborTypeByteString); err != nil {
		return err
	}
	var b []byte
	if err := d.decodeScalar(desc.Type, &b); err != nil {
		return err
	}
	if b == nil {
		b = []byte{}
	}
	v.SetBytes(b)
	return nil
}

// fixedBytesConverter handles byte arrays such as hashes, which must match in length
type fixedBytesConverter struct{}

func (fixedBytesConverter) encode(e *encoder, _ *TypeDescriptor, v reflect.Value) error {
	b := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(b), v)
	e.writeHead(cbor.CborTypeByteString, uint64(len(b)))
	e.writeRaw(b)
	return nil
}

func (fixedBytesConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	if err := d.expectMajor(desc.Type, cbor.CborTypeByteString); err != nil {
		return err
	}
	start := d.pos
	var b []byte
	if err := d.decodeScalar(desc.Type, &b); err != nil {
		return err
	}
	if len(b) != v.Len() {
		d.pos = start
		return d.mismatch(desc.Type, "expected %d bytes, found %d", v.Len(), len(b))
	}
	reflect.Copy(v, reflect.ValueOf(b))
	return nil
}

// scalarConverter delegates to the wire layer's encode and decode modes. It serves big
// integers (tags 2 and 3), tag 24 wrapped CBOR and types with their own CBOR methods
type scalarConverter struct{}

func (scalarConverter) encode(e *encoder, _ *TypeDescriptor, v reflect.Value) error {
	return e.writeScalar(v.Interface())
}

func (scalarConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	return d.decodeScalar(desc.Type, v.Addr().Interface())
}

// rawConverter captures the next item verbatim
type rawConverter struct{}

func (rawConverter) encode(e *encoder, _ *TypeDescriptor, v reflect.Value) error {
	if v.Len() == 0 {
		e.writeRaw([]byte{cbor.CborSimpleNull})
		return nil
	}
	e.writeRaw(v.Bytes())
	return nil
}

func (rawConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	raw, err := d.skip(desc.Type)
	if err != nil {
		return err
	}
	v.SetBytes(raw)
	return nil
}

// optionalConverter maps nil pointers to null
type optionalConverter struct{}

func (optionalConverter) encode(e *encoder, desc *TypeDescriptor, v reflect.Value) error {
	if v.IsNil() {
		e.writeRaw([]byte{cbor.CborSimpleNull})
		return nil
	}
	elem, err := desc.Elem()
	if err != nil {
		return err
	}
	return e.encodeValue(elem, v.Elem())
}

func (optionalConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	if d.pos < len(d.data) && d.data[d.pos] == cbor.CborSimpleNull {
		d.pos++
		v.SetZero()
		return nil
	}
	elem, err := desc.Elem()
	if err != nil {
		return err
	}
	p := reflect.New(desc.Type.Elem())
	if err := d.decodeValue(elem, p.Elem()); err != nil {
		return err
	}
	v.Set(p)
	return nil
}
