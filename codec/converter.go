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
	"fmt"
	"reflect"

	"github.com/blinklabs-io/ledgercodec/cbor"
)

// converter writes and reads values of one shape. Decode targets are always settable
type converter interface {
	encode(e *encoder, desc *TypeDescriptor, v reflect.Value) error
	decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error
}

// encodeValue writes v, emitting its raw capture verbatim when it has one
func (e *encoder) encodeValue(desc *TypeDescriptor, v reflect.Value) error {
	if desc.nested {
		if err := e.enter(); err != nil {
			return err
		}
		defer e.leave()
	}
	if desc.rawIndex >= 0 {
		store := v.Field(desc.rawIndex).Interface().(cbor.DecodeStoreCbor)
		if raw := store.Cbor(); len(raw) > 0 {
			e.writeRaw(raw)
			return nil
		}
	}
	return desc.conv.encode(e, desc, v)
}

// decodeValue reads into v and records the consumed span for raw-preserving types
func (d *decoder) decodeValue(desc *TypeDescriptor, v reflect.Value) error {
	if desc.nested {
		if err := d.enter(); err != nil {
			return err
		}
		defer d.leave()
	}
	start := d.pos
	if err := desc.conv.decode(d, desc, v); err != nil {
		return err
	}
	if desc.rawIndex >= 0 {
		store := v.Field(desc.rawIndex).Addr().Interface().(*cbor.DecodeStoreCbor)
		store.SetCbor(d.data[start:d.pos:d.pos])
	}
	return nil
}

func (e *encoder) encodeMember(m *MemberBinding, parent reflect.Value) error {
	if m.HasConst {
		e.writeHead(cbor.CborTypeUint, m.Const)
		return nil
	}
	desc, err := m.Descriptor()
	if err != nil {
		return err
	}
	field := parent.Field(m.fieldIndex)
	if m.Hint != "" {
		if err := checkHint(desc, m, field, parent.Field(m.hintIndex)); err != nil {
			return TypeMismatchError{Offset: len(e.buf), Type: desc.Type, Reason: err.Error()}
		}
	}
	return e.encodeValue(desc, field)
}

func (d *decoder) decodeMember(m *MemberBinding, parent reflect.Value) error {
	field := parent.Field(m.fieldIndex)
	if m.HasConst {
		start := d.pos
		val, err := d.readUint(m.Type)
		if err != nil {
			return err
		}
		if val != m.Const {
			d.pos = start
			return d.mismatch(m.Type, "expected %s %d, found %d", m.Name, m.Const, val)
		}
		field.SetUint(val)
		return nil
	}
	desc, err := m.Descriptor()
	if err != nil {
		return err
	}
	if m.Hint != "" {
		return d.decodeHinted(desc, m.Hint, discriminant(parent.Field(m.hintIndex)), field)
	}
	return d.decodeValue(desc, field)
}

// checkHint verifies that the variant held by a hinted member agrees with its sibling
func checkHint(desc *TypeDescriptor, m *MemberBinding, field, sibling reflect.Value) error {
	if desc.Shape != ShapeUnion || field.IsNil() {
		return nil
	}
	i, ok := desc.byType[field.Elem().Type()]
	if !ok {
		return nil
	}
	hint := desc.Variants[i].Hint
	if hint == nil || hint.Field != m.Hint {
		return nil
	}
	if disc := discriminant(sibling); disc != hint.Value {
		return fmt.Errorf(
			"variant %v requires %s=%d, found %d",
			field.Elem().Type(),
			m.Hint,
			hint.Value,
			disc,
		)
	}
	return nil
}

func discriminant(v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// #nosec G115
		return uint64(v.Int())
	default:
		return v.Uint()
	}
}

// isEmpty reports whether an optional member should be omitted on write
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}
