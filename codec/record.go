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

var recordConverters = map[Shape]converter{
	ShapeList:        listConverter{},
	ShapeConstructor: constructorConverter{},
}

// listConverter handles positional records
type listConverter struct{}

func (listConverter) encode(e *encoder, desc *TypeDescriptor, v reflect.Value) error {
	if desc.fields != nil {
		return e.encodeFields(desc, v)
	}
	return e.encodePositional(desc, v)
}

func (listConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	if desc.fields != nil {
		return d.decodeFields(desc, v)
	}
	n, indef, err := d.readArrayHeader(desc.Type)
	if err != nil {
		return err
	}
	return d.decodePositional(desc, v, n, indef)
}

// encodeFields writes a record whose body is its fields member
func (e *encoder) encodeFields(desc *TypeDescriptor, v reflect.Value) error {
	fieldsDesc, err := desc.fields.Descriptor()
	if err != nil {
		return err
	}
	return e.encodeValue(fieldsDesc, v.Field(desc.fields.fieldIndex))
}

func (d *decoder) decodeFields(desc *TypeDescriptor, v reflect.Value) error {
	fieldsDesc, err := desc.fields.Descriptor()
	if err != nil {
		return err
	}
	return d.decodeValue(fieldsDesc, v.Field(desc.fields.fieldIndex))
}

// encodePositional writes members as array items. Trailing optional members that are
// empty are left out
func (e *encoder) encodePositional(desc *TypeDescriptor, v reflect.Value) error {
	count := len(desc.Members)
	for count > desc.required {
		m := desc.Members[count-1]
		if !m.Optional || !isEmpty(v.Field(m.fieldIndex)) {
			break
		}
		count--
	}
	indef := desc.Indefinite && (count > 0 || !desc.EmptyDefinite)
	e.writeContainerHead(cbor.CborTypeArray, count, indef)
	for _, m := range desc.Members[:count] {
		if err := e.encodeMember(m, v); err != nil {
			return err
		}
	}
	if indef {
		e.writeBreak()
	}
	return nil
}

func (d *decoder) decodePositional(
	desc *TypeDescriptor,
	v reflect.Value,
	n int,
	indef bool,
) error {
	if !indef && (n < desc.required || n > len(desc.Members)) {
		return d.mismatch(
			desc.Type,
			"expected %d to %d items, found %d",
			desc.required,
			len(desc.Members),
			n,
		)
	}
	for i, m := range desc.Members {
		more, err := d.more(i, n, indef)
		if err != nil {
			return err
		}
		if !more {
			if i < desc.required {
				return d.mismatch(desc.Type, "expected at least %d items, found %d", desc.required, i)
			}
			return nil
		}
		if err := d.decodeMember(m, v); err != nil {
			return err
		}
	}
	if indef {
		if d.pos >= len(d.data) {
			return d.truncated(1)
		}
		if !d.atBreak() {
			return d.mismatch(desc.Type, "expected at most %d items", len(desc.Members))
		}
		d.pos++
	}
	return nil
}

// constructorConverter handles Plutus constructors: a tag selected by the constructor
// index wrapping an array of fields
type constructorConverter struct{}

func (constructorConverter) encode(e *encoder, desc *TypeDescriptor, v reflect.Value) error {
	index := constructorIndex(desc, v)
	if index > cbor.MaxConstructorIndex {
		return TypeMismatchError{
			Offset: len(e.buf),
			Type:   desc.Type,
			Reason: fmt.Sprintf("constructor index %d has no tag", index),
		}
	}
	e.writeHead(cbor.CborTypeTag, cbor.ConstructorTag(index))
	if desc.fields != nil {
		return e.encodeFields(desc, v)
	}
	return e.encodePositional(desc, v)
}

func (constructorConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	start := d.pos
	tagNum, _, err := d.expectHead(desc.Type, cbor.CborTypeTag)
	if err != nil {
		return err
	}
	var index uint64
	if tagNum == cbor.CborTagAlternative3 {
		// Tag 101 carries [index, fields]
		n, indef, err := d.readArrayHeader(desc.Type)
		if err != nil {
			return err
		}
		if indef || n != 2 {
			return d.mismatch(desc.Type, "tag %d content must be a two-item array", tagNum)
		}
		if index, err = d.readUint(desc.Type); err != nil {
			return err
		}
	} else {
		var ok bool
		if index, ok = cbor.ConstructorIndex(tagNum); !ok {
			return TagMismatchError{
				Offset:   start,
				Tag:      tagNum,
				Expected: "constructor tag 121-127, 1280 and above, or 101",
			}
		}
	}
	if desc.ConstructorIndex != DynamicConstructorIndex &&
		index != uint64(desc.ConstructorIndex) {
		return TagMismatchError{
			Offset: start,
			Tag:    tagNum,
			Expected: fmt.Sprintf(
				"constructor %d (tag %d)",
				desc.ConstructorIndex,
				cbor.ConstructorTag(uint64(desc.ConstructorIndex)),
			),
		}
	}
	indexField := v.Field(desc.indexField).Field(0)
	if indexField.OverflowUint(index) {
		return d.mismatch(desc.Type, "constructor index %d out of range", index)
	}
	indexField.SetUint(index)
	if desc.fields != nil {
		return d.decodeFields(desc, v)
	}
	n, indef, err := d.readArrayHeader(desc.Type)
	if err != nil {
		return err
	}
	return d.decodePositional(desc, v, n, indef)
}

func constructorIndex(desc *TypeDescriptor, v reflect.Value) uint64 {
	if desc.ConstructorIndex != DynamicConstructorIndex {
		return uint64(desc.ConstructorIndex)
	}
	return v.Field(desc.indexField).Field(0).Uint()
}

// mapConverter handles keyed records
type mapConverter struct{}

func (mapConverter) encode(e *encoder, desc *TypeDescriptor, v reflect.Value) error {
	if desc.fields != nil {
		return e.encodePairs(desc, v)
	}
	present := make([]*MemberBinding, 0, len(desc.keyOrder))
	for _, m := range desc.keyOrder {
		if m.Optional && isEmpty(v.Field(m.fieldIndex)) {
			continue
		}
		present = append(present, m)
	}
	e.writeHead(cbor.CborTypeMap, uint64(len(present)))
	for _, m := range present {
		e.writeRaw(m.keyBytes)
		if err := e.encodeMember(m, v); err != nil {
			return err
		}
	}
	return nil
}

func (mapConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	if desc.fields != nil {
		return d.decodePairs(desc, v)
	}
	n, indef, err := d.readMapHeader(desc.Type)
	if err != nil {
		return err
	}
	// Index the value of each key first, so that members can be decoded after the
	// siblings their hints refer to
	valuePos := make([]int, len(desc.Members))
	for i := range valuePos {
		valuePos[i] = -1
	}
	for i := 0; ; i++ {
		more, err := d.more(i, n, indef)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		m, err := d.readMapKey(desc)
		if err != nil {
			return err
		}
		if valuePos[m.position] >= 0 {
			return d.mismatch(desc.Type, "duplicate key %s", m.Key)
		}
		valuePos[m.position] = d.pos
		if _, err := d.skip(m.Type); err != nil {
			return err
		}
	}
	end := d.pos
	for _, hinted := range []bool{false, true} {
		for i, m := range desc.Members {
			if (m.Hint != "") != hinted {
				continue
			}
			if valuePos[i] < 0 {
				if !m.Optional {
					return d.mismatch(desc.Type, "missing key %s", m.Key)
				}
				continue
			}
			d.pos = valuePos[i]
			if err := d.decodeMember(m, v); err != nil {
				return err
			}
		}
	}
	d.pos = end
	return nil
}

func (d *decoder) readMapKey(desc *TypeDescriptor) (*MemberBinding, error) {
	majorType, arg, headLen, _, err := d.peekHead(desc.Type)
	if err != nil {
		return nil, err
	}
	switch majorType {
	case cbor.CborTypeUint:
		m, ok := desc.byIndexKey[arg]
		if !ok {
			return nil, d.mismatch(desc.Type, "unknown key %d", arg)
		}
		d.pos += headLen
		return m, nil
	case cbor.CborTypeTextString:
		var name string
		start := d.pos
		if err := d.decodeScalar(desc.Type, &name); err != nil {
			return nil, err
		}
		m, ok := desc.byNameKey[name]
		if !ok {
			d.pos = start
			return nil, d.mismatch(desc.Type, "unknown key %q", name)
		}
		return m, nil
	default:
		return nil, d.mismatch(desc.Type, "unsupported key type %s", majorTypeNames[majorType])
	}
}

// encodePairs writes a keyed record whose fields member holds ordered key/value pairs
func (e *encoder) encodePairs(desc *TypeDescriptor, v reflect.Value) error {
	keyDesc, err := desc.pairKey.Descriptor()
	if err != nil {
		return err
	}
	valueDesc, err := desc.pairValue.Descriptor()
	if err != nil {
		return err
	}
	pairs := v.Field(desc.fields.fieldIndex)
	e.writeContainerHead(cbor.CborTypeMap, pairs.Len(), desc.Indefinite)
	for i := range pairs.Len() {
		pair := pairs.Index(i)
		if err := e.encodeValue(keyDesc, pair.Field(desc.pairKey.fieldIndex)); err != nil {
			return err
		}
		if err := e.encodeValue(valueDesc, pair.Field(desc.pairValue.fieldIndex)); err != nil {
			return err
		}
	}
	if desc.Indefinite {
		e.writeBreak()
	}
	return nil
}

func (d *decoder) decodePairs(desc *TypeDescriptor, v reflect.Value) error {
	keyDesc, err := desc.pairKey.Descriptor()
	if err != nil {
		return err
	}
	valueDesc, err := desc.pairValue.Descriptor()
	if err != nil {
		return err
	}
	n, indef, err := d.readMapHeader(desc.Type)
	if err != nil {
		return err
	}
	pairsType := desc.fields.Type
	pairs := reflect.MakeSlice(pairsType, 0, n)
	for i := 0; ; i++ {
		more, err := d.more(i, n, indef)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		pairs = reflect.Append(pairs, reflect.Zero(pairsType.Elem()))
		pair := pairs.Index(i)
		if err := d.decodeValue(keyDesc, pair.Field(desc.pairKey.fieldIndex)); err != nil {
			return err
		}
		if err := d.decodeValue(valueDesc, pair.Field(desc.pairValue.fieldIndex)); err != nil {
			return err
		}
	}
	v.Field(desc.fields.fieldIndex).Set(pairs)
	return nil
}
