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
	"bytes"
	"reflect"
	"slices"

	"github.com/blinklabs-io/ledgercodec/cbor"
)

// sequenceConverter handles slices. Definite and indefinite arrays are accepted on
// read, with or without the tag 258 set wrapper
type sequenceConverter struct{}

func (sequenceConverter) encode(e *encoder, desc *TypeDescriptor, v reflect.Value) error {
	elem, err := desc.Elem()
	if err != nil {
		return err
	}
	n := v.Len()
	if desc.SetTag {
		e.writeHead(cbor.CborTypeTag, cbor.CborTagSet)
	}
	indef := desc.Indefinite && (n > 0 || !desc.EmptyDefinite)
	e.writeContainerHead(cbor.CborTypeArray, n, indef)
	for i := range n {
		if err := e.encodeValue(elem, v.Index(i)); err != nil {
			return err
		}
	}
	if indef {
		e.writeBreak()
	}
	return nil
}

func (sequenceConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	elem, err := desc.Elem()
	if err != nil {
		return err
	}
	majorType, tagNum, headLen, _, err := d.peekHead(desc.Type)
	if err != nil {
		return err
	}
	if majorType == cbor.CborTypeTag {
		if tagNum != cbor.CborTagSet {
			return TagMismatchError{Offset: d.pos, Tag: tagNum, Expected: "set tag 258 or untagged array"}
		}
		d.pos += headLen
	}
	n, indef, err := d.readArrayHeader(desc.Type)
	if err != nil {
		return err
	}
	out := reflect.MakeSlice(desc.Type, n, n)
	for i := 0; ; i++ {
		more, err := d.more(i, n, indef)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if indef {
			out = reflect.Append(out, reflect.Zero(desc.Type.Elem()))
		}
		if err := d.decodeValue(elem, out.Index(i)); err != nil {
			return err
		}
	}
	v.Set(out)
	return nil
}

// dictionaryConverter handles Go maps. Keys are written in the bytewise order of their
// encodings and a repeated key on read keeps the last value
type dictionaryConverter struct{}

type dictionaryEntry struct {
	key   []byte
	value reflect.Value
}

func (dictionaryConverter) encode(e *encoder, desc *TypeDescriptor, v reflect.Value) error {
	keyDesc, err := desc.key.resolve()
	if err != nil {
		return err
	}
	valueDesc, err := desc.Elem()
	if err != nil {
		return err
	}
	entries := make([]dictionaryEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		keyEnc := &encoder{depth: e.depth, maxDepth: e.maxDepth}
		if err := keyEnc.encodeValue(keyDesc, iter.Key()); err != nil {
			return err
		}
		entries = append(entries, dictionaryEntry{key: keyEnc.buf, value: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b dictionaryEntry) int {
		return bytes.Compare(a.key, b.key)
	})
	e.writeHead(cbor.CborTypeMap, uint64(len(entries)))
	for _, entry := range entries {
		e.writeRaw(entry.key)
		if err := e.encodeValue(valueDesc, entry.value); err != nil {
			return err
		}
	}
	return nil
}

func (dictionaryConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	keyDesc, err := desc.key.resolve()
	if err != nil {
		return err
	}
	valueDesc, err := desc.Elem()
	if err != nil {
		return err
	}
	n, indef, err := d.readMapHeader(desc.Type)
	if err != nil {
		return err
	}
	out := reflect.MakeMapWithSize(desc.Type, n)
	for i := 0; ; i++ {
		more, err := d.more(i, n, indef)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		key := reflect.New(desc.Type.Key()).Elem()
		if err := d.decodeValue(keyDesc, key); err != nil {
			return err
		}
		value := reflect.New(desc.Type.Elem()).Elem()
		if err := d.decodeValue(valueDesc, value); err != nil {
			return err
		}
		out.SetMapIndex(key, value)
	}
	v.Set(out)
	return nil
}
