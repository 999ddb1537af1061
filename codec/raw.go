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
	"math/big"
	"reflect"
	"sync"

	"github.com/blinklabs-io/ledgercodec/cbor"
	"github.com/jinzhu/copier"
)

// Bytes returns the encoding of v that hashes must be computed over: the captured
// input bytes when v was decoded, otherwise a fresh serialization
func (c *Codec) Bytes(v any) ([]byte, error) {
	if store, ok := v.(cbor.DecodeStoreCborInterface); ok {
		if raw := store.Cbor(); len(raw) > 0 {
			return raw, nil
		}
	}
	return c.Serialize(v)
}

var (
	detachTypeCache      = map[reflect.Type]reflect.Type{}
	detachTypeCacheMutex sync.RWMutex
)

// Detach returns a deep copy of v with every raw capture dropped, so that the copy can
// be modified and then serialized from its fields
func Detach[T any](v T) (T, error) {
	var ret T
	if err := detachValue(reflect.ValueOf(&ret).Elem(), reflect.ValueOf(&v).Elem()); err != nil {
		return ret, err
	}
	return ret, nil
}

func detachValue(dst, src reflect.Value) error {
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		p := reflect.New(src.Type().Elem())
		if err := detachValue(p.Elem(), src.Elem()); err != nil {
			return err
		}
		dst.Set(p)
	case reflect.Interface:
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		inner := reflect.New(src.Elem().Type()).Elem()
		if err := detachValue(inner, src.Elem()); err != nil {
			return err
		}
		dst.Set(inner)
	case reflect.Slice:
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		out := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		for i := range src.Len() {
			if err := detachValue(out.Index(i), src.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(out)
	case reflect.Array:
		for i := range src.Len() {
			if err := detachValue(dst.Index(i), src.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		out := reflect.MakeMapWithSize(src.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			value := reflect.New(src.Type().Elem()).Elem()
			if err := detachValue(value, iter.Value()); err != nil {
				return err
			}
			out.SetMapIndex(iter.Key(), value)
		}
		dst.Set(out)
	case reflect.Struct:
		return detachStruct(dst, src)
	default:
		dst.Set(src)
	}
	return nil
}

func detachStruct(dst, src reflect.Value) error {
	t := src.Type()
	if t == bigIntType {
		tmp := src.Interface().(big.Int)
		dst.Set(reflect.ValueOf(new(big.Int).Set(&tmp)).Elem())
		return nil
	}
	if captureFreeType(t) == nil {
		dst.Set(src)
	} else {
		// Copy through a duplicate(-ish) struct without the DecodeStoreCbor field,
		// which leaves the capture of the destination empty
		tmp := reflect.New(captureFreeType(t)).Elem()
		j := 0
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() || f.Type == decodeStoreCborType {
				continue
			}
			tmp.Field(j).Set(src.Field(i))
			j++
		}
		if err := copier.Copy(dst.Addr().Interface(), tmp.Addr().Interface()); err != nil {
			return err
		}
	}
	// Members copied by reference above may share memory with src or hold captures
	// of their own
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Type == decodeStoreCborType || !holdsReferences(f.Type) {
			continue
		}
		if err := detachValue(dst.Field(i), src.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

// holdsReferences reports whether values of t can share memory or contain captures
func holdsReferences(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Struct:
		return true
	case reflect.Array:
		return holdsReferences(t.Elem())
	default:
		return false
	}
}

// captureFreeType returns a struct type with the exported fields of t except
// DecodeStoreCbor, or nil when t has no capture
func captureFreeType(t reflect.Type) reflect.Type {
	detachTypeCacheMutex.RLock()
	tmpType, ok := detachTypeCache[t]
	detachTypeCacheMutex.RUnlock()
	if ok {
		return tmpType
	}
	hasCapture := false
	fields := []reflect.StructField{}
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type == decodeStoreCborType {
			hasCapture = true
			continue
		}
		if f.IsExported() {
			fields = append(fields, f)
		}
	}
	if hasCapture {
		tmpType = reflect.StructOf(fields)
	}
	detachTypeCacheMutex.Lock()
	detachTypeCache[t] = tmpType
	detachTypeCacheMutex.Unlock()
	return tmpType
}
