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
)

// unionConverter selects a variant by runtime type on write. On read, without a
// discriminant, each variant is tried in declaration order and the first to decode wins
type unionConverter struct{}

func (unionConverter) encode(e *encoder, desc *TypeDescriptor, v reflect.Value) error {
	if v.IsNil() {
		return TypeMismatchError{Offset: len(e.buf), Type: desc.Type, Reason: "nil union value"}
	}
	inner := v.Elem()
	i, ok := desc.byType[inner.Type()]
	if !ok {
		return ConfigurationError{
			Type:   inner.Type(),
			Reason: fmt.Sprintf("not a registered variant of %v", desc.Type),
		}
	}
	variantDesc, err := desc.variants[i].resolve()
	if err != nil {
		return err
	}
	return e.encodeValue(variantDesc, inner)
}

func (unionConverter) decode(d *decoder, desc *TypeDescriptor, v reflect.Value) error {
	start := d.pos
	causes := make([]error, 0, len(desc.Variants))
	for i, variant := range desc.Variants {
		variantDesc, err := desc.variants[i].resolve()
		if err != nil {
			return err
		}
		candidate := reflect.New(variant.Type).Elem()
		err = d.decodeValue(variantDesc, candidate)
		if err == nil {
			v.Set(candidate)
			return nil
		}
		if abortsTrial(err) {
			return err
		}
		d.logger.Debug(
			"rejected union candidate",
			"union", desc.Type.String(),
			"variant", variant.Type.String(),
			"offset", start,
			"error", err,
		)
		causes = append(causes, err)
		d.pos = start
	}
	return UnresolvedUnionError{Union: desc.Type, Offset: start, Causes: causes}
}

// decodeHinted decodes a union member whose variant is selected by a sibling's value
func (d *decoder) decodeHinted(
	desc *TypeDescriptor,
	field string,
	disc uint64,
	v reflect.Value,
) error {
	table, ok := desc.hints[field]
	if !ok {
		return ConfigurationError{
			Type:   desc.Type,
			Reason: "no variants are selected by field " + field,
		}
	}
	i, ok := table[disc]
	if !ok {
		return UnresolvedUnionError{
			Union:        desc.Type,
			Offset:       d.pos,
			Hint:         field,
			Discriminant: disc,
		}
	}
	variantDesc, err := desc.variants[i].resolve()
	if err != nil {
		return err
	}
	candidate := reflect.New(desc.Variants[i].Type).Elem()
	if err := d.decodeValue(variantDesc, candidate); err != nil {
		return err
	}
	v.Set(candidate)
	return nil
}
