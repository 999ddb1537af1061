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
	"fmt"
	"log/slog"
	"reflect"
)

// DefaultMaxDepth is the nesting limit used when none is configured
const DefaultMaxDepth = 256

// Codec serializes and deserializes values using the descriptors of its registry.
// It holds no per-call state and may be used from multiple goroutines
type Codec struct {
	registry *Registry
	maxDepth int
	logger   *slog.Logger
}

// New returns a Codec configured with the specified options
func New(opts ...CodecOptionFunc) *Codec {
	c := &Codec{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.registry == nil {
		c.registry = NewRegistry(WithRegistryLogger(c.logger))
	}
	if c.maxDepth <= 0 {
		c.maxDepth = DefaultMaxDepth
	}
	return c
}

// Registry returns the codec's descriptor registry
func (c *Codec) Registry() *Registry {
	return c.registry
}

// Serialize encodes v using the descriptor of its runtime type
func (c *Codec) Serialize(v any) ([]byte, error) {
	if v == nil {
		return nil, ConfigurationError{Reason: "cannot serialize nil value"}
	}
	return c.serialize(reflect.ValueOf(v))
}

// Serialize encodes v using the descriptor of the static type T. When T is a union
// interface, the variant is selected from the runtime type of v
func Serialize[T any](c *Codec, v T) ([]byte, error) {
	return c.serialize(reflect.ValueOf(&v).Elem())
}

func (c *Codec) serialize(v reflect.Value) ([]byte, error) {
	desc, err := c.registry.Descriptor(v.Type())
	if err != nil {
		return nil, err
	}
	e := &encoder{maxDepth: c.maxDepth}
	if err := e.encodeValue(desc, v); err != nil {
		return nil, err
	}
	return e.buf, nil
}

// Deserialize decodes data into the value pointed to by dest. The input is copied once
// and raw captures refer to that copy. dest is only modified when decoding succeeds
func (c *Codec) Deserialize(data []byte, dest any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Pointer || destValue.IsNil() {
		return ConfigurationError{
			Type:   reflect.TypeOf(dest),
			Reason: "destination must be a non-nil pointer",
		}
	}
	t := destValue.Elem().Type()
	desc, err := c.registry.Descriptor(t)
	if err != nil {
		return err
	}
	d := &decoder{
		data:     bytes.Clone(data),
		maxDepth: c.maxDepth,
		logger:   c.logger,
	}
	tmp := reflect.New(t).Elem()
	if err := d.decodeValue(desc, tmp); err != nil {
		return err
	}
	if d.pos != len(d.data) {
		return TypeMismatchError{
			Offset: d.pos,
			Type:   t,
			Reason: fmt.Sprintf("%d trailing bytes", d.remaining()),
		}
	}
	destValue.Elem().Set(tmp)
	return nil
}

// Deserialize decodes data as a value of type T
func Deserialize[T any](c *Codec, data []byte) (T, error) {
	var ret T
	if err := c.Deserialize(data, &ret); err != nil {
		return ret, err
	}
	return ret, nil
}
