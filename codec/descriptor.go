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
	"reflect"
	"strconv"
	"sync/atomic"
)

// Shape is the encoding strategy selected for a type
type Shape uint8

const (
	ShapePrimitive   Shape = iota // scalar CBOR item
	ShapeList                     // positional record, CBOR array
	ShapeMap                      // keyed record, CBOR map
	ShapeConstructor              // Plutus constructor, tagged CBOR array
	ShapeUnion                    // interface with registered variants
	ShapeSequence                 // homogeneous slice
	ShapeDictionary               // Go map
	ShapeOptional                 // pointer, null when nil
)

var shapeNames = map[Shape]string{
	ShapePrimitive:   "Primitive",
	ShapeList:        "List",
	ShapeMap:         "Map",
	ShapeConstructor: "Constructor",
	ShapeUnion:       "Union",
	ShapeSequence:    "Sequence",
	ShapeDictionary:  "Dictionary",
	ShapeOptional:    "Optional",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "Shape(" + strconv.Itoa(int(s)) + ")"
}

// DynamicConstructorIndex is the ConstructorIndex of constructor types that accept
// any index and carry it in the value
const DynamicConstructorIndex = -1

// TypeDescriptor is the immutable encoding plan for a type. It is built once per
// registry and never modified afterward
type TypeDescriptor struct {
	Type             reflect.Type
	Shape            Shape
	ConstructorIndex int64
	Indefinite       bool
	EmptyDefinite    bool
	SetTag           bool
	ChunkSize        int
	Members          []*MemberBinding
	Variants         []VariantBinding

	conv       converter
	nested     bool
	rawIndex   int
	indexField int
	required   int
	fields     *MemberBinding
	pairKey    *MemberBinding
	pairValue  *MemberBinding
	elem       *typeRef
	key        *typeRef
	variants   []*typeRef
	byType     map[reflect.Type]int
	hints      map[string]map[uint64]int
	byIndexKey map[uint64]*MemberBinding
	byNameKey  map[string]*MemberBinding
	keyOrder   []*MemberBinding
}

// opensLevel reports whether the converter consumes an array, map or tag head of its
// own. Only those count against the depth limit, so that the limit measures CBOR
// nesting rather than the number of descriptors a value passes through
func (d *TypeDescriptor) opensLevel() bool {
	switch d.Shape {
	case ShapeSequence, ShapeDictionary, ShapeMap, ShapeConstructor:
		return true
	case ShapeList:
		// A List with a fields member delegates its array to the member's Sequence
		return d.fields == nil
	default:
		return false
	}
}

// RawPreserving reports whether decoded values of the type retain their exact input bytes
func (d *TypeDescriptor) RawPreserving() bool {
	return d.rawIndex >= 0
}

// Elem returns the descriptor of a Sequence element, Dictionary value or Optional target
func (d *TypeDescriptor) Elem() (*TypeDescriptor, error) {
	if d.elem == nil {
		return nil, ConfigurationError{Type: d.Type, Reason: d.Shape.String() + " shape has no element type"}
	}
	return d.elem.resolve()
}

// WireKey identifies a keyed record member on the wire
type WireKey struct {
	Index uint64
	Name  string
}

func (k WireKey) IsName() bool {
	return k.Name != ""
}

func (k WireKey) String() string {
	if k.IsName() {
		return strconv.Quote(k.Name)
	}
	return strconv.FormatUint(k.Index, 10)
}

// MemberBinding binds a struct field to its wire position or key
type MemberBinding struct {
	Name     string
	Key      WireKey
	Type     reflect.Type
	Optional bool
	Hint     string
	Const    uint64
	HasConst bool
	Fields   bool

	position   int
	fieldIndex int
	hintIndex  int
	keyBytes   []byte
	ref        *typeRef
}

// Descriptor resolves the member's value descriptor. Resolution is lazy so that
// self-referential type graphs terminate
func (m *MemberBinding) Descriptor() (*TypeDescriptor, error) {
	return m.ref.resolve()
}

// DiscriminatorHint selects a union variant from the value of a sibling field
type DiscriminatorHint struct {
	Field string
	Value uint64
}

// VariantBinding is a candidate type of a union
type VariantBinding struct {
	Type reflect.Type
	Hint *DiscriminatorHint
}

// Variant returns a binding for the candidate type T
func Variant[T any]() VariantBinding {
	return VariantBinding{Type: reflect.TypeFor[T]()}
}

// When returns a copy of the binding that is selected when the sibling field holds value
func (v VariantBinding) When(field string, value uint64) VariantBinding {
	v.Hint = &DiscriminatorHint{Field: field, Value: value}
	return v
}

// seqOptions are member-level options that produce a derived Sequence descriptor
type seqOptions struct {
	indef    bool
	emptydef bool
	set      bool
}

// typeRef is a lazily resolved reference to another descriptor in the same registry
type typeRef struct {
	reg    *Registry
	t      reflect.Type
	opts   seqOptions
	cached atomic.Pointer[TypeDescriptor]
}

func (r *typeRef) resolve() (*TypeDescriptor, error) {
	if desc := r.cached.Load(); desc != nil {
		return desc, nil
	}
	desc, err := r.reg.descriptor(r.t, r.opts)
	if err != nil {
		return nil, err
	}
	r.cached.Store(desc)
	return desc, nil
}
