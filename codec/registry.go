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
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/blinklabs-io/ledgercodec/cbor"
)

var (
	structAsArrayType   = reflect.TypeFor[cbor.StructAsArray]()
	structAsMapType     = reflect.TypeFor[cbor.StructAsMap]()
	constructorType     = reflect.TypeFor[cbor.Constructor]()
	decodeStoreCborType = reflect.TypeFor[cbor.DecodeStoreCbor]()
	rawMessageType      = reflect.TypeFor[cbor.RawMessage]()
	wrappedCborType     = reflect.TypeFor[cbor.WrappedCbor]()
	bigIntType          = reflect.TypeFor[big.Int]()
	marshalerType       = reflect.TypeFor[cbor.Marshaler]()
	unmarshalerType     = reflect.TypeFor[cbor.Unmarshaler]()
	chunkedType         = reflect.TypeFor[chunkedBytes]()
)

// chunkedBytes is implemented by byte string types that are written as bounded bytes
type chunkedBytes interface {
	CborChunkSize() int
}

type descKey struct {
	t    reflect.Type
	opts seqOptions
}

type registryEntry struct {
	once sync.Once
	desc *TypeDescriptor
	err  error
}

// Registry builds and caches type descriptors. It is safe for concurrent use: each
// descriptor is built exactly once and later lookups do not take a lock
type Registry struct {
	entries sync.Map // descKey -> *registryEntry
	mu      sync.Mutex
	unions  map[reflect.Type][]VariantBinding
	inUse   map[reflect.Type]bool
	logger  *slog.Logger
}

// NewRegistry returns an empty registry
func NewRegistry(opts ...RegistryOptionFunc) *Registry {
	r := &Registry{
		unions: make(map[reflect.Type][]VariantBinding),
		inUse:  make(map[reflect.Type]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// RegisterUnion declares the ordered candidate variants of an interface type. It must be
// called before the interface is first used
func (r *Registry) RegisterUnion(union reflect.Type, variants ...VariantBinding) error {
	if union == nil || union.Kind() != reflect.Interface {
		return ConfigurationError{Type: union, Reason: "union must be an interface type"}
	}
	if len(variants) == 0 {
		return ConfigurationError{Type: union, Reason: "union has no variants"}
	}
	seenTypes := make(map[reflect.Type]bool, len(variants))
	seenHints := make(map[DiscriminatorHint]bool)
	for _, variant := range variants {
		if variant.Type == nil {
			return ConfigurationError{Type: union, Reason: "nil variant type"}
		}
		if variant.Type.Kind() == reflect.Interface {
			return ConfigurationError{Type: union, Reason: fmt.Sprintf("variant %v is an interface", variant.Type)}
		}
		if !variant.Type.Implements(union) {
			return ConfigurationError{Type: union, Reason: fmt.Sprintf("variant %v does not implement the union", variant.Type)}
		}
		if seenTypes[variant.Type] {
			return ConfigurationError{Type: union, Reason: fmt.Sprintf("duplicate variant %v", variant.Type)}
		}
		seenTypes[variant.Type] = true
		if variant.Hint != nil {
			if seenHints[*variant.Hint] {
				return ConfigurationError{
					Type: union,
					Reason: fmt.Sprintf(
						"duplicate hint %s=%d",
						variant.Hint.Field,
						variant.Hint.Value,
					),
				}
			}
			seenHints[*variant.Hint] = true
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inUse[union] {
		return ConfigurationError{Type: union, Reason: "union registered after first use"}
	}
	if _, ok := r.unions[union]; ok {
		return ConfigurationError{Type: union, Reason: "union already registered"}
	}
	r.unions[union] = slices.Clone(variants)
	return nil
}

// RegisterUnion declares the ordered candidate variants of the interface type I
func RegisterUnion[I any](r *Registry, variants ...VariantBinding) error {
	return r.RegisterUnion(reflect.TypeFor[I](), variants...)
}

// Descriptor returns the descriptor for a type, building it on first use
func (r *Registry) Descriptor(t reflect.Type) (*TypeDescriptor, error) {
	return r.descriptor(t, seqOptions{})
}

func (r *Registry) descriptor(t reflect.Type, opts seqOptions) (*TypeDescriptor, error) {
	if t == nil {
		return nil, ConfigurationError{Reason: "nil type"}
	}
	if !takesSeqOptions(t) {
		opts = seqOptions{}
	}
	key := descKey{t: t, opts: opts}
	val, ok := r.entries.Load(key)
	if !ok {
		val, _ = r.entries.LoadOrStore(key, &registryEntry{})
	}
	entry := val.(*registryEntry)
	entry.once.Do(func() {
		entry.desc, entry.err = r.build(t, opts)
		if entry.err != nil {
			entry.desc = nil
			r.logger.Debug(
				"type descriptor build failed",
				"type", t.String(),
				"error", entry.err,
			)
			return
		}
		r.logger.Debug(
			"built type descriptor",
			"type", t.String(),
			"shape", entry.desc.Shape.String(),
		)
	})
	return entry.desc, entry.err
}

func (r *Registry) ref(t reflect.Type, opts seqOptions) *typeRef {
	return &typeRef{reg: r, t: t, opts: opts}
}

func takesSeqOptions(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Uint8
	case reflect.Pointer:
		return takesSeqOptions(t.Elem())
	default:
		return false
	}
}

func (r *Registry) build(t reflect.Type, opts seqOptions) (*TypeDescriptor, error) {
	desc := &TypeDescriptor{
		Type:             t,
		ConstructorIndex: DynamicConstructorIndex,
		rawIndex:         -1,
		indexField:       -1,
	}
	var err error
	switch {
	case t.Kind() == reflect.Interface:
		err = r.buildUnion(desc)
	case t == rawMessageType:
		desc.conv = rawConverter{}
	case t == bigIntType, t == wrappedCborType:
		desc.conv = scalarConverter{}
	case t.Kind() != reflect.Pointer &&
		t.Implements(marshalerType) &&
		reflect.PointerTo(t).Implements(unmarshalerType):
		desc.conv = scalarConverter{}
	case t.Kind() == reflect.Pointer:
		desc.Shape = ShapeOptional
		desc.elem = r.ref(t.Elem(), opts)
		desc.conv = optionalConverter{}
	default:
		err = r.buildKind(desc, opts)
	}
	if err != nil {
		return nil, err
	}
	desc.nested = desc.opensLevel()
	return desc, nil
}

func (r *Registry) buildKind(desc *TypeDescriptor, opts seqOptions) error {
	t := desc.Type
	switch t.Kind() {
	case reflect.Bool:
		desc.conv = boolConverter{}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		desc.conv = intConverter{}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		desc.conv = uintConverter{}
	case reflect.String:
		desc.conv = textConverter{}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			desc.conv = bytesConverter{}
			if t.Implements(chunkedType) {
				desc.ChunkSize = reflect.Zero(t).Interface().(chunkedBytes).CborChunkSize()
			}
			return nil
		}
		desc.Shape = ShapeSequence
		desc.Indefinite = opts.indef
		desc.EmptyDefinite = opts.emptydef
		desc.SetTag = opts.set
		desc.elem = r.ref(t.Elem(), seqOptions{})
		desc.conv = sequenceConverter{}
	case reflect.Array:
		if t.Elem().Kind() != reflect.Uint8 {
			return ConfigurationError{Type: t, Reason: "only byte arrays are supported"}
		}
		desc.conv = fixedBytesConverter{}
	case reflect.Map:
		desc.Shape = ShapeDictionary
		desc.key = r.ref(t.Key(), seqOptions{})
		desc.elem = r.ref(t.Elem(), seqOptions{})
		desc.conv = dictionaryConverter{}
	case reflect.Struct:
		return r.buildRecord(desc)
	default:
		return ConfigurationError{Type: t, Reason: "unsupported kind " + t.Kind().String()}
	}
	return nil
}

func (r *Registry) buildUnion(desc *TypeDescriptor) error {
	r.mu.Lock()
	variants := r.unions[desc.Type]
	r.inUse[desc.Type] = true
	r.mu.Unlock()
	if len(variants) == 0 {
		return ConfigurationError{Type: desc.Type, Reason: "interface has no registered variants"}
	}
	desc.Shape = ShapeUnion
	desc.Variants = slices.Clone(variants)
	desc.byType = make(map[reflect.Type]int, len(variants))
	desc.hints = make(map[string]map[uint64]int)
	for i, variant := range desc.Variants {
		desc.variants = append(desc.variants, r.ref(variant.Type, seqOptions{}))
		desc.byType[variant.Type] = i
		if variant.Hint != nil {
			table, ok := desc.hints[variant.Hint.Field]
			if !ok {
				table = make(map[uint64]int)
				desc.hints[variant.Hint.Field] = table
			}
			table[variant.Hint.Value] = i
		}
	}
	desc.conv = unionConverter{}
	return nil
}

// buildRecord inspects the shape marker and members of a struct type
func (r *Registry) buildRecord(desc *TypeDescriptor) error {
	t := desc.Type
	hasMarker := false
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		if f.Type == decodeStoreCborType {
			desc.rawIndex = i
			continue
		}
		var shape Shape
		switch f.Type {
		case structAsArrayType:
			shape = ShapeList
		case structAsMapType:
			shape = ShapeMap
		case constructorType:
			shape = ShapeConstructor
			desc.indexField = i
		default:
			return ConfigurationError{Type: t, Reason: "unsupported embedded field " + f.Name}
		}
		if hasMarker {
			return ConfigurationError{Type: t, Reason: "multiple shape markers"}
		}
		hasMarker = true
		desc.Shape = shape
		if err := parseMarkerTag(desc, f.Tag.Get("cbor")); err != nil {
			return err
		}
	}
	if !hasMarker {
		return ConfigurationError{Type: t, Reason: "struct has no shape marker"}
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("cbor")
		if tag == "-" {
			continue
		}
		m, err := r.buildMember(desc, f, i, tag)
		if err != nil {
			return err
		}
		m.position = len(desc.Members)
		desc.Members = append(desc.Members, m)
	}
	if err := r.bindFields(desc); err != nil {
		return err
	}
	if err := bindHints(desc); err != nil {
		return err
	}
	if desc.Shape == ShapeMap {
		return bindKeys(desc)
	}
	for i, m := range desc.Members {
		if !m.Optional {
			desc.required = i + 1
		}
	}
	desc.conv = recordConverters[desc.Shape]
	return nil
}

func parseMarkerTag(desc *TypeDescriptor, tag string) error {
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		if desc.Shape != ShapeConstructor {
			return ConfigurationError{Type: desc.Type, Reason: "only constructors take an index"}
		}
		index, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return ConfigurationError{Type: desc.Type, Reason: "invalid constructor index " + parts[0]}
		}
		desc.ConstructorIndex = int64(index)
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "indef":
			desc.Indefinite = true
		case "emptydef":
			desc.EmptyDefinite = true
		case "", "toarray":
		default:
			return ConfigurationError{Type: desc.Type, Reason: "unknown shape option " + opt}
		}
	}
	return nil
}

func (r *Registry) buildMember(
	desc *TypeDescriptor,
	f reflect.StructField,
	fieldIndex int,
	tag string,
) (*MemberBinding, error) {
	m := &MemberBinding{
		Name:       f.Name,
		Type:       f.Type,
		fieldIndex: fieldIndex,
		hintIndex:  -1,
	}
	parts := strings.Split(tag, ",")
	var opts seqOptions
	keyAsInt := false
	for _, opt := range parts[1:] {
		switch {
		case opt == "omitempty":
			m.Optional = true
		case opt == "keyasint":
			keyAsInt = true
		case opt == "indef":
			opts.indef = true
		case opt == "emptydef":
			opts.emptydef = true
		case opt == "set":
			opts.set = true
		case opt == "fields":
			m.Fields = true
		case strings.HasPrefix(opt, "hint="):
			m.Hint = strings.TrimPrefix(opt, "hint=")
		case strings.HasPrefix(opt, "const="):
			val, err := strconv.ParseUint(strings.TrimPrefix(opt, "const="), 10, 64)
			if err != nil {
				return nil, ConfigurationError{Type: desc.Type, Reason: "invalid const on field " + f.Name}
			}
			m.Const = val
			m.HasConst = true
		case opt == "":
		default:
			return nil, ConfigurationError{
				Type:   desc.Type,
				Reason: fmt.Sprintf("unknown option %q on field %s", opt, f.Name),
			}
		}
	}
	if m.HasConst {
		switch f.Type.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return nil, ConfigurationError{Type: desc.Type, Reason: "const field " + f.Name + " must be unsigned"}
		}
	}
	if desc.Shape == ShapeMap {
		// Absent pointer members are omitted from keyed records
		if f.Type.Kind() == reflect.Pointer {
			m.Optional = true
		}
		switch index, err := strconv.ParseUint(parts[0], 10, 64); {
		case parts[0] == "":
			if keyAsInt {
				return nil, ConfigurationError{Type: desc.Type, Reason: "missing integer key on field " + f.Name}
			}
			m.Key = WireKey{Name: f.Name}
		case err == nil:
			m.Key = WireKey{Index: index}
		case keyAsInt:
			return nil, ConfigurationError{Type: desc.Type, Reason: "invalid integer key on field " + f.Name}
		default:
			m.Key = WireKey{Name: parts[0]}
		}
	} else {
		m.Key = WireKey{Index: uint64(len(desc.Members))}
	}
	m.ref = r.ref(f.Type, opts)
	return m, nil
}

// bindFields validates a member that carries the body of the record itself
func (r *Registry) bindFields(desc *TypeDescriptor) error {
	for _, m := range desc.Members {
		if !m.Fields {
			continue
		}
		if len(desc.Members) != 1 {
			return ConfigurationError{Type: desc.Type, Reason: "fields member must be the only member"}
		}
		if m.Type.Kind() != reflect.Slice || m.Type.Elem().Kind() == reflect.Uint8 {
			return ConfigurationError{Type: desc.Type, Reason: "fields member must be a slice"}
		}
		desc.fields = m
		if desc.Shape != ShapeMap {
			return nil
		}
		// Keyed records with a fields member hold ordered key/value pairs
		pairType := m.Type.Elem()
		if pairType.Kind() != reflect.Struct {
			return ConfigurationError{Type: desc.Type, Reason: "map fields member must be a slice of pairs"}
		}
		var pair []*MemberBinding
		for i := range pairType.NumField() {
			f := pairType.Field(i)
			if !f.IsExported() || f.Anonymous {
				continue
			}
			pair = append(pair, &MemberBinding{
				Name:       f.Name,
				Type:       f.Type,
				fieldIndex: i,
				hintIndex:  -1,
				ref:        r.ref(f.Type, seqOptions{}),
			})
		}
		if len(pair) != 2 {
			return ConfigurationError{Type: desc.Type, Reason: "map pair type must have exactly two fields"}
		}
		desc.pairKey, desc.pairValue = pair[0], pair[1]
		desc.Indefinite = m.ref.opts.indef
	}
	return nil
}

// bindHints resolves the sibling field of each hinted union member
func bindHints(desc *TypeDescriptor) error {
	for _, m := range desc.Members {
		if m.Hint == "" {
			continue
		}
		if m.Type.Kind() != reflect.Interface {
			return ConfigurationError{Type: desc.Type, Reason: "hinted field " + m.Name + " is not a union"}
		}
		var sibling *MemberBinding
		for _, other := range desc.Members {
			if other.Name == m.Hint {
				sibling = other
				break
			}
		}
		if sibling == nil || sibling == m {
			return ConfigurationError{Type: desc.Type, Reason: "hint field " + m.Hint + " not found"}
		}
		switch sibling.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return ConfigurationError{Type: desc.Type, Reason: "hint field " + m.Hint + " must be an integer"}
		}
		if desc.Shape != ShapeMap && sibling.position > m.position {
			return ConfigurationError{Type: desc.Type, Reason: "hint field " + m.Hint + " must precede " + m.Name}
		}
		m.hintIndex = sibling.fieldIndex
	}
	return nil
}

// bindKeys builds the key lookup tables of a keyed record and its write order
func bindKeys(desc *TypeDescriptor) error {
	desc.conv = mapConverter{}
	if desc.fields != nil {
		return nil
	}
	desc.byIndexKey = make(map[uint64]*MemberBinding)
	desc.byNameKey = make(map[string]*MemberBinding)
	for _, m := range desc.Members {
		if m.Key.IsName() {
			if _, ok := desc.byNameKey[m.Key.Name]; ok {
				return ConfigurationError{Type: desc.Type, Reason: "duplicate key " + m.Key.String()}
			}
			desc.byNameKey[m.Key.Name] = m
			m.keyBytes = cbor.AppendHead(nil, cbor.CborTypeTextString, uint64(len(m.Key.Name)))
			m.keyBytes = append(m.keyBytes, m.Key.Name...)
			continue
		}
		if _, ok := desc.byIndexKey[m.Key.Index]; ok {
			return ConfigurationError{Type: desc.Type, Reason: "duplicate key " + m.Key.String()}
		}
		desc.byIndexKey[m.Key.Index] = m
		m.keyBytes = cbor.AppendHead(nil, cbor.CborTypeUint, m.Key.Index)
	}
	desc.keyOrder = slices.Clone(desc.Members)
	slices.SortFunc(desc.keyOrder, func(a, b *MemberBinding) int {
		return bytes.Compare(a.keyBytes, b.keyBytes)
	})
	return nil
}
