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

package codec_test

import (
	"testing"

	"github.com/blinklabs-io/ledgercodec/cbor"
	"github.com/blinklabs-io/ledgercodec/codec"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Test types shared by the codec tests

type testList struct {
	cbor.StructAsArray
	A uint64
	B string
	C *uint64 `cbor:",omitempty"`
}

type testSeqForms struct {
	cbor.StructAsArray
	Def      []uint64
	Indef    []uint64 `cbor:",indef"`
	Set      []uint64 `cbor:",set"`
	SetIndef []uint64 `cbor:",set,indef"`
	EmptyDef []uint64 `cbor:",indef,emptydef"`
}

type testMap struct {
	cbor.StructAsMap
	Fee    uint64   `cbor:"2,keyasint"`
	Inputs []uint64 `cbor:"0,keyasint"`
	Ttl    uint64   `cbor:"3,keyasint,omitempty"`
	Note   *string  `cbor:"7,keyasint"`
	Name   string   `cbor:"name,omitempty"`
}

type testConstr struct {
	cbor.Constructor
	Fields []uint64 `cbor:",fields,indef,emptydef"`
}

type testFixedConstr struct {
	cbor.Constructor `cbor:"2"`
	A                uint64
	B                []byte
}

type testConst struct {
	cbor.StructAsArray
	Type  uint `cbor:",const=3"`
	Value uint64
}

type testPair struct {
	Key   uint64
	Value string
}

type testPairs struct {
	cbor.StructAsMap
	Pairs []testPair `cbor:",fields"`
}

type testBounded []byte

func (testBounded) CborChunkSize() int { return 64 }

type testRawHolder struct {
	cbor.StructAsArray
	Raw     cbor.RawMessage
	Wrapped cbor.WrappedCbor
}

type testCaptured struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Items []uint64
	Flag  bool
}

type testCapturedParent struct {
	cbor.StructAsMap
	cbor.DecodeStoreCbor
	Children []testCaptured `cbor:"0,keyasint"`
	Single   *testCaptured  `cbor:"1,keyasint"`
}

type testNested struct {
	cbor.StructAsArray
	Child *testNested
}

type testNoMarker struct {
	A uint64
}

// testShape is a union resolved by structural trial
type testShape interface {
	isTestShape()
}

type shapeAmount uint64

type shapePair struct {
	cbor.StructAsArray
	A uint64
	B uint64
}

type shapePairAlt struct {
	cbor.StructAsArray
	X uint64
	Y uint64
}

type shapeTagged struct {
	cbor.StructAsArray
	Amount uint64
	Tag    string
}

func (shapeAmount) isTestShape()  {}
func (shapePair) isTestShape()    {}
func (shapePairAlt) isTestShape() {}
func (shapeTagged) isTestShape()  {}

// testEra is a union selected by a sibling discriminant
type testEra interface {
	isTestEra()
}

type eraA struct {
	cbor.StructAsArray
	Value uint64
}

type eraB struct {
	cbor.StructAsArray
	Value uint64
}

func (eraA) isTestEra() {}
func (eraB) isTestEra() {}

type testWithEra struct {
	cbor.StructAsArray
	Era  uint
	Body testEra `cbor:",hint=Era"`
}

type testWithEraMap struct {
	cbor.StructAsMap
	Body testEra `cbor:"0,keyasint,hint=Era"`
	Era  uint    `cbor:"1,keyasint"`
}

func newTestCodec(t testing.TB, opts ...codec.CodecOptionFunc) *codec.Codec {
	t.Helper()
	c := codec.New(opts...)
	require.NoError(
		t,
		codec.RegisterUnion[testShape](
			c.Registry(),
			codec.Variant[shapeAmount](),
			codec.Variant[shapePair](),
			codec.Variant[shapePairAlt](),
			codec.Variant[shapeTagged](),
		),
	)
	require.NoError(
		t,
		codec.RegisterUnion[testEra](
			c.Registry(),
			codec.Variant[eraA]().When("Era", 1),
			codec.Variant[eraB]().When("Era", 2),
		),
	)
	return c
}
