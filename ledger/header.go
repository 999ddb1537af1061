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

package ledger

import (
	"github.com/blinklabs-io/ledgercodec/cbor"
)

type VrfCert struct {
	cbor.StructAsArray
	Output []byte
	Proof  []byte
}

type OperationalCert struct {
	cbor.StructAsArray
	HotVkey        []byte
	SequenceNumber uint32
	KesPeriod      uint32
	Signature      []byte
}

type ProtocolVersion struct {
	cbor.StructAsArray
	Major uint64
	Minor uint64
}

// HeaderBody is the signed part of a block header. The Shelley layout has 15 items
// and the Babbage layout 10, so the item count selects the variant
type HeaderBody interface {
	isHeaderBody()
	Number() uint64
	SlotNumber() uint64
	IssuerVkey() []byte
	BodySize() uint64
	BodyHash() Blake2b256
}

// ShelleyHeaderBody is used from Shelley through Alonzo. The operational
// certificate and protocol version are flattened into the body
type ShelleyHeaderBody struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	BlockNumber          uint64
	Slot                 uint64
	PrevHash             *Blake2b256
	Issuer               []byte
	VrfKey               []byte
	NonceVrf             VrfCert
	LeaderVrf            VrfCert
	BlockBodySize        uint64
	BlockBodyHash        Blake2b256
	OpCertHotVkey        []byte
	OpCertSequenceNumber uint32
	OpCertKesPeriod      uint32
	OpCertSignature      []byte
	ProtoMajorVersion    uint64
	ProtoMinorVersion    uint64
}

func (ShelleyHeaderBody) isHeaderBody() {}

func (h ShelleyHeaderBody) Number() uint64 {
	return h.BlockNumber
}

func (h ShelleyHeaderBody) SlotNumber() uint64 {
	return h.Slot
}

func (h ShelleyHeaderBody) IssuerVkey() []byte {
	return h.Issuer
}

func (h ShelleyHeaderBody) BodySize() uint64 {
	return h.BlockBodySize
}

func (h ShelleyHeaderBody) BodyHash() Blake2b256 {
	return h.BlockBodyHash
}

// BabbageHeaderBody is used from Babbage on. It has a single VRF result and nests
// the operational certificate and protocol version
type BabbageHeaderBody struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	BlockNumber   uint64
	Slot          uint64
	PrevHash      *Blake2b256
	Issuer        []byte
	VrfKey        []byte
	VrfResult     VrfCert
	BlockBodySize uint64
	BlockBodyHash Blake2b256
	OpCert        OperationalCert
	ProtoVersion  ProtocolVersion
}

func (BabbageHeaderBody) isHeaderBody() {}

func (h BabbageHeaderBody) Number() uint64 {
	return h.BlockNumber
}

func (h BabbageHeaderBody) SlotNumber() uint64 {
	return h.Slot
}

func (h BabbageHeaderBody) IssuerVkey() []byte {
	return h.Issuer
}

func (h BabbageHeaderBody) BodySize() uint64 {
	return h.BlockBodySize
}

func (h BabbageHeaderBody) BodyHash() Blake2b256 {
	return h.BlockBodyHash
}

type BlockHeader struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Body      HeaderBody
	Signature []byte
}

// Hash returns the block hash, which is the hash of the whole header
func (h BlockHeader) Hash() (Blake2b256, error) {
	cborData, err := DefaultCodec().Bytes(h)
	if err != nil {
		return Blake2b256{}, err
	}
	return Blake2b256Hash(cborData), nil
}

func (h BlockHeader) BlockNumber() uint64 {
	if h.Body == nil {
		return 0
	}
	return h.Body.Number()
}

func (h BlockHeader) SlotNumber() uint64 {
	if h.Body == nil {
		return 0
	}
	return h.Body.SlotNumber()
}
