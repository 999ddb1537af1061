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
	"bytes"
	"slices"

	"github.com/blinklabs-io/ledgercodec/cbor"
)

// Value is the amount held by a transaction output: either a bare coin amount or
// a coin amount with native assets
type Value interface {
	isValue()
	Lovelace() uint64
	MultiAssets() MultiAsset
}

// Coin is an amount of lovelace
type Coin uint64

func (Coin) isValue() {}

func (c Coin) Lovelace() uint64 {
	return uint64(c)
}

func (Coin) MultiAssets() MultiAsset {
	return nil
}

type CoinWithAssets struct {
	cbor.StructAsArray
	Amount uint64
	Assets MultiAsset
}

func (CoinWithAssets) isValue() {}

func (v CoinWithAssets) Lovelace() uint64 {
	return v.Amount
}

func (v CoinWithAssets) MultiAssets() MultiAsset {
	return v.Assets
}

// MultiAsset maps policies to asset names and quantities
type MultiAsset map[PolicyId]map[cbor.ByteString]uint64

// Policies returns the policy IDs in bytewise order
func (m MultiAsset) Policies() []PolicyId {
	return sortedPolicies(m)
}

// Assets returns the asset names of a policy in bytewise order
func (m MultiAsset) Assets(policyId PolicyId) [][]byte {
	return sortedAssetNames(m[policyId])
}

func (m MultiAsset) Asset(policyId PolicyId, assetName []byte) uint64 {
	return m[policyId][cbor.NewByteString(assetName)]
}

// MintAsset is a MultiAsset with signed quantities, where negative values burn
type MintAsset map[PolicyId]map[cbor.ByteString]int64

func (m MintAsset) Policies() []PolicyId {
	return sortedPolicies(m)
}

func (m MintAsset) Asset(policyId PolicyId, assetName []byte) int64 {
	return m[policyId][cbor.NewByteString(assetName)]
}

func sortedPolicies[V any](m map[PolicyId]V) []PolicyId {
	ret := make([]PolicyId, 0, len(m))
	for policyId := range m {
		ret = append(ret, policyId)
	}
	slices.SortFunc(ret, func(a, b PolicyId) int {
		return bytes.Compare(a[:], b[:])
	})
	return ret
}

func sortedAssetNames[V any](assets map[cbor.ByteString]V) [][]byte {
	ret := make([][]byte, 0, len(assets))
	for assetName := range assets {
		ret = append(ret, assetName.Bytes())
	}
	slices.SortFunc(ret, bytes.Compare)
	return ret
}
