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
	"fmt"
	"sync"

	"github.com/blinklabs-io/ledgercodec/codec"
)

// Register declares the ledger unions on r. Variant order matters for unions that
// are resolved by trial
func Register(r *codec.Registry) error {
	registrations := []struct {
		name string
		fn   func() error
	}{
		{"PlutusData", func() error {
			return codec.RegisterUnion[PlutusData](
				r,
				codec.Variant[PlutusConstr](),
				codec.Variant[PlutusMap](),
				codec.Variant[PlutusList](),
				codec.Variant[PlutusInteger](),
				codec.Variant[PlutusBytes](),
			)
		}},
		{"NativeScript", func() error {
			return codec.RegisterUnion[NativeScript](
				r,
				codec.Variant[NativeScriptPubkey](),
				codec.Variant[NativeScriptAll](),
				codec.Variant[NativeScriptAny](),
				codec.Variant[NativeScriptNofK](),
				codec.Variant[NativeScriptInvalidBefore](),
				codec.Variant[NativeScriptInvalidHereafter](),
			)
		}},
		{"Value", func() error {
			return codec.RegisterUnion[Value](
				r,
				codec.Variant[Coin](),
				codec.Variant[CoinWithAssets](),
			)
		}},
		{"DatumOption", func() error {
			return codec.RegisterUnion[DatumOption](
				r,
				codec.Variant[DatumOptionHash](),
				codec.Variant[DatumOptionInline](),
			)
		}},
		{"TransactionOutput", func() error {
			return codec.RegisterUnion[TransactionOutput](
				r,
				codec.Variant[LegacyTransactionOutput](),
				codec.Variant[BabbageTransactionOutput](),
			)
		}},
		{"Redeemers", func() error {
			return codec.RegisterUnion[Redeemers](
				r,
				codec.Variant[LegacyRedeemers](),
				codec.Variant[RedeemerMap](),
			)
		}},
		{"HeaderBody", func() error {
			return codec.RegisterUnion[HeaderBody](
				r,
				codec.Variant[ShelleyHeaderBody](),
				codec.Variant[BabbageHeaderBody](),
			)
		}},
		{"Block", func() error {
			return codec.RegisterUnion[Block](
				r,
				codec.Variant[ShelleyBlock]().When("Era", BlockEraTagShelley),
				codec.Variant[AllegraBlock]().When("Era", BlockEraTagAllegra),
				codec.Variant[MaryBlock]().When("Era", BlockEraTagMary),
				codec.Variant[AlonzoBlock]().When("Era", BlockEraTagAlonzo),
				codec.Variant[BabbageBlock]().When("Era", BlockEraTagBabbage),
				codec.Variant[ConwayBlock]().When("Era", BlockEraTagConway),
			)
		}},
	}
	for _, reg := range registrations {
		if err := reg.fn(); err != nil {
			return fmt.Errorf("register %s: %w", reg.name, err)
		}
	}
	return nil
}

// NewCodec returns a codec with its own registry holding the ledger unions
func NewCodec(opts ...codec.CodecOptionFunc) (*codec.Codec, error) {
	registry := codec.NewRegistry()
	if err := Register(registry); err != nil {
		return nil, err
	}
	return codec.New(append([]codec.CodecOptionFunc{codec.WithRegistry(registry)}, opts...)...), nil
}

var defaultCodec = sync.OnceValue(func() *codec.Codec {
	c, err := NewCodec()
	if err != nil {
		panic("ledger union registration failed: " + err.Error())
	}
	return c
})

// DefaultCodec returns the shared codec used by the helper methods of this package
func DefaultCodec() *codec.Codec {
	return defaultCodec()
}
