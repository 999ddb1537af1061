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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	AddressHeaderTypeMask    = 0xF0
	AddressHeaderNetworkMask = 0x0F
	AddressHashSize          = 28

	AddressNetworkTestnet = 0
	AddressNetworkMainnet = 1

	AddressTypeKeyKey        = 0b0000
	AddressTypeScriptKey     = 0b0001
	AddressTypeKeyScript     = 0b0010
	AddressTypeScriptScript  = 0b0011
	AddressTypeKeyPointer    = 0b0100
	AddressTypeScriptPointer = 0b0101
	AddressTypeKeyNone       = 0b0110
	AddressTypeScriptNone    = 0b0111
	AddressTypeByron         = 0b1000
	AddressTypeNoneKey       = 0b1110
	AddressTypeNoneScript    = 0b1111
)

var ErrInvalidAddress = errors.New("invalid address")

// Address holds the raw bytes of a Shelley or Byron address. The first byte of a
// Shelley address carries the address type in its high nibble and the network in
// its low nibble
type Address []byte

// NewAddress returns an Address based on the provided bech32 (Shelley) or base58
// (Byron) address string
func NewAddress(addr string) (Address, error) {
	_, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		decoded := Address(base58.Decode(addr))
		if len(decoded) == 0 || decoded.Type() != AddressTypeByron {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, addr)
		}
		return decoded, nil
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(decoded) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidAddress)
	}
	return Address(decoded), nil
}

func (a Address) Type() uint8 {
	if len(a) == 0 {
		return 0
	}
	return (a[0] & AddressHeaderTypeMask) >> 4
}

func (a Address) NetworkId() uint8 {
	if len(a) == 0 {
		return 0
	}
	if a.Type() == AddressTypeByron {
		// Use Shelley network ID convention
		return AddressNetworkMainnet
	}
	return a[0] & AddressHeaderNetworkMask
}

// PaymentKeyHash returns the payment credential hash, or false for stake and Byron addresses
func (a Address) PaymentKeyHash() (Blake2b224, bool) {
	switch a.Type() {
	case AddressTypeByron, AddressTypeNoneKey, AddressTypeNoneScript:
		return Blake2b224{}, false
	}
	if len(a) < 1+AddressHashSize {
		return Blake2b224{}, false
	}
	return NewBlake2b224(a[1 : 1+AddressHashSize]), true
}

// StakeKeyHash returns the staking credential hash when the address carries one
func (a Address) StakeKeyHash() (Blake2b224, bool) {
	switch a.Type() {
	case AddressTypeNoneKey, AddressTypeNoneScript:
		if len(a) < 1+AddressHashSize {
			return Blake2b224{}, false
		}
		return NewBlake2b224(a[1 : 1+AddressHashSize]), true
	case AddressTypeKeyKey, AddressTypeScriptKey, AddressTypeKeyScript, AddressTypeScriptScript:
		if len(a) < 1+2*AddressHashSize {
			return Blake2b224{}, false
		}
		return NewBlake2b224(a[1+AddressHashSize : 1+2*AddressHashSize]), true
	}
	return Blake2b224{}, false
}

func (a Address) generateHRP() string {
	var ret string
	if a.Type() == AddressTypeNoneKey || a.Type() == AddressTypeNoneScript {
		ret = "stake"
	} else {
		ret = "addr"
	}
	// Add test_ suffix if not mainnet
	if a.NetworkId() != AddressNetworkMainnet {
		ret += "_test"
	}
	return ret
}

func (a Address) Bytes() []byte {
	return []byte(a)
}

// String returns the bech32-encoded version of the address
func (a Address) String() string {
	if len(a) == 0 {
		return ""
	}
	if a.Type() == AddressTypeByron {
		return base58.Encode(a)
	}
	return encodeBech32(a.generateHRP(), a)
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
