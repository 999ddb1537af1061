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
package ledger_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/blinklabs-io/ledgercodec/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressFromBech32(t *testing.T) {
	testDefs := []struct {
		addressBytesHex string
		expectedAddress string
		expectedType    uint8
	}{
		{
			addressBytesHex: "013f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f5184ff5f8e3d43ce6b19ec4197e331e86d0f5e58b02d7a75b5e74cff95d",
			expectedAddress: "addr1qyln2c2cx5jc4hw768pwz60n5245462dvp4auqcw09rl2xz07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0q9xty",
			expectedType:    ledger.AddressTypeKeyKey,
		},
		{
			addressBytesHex: "7121bd8c2e0df2fbe92137f78dbaba48f62308e52303049f0d628b6c4c",
			expectedAddress: "addr1wysmmrpwphe0h6fpxlmcmw46frmzxz89yvpsf8cdv29kcnqsw3vw6",
			expectedType:    ledger.AddressTypeScriptNone,
		},
		{
			addressBytesHex: "61cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b",
			expectedAddress: "addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k",
			expectedType:    ledger.AddressTypeKeyNone,
		},
	}
	for _, testDef := range testDefs {
		addr, err := ledger.NewAddress(testDef.expectedAddress)
		require.NoError(t, err)
		assert.Equal(t, testDef.addressBytesHex, hex.EncodeToString(addr.Bytes()))
		assert.Equal(t, testDef.expectedAddress, addr.String())
		assert.Equal(t, testDef.expectedType, addr.Type())
		assert.Equal(t, uint8(ledger.AddressNetworkMainnet), addr.NetworkId())
	}
}

func TestAddressKeyHashes(t *testing.T) {
	addr, err := ledger.NewAddress(
		"addr1qyln2c2cx5jc4hw768pwz60n5245462dvp4auqcw09rl2xz07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0q9xty",
	)
	require.NoError(t, err)
	paymentKeyHash, ok := addr.PaymentKeyHash()
	require.True(t, ok)
	assert.Equal(t, "3f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f518", paymentKeyHash.String())
	stakeKeyHash, ok := addr.StakeKeyHash()
	require.True(t, ok)
	assert.Equal(t, "4ff5f8e3d43ce6b19ec4197e331e86d0f5e58b02d7a75b5e74cff95d", stakeKeyHash.String())
}

func TestAddressInvalid(t *testing.T) {
	_, err := ledger.NewAddress("addr1notvalid")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrInvalidAddress))
}
