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
package test

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline. Whitespace is ignored, so long vectors can be
// split into their CBOR items
func DecodeHexString(hexData string) []byte {
	hexData = strings.Join(strings.Fields(hexData), "")
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// RepeatHex returns the hex encoding of n copies of b
func RepeatHex(b byte, n int) string {
	return strings.Repeat(fmt.Sprintf("%02x", b), n)
}
