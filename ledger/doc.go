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
// Package ledger provides Cardano ledger structures described with the codec
// package: Plutus data, native scripts, values, transactions, witness sets and
// Shelley through Conway blocks.
//
// Decoded structures that embed cbor.DecodeStoreCbor keep the exact bytes they were
// read from, so hashes computed from them match the chain even when the original
// encoding was not canonical.
package ledger
