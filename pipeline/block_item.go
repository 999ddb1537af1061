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
package pipeline

import (
	"bytes"
	"sync"
	"time"

	"github.com/blinklabs-io/ledgercodec/ledger"
)

// BlockItem is one block moving through the pipeline
type BlockItem struct {
	rawCbor        []byte
	sequenceNumber uint64

	mu             sync.RWMutex
	block          ledger.Block
	decodeError    error
	decodeDuration time.Duration
	decoded        bool
}

// NewBlockItem creates a new BlockItem. The CBOR is copied so the caller may reuse
// its buffer
func NewBlockItem(rawCbor []byte, seq uint64) *BlockItem {
	return &BlockItem{
		rawCbor:        bytes.Clone(rawCbor),
		sequenceNumber: seq,
	}
}

// RawCbor returns the era-tagged block CBOR. The returned slice should not be modified.
func (b *BlockItem) RawCbor() []byte {
	return b.rawCbor
}

func (b *BlockItem) SequenceNumber() uint64 {
	return b.sequenceNumber
}

// Block returns the decoded block, or nil if not yet decoded or decode failed.
func (b *BlockItem) Block() ledger.Block {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.block
}

// DecodeError returns the error from the decode stage, if any.
func (b *BlockItem) DecodeError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.decodeError
}

func (b *BlockItem) DecodeDuration() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.decodeDuration
}

// IsDecoded reports whether the block was decoded successfully.
func (b *BlockItem) IsDecoded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.decoded
}

// SetBlock sets the decoded block and clears any previous decode error.
func (b *BlockItem) SetBlock(block ledger.Block, duration time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.block = block
	b.decodeError = nil
	b.decodeDuration = duration
	b.decoded = true
}

func (b *BlockItem) SetDecodeError(err error, duration time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.block = nil
	b.decodeError = err
	b.decodeDuration = duration
	b.decoded = false
}
