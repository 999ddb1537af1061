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
	"context"
	"errors"
	"time"

	"github.com/blinklabs-io/ledgercodec/codec"
	"github.com/blinklabs-io/ledgercodec/ledger"
)

// ErrNilStage is returned when a nil stage is passed to a worker pool.
var ErrNilStage = errors.New("pipeline: nil stage")

// DecodeStage decodes era-tagged block CBOR with a shared codec.
type DecodeStage struct {
	codec *codec.Codec
}

// NewDecodeStage creates a new DecodeStage. The ledger default codec is used when c is nil
func NewDecodeStage(c *codec.Codec) *DecodeStage {
	if c == nil {
		c = ledger.DefaultCodec()
	}
	return &DecodeStage{codec: c}
}

func (s *DecodeStage) Name() string {
	return "decode"
}

// Process decodes the raw CBOR in the block item.
func (s *DecodeStage) Process(ctx context.Context, item *BlockItem) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	start := time.Now()
	var wrapped ledger.BlockWithEra
	err := s.codec.Deserialize(item.RawCbor(), &wrapped)
	duration := time.Since(start)
	if err != nil {
		item.SetDecodeError(err, duration)
		return err
	}
	item.SetBlock(wrapped.Block, duration)
	return nil
}
