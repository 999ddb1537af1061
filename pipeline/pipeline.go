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
	"fmt"
	"log/slog"
)

// DecodeBlocks decodes era-tagged blocks in parallel and returns one item per input,
// in input order. A block that fails to decode does not stop the others; its error
// is available from the item. The returned error is only set when ctx ends first
func DecodeBlocks(ctx context.Context, blocks [][]byte, opts ...PipelineOption) ([]*BlockItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}
	config := DefaultPipelineConfig()
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.BufferSize < 0 {
		config.BufferSize = 0
	}
	items := make([]*BlockItem, len(blocks))
	for i, block := range blocks {
		items[i] = NewBlockItem(block, uint64(i))
	}
	input := make(chan *BlockItem, config.BufferSize)
	output := make(chan *BlockItem, config.BufferSize)
	pool := NewStageWorkerPool(StageWorkerPoolConfig{
		Stage:         NewDecodeStage(config.Codec),
		NumWorkers:    config.DecodeWorkers,
		Input:         input,
		Output:        output,
		RecordMetrics: DecodeMetricsRecorder(config.Metrics),
	})
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pool.Start(ctx)
	feederDone := make(chan struct{})
	go func() {
		defer close(feederDone)
		defer close(input)
		for _, item := range items {
			if config.Metrics != nil {
				config.Metrics.RecordSubmit()
			}
			select {
			case input <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	var err error
	for range items {
		select {
		case item := <-output:
			if decodeErr := item.DecodeError(); decodeErr != nil {
				logger.Debug(
					"block decode failed",
					"sequence", item.SequenceNumber(),
					"error", decodeErr,
				)
			}
		case <-ctx.Done():
			err = fmt.Errorf("decode blocks: %w", ctx.Err())
		}
		if err != nil {
			break
		}
	}
	cancel()
	<-feederDone
	pool.Stop()
	if err != nil {
		return nil, err
	}
	return items, nil
}
