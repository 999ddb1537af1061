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
	"log/slog"
	"runtime"

	"github.com/blinklabs-io/ledgercodec/codec"
)

// PipelineConfig holds configuration for DecodeBlocks.
type PipelineConfig struct {
	// DecodeWorkers is the number of parallel decode workers.
	DecodeWorkers int
	// BufferSize is the buffer size of the input and output channels.
	BufferSize int
	// Codec is shared by all workers. The ledger default codec is used when nil.
	Codec *codec.Codec
	// Metrics receives the decode results. May be nil.
	Metrics *PipelineMetrics
	// Logger is used for per-block debug logging.
	Logger *slog.Logger
}

// DefaultPipelineConfig returns a PipelineConfig with one worker per CPU.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		DecodeWorkers: max(runtime.NumCPU(), 1),
		BufferSize:    100,
	}
}

// PipelineOption is a functional option for configuring DecodeBlocks.
type PipelineOption func(*PipelineConfig)

// WithDecodeWorkers sets the number of parallel decode workers.
func WithDecodeWorkers(n int) PipelineOption {
	return func(c *PipelineConfig) {
		c.DecodeWorkers = n
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PipelineOption {
	return func(c *PipelineConfig) {
		c.BufferSize = size
	}
}

// WithCodec specifies the codec used to decode blocks.
func WithCodec(c *codec.Codec) PipelineOption {
	return func(cfg *PipelineConfig) {
		cfg.Codec = c
	}
}

// WithMetrics specifies the metrics collector.
func WithMetrics(metrics *PipelineMetrics) PipelineOption {
	return func(c *PipelineConfig) {
		c.Metrics = metrics
	}
}

// WithLogger specifies the logger to use. slog.Default() is used by default
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(c *PipelineConfig) {
		c.Logger = logger
	}
}
