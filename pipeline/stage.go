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
// Package pipeline decodes batches of era-tagged blocks in parallel. A single
// codec is shared by all workers.
package pipeline

import (
	"context"
)

// Stage represents a processing stage in the block pipeline.
type Stage interface {
	// Name returns the name of the stage for logging and metrics.
	Name() string
	// Process processes a single block item. Returns an error if processing fails.
	Process(ctx context.Context, item *BlockItem) error
}

// StageFunc is an adapter that allows using ordinary functions as Stage implementations.
type StageFunc struct {
	name string
	fn   func(ctx context.Context, item *BlockItem) error
}

// NewStageFunc creates a new StageFunc with the given name and processing function.
func NewStageFunc(name string, fn func(ctx context.Context, item *BlockItem) error) *StageFunc {
	return &StageFunc{
		name: name,
		fn:   fn,
	}
}

func (s *StageFunc) Name() string {
	return s.name
}

func (s *StageFunc) Process(ctx context.Context, item *BlockItem) error {
	return s.fn(ctx, item)
}
