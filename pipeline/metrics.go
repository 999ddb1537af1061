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
	"sync"
	"sync/atomic"
	"time"
)

// PipelineMetrics tracks decode results. It is safe for concurrent use.
type PipelineMetrics struct {
	blocksSubmitted atomic.Uint64
	blocksDecoded   atomic.Uint64
	decodeErrors    atomic.Uint64

	mu                sync.RWMutex
	totalDecodeTime   time.Duration
	slowestDecodeTime time.Duration
	startTime         time.Time
}

// PipelineStats is a snapshot of PipelineMetrics.
type PipelineStats struct {
	BlocksSubmitted   uint64
	BlocksDecoded     uint64
	DecodeErrors      uint64
	TotalDecodeTime   time.Duration
	SlowestDecodeTime time.Duration
	StartTime         time.Time
}

func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		startTime: time.Now(),
	}
}

// RecordSubmit increments the submitted counter.
func (m *PipelineMetrics) RecordSubmit() {
	m.blocksSubmitted.Add(1)
}

// RecordDecode records a decode result.
func (m *PipelineMetrics) RecordDecode(duration time.Duration, err error) {
	if err != nil {
		m.decodeErrors.Add(1)
	} else {
		m.blocksDecoded.Add(1)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalDecodeTime += duration
	if duration > m.slowestDecodeTime {
		m.slowestDecodeTime = duration
	}
}

// Stats returns a snapshot of the current metrics.
func (m *PipelineMetrics) Stats() PipelineStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return PipelineStats{
		BlocksSubmitted:   m.blocksSubmitted.Load(),
		BlocksDecoded:     m.blocksDecoded.Load(),
		DecodeErrors:      m.decodeErrors.Load(),
		TotalDecodeTime:   m.totalDecodeTime,
		SlowestDecodeTime: m.slowestDecodeTime,
		StartTime:         m.startTime,
	}
}

// Reset resets all metrics.
func (m *PipelineMetrics) Reset() {
	m.blocksSubmitted.Store(0)
	m.blocksDecoded.Store(0)
	m.decodeErrors.Store(0)
	m.mu.Lock()
	m.totalDecodeTime = 0
	m.slowestDecodeTime = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
