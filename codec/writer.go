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

package codec

import (
	"github.com/blinklabs-io/ledgercodec/cbor"
)

// encoder appends the encoding of values to a single buffer
type encoder struct {
	buf      []byte
	depth    int
	maxDepth int
}

func (e *encoder) enter() error {
	e.depth++
	if e.depth > e.maxDepth {
		return DepthLimitError{Offset: len(e.buf), Limit: e.maxDepth}
	}
	return nil
}

func (e *encoder) leave() {
	e.depth--
}

func (e *encoder) writeHead(majorType uint8, arg uint64) {
	e.buf = cbor.AppendHead(e.buf, majorType, arg)
}

func (e *encoder) writeIndefHead(majorType uint8) {
	e.buf = cbor.AppendIndefHead(e.buf, majorType)
}

func (e *encoder) writeBreak() {
	e.buf = cbor.AppendBreak(e.buf)
}

func (e *encoder) writeRaw(data []byte) {
	e.buf = append(e.buf, data...)
}

// writeContainerHead starts an array or map with n items
func (e *encoder) writeContainerHead(majorType uint8, n int, indef bool) {
	if indef {
		e.writeIndefHead(majorType)
		return
	}
	e.writeHead(majorType, uint64(n))
}

// writeScalar appends v encoded with the wire layer's encode mode
func (e *encoder) writeScalar(v any) error {
	data, err := cbor.Encode(v)
	if err != nil {
		return err
	}
	e.writeRaw(data)
	return nil
}
