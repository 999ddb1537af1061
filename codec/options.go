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
	"log/slog"
)

// CodecOptionFunc is a type that represents functions that modify the Codec config
type CodecOptionFunc func(*Codec)

// WithRegistry specifies the descriptor registry to use. A new registry is created by default
func WithRegistry(registry *Registry) CodecOptionFunc {
	return func(c *Codec) {
		c.registry = registry
	}
}

// WithMaxDepth specifies the maximum nesting depth accepted while encoding or decoding
func WithMaxDepth(maxDepth int) CodecOptionFunc {
	return func(c *Codec) {
		c.maxDepth = maxDepth
	}
}

// WithLogger specifies the logger to use. slog.Default() is used by default
func WithLogger(logger *slog.Logger) CodecOptionFunc {
	return func(c *Codec) {
		c.logger = logger
	}
}

// RegistryOptionFunc is a type that represents functions that modify the Registry config
type RegistryOptionFunc func(*Registry)

// WithRegistryLogger specifies the logger used when building descriptors
func WithRegistryLogger(logger *slog.Logger) RegistryOptionFunc {
	return func(r *Registry) {
		r.logger = logger
	}
}
