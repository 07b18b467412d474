// Copyright 2025 walteh LLC
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

package execute

import (
	"bytes"
	"sync"
)

// Surfaces is the registry of named, reusable output buffers that
// blocking commands capture into. A surface is cleared before each run
// that targets it, so it always holds the output of the last command.
type Surfaces struct {
	mu   sync.Mutex
	bufs map[string]*bytes.Buffer
}

// NewSurfaces creates an empty registry.
func NewSurfaces() *Surfaces {
	return &Surfaces{bufs: map[string]*bytes.Buffer{}}
}

// Reset clears the named surface (creating it if needed) and returns it
// for writing.
func (s *Surfaces) Reset(name string) *bytes.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf, ok := s.bufs[name]
	if !ok {
		buf = &bytes.Buffer{}
		s.bufs[name] = buf
	}
	buf.Reset()
	return buf
}

// Contents returns the current contents of the named surface.
func (s *Surfaces) Contents(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf, ok := s.bufs[name]
	if !ok {
		return ""
	}
	return buf.String()
}
