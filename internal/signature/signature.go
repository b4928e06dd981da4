// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package signature

import (
	"errors"
	"fmt"

	"github.com/ostafen/sigscan/internal/search"
)

var (
	ErrMalformedEntry = errors.New("malformed signature entry")
	ErrInvalidPattern = errors.New("invalid signature pattern")
)

// Signature identifies a file type by a byte pattern that may occur
// anywhere in the file. It is immutable once created.
type Signature struct {
	priority int
	pattern  []byte
	name     string
	hash     uint64
}

// New creates a signature and precomputes the rolling hash of its
// pattern under cfg. The pattern is copied.
func New(priority int, pattern []byte, name string, cfg search.Config) (*Signature, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("%w: empty pattern for %q", ErrInvalidPattern, name)
	}

	p := make([]byte, len(pattern))
	copy(p, pattern)

	return &Signature{
		priority: priority,
		pattern:  p,
		name:     name,
		hash:     cfg.Hash(p),
	}, nil
}

func (s *Signature) Priority() int { return s.priority }
func (s *Signature) Name() string  { return s.name }

// Bytes returns the pattern. Callers must not modify it.
func (s *Signature) Bytes() []byte { return s.pattern }

func (s *Signature) Hash() uint64 { return s.hash }
func (s *Signature) Len() int     { return len(s.pattern) }

func (s *Signature) String() string {
	return fmt.Sprintf("%s (priority %d, %d bytes)", s.name, s.priority, len(s.pattern))
}
