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
package search

import (
	"fmt"
	"strings"
)

// Pattern is the part of a signature a Searcher needs: the raw bytes
// and their rolling hash computed under the searcher's Config.
type Pattern interface {
	Bytes() []byte
	Hash() uint64
}

// Text is a buffer prepared by a Searcher for repeated Contains calls.
// A Text is owned by a single goroutine.
type Text interface {
	Bytes() []byte
}

// Searcher answers whether a prepared text contains a pattern as a
// contiguous substring.
type Searcher interface {
	// Name returns a short identifier of the strategy.
	Name() string

	// Prepare runs the per-buffer precomputation, if any.
	Prepare(data []byte) Text

	// Contains reports whether p occurs in t.
	Contains(t Text, p Pattern) bool
}

// Kind selects one of the built-in strategies.
type Kind int

const (
	KindRabinKarp Kind = iota
	KindKMP
)

func (k Kind) String() string {
	switch k {
	case KindKMP:
		return "kmp"
	case KindRabinKarp:
		return "rk"
	}
	return "unknown"
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "kmp":
		return KindKMP, nil
	case "rk", "rabin-karp", "":
		return KindRabinKarp, nil
	}
	return 0, fmt.Errorf("unknown search strategy %q", s)
}

// New returns the strategy identified by kind. The same cfg must have
// been used to hash the patterns passed to the returned Searcher.
func New(kind Kind, cfg Config) (Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch kind {
	case KindKMP:
		return NewKMP(), nil
	case KindRabinKarp:
		return NewRabinKarp(cfg), nil
	}
	return nil, fmt.Errorf("unknown search strategy %d", kind)
}

type rawText []byte

func (t rawText) Bytes() []byte { return t }
