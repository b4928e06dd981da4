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
package classify

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/ostafen/sigscan/internal/input"
	"github.com/ostafen/sigscan/internal/search"
	"github.com/ostafen/sigscan/internal/signature"
)

// Unknown labels inputs matching no signature, or that could not be read.
const Unknown = "Unknown file type"

var (
	ErrConfigMismatch = errors.New("searcher hash config does not match the database")

	// ErrReadFault is reported when reading a buffer faults, e.g. a
	// mapped file truncated while it was scanned.
	ErrReadFault = errors.New("fault while reading input")
)

// Result is the classification of one input.
type Result struct {
	Name      string               // Name of the input
	Label     string               // Signature name or Unknown
	Signature *signature.Signature // Matched signature, nil if none
	Size      int                  // Number of bytes scanned
	Err       error                // Read error, if any
}

func (r Result) Matched() bool {
	return r.Signature != nil
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %s", r.Name, r.Label)
}

// Classifier matches buffers against a signature database with a
// single search strategy. It holds no mutable state and may be shared
// by concurrent goroutines.
type Classifier struct {
	db       *signature.Database
	searcher search.Searcher
}

// New returns a classifier using the given searcher. A searcher that
// exposes its hash config must use the one the database was built with.
func New(db *signature.Database, searcher search.Searcher) (*Classifier, error) {
	if h, ok := searcher.(interface{ Config() search.Config }); ok && h.Config() != db.Config() {
		return nil, fmt.Errorf("%w: %+v, database uses %+v", ErrConfigMismatch, h.Config(), db.Config())
	}

	return &Classifier{
		db:       db,
		searcher: searcher,
	}, nil
}

// NewWithKind builds the strategy from the database hash config.
func NewWithKind(db *signature.Database, kind search.Kind) (*Classifier, error) {
	s, err := search.New(kind, db.Config())
	if err != nil {
		return nil, err
	}
	return New(db, s)
}

func (c *Classifier) Database() *signature.Database { return c.db }
func (c *Classifier) Searcher() search.Searcher     { return c.searcher }

// Match returns the first signature, in priority order, whose pattern
// occurs anywhere in data.
func (c *Classifier) Match(data []byte) *signature.Signature {
	var text search.Text

	for sig := range c.db.All() {
		if sig.Len() > len(data) {
			continue
		}
		if text == nil {
			text = c.searcher.Prepare(data)
		}
		if c.searcher.Contains(text, sig) {
			return sig
		}
	}
	return nil
}

// Classify labels data with the name of the matching signature.
func (c *Classifier) Classify(name string, data []byte) Result {
	res := Result{
		Name:  name,
		Label: Unknown,
		Size:  len(data),
	}

	if sig := c.Match(data); sig != nil {
		res.Label = sig.Name()
		res.Signature = sig
	}
	return res
}

// ClassifyInput reads in and classifies its content. A read failure is
// not returned: the result is labeled Unknown and carries the error.
func (c *Classifier) ClassifyInput(in input.Input) Result {
	buf, err := in.Open()
	if err != nil {
		return Result{
			Name:  in.Name(),
			Label: Unknown,
			Err:   err,
		}
	}

	res := c.classifyBuffer(in.Name(), buf)
	if err := buf.Close(); err != nil && res.Err == nil {
		res.Err = err
	}
	return res
}

// classifyBuffer turns a memory fault or a panic while scanning buf into
// an Unknown result, so that one bad input cannot stop the others.
func (c *Classifier) classifyBuffer(name string, buf input.Buffer) (res Result) {
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Name:  name,
				Label: Unknown,
				Err:   fmt.Errorf("%w: %v", ErrReadFault, r),
			}
		}
	}()

	return c.Classify(name, buf.Bytes())
}
