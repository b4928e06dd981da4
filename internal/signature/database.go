package signature

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/ostafen/sigscan/internal/search"
)

// Entry is one (priority, pattern, name) row of a signature source.
type Entry struct {
	Priority int
	Pattern  []byte
	Name     string
}

// Database is the list of signatures in match order: descending
// priority, ties kept in insertion order.
//
// A Database is never modified after Build returns, so a single value
// can be read by any number of goroutines without locking.
type Database struct {
	cfg        search.Config
	signatures []*Signature
}

// Build creates one signature per entry and sorts them by priority.
// It fails on the first invalid entry and returns no partial database.
func Build(entries []Entry, cfg search.Config) (*Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	signatures := make([]*Signature, 0, len(entries))
	for i, e := range entries {
		sig, err := New(e.Priority, e.Pattern, e.Name, cfg)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		signatures = append(signatures, sig)
	}

	slices.SortStableFunc(signatures, func(a, b *Signature) int {
		return cmp.Compare(b.priority, a.priority)
	})

	return &Database{
		cfg:        cfg,
		signatures: signatures,
	}, nil
}

// Config returns the hash parameters the signature hashes were computed with.
func (db *Database) Config() search.Config { return db.cfg }

func (db *Database) Len() int { return len(db.signatures) }

func (db *Database) At(i int) *Signature { return db.signatures[i] }

// All yields the signatures in match order.
func (db *Database) All() iter.Seq[*Signature] {
	return func(yield func(*Signature) bool) {
		for _, sig := range db.signatures {
			if !yield(sig) {
				return
			}
		}
	}
}

// Names returns the distinct signature names in match order.
func (db *Database) Names() []string {
	seen := make(map[string]bool, len(db.signatures))

	var names []string
	for _, sig := range db.signatures {
		if !seen[sig.name] {
			seen[sig.name] = true
			names = append(names, sig.name)
		}
	}
	return names
}

func (db *Database) String() string {
	return fmt.Sprintf("%d signatures (%s)", len(db.signatures), strings.Join(db.Names(), ","))
}
