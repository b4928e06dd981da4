package search

import "fmt"

const (
	DefaultBase    = 53
	DefaultModulus = 1_000_000_009
)

// Config holds the rolling hash parameters. Hashes computed under
// different configs are not comparable, so the value used to build a
// signature database must also be used by the RabinKarp searcher.
type Config struct {
	Base    uint64
	Modulus uint64
}

var DefaultConfig = Config{
	Base:    DefaultBase,
	Modulus: DefaultModulus,
}

// Validate checks that the parameters keep every intermediate product
// of two residues within uint64.
func (c Config) Validate() error {
	if c.Base < 2 {
		return fmt.Errorf("hash base must be at least 2, got %d", c.Base)
	}
	if c.Modulus <= c.Base {
		return fmt.Errorf("hash modulus %d must be greater than base %d", c.Modulus, c.Base)
	}
	if c.Modulus >= 1<<32 {
		return fmt.Errorf("hash modulus %d does not fit in 32 bits", c.Modulus)
	}
	return nil
}

// Hash returns the polynomial hash of data, where byte i contributes
// (data[i]+1) * Base^i. The +1 keeps leading zero bytes significant.
func (c Config) Hash(data []byte) uint64 {
	var (
		h   uint64
		pow uint64 = 1
	)
	for _, b := range data {
		h = (h + (uint64(b)+1)*pow) % c.Modulus
		pow = pow * c.Base % c.Modulus
	}
	return h
}

// PrefixHashes returns a table of len(data)+1 entries where
// table[i] is the hash of data[:i] as computed by Hash.
func (c Config) PrefixHashes(data []byte) []uint64 {
	table := make([]uint64, len(data)+1)

	var pow uint64 = 1
	for i, b := range data {
		table[i+1] = (table[i] + (uint64(b)+1)*pow) % c.Modulus
		pow = pow * c.Base % c.Modulus
	}
	return table
}
