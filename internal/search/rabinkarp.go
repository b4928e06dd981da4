package search

import "bytes"

// RabinKarp is the rolling-hash strategy. Prepare builds the prefix
// hash table of a buffer once, and every Contains call against that
// buffer reuses it.
type RabinKarp struct {
	cfg Config
}

func NewRabinKarp(cfg Config) *RabinKarp {
	return &RabinKarp{cfg: cfg}
}

func (*RabinKarp) Name() string { return KindRabinKarp.String() }

func (rk *RabinKarp) Config() Config { return rk.cfg }

type hashedText struct {
	data   []byte
	prefix []uint64
}

func (t *hashedText) Bytes() []byte { return t.data }

func (rk *RabinKarp) Prepare(data []byte) Text {
	return &hashedText{
		data:   data,
		prefix: rk.cfg.PrefixHashes(data),
	}
}

// Contains scans every offset whose window hash equals the pattern hash
// scaled by Base^offset. Equal hashes are only candidates: the window is
// compared byte by byte, and the scan goes on when the bytes differ.
func (rk *RabinKarp) Contains(t Text, p Pattern) bool {
	ht, ok := t.(*hashedText)
	if !ok {
		ht = rk.Prepare(t.Bytes()).(*hashedText)
	}

	pattern := p.Bytes()

	n, m := len(ht.data), len(pattern)
	if m == 0 || m > n {
		return false
	}

	mod := rk.cfg.Modulus
	patternHash := p.Hash() % mod

	var mult uint64 = 1
	for i := 0; i <= n-m; i++ {
		windowHash := (ht.prefix[i+m] + mod - ht.prefix[i]) % mod
		scaled := patternHash * mult % mod

		if scaled == windowHash && bytes.Equal(ht.data[i:i+m], pattern) {
			return true
		}
		mult = mult * rk.cfg.Base % mod
	}
	return false
}
