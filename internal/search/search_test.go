package search_test

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/ostafen/sigscan/internal/search"
	"github.com/stretchr/testify/require"
)

type testPattern struct {
	data []byte
	hash uint64
}

func (p testPattern) Bytes() []byte { return p.data }
func (p testPattern) Hash() uint64  { return p.hash }

func newPattern(cfg search.Config, data []byte) testPattern {
	return testPattern{data: data, hash: cfg.Hash(data)}
}

func contains(s search.Searcher, text, pattern []byte, cfg search.Config) bool {
	return s.Contains(s.Prepare(text), newPattern(cfg, pattern))
}

func TestSearchers(t *testing.T) {
	cfg := search.DefaultConfig

	kmp, err := search.New(search.KindKMP, cfg)
	require.NoError(t, err)

	rk, err := search.New(search.KindRabinKarp, cfg)
	require.NoError(t, err)

	cases := []struct {
		text    string
		pattern string
		found   bool
	}{
		{"GIF89a", "GIF8", true},
		{"GIF89a", "PK", false},
		{"xxxxPK\x03\x04", "PK\x03\x04", true},
		{"aaaaab", "aab", true},
		{"abababc", "ababc", true},
		{"abababa", "ababc", false},
		{"PK", "PK", true},
		{"P", "PK", false},
		{"", "P", false},
		{"\x00\x00\x00", "\x00\x00", true},
		{"\x00\x00", "\x00\x00\x00", false},
	}

	for _, s := range []search.Searcher{kmp, rk} {
		for _, c := range cases {
			got := contains(s, []byte(c.text), []byte(c.pattern), cfg)
			require.Equal(t, c.found, got, "%s: %q in %q", s.Name(), c.pattern, c.text)
		}
	}
}

func TestEmptyPatternNeverMatches(t *testing.T) {
	cfg := search.DefaultConfig

	require.False(t, contains(search.NewKMP(), []byte("abc"), nil, cfg))
	require.False(t, contains(search.NewRabinKarp(cfg), []byte("abc"), nil, cfg))
}

func TestStrategiesAgree(t *testing.T) {
	configs := []search.Config{
		search.DefaultConfig,
		// A tiny modulus makes most windows hash collisions.
		{Base: 3, Modulus: 7},
		{Base: 2, Modulus: 3},
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, cfg := range configs {
		kmp := search.NewKMP()
		rk := search.NewRabinKarp(cfg)

		for trial := 0; trial < 2000; trial++ {
			text := randomBytes(rng, rng.Intn(64), 3)
			pattern := randomBytes(rng, rng.Intn(5)+1, 3)

			expected := bytes.Contains(text, pattern)

			require.Equal(t, expected, contains(kmp, text, pattern, cfg),
				"kmp: %v in %v", pattern, text)
			require.Equal(t, expected, contains(rk, text, pattern, cfg),
				"rk(%d,%d): %v in %v", cfg.Base, cfg.Modulus, pattern, text)
		}
	}
}

func TestPreparedTextIsReusable(t *testing.T) {
	cfg := search.DefaultConfig
	rk := search.NewRabinKarp(cfg)

	text := rk.Prepare([]byte("%PDF-1.7 ... GIF89a ... PK\x03\x04"))
	require.True(t, rk.Contains(text, newPattern(cfg, []byte("GIF8"))))
	require.True(t, rk.Contains(text, newPattern(cfg, []byte("%PDF"))))
	require.True(t, rk.Contains(text, newPattern(cfg, []byte("PK\x03\x04"))))
	require.False(t, rk.Contains(text, newPattern(cfg, []byte("\x89PNG"))))

	// A text prepared by another strategy is still accepted.
	raw := search.NewKMP().Prepare([]byte("GIF89a"))
	require.True(t, rk.Contains(raw, newPattern(cfg, []byte("89a"))))
}

func TestRabinKarpRejectsHashCollision(t *testing.T) {
	cfg := search.DefaultConfig

	// (0x35+1) + (0x00+1)*53 == (0x00+1) + (0x01+1)*53 == 107
	a := []byte{0x35, 0x00}
	b := []byte{0x00, 0x01}
	require.Equal(t, cfg.Hash(a), cfg.Hash(b))
	require.NotEqual(t, a, b)

	rk := search.NewRabinKarp(cfg)

	text := []byte{'x', 'y', 0x00, 0x01, 'z'}
	require.False(t, contains(rk, text, a, cfg))
	require.True(t, contains(rk, text, b, cfg))

	// The scan must go on past a rejected candidate.
	text = append(text, 0x35, 0x00)
	require.True(t, contains(rk, text, a, cfg))
}

func TestHashMatchesPrefixTable(t *testing.T) {
	cfg := search.DefaultConfig
	data := []byte("\x00\x00signature\xff")

	table := cfg.PrefixHashes(data)
	require.Len(t, table, len(data)+1)
	require.Zero(t, table[0])

	for i := 0; i <= len(data); i++ {
		require.Equal(t, cfg.Hash(data[:i]), table[i])
	}

	// leading zero bytes still change the hash
	require.NotEqual(t, cfg.Hash([]byte{0x00}), cfg.Hash([]byte{0x00, 0x00}))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, search.DefaultConfig.Validate())
	require.Error(t, search.Config{Base: 1, Modulus: 7}.Validate())
	require.Error(t, search.Config{Base: 53, Modulus: 53}.Validate())
	require.Error(t, search.Config{Base: 53, Modulus: 1 << 33}.Validate())

	_, err := search.New(search.KindKMP, search.Config{})
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := search.ParseKind("KMP")
	require.NoError(t, err)
	require.Equal(t, search.KindKMP, k)

	k, err = search.ParseKind("rk")
	require.NoError(t, err)
	require.Equal(t, search.KindRabinKarp, k)

	_, err = search.ParseKind("regex")
	require.Error(t, err)
}

func randomBytes(rng *rand.Rand, n int, alphabet int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a' + byte(rng.Intn(alphabet))
	}
	return b
}
