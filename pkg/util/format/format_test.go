package format_test

import (
	"testing"

	"github.com/ostafen/sigscan/pkg/util/format"
	"github.com/stretchr/testify/require"
)

func TestParseBytes(t *testing.T) {
	cases := map[string]uint64{
		"":       0,
		"1024":   1024,
		"4MB":    4_000_000,
		"4MiB":   4 << 20,
		"256 KB": 256_000,
	}
	for in, expected := range cases {
		v, err := format.ParseBytes(in)
		require.NoError(t, err, in)
		require.Equal(t, expected, v, in)
	}

	_, err := format.ParseBytes("lots")
	require.Error(t, err)
}

func TestParseLimit(t *testing.T) {
	v, err := format.ParseLimit("1GiB")
	require.NoError(t, err)
	require.Equal(t, int64(1<<30), v)
}

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512 B", format.FormatBytes(512))
	require.Equal(t, "4.0 MiB", format.FormatBytes(4<<20))
	require.Equal(t, "-1.0 KiB", format.FormatBytes(-1024))
}
