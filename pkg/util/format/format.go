package format

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders b with binary units, e.g. "4.0 MiB".
func FormatBytes(b int64) string {
	if b < 0 {
		return "-" + humanize.IBytes(uint64(-b))
	}
	return humanize.IBytes(uint64(b))
}

// ParseBytes parses sizes like "4MB", "512 KiB" or "1024". An empty
// string means no limit and yields 0.
func ParseBytes(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return humanize.ParseBytes(s)
}

// ParseLimit is ParseBytes clamped to the int64 range used by file sizes.
func ParseLimit(s string) (int64, error) {
	v, err := ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64 {
		return math.MaxInt64, nil
	}
	return int64(v), nil
}
