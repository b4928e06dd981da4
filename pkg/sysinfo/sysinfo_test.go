package sysinfo_test

import (
	"testing"

	"github.com/ostafen/sigscan/pkg/sysinfo"
	"github.com/stretchr/testify/require"
)

func TestStat(t *testing.T) {
	info, err := sysinfo.Stat()
	require.NoError(t, err)
	require.NotEmpty(t, info.Name)
	require.NotEmpty(t, info.Machine)
}
