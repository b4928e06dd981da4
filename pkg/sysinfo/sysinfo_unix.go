//go:build unix

package sysinfo

import (
	"bytes"

	"golang.org/x/sys/unix"
)

// Stat reports the running kernel as returned by uname(2).
func Stat() (*SysInfo, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return nil, err
	}

	return &SysInfo{
		Name:    cstring(uts.Sysname[:]),
		Release: cstring(uts.Release[:]),
		Version: cstring(uts.Version[:]),
		Machine: cstring(uts.Machine[:]),
	}, nil
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
