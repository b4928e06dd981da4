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
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	osutils "github.com/ostafen/sigscan/pkg/util/os"
)

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a slog
// level. Anything else is INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns a text logger writing to logFilePath, or discarding
// everything when the path is empty. The returned closer must be
// closed by the caller once logging is done.
func Setup(logFilePath string, minLevel slog.Level) (*slog.Logger, io.Closer, error) {
	if logFilePath == "" {
		return New(io.Discard, minLevel), nopCloser{}, nil
	}

	if err := osutils.EnsureParentDir(logFilePath); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}
	return New(f, minLevel), f, nil
}

// New creates a logger writing text records to w.
func New(w io.Writer, minLevel slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: minLevel,
	})
	return slog.New(handler)
}
