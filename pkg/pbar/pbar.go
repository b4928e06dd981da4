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
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ostafen/sigscan/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

// ProgressBarState tracks how many files have been classified.
// It is not safe for concurrent use.
type ProgressBarState struct {
	TotalFiles     int
	ProcessedFiles int
	MatchedFiles   int
	ProcessedBytes int64
	StartTime      time.Time
	LastUpdateTime time.Time

	w io.Writer
}

func NewProgressBarState(w io.Writer, totalFiles int) *ProgressBarState {
	return &ProgressBarState{
		TotalFiles: totalFiles,
		StartTime:  time.Now(),
		w:          w,
	}
}

// Add records one classified file and redraws the bar if enough time
// has passed since the last redraw.
func (pbs *ProgressBarState) Add(size int64, matched bool) {
	pbs.ProcessedFiles++
	pbs.ProcessedBytes += size
	if matched {
		pbs.MatchedFiles++
	}
	pbs.Render(pbs.ProcessedFiles == pbs.TotalFiles)
}

// Render prints the progress line. Unless force is set, redraws are
// limited to one every MinRefreshRate.
func (pbs *ProgressBarState) Render(force bool) {
	if !force && time.Since(pbs.LastUpdateTime) < MinRefreshRate {
		return
	}
	pbs.LastUpdateTime = time.Now()

	var percentage float64 = 100
	if pbs.TotalFiles > 0 {
		percentage = float64(pbs.ProcessedFiles) / float64(pbs.TotalFiles) * 100
	}

	barLength := 20
	filledLen := int(float64(barLength) * percentage / 100)
	var bar string
	if filledLen >= barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	elapsed := time.Since(pbs.StartTime).Seconds()

	var rate float64
	if elapsed > 0 {
		rate = float64(pbs.ProcessedFiles) / elapsed
	}

	// \r returns to the start of the line; trailing spaces clear leftovers.
	fmt.Fprintf(pbs.w, "\r[INFO] Progress: [%s] %3.0f%% (%d/%d files, %s) | Matched: %d | @ %.1f files/s    ",
		bar,
		percentage,
		pbs.ProcessedFiles,
		pbs.TotalFiles,
		format.FormatBytes(pbs.ProcessedBytes),
		pbs.MatchedFiles,
		rate,
	)
}

// Finish ends the progress line.
func (pbs *ProgressBarState) Finish() {
	fmt.Fprintln(pbs.w)
}
