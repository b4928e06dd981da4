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

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/ostafen/sigscan/internal/classify"
	"github.com/ostafen/sigscan/internal/dispatch"
	"github.com/ostafen/sigscan/internal/env"
	"github.com/ostafen/sigscan/internal/input"
	"github.com/ostafen/sigscan/internal/logger"
	"github.com/ostafen/sigscan/internal/search"
	"github.com/ostafen/sigscan/internal/signature"
	"github.com/ostafen/sigscan/pkg/pbar"
	"github.com/ostafen/sigscan/pkg/report"
	fmtutil "github.com/ostafen/sigscan/pkg/util/format"
	osutils "github.com/ostafen/sigscan/pkg/util/os"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Options struct {
	SignaturesPath string
	Path           string
	Strategy       search.Kind
	Workers        int
	Recursive      bool
	SkipHidden     bool
	MaxFileSize    int64
	ReportFile     string
	LogFile        string
	LogLevel       string
	Color          string
	Progress       bool
}

func DefineClassifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <signatures> <path>",
		Short: "Identify the type of every file in a directory",
		Long: `The 'classify' command tests the content of each file against a signature database
and prints the name of the highest-priority signature found anywhere in the file,
or "` + classify.Unknown + `" when none matches.
The signature database is either a text file of priority;pattern;name rows or a YAML file.
<path> can be a directory or a single file.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunClassify,
	}

	cmd.Flags().String("strategy", search.KindRabinKarp.String(), "substring search strategy: rk or kmp")
	cmd.Flags().IntP("workers", "w", dispatch.DefaultWorkers, "number of files classified in parallel")
	cmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	cmd.Flags().Bool("skip-hidden", false, "skip files and directories starting with a dot")
	cmd.Flags().String("max-file-size", "", "skip files larger than this size (e.g. 512MB)")
	cmd.Flags().StringP("report", "o", "", "write an XML report to the specified file")
	cmd.Flags().String("log-file", "", "write a detailed log to the specified file")
	cmd.Flags().String("log-level", "INFO", "minimum log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().String("color", "auto", "color output: auto, always, never")
	cmd.Flags().Bool("progress", false, "show a progress bar on stderr")

	return cmd
}

func RunClassify(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return Classify(ctx, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func parseOptions(cmd *cobra.Command, args []string) (Options, error) {
	strategy, _ := cmd.Flags().GetString("strategy")
	kind, err := search.ParseKind(strategy)
	if err != nil {
		return Options{}, err
	}

	maxSize, _ := cmd.Flags().GetString("max-file-size")
	maxFileSize, err := fmtutil.ParseLimit(maxSize)
	if err != nil {
		return Options{}, fmt.Errorf("invalid --max-file-size %q: %w", maxSize, err)
	}

	colorMode, err := parseColorMode(cmd)
	if err != nil {
		return Options{}, err
	}

	workers, _ := cmd.Flags().GetInt("workers")
	recursive, _ := cmd.Flags().GetBool("recursive")
	skipHidden, _ := cmd.Flags().GetBool("skip-hidden")
	reportFile, _ := cmd.Flags().GetString("report")
	logFile, _ := cmd.Flags().GetString("log-file")
	logLevel, _ := cmd.Flags().GetString("log-level")
	progress, _ := cmd.Flags().GetBool("progress")

	return Options{
		SignaturesPath: args[0],
		Path:           args[1],
		Strategy:       kind,
		Workers:        workers,
		Recursive:      recursive,
		SkipHidden:     skipHidden,
		MaxFileSize:    maxFileSize,
		ReportFile:     reportFile,
		LogFile:        logFile,
		LogLevel:       logLevel,
		Color:          colorMode,
		Progress:       progress,
	}, nil
}

// Classify runs a whole classification session: results go to stdout,
// status lines and progress to stderr.
func Classify(ctx context.Context, opts Options, stdout, stderr io.Writer) error {
	db, err := signature.Load(opts.SignaturesPath, search.DefaultConfig)
	if err != nil {
		return err
	}

	classifier, err := classify.NewWithKind(db, opts.Strategy)
	if err != nil {
		return err
	}

	inputs, err := listInputs(ctx, opts)
	if err != nil {
		return err
	}

	log, logCloser, err := logger.Setup(opts.LogFile, logger.ParseLevel(opts.LogLevel))
	if err != nil {
		return err
	}
	defer logCloser.Close()

	fmt.Fprintf(stderr, "[INFO] Source: \t%s\n", absPath(opts.Path))
	fmt.Fprintf(stderr, "[INFO] Signatures: \t%d (%s)\n", db.Len(), absPath(opts.SignaturesPath))
	fmt.Fprintf(stderr, "[INFO] Strategy: \t%s\n", classifier.Searcher().Name())
	fmt.Fprintf(stderr, "[INFO] Files: \t%d\n", len(inputs))

	log.Info("classification started",
		"source", opts.Path,
		"signatures", db.Len(),
		"strategy", classifier.Searcher().Name(),
		"files", len(inputs),
		"workers", opts.Workers,
	)

	var progress *pbar.ProgressBarState
	if opts.Progress {
		progress = pbar.NewProgressBarState(stderr, len(inputs))
	}

	d := dispatch.New(classifier, dispatch.Options{
		Workers: opts.Workers,
		Logger:  log,
		OnResult: func(res classify.Result) {
			if progress != nil {
				progress.Add(int64(res.Size), res.Matched())
			}
		},
	})

	start := time.Now()
	results := d.Run(ctx, inputs)
	duration := time.Since(start)

	if progress != nil {
		progress.Finish()
	}

	console := report.NewConsole(stdout, useColors(opts.Color, stdout))

	summary := report.Summary{Files: len(results)}
	objects := make([]report.FileObject, len(results))
	for i, res := range results {
		objects[i] = toFileObject(res)

		if err := console.PrintFile(objects[i]); err != nil {
			return err
		}

		summary.Bytes += uint64(res.Size)
		if res.Matched() {
			summary.Matched++
		} else {
			summary.Unknown++
		}
		if res.Err != nil {
			summary.Errors++
		}
	}
	summary.Duration = FormatDurationHMS(duration)

	if opts.ReportFile != "" {
		err := writeReport(opts, db, classifier.Searcher().Name(), objects, summary)
		if err != nil {
			return err
		}
	}

	log.Info("classification completed",
		"files", summary.Files,
		"matched", summary.Matched,
		"unknown", summary.Unknown,
		"errors", summary.Errors,
		"duration", duration,
	)

	fmt.Fprintf(stderr, "[INFO] Classification completed!\n")
	fmt.Fprintf(stderr, "[INFO] Matched: \t%d\n", summary.Matched)
	fmt.Fprintf(stderr, "[INFO] Unknown: \t%d\n", summary.Unknown)
	fmt.Fprintf(stderr, "[INFO] Total data: \t%s\n", fmtutil.FormatBytes(int64(summary.Bytes)))
	fmt.Fprintf(stderr, "[INFO] Duration: \t%s\n", summary.Duration)
	if opts.ReportFile != "" {
		fmt.Fprintf(stderr, "[INFO] Report saved to: \t%s\n", absPath(opts.ReportFile))
	}

	return ctx.Err()
}

func listInputs(ctx context.Context, opts Options) ([]input.Input, error) {
	info, err := os.Stat(opts.Path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []input.Input{
			&input.File{Path: opts.Path, MaxSize: opts.MaxFileSize},
		}, nil
	}

	return input.List(ctx, opts.Path, input.ListOptions{
		Recursive:     opts.Recursive,
		SkipHidden:    opts.SkipHidden,
		MaxSize:       opts.MaxFileSize,
	})
}

func toFileObject(res classify.Result) report.FileObject {
	obj := report.FileObject{
		Filename: res.Name,
		FileSize: uint64(res.Size),
		Label:    res.Label,
	}
	if res.Signature != nil {
		p := res.Signature.Priority()
		obj.Priority = &p
	}
	if res.Err != nil {
		obj.Error = res.Err.Error()
	}
	return obj
}

func writeReport(opts Options, db *signature.Database, strategy string, objects []report.FileObject, summary report.Summary) error {
	if err := osutils.EnsureParentDir(opts.ReportFile); err != nil {
		return err
	}

	f, err := os.Create(opts.ReportFile)
	if err != nil {
		return fmt.Errorf("failed to create report file %q: %w", opts.ReportFile, err)
	}
	defer f.Close()

	w := report.NewXMLWriter(f)

	err = w.WriteHeader(report.Header{
		XmlOutput: report.XmlOutputVersion,
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{
			Path:       absPath(opts.Path),
			Signatures: absPath(opts.SignaturesPath),
			Count:      db.Len(),
			Strategy:   strategy,
		},
	})
	if err != nil {
		return err
	}

	for _, obj := range objects {
		if err := w.WriteFileObject(obj); err != nil {
			return err
		}
	}
	if err := w.WriteSummary(summary); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}

func parseColorMode(cmd *cobra.Command) (string, error) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "auto", "always", "never":
		return mode, nil
	}
	return "", fmt.Errorf("invalid --color %q: expected auto, always or never", mode)
}

func useColors(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// FormatDurationHMS formats a time.Duration into HH:MM:SS string.
// Durations under a second are printed in seconds.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
