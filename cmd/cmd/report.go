package cmd

import (
	"fmt"
	"os"

	"github.com/ostafen/sigscan/pkg/report"
	"github.com/spf13/cobra"
)

func DefineReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <report.xml>",
		Short: "Print the results stored in an XML report",
		Long: `The 'report' command reads a report written by 'classify --report' and prints
its results again, one "name: label" line per file, followed by a summary on stderr.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunReport,
	}

	cmd.Flags().String("color", "auto", "color output: auto, always, never")
	return cmd
}

func RunReport(cmd *cobra.Command, args []string) error {
	colorMode, err := parseColorMode(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	objects, err := report.ReadFileObjects(f)
	if err != nil {
		return fmt.Errorf("failed to read report %q: %w", args[0], err)
	}

	stdout := cmd.OutOrStdout()
	console := report.NewConsole(stdout, useColors(colorMode, stdout))

	var matched, errs int
	for _, obj := range objects {
		if err := console.PrintFile(obj); err != nil {
			return err
		}
		if obj.Priority != nil {
			matched++
		}
		if obj.Error != "" {
			errs++
		}
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "[INFO] Files: \t%d\n", len(objects))
	fmt.Fprintf(stderr, "[INFO] Matched: \t%d\n", matched)
	fmt.Fprintf(stderr, "[INFO] Unknown: \t%d\n", len(objects)-matched)
	fmt.Fprintf(stderr, "[INFO] Errors: \t%d\n", errs)
	return nil
}
