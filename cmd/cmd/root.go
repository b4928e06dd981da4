package cmd

import (
	"fmt"

	"github.com/ostafen/sigscan/internal/env"
	"github.com/spf13/cobra"
)

const AppName = env.AppName

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     AppName,
		Short:   AppName + " - identify file types by content signatures",
		Version: fmt.Sprintf("%s (commit %s, built %s)", env.Version, env.CommitHash, env.BuildTime),
	}

	rootCmd.AddCommand(DefineClassifyCommand())
	rootCmd.AddCommand(DefineSignaturesCommand())
	rootCmd.AddCommand(DefineReportCommand())

	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}
