// Package cmd implements the gura CLI: parse, fmt, and check
// subcommands over the gura façade. Grounded on
// sqlparser/../cli/cmd/root.go's persistent-flag/RunE shape.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "gura",
		Short:        "gura",
		SilenceUsage: true,
		Long:         `Command-line parser and formatter for the Gura configuration language.`,
	}

	verbose bool
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parse tracing to stderr")
	return rootCmd.Execute()
}

func logger() *logrus.Logger {
	l := logrus.New()
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

func init() {
}
