package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd returns the nifty command with every subcommand attached
func RootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "nifty",
		Short: "nifty generators",
		Long: `A command line interface for generating application code.
This CLI scaffolds controllers, views, models and migrations for a resource.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logging")

	rootCmd.AddCommand(VersionCmd())
	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(GenerateCmd())

	return rootCmd
}
