package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tmeire/nifty/cli/cmd/generate"
)

// GenerateCmd returns a cobra.Command for the generate command
func GenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Generate code for the application",
		Long:    `Generate code for the application, including controllers, views, models and migrations.`,
	}

	// Add subcommands
	generateCmd.AddCommand(generate.ScaffoldCmd())

	return generateCmd
}
