package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmeire/nifty/cli/project"
)

// InitCmd returns a cobra.Command for the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new application skeleton",
		Long: `Initialize a new application with the structure the generators expect.
This command:
1. Creates the directory for the application
2. Sets up app/, config/ and db/migrate
3. Creates config/routes.rb with an empty draw block
4. Creates config/database.yml using sqlite3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			p, err := project.Init(dir)
			if err != nil {
				return fmt.Errorf("error initializing project: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized application in %s\n", p.Root())
			return nil
		},
	}

	return cmd
}
