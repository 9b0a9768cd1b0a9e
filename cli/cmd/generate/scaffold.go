package generate

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tmeire/nifty/cli/project"
	"github.com/tmeire/nifty/scaffold"
)

// ScaffoldCmd returns a cobra.Command for the generate scaffold command
func ScaffoldCmd() *cobra.Command {
	var (
		req     scaffold.Request
		opts    project.WriteOptions
		rootDir string
		env     string
	)

	cmd := &cobra.Command{
		Use:     "scaffold NAME [field:type ...] [action ...] [!]",
		Aliases: []string{"nifty_scaffold"},
		Short:   "Generate a scaffold for a resource",
		Long: `Generate a scaffold with controller, helper, views, model and migration.

Arguments containing a colon are attributes (name:string, price:float).
Other arguments name the actions to generate (index show new create edit
update destroy). "new" implies "create" and "edit" implies "update". A "!"
argument inverts the list: every action except the ones listed is generated.

When no attributes are given the model is not generated. If the model
already exists its columns are read from the database configured in
config/database.yml, or from db/schema.rb.

This command:
1. Creates a controller with one method per action
2. Creates a view for each of the index, show, new and edit actions
3. Creates a helper module
4. Creates a model and a migration for the resource
5. Updates config/routes.rb to register the resource`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return scaffold.ErrUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(rootDir)
			if err != nil {
				return err
			}
			p.SetOutput(cmd.OutOrStdout())
			p.SetEnvironment(env)

			req.Name = args[0]
			req.Args = args[1:]

			_, err = p.AddScaffold(cmd.Context(), req, opts)
			return err
		},
	}

	cmd.Flags().BoolVar(&req.SkipModel, "skip-model", false, "Don't generate a model or migration file")
	cmd.Flags().BoolVar(&req.SkipMigration, "skip-migration", false, "Don't generate a migration file for the model")
	cmd.Flags().BoolVar(&req.SkipTimestamps, "skip-timestamps", false, "Don't add timestamps to the migration file")
	cmd.Flags().BoolVar(&req.Invert, "invert", false, "Generate all actions except the ones listed")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite files that already exist")
	cmd.Flags().BoolVarP(&opts.Pretend, "pretend", "p", false, "Run but don't make any changes")
	cmd.Flags().StringVar(&rootDir, "root", ".", "Application root directory")
	cmd.Flags().StringVar(&env, "env", envOr("NIFTY_ENV", "development"), "Environment in config/database.yml used to read existing tables")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
