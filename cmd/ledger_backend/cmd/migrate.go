package cmd

import (
	"github.com/SscSPs/smallbiz_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or roll back database migrations",
	Long: `Apply pending migrations or roll back applied ones.

Example:
  ledger_backend migrate up
  ledger_backend migrate down --steps 1`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().IntVarP(&migrateSteps, "steps", "n", 0, "number of migrations to roll back (down only, 0 = all)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	return database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, args[0], migrateSteps)
}
