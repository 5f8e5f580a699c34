package cmd

import (
	"log/slog"

	"github.com/SscSPs/smallbiz_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/smallbiz_ledger/internal/seed"
	"github.com/SscSPs/smallbiz_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data",
}

var seedAccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Upsert a chart of accounts, warehouses and products from YAML",
	Long: `Upsert accounts (by code), warehouses (by name) and products (by SKU)
from a YAML file in a single transaction. Product quantities are not changed.

Example:
  ledger_backend seed accounts --file configs/chart.example.yaml`,
	RunE: runSeedAccounts,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedAccountsCmd)
	seedAccountsCmd.Flags().StringVarP(&seedFile, "file", "f", "", "path to the chart YAML file")
	_ = seedAccountsCmd.MarkFlagRequired("file")
}

func runSeedAccounts(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	chart, err := seed.LoadFile(seedFile)
	if err != nil {
		logger.Error("Failed to load seed file", slog.String("file", seedFile), slog.String("error", err.Error()))
		return err
	}

	dbPool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, database.PoolOptions{Ping: true})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return err
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	res, err := seed.Apply(cmd.Context(), repos.TxRunner, chart)
	if err != nil {
		logger.Error("Failed to seed chart", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Seed applied",
		slog.Int("accounts", res.Accounts),
		slog.Int("warehouses", res.Warehouses),
		slog.Int("products", res.Products),
	)
	return nil
}
