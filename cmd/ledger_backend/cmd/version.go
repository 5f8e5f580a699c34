package cmd

import (
	"fmt"

	"github.com/SscSPs/smallbiz_ledger/internal/handlers"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the build version of the ledger backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ledger_backend version %s\n", handlers.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
