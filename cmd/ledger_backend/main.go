package main

import (
	"os"

	"github.com/SscSPs/smallbiz_ledger/cmd/ledger_backend/cmd"
)

// @title Small Business Ledger API
// @version 1.0
// @description Double-entry ledger with inventory-driven journal automation.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
