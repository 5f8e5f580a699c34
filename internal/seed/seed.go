// Package seed loads a chart of accounts, warehouses and products from a YAML
// file and upserts them in one transaction.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ChartFile is the on-disk seed document.
type ChartFile struct {
	Accounts   []AccountSeed   `yaml:"accounts"`
	Warehouses []WarehouseSeed `yaml:"warehouses"`
	Products   []ProductSeed   `yaml:"products"`
}

type AccountSeed struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Inactive bool   `yaml:"inactive,omitempty"`
}

type WarehouseSeed struct {
	Name string `yaml:"name"`
}

type ProductSeed struct {
	SKU  string `yaml:"sku"`
	Name string `yaml:"name"`
}

// Result counts the rows written by Apply.
type Result struct {
	Accounts   int
	Warehouses int
	Products   int
}

// LoadFile reads and validates a seed document.
func LoadFile(path string) (*ChartFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a seed document.
func Parse(data []byte) (*ChartFile, error) {
	chart := &ChartFile{}
	if err := yaml.Unmarshal(data, chart); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := chart.Validate(); err != nil {
		return nil, err
	}
	return chart, nil
}

// Validate checks required fields, account types and duplicate keys.
func (c *ChartFile) Validate() error {
	var errs []error
	codes := make(map[string]bool, len(c.Accounts))
	for i, a := range c.Accounts {
		switch {
		case strings.TrimSpace(a.Code) == "":
			errs = append(errs, fmt.Errorf("accounts[%d]: code is required", i))
		case codes[a.Code]:
			errs = append(errs, fmt.Errorf("accounts[%d]: duplicate code %q", i, a.Code))
		}
		codes[a.Code] = true
		if strings.TrimSpace(a.Name) == "" {
			errs = append(errs, fmt.Errorf("accounts[%d]: name is required", i))
		}
		if !domain.AccountType(strings.ToUpper(a.Type)).IsValid() {
			errs = append(errs, fmt.Errorf("accounts[%d]: unknown type %q", i, a.Type))
		}
	}
	for i, w := range c.Warehouses {
		if strings.TrimSpace(w.Name) == "" {
			errs = append(errs, fmt.Errorf("warehouses[%d]: name is required", i))
		}
	}
	skus := make(map[string]bool, len(c.Products))
	for i, p := range c.Products {
		switch {
		case strings.TrimSpace(p.SKU) == "":
			errs = append(errs, fmt.Errorf("products[%d]: sku is required", i))
		case skus[p.SKU]:
			errs = append(errs, fmt.Errorf("products[%d]: duplicate sku %q", i, p.SKU))
		}
		skus[p.SKU] = true
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("products[%d]: name is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, errors.Join(errs...))
	}
	return nil
}

// Apply upserts the whole chart atomically. Existing rows are matched by
// account code, warehouse name and product SKU; product quantities are never touched.
func Apply(ctx context.Context, runner portsrepo.TransactionRunner, chart *ChartFile) (Result, error) {
	var res Result
	now := time.Now().UTC()
	err := runner.RunInTx(ctx, func(scope portsrepo.TxScope) error {
		for _, a := range chart.Accounts {
			_, err := scope.Accounts().UpsertAccount(ctx, domain.Account{
				AccountID:   uuid.NewString(),
				Code:        a.Code,
				Name:        a.Name,
				AccountType: domain.AccountType(strings.ToUpper(a.Type)),
				IsActive:    !a.Inactive,
				CreatedAt:   now,
			})
			if err != nil {
				return fmt.Errorf("account %s: %w", a.Code, err)
			}
			res.Accounts++
		}
		for _, w := range chart.Warehouses {
			_, err := scope.Warehouses().UpsertWarehouse(ctx, domain.Warehouse{
				WarehouseID: uuid.NewString(),
				Name:        w.Name,
				CreatedAt:   now,
			})
			if err != nil {
				return fmt.Errorf("warehouse %s: %w", w.Name, err)
			}
			res.Warehouses++
		}
		for _, p := range chart.Products {
			_, err := scope.Products().UpsertProduct(ctx, domain.Product{
				ProductID:      uuid.NewString(),
				SKU:            p.SKU,
				Name:           p.Name,
				QuantityOnHand: decimal.Zero,
				CreatedAt:      now,
			})
			if err != nil {
				return fmt.Errorf("product %s: %w", p.SKU, err)
			}
			res.Products++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
