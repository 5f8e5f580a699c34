package seed_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smallbiz_ledger/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChart = `
accounts:
  - code: "1000"
    name: Cash
    type: asset
  - code: "1200"
    name: Inventory
    type: ASSET
  - code: "3000"
    name: Owner Equity
    type: EQUITY
  - code: "5000"
    name: Cost of Goods Sold
    type: EXPENSE
warehouses:
  - name: Main
products:
  - sku: WID-1
    name: Widget
`

type fakeAccounts struct {
	portsrepo.AccountRepositoryFacade
	saved []domain.Account
	err   error
}

func (f *fakeAccounts) UpsertAccount(_ context.Context, a domain.Account) (*domain.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, a)
	return &a, nil
}

type fakeWarehouses struct{ saved []domain.Warehouse }

func (f *fakeWarehouses) UpsertWarehouse(_ context.Context, w domain.Warehouse) (*domain.Warehouse, error) {
	f.saved = append(f.saved, w)
	return &w, nil
}

type fakeProducts struct {
	portsrepo.ProductRepositoryFacade
	saved []domain.Product
}

func (f *fakeProducts) UpsertProduct(_ context.Context, p domain.Product) (*domain.Product, error) {
	f.saved = append(f.saved, p)
	return &p, nil
}

type fakeScope struct {
	portsrepo.TxScope
	accounts   *fakeAccounts
	warehouses *fakeWarehouses
	products   *fakeProducts
}

func (s *fakeScope) Accounts() portsrepo.AccountRepositoryFacade { return s.accounts }
func (s *fakeScope) Warehouses() portsrepo.WarehouseRepository   { return s.warehouses }
func (s *fakeScope) Products() portsrepo.ProductRepositoryFacade { return s.products }

type fakeRunner struct {
	scope *fakeScope
	calls int
}

func (r *fakeRunner) RunInTx(_ context.Context, fn func(scope portsrepo.TxScope) error) error {
	r.calls++
	return fn(r.scope)
}

func (r *fakeRunner) RunInSnapshot(_ context.Context, fn func(scope portsrepo.TxScope) error) error {
	return fn(r.scope)
}

func newRunner() *fakeRunner {
	return &fakeRunner{scope: &fakeScope{
		accounts:   &fakeAccounts{},
		warehouses: &fakeWarehouses{},
		products:   &fakeProducts{},
	}}
}

func TestParse(t *testing.T) {
	chart, err := seed.Parse([]byte(sampleChart))
	require.NoError(t, err)
	assert.Len(t, chart.Accounts, 4)
	assert.Equal(t, "Main", chart.Warehouses[0].Name)
	assert.Equal(t, "WID-1", chart.Products[0].SKU)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown type", "accounts:\n  - {code: \"1\", name: X, type: BOGUS}\n"},
		{"missing code", "accounts:\n  - {name: X, type: ASSET}\n"},
		{"duplicate code", "accounts:\n  - {code: \"1\", name: X, type: ASSET}\n  - {code: \"1\", name: Y, type: ASSET}\n"},
		{"missing sku", "products:\n  - {name: Widget}\n"},
		{"empty warehouse", "warehouses:\n  - {name: \"\"}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestParse_BadYAML(t *testing.T) {
	_, err := seed.Parse([]byte("accounts: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleChart), 0o600))

	chart, err := seed.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, chart.Products, 1)

	_, err = seed.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	chart, err := seed.Parse([]byte(sampleChart))
	require.NoError(t, err)
	runner := newRunner()

	res, err := seed.Apply(context.Background(), runner, chart)
	require.NoError(t, err)

	assert.Equal(t, seed.Result{Accounts: 4, Warehouses: 1, Products: 1}, res)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, domain.Asset, runner.scope.accounts.saved[0].AccountType)
	assert.True(t, runner.scope.accounts.saved[0].IsActive)
	assert.NotEmpty(t, runner.scope.accounts.saved[0].AccountID)
	assert.True(t, runner.scope.products.saved[0].QuantityOnHand.IsZero())
}

func TestApply_StopsOnError(t *testing.T) {
	chart, err := seed.Parse([]byte(sampleChart))
	require.NoError(t, err)
	runner := newRunner()
	runner.scope.accounts.err = errors.New("boom")

	res, err := seed.Apply(context.Background(), runner, chart)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account 1000")
	assert.Equal(t, seed.Result{}, res)
	assert.Empty(t, runner.scope.products.saved)
}
