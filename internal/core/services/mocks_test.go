package services_test

import (
	"context"

	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesPage(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SumLinesByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) InsertLines(ctx context.Context, lines []domain.JournalLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteLinesByEntryID(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkEntryVoided(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindFirstAccountByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock StockMovementRepository ---
type MockMovementRepository struct {
	mock.Mock
}

var _ portsrepo.StockMovementRepositoryFacade = (*MockMovementRepository)(nil)

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindMovementByIDForUpdate(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) ListMovements(ctx context.Context, productID *string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	args := m.Called(ctx, productID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.StockMovement), returnedNextToken, args.Error(2)
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, movement domain.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) UpdateMovement(ctx context.Context, movement domain.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) SetRelatedJournal(ctx context.Context, movementID string, journalID string) error {
	args := m.Called(ctx, movementID, journalID)
	return args.Error(0)
}

func (m *MockMovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	args := m.Called(ctx, movementID)
	return args.Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustQuantityOnHand(ctx context.Context, productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, productID, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockProductRepository) UpsertProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// --- Fake transaction runner ---

// fakeScope hands out the same mocks for the transaction and every savepoint.
type fakeScope struct {
	accounts  *MockAccountRepository
	journals  *MockJournalRepository
	movements *MockMovementRepository
	products  *MockProductRepository
	nested    int
}

func (s *fakeScope) Accounts() portsrepo.AccountRepositoryFacade        { return s.accounts }
func (s *fakeScope) Journals() portsrepo.JournalRepositoryFacade        { return s.journals }
func (s *fakeScope) Movements() portsrepo.StockMovementRepositoryFacade { return s.movements }
func (s *fakeScope) Products() portsrepo.ProductRepositoryFacade        { return s.products }
func (s *fakeScope) Warehouses() portsrepo.WarehouseRepository          { return nil }

func (s *fakeScope) Nested(ctx context.Context, fn func(scope portsrepo.TxScope) error) error {
	s.nested++
	return fn(s)
}

// fakeRunner runs fn against its scope and records whether it would commit.
type fakeRunner struct {
	scope     *fakeScope
	calls     int
	snapshots int
	committed bool
}

func (r *fakeRunner) RunInTx(ctx context.Context, fn func(scope portsrepo.TxScope) error) error {
	r.calls++
	if err := fn(r.scope); err != nil {
		r.committed = false
		return err
	}
	r.committed = true
	return nil
}

func (r *fakeRunner) RunInSnapshot(ctx context.Context, fn func(scope portsrepo.TxScope) error) error {
	r.snapshots++
	return fn(r.scope)
}

func newFakeRunner(accounts *MockAccountRepository, journals *MockJournalRepository, movements *MockMovementRepository, products *MockProductRepository) *fakeRunner {
	return &fakeRunner{scope: &fakeScope{
		accounts:  accounts,
		journals:  journals,
		movements: movements,
		products:  products,
	}}
}

// decimalEq matches a decimal argument by value rather than representation.
func decimalEq(value string) interface{} {
	expected := decimal.RequireFromString(value)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(expected) })
}

func strPtr(s string) *string { return &s }

var (
	_ portsrepo.TxScope           = (*fakeScope)(nil)
	_ portsrepo.TransactionRunner = (*fakeRunner)(nil)
)
