package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/smallbiz_ledger/internal/core/ports/services"
	"github.com/SscSPs/smallbiz_ledger/internal/core/services"
	"github.com/SscSPs/smallbiz_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func reqLine(accountID, debit, credit string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, Debit: json.RawMessage(debit), Credit: json.RawMessage(credit)}
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	runner          *fakeRunner
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.runner = newFakeRunner(suite.mockAccountRepo, suite.mockJournalRepo, nil, nil)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.runner,
		services.WithClock(func() time.Time { return fixedNow }))
}

func (suite *JournalServiceTestSuite) knownAccounts(ids ...string) {
	found := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		found[id] = domain.Account{AccountID: id, AccountType: domain.Asset}
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(found, nil).Once()
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Balanced() {
	ctx := context.Background()
	req := dto.JournalEntryRequest{
		Date:        "2024-01-01",
		Description: strPtr("Owner investment"),
		Lines: []dto.JournalLineRequest{
			reqLine("acc-a", "100", "0"),
			reqLine("acc-b", "0", "100"),
		},
	}
	suite.knownAccounts("acc-a", "acc-b")

	var storedID string
	suite.mockJournalRepo.On("InsertEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		storedID = e.EntryID
		return e.EntryID != "" && e.Status == domain.Posted && !e.IsVoid &&
			e.EntryDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			*e.Description == "Owner investment" && e.Reference == nil
	})).Return(nil).Once()
	suite.mockJournalRepo.On("InsertLines", ctx, mock.MatchedBy(func(lines []domain.JournalLine) bool {
		return len(lines) == 2 && lines[0].EntryID == storedID && lines[1].EntryID == storedID &&
			lines[0].AccountID == "acc-a" && lines[0].Debit.Equal(decimal.NewFromInt(100)) &&
			lines[1].AccountID == "acc-b" && lines[1].Credit.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(storedID, entry.EntryID)
	suite.Equal(domain.Posted, entry.Status)
	suite.False(entry.IsVoid)
	suite.Equal(fixedNow, entry.CreatedAt)
	suite.True(suite.runner.committed)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_CoercesStringAmounts() {
	ctx := context.Background()
	req := dto.JournalEntryRequest{
		Date: "2024-01-01",
		Lines: []dto.JournalLineRequest{
			reqLine("acc-a", `"12.50"`, ""),
			reqLine("acc-b", "null", `"12.5"`),
		},
	}
	suite.knownAccounts("acc-a", "acc-b")
	suite.mockJournalRepo.On("InsertEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("InsertLines", ctx, mock.MatchedBy(func(lines []domain.JournalLine) bool {
		return lines[0].Debit.Equal(decimal.RequireFromString("12.5")) && lines[0].Credit.IsZero() &&
			lines[1].Debit.IsZero() && lines[1].Credit.Equal(decimal.RequireFromString("12.5"))
	})).Return(nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.JournalEntryRequest{
		Date: "2024-01-01",
		Lines: []dto.JournalLineRequest{
			reqLine("acc-a", "100", "0"),
			reqLine("acc-b", "0", "90"),
		},
	}

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	var unbalanced *apperrors.UnbalancedError
	suite.Require().True(errors.As(err, &unbalanced))
	suite.True(unbalanced.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(unbalanced.TotalCredit.Equal(decimal.NewFromInt(90)))
	suite.Zero(suite.runner.calls, "no transaction may start for an unbalanced entry")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_WithinTolerance() {
	ctx := context.Background()
	req := dto.JournalEntryRequest{
		Date: "2024-01-01",
		Lines: []dto.JournalLineRequest{
			reqLine("acc-a", "100.01", "0"),
			reqLine("acc-b", "0", "100"),
		},
	}
	suite.knownAccounts("acc-a", "acc-b")
	suite.mockJournalRepo.On("InsertEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("InsertLines", ctx, mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().NoError(err)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InvalidLines() {
	tests := []struct {
		name  string
		lines []dto.JournalLineRequest
	}{
		{name: "no lines", lines: nil},
		{name: "missing account", lines: []dto.JournalLineRequest{reqLine("", "10", "0"), reqLine("acc-b", "0", "10")}},
		{name: "malformed amount", lines: []dto.JournalLineRequest{reqLine("acc-a", `"ten"`, "0"), reqLine("acc-b", "0", "10")}},
		{name: "negative amount", lines: []dto.JournalLineRequest{reqLine("acc-a", "-10", "0"), reqLine("acc-b", "0", "-10")}},
		{name: "zero line", lines: []dto.JournalLineRequest{reqLine("acc-a", "0", "0")}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateJournalEntry(context.Background(), dto.JournalEntryRequest{Date: "2024-01-01", Lines: tt.lines})
			suite.ErrorIs(err, apperrors.ErrInvalidLine)
		})
	}
	suite.Zero(suite.runner.calls)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_BadDate() {
	req := dto.JournalEntryRequest{
		Date:  "01/02/2024",
		Lines: []dto.JournalLineRequest{reqLine("acc-a", "10", "0"), reqLine("acc-b", "0", "10")},
	}

	_, err := suite.service.CreateJournalEntry(context.Background(), req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.runner.calls)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnknownAccount() {
	ctx := context.Background()
	req := dto.JournalEntryRequest{
		Date:  "2024-01-01",
		Lines: []dto.JournalLineRequest{reqLine("acc-a", "10", "0"), reqLine("ghost", "0", "10")},
	}
	suite.knownAccounts("acc-a")

	_, err := suite.service.CreateJournalEntry(ctx, req)

	suite.ErrorIs(err, apperrors.ErrInvalidLine)
	suite.Contains(err.Error(), "ghost")
	suite.False(suite.runner.committed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_LineInsertFailsRollsBack() {
	ctx := context.Background()
	req := dto.JournalEntryRequest{
		Date:  "2024-01-01",
		Lines: []dto.JournalLineRequest{reqLine("acc-a", "10", "0"), reqLine("acc-b", "0", "10")},
	}
	suite.knownAccounts("acc-a", "acc-b")
	suite.mockJournalRepo.On("InsertEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("InsertLines", ctx, mock.AnythingOfType("[]domain.JournalLine")).Return(assert.AnError).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, assert.AnError)
	suite.False(suite.runner.committed)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_ReplacesLines() {
	ctx := context.Background()
	entryID := "je-1"
	existing := &domain.JournalEntry{EntryID: entryID, Status: domain.Posted, CreatedAt: fixedNow.Add(-time.Hour)}
	req := dto.JournalEntryRequest{
		Date:      "2024-02-01",
		Reference: strPtr("INV-7"),
		Lines:     []dto.JournalLineRequest{reqLine("acc-a", "40", "0"), reqLine("acc-b", "0", "40")},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.knownAccounts("acc-a", "acc-b")
	suite.mockJournalRepo.On("UpdateEntryHeader", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.EntryID == entryID && *e.Reference == "INV-7" && e.CreatedAt.Equal(existing.CreatedAt)
	})).Return(nil).Once()
	deleted := suite.mockJournalRepo.On("DeleteLinesByEntryID", ctx, entryID).Return(nil).Once()
	suite.mockJournalRepo.On("InsertLines", ctx, mock.MatchedBy(func(lines []domain.JournalLine) bool {
		return len(lines) == 2 && lines[0].EntryID == entryID && lines[1].EntryID == entryID
	})).Return(nil).Once().NotBefore(deleted)

	entry, err := suite.service.UpdateJournalEntry(ctx, entryID, req)

	suite.Require().NoError(err)
	suite.Equal(entryID, entry.EntryID)
	suite.Len(entry.Lines, 2)
	suite.True(suite.runner.committed)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_NotFound() {
	ctx := context.Background()
	req := dto.JournalEntryRequest{
		Date:  "2024-02-01",
		Lines: []dto.JournalLineRequest{reqLine("acc-a", "40", "0"), reqLine("acc-b", "0", "40")},
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.UpdateJournalEntry(ctx, "missing", req)

	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryHeader", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_Voided() {
	ctx := context.Background()
	req := dto.JournalEntryRequest{
		Date:  "2024-02-01",
		Lines: []dto.JournalLineRequest{reqLine("acc-a", "40", "0"), reqLine("acc-b", "0", "40")},
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, "je-1").Return(&domain.JournalEntry{EntryID: "je-1", IsVoid: true, Status: domain.Voided}, nil).Once()

	_, err := suite.service.UpdateJournalEntry(ctx, "je-1", req)

	suite.ErrorIs(err, apperrors.ErrAlreadyVoided)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_UnbalancedBeforeLookup() {
	req := dto.JournalEntryRequest{
		Date:  "2024-02-01",
		Lines: []dto.JournalLineRequest{reqLine("acc-a", "40", "0"), reqLine("acc-b", "0", "30")},
	}

	_, err := suite.service.UpdateJournalEntry(context.Background(), "je-1", req)

	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.Zero(suite.runner.calls)
}

func (suite *JournalServiceTestSuite) TestGetJournalEntry_Success() {
	ctx := context.Background()
	header := &domain.JournalEntry{EntryID: "je-1", Status: domain.Posted}
	lines := []domain.JournalLine{
		{LineID: "l1", EntryID: "je-1", AccountID: "acc-a", AccountCode: "1000", AccountName: "Cash", AccountType: domain.Asset, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{LineID: "l2", EntryID: "je-1", AccountID: "acc-b", AccountCode: "3000", AccountName: "Capital", AccountType: domain.Equity, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, "je-1").Return(header, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, "je-1").Return(lines, nil).Once()

	entry, err := suite.service.GetJournalEntry(ctx, "je-1")

	suite.Require().NoError(err)
	suite.Equal(lines, entry.Lines)
	totalDebit, totalCredit := domain.SumLines(entry.Lines)
	suite.True(domain.IsBalanced(totalDebit, totalCredit))
	suite.Equal(1, suite.runner.snapshots, "header and lines are read in one snapshot")
	suite.Zero(suite.runner.calls)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetJournalEntry_LinesFailure() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "je-1").Return(&domain.JournalEntry{EntryID: "je-1"}, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, "je-1").Return(nil, assert.AnError).Once()

	entry, err := suite.service.GetJournalEntry(ctx, "je-1")

	suite.Nil(entry)
	suite.ErrorIs(err, assert.AnError)
	suite.Equal(1, suite.runner.snapshots)
}

func (suite *JournalServiceTestSuite) TestGetJournalEntry_NotFound() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GetJournalEntry(ctx, "nope")

	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries() {
	ctx := context.Background()
	expected := []domain.JournalEntry{{EntryID: "je-2"}, {EntryID: "je-1"}}
	suite.mockJournalRepo.On("ListEntries", ctx).Return(expected, nil).Once()

	entries, err := suite.service.ListJournalEntries(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, entries)
}

func (suite *JournalServiceTestSuite) TestListJournalEntriesPage() {
	ctx := context.Background()
	entries := []domain.JournalEntry{{EntryID: "je-2", EntryDate: fixedNow}}
	suite.mockJournalRepo.On("ListEntriesPage", ctx, 1, (*string)(nil)).Return(entries, "token-2", nil).Once()

	resp, err := suite.service.ListJournalEntriesPage(ctx, dto.ListJournalEntriesParams{Limit: 1})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.Equal("je-2", resp.Entries[0].EntryID)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-2", *resp.NextToken)
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntry_PostedIsRejected() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "je-1").Return(&domain.JournalEntry{EntryID: "je-1", Status: domain.Posted}, nil).Once()

	err := suite.service.DeleteJournalEntry(ctx, "je-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntry_Voided() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "je-1").Return(&domain.JournalEntry{EntryID: "je-1", Status: domain.Voided, IsVoid: true}, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", ctx, "je-1").Return(nil).Once()

	err := suite.service.DeleteJournalEntry(ctx, "je-1")

	suite.Require().NoError(err)
	suite.True(suite.runner.committed)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
