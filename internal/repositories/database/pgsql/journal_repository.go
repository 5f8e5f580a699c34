package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/smallbiz_ledger/internal/apperrors"
	"github.com/SscSPs/smallbiz_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smallbiz_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smallbiz_ledger/internal/models"
	"github.com/SscSPs/smallbiz_ledger/internal/utils/mapping"
	"github.com/SscSPs/smallbiz_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(db Querier) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_date, description, reference, status, is_void, reversed_of, created_at`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.IsVoid,
		&m.ReversedOf,
		&m.CreatedAt,
	)
	return m, err
}

func collectEntries(rows pgx.Rows) ([]models.JournalEntry, error) {
	defer rows.Close()
	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return entries, nil
}

// InsertEntry inserts a journal entry header.
func (r *PgxJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.DB.Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.Status,
		m.IsVoid,
		m.ReversedOf,
		m.CreatedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert journal entry %s", m.EntryID)
	}
	return nil
}

// InsertLines inserts all lines in one batch round trip.
func (r *PgxJournalRepository) InsertLines(ctx context.Context, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery, m.LineID, m.EntryID, m.AccountID, m.Debit, m.Credit, m.CreatedAt)
	}

	// Close reports the first failing statement of the batch
	br := r.DB.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapWriteError(err, "failed to insert lines for journal entry %s", lines[0].EntryID)
	}
	return nil
}

// voidStateError explains why a guarded update touched no rows.
func (r *PgxJournalRepository) voidStateError(ctx context.Context, entryID string) error {
	var isVoid bool
	err := r.DB.QueryRow(ctx, `SELECT is_void FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&isVoid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check journal entry %s: %w", entryID, err)
	}
	if isVoid {
		return apperrors.ErrAlreadyVoided
	}
	return fmt.Errorf("journal entry %s was not modified", entryID)
}

// UpdateEntryHeader updates date, description and reference of a non-void entry.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, reference = $4
		WHERE entry_id = $1 AND NOT is_void;
	`
	cmdTag, err := r.DB.Exec(ctx, query, m.EntryID, m.EntryDate, m.Description, m.Reference)
	if err != nil {
		return mapWriteError(err, "failed to update journal entry %s", m.EntryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.voidStateError(ctx, m.EntryID)
	}
	return nil
}

// DeleteLinesByEntryID removes every line of an entry.
func (r *PgxJournalRepository) DeleteLinesByEntryID(ctx context.Context, entryID string) error {
	if _, err := r.DB.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines of journal entry %s: %w", entryID, err)
	}
	return nil
}

// MarkEntryVoided voids a posted entry. The is_void guard makes a concurrent
// second void fail instead of silently succeeding.
func (r *PgxJournalRepository) MarkEntryVoided(ctx context.Context, entryID string) error {
	query := `
		UPDATE journal_entries
		SET is_void = TRUE, status = $2
		WHERE entry_id = $1 AND NOT is_void;
	`
	cmdTag, err := r.DB.Exec(ctx, query, entryID, string(models.Voided))
	if err != nil {
		return fmt.Errorf("failed to void journal entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.voidStateError(ctx, entryID)
	}
	return nil
}

// DeleteEntry removes an entry header; lines cascade.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	cmdTag, err := r.DB.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return mapWriteError(err, "failed to delete journal entry %s", entryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.DB.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines of an entry with their account details.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.created_at,
		       a.code, a.name, a.account_type
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = $1
		ORDER BY l.created_at, l.line_id;
	`
	rows, err := r.DB.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.CreatedAt,
			&l.AccountCode,
			&l.AccountName,
			&l.AccountType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for journal entry %s: %w", entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for journal entry %s: %w", entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntries retrieves all entries, date descending.
func (r *PgxJournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries ORDER BY entry_date DESC, created_at DESC;`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJournalEntrySlice(entries), nil
}

// ListEntriesPage retrieves a page of entries using keyset pagination on (entry_date, created_at).
func (r *PgxJournalRepository) ListEntriesPage(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []any{}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		query += ` WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entry page: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainJournalEntrySlice(entries), nextTokenVal, nil
}

// SumLinesByAccount returns total debits and credits posted to an account.
func (r *PgxJournalRepository) SumLinesByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_lines
		WHERE account_id = $1;
	`
	var totalDebit, totalCredit decimal.Decimal
	if err := r.DB.QueryRow(ctx, query, accountID).Scan(&totalDebit, &totalCredit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum lines for account %s: %w", accountID, err)
	}
	return totalDebit, totalCredit, nil
}
