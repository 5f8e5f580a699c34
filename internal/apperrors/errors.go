package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation is not allowed in the resource's current state.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal wraps unexpected store or runtime failures.
var ErrInternal = errors.New("internal error")

var (
	// ErrUnbalanced is returned when total debits and credits differ beyond tolerance.
	// Use errors.As with *UnbalancedError to read the totals.
	ErrUnbalanced = errors.New("journal entry is unbalanced")
	// ErrInvalidLine is returned for a journal line without an account or with no amount.
	ErrInvalidLine   = errors.New("invalid journal line")
	ErrAlreadyVoided = errors.New("journal entry is already voided")
	ErrNoLines       = errors.New("journal entry has no lines")
	// ErrInvalidInput covers bad stock movement input (type, product, quantity).
	ErrInvalidInput = errors.New("invalid input")
)

// UnbalancedError carries both totals of an entry that failed the balance check.
type UnbalancedError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("%s: total debit %s, total credit %s", ErrUnbalanced, e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
}

// Is lets errors.Is(err, ErrUnbalanced) match.
func (e *UnbalancedError) Is(target error) bool {
	return target == ErrUnbalanced
}

// NewUnbalancedError builds an UnbalancedError for the given totals.
func NewUnbalancedError(totalDebit, totalCredit decimal.Decimal) error {
	return &UnbalancedError{TotalDebit: totalDebit, TotalCredit: totalCredit}
}

// AppError is an error annotated with an HTTP-style status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError. A nil err is replaced with ErrInternal for 5xx codes.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil && code >= 500 {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError wrapping ErrNotFound for the named resource.
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{Code: 404, Message: fmt.Sprintf("%s %s not found", resource, id), Err: ErrNotFound}
}
