package errs

import (
	"errors"
)

// Domain errors. Recoverable, mapped to 4xx at the handler boundary.
var (
	ErrBookNotFound  = errors.New("book not found")
	ErrLoanNotFound  = errors.New("no active borrow record found")
	ErrNotAvailable  = errors.New("no copies left")
	ErrDuplicateLoan = errors.New("you already have this book borrowed")
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrInvalidCreds  = errors.New("invalid email or password")
	ErrDuplicateISBN = errors.New("book with this isbn already exists")
	ErrBookHasLoans  = errors.New("book has active loans")
	ErrQuantityBelow = errors.New("total quantity below copies currently out")
)

// Consistency errors indicate a logic or race bug: the ledger refuses the
// write instead of silently repairing the counts.
var (
	ErrNoActiveBorrow = errors.New("no matching borrower record")
	ErrLedgerOverflow = errors.New("available quantity exceeds total quantity")
)

// ErrStorageUnavailable wraps persistence-layer failures. Retryable by the
// caller, never retried here.
var ErrStorageUnavailable = errors.New("storage unavailable")
