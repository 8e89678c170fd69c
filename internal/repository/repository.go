package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
)

type BookRepository interface {
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookUid string) error
	AddReview(ctx context.Context, bookUid, username string, req model.CreateReviewRequest) (model.Review, error)
	ListReviews(ctx context.Context, bookUid string) ([]model.Review, error)
}

// InventoryRepository is the inventory ledger: the only writer of
// book.available_quantity and book_borrower rows. Both operations run on a
// caller-supplied executor so the loan repository can include them in its
// transaction.
type InventoryRepository interface {
	ReserveCopy(ctx context.Context, ec sqlx.ExtContext, bookID int, username string, dueDate time.Time) error
	ReleaseCopy(ctx context.Context, ec sqlx.ExtContext, bookID int, username string) error
}

type LoanRepository interface {
	Borrow(ctx context.Context, username, bookUid string, borrowDate, dueDate time.Time) (model.Loan, error)
	GetActiveLoan(ctx context.Context, loanUid string) (model.Loan, error)
	CompleteLoan(ctx context.Context, loanUid string, returnDate time.Time, fine int) (model.Loan, error)
	ListActive(ctx context.Context, username string) ([]model.ActiveLoan, error)
	ListHistory(ctx context.Context, username string) ([]model.HistoryItem, error)
	ListAll(ctx context.Context) ([]model.Loan, error)
}

type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type StatsRepository interface {
	InsertEvent(ctx context.Context, event model.LoanEvent) error
	RecentEvents(ctx context.Context, limit int) ([]model.LoanEvent, error)
	TotalBooks(ctx context.Context) (int, error)
	ActiveUsers(ctx context.Context) (int, error)
	TotalLoans(ctx context.Context) (int, error)
	ActiveLoans(ctx context.Context) (int, error)
	OverdueLoans(ctx context.Context, now time.Time) (int, error)
	PopularBooks(ctx context.Context, limit int) ([]model.PopularBook, error)
	DueSoon(ctx context.Context, username string, from, to time.Time) ([]model.DueNotice, error)
	Overdue(ctx context.Context, username string, now time.Time) ([]model.OverdueNotice, error)
	Recommendations(ctx context.Context, username string, limit int) ([]model.Book, error)
}

const (
	bookTableName     = `book`
	borrowerTableName = `book_borrower`
	loanTableName     = `loan`
	usersTableName    = `users`
	eventsTableName   = `events`
	reviewTableName   = `review`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// wrapStorage classifies persistence failures: the database answered (pg
// error, no rows) vs the database is unreachable. The latter surfaces as the
// retryable ErrStorageUnavailable.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.Wrap(errs.ErrStorageUnavailable, err.Error())
}
