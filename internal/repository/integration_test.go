//go:build integration

package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/internal/repository"
	"github.com/bookery/library-service/migrations"
)

// newTestDB connects to the database named by TEST_DB_DSN and applies the
// embedded migrations. Tests create their own rows with unique names, so a
// shared database stays usable between runs.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	goose.SetBaseFS(migrations.MigrationFiles)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db.DB, "."))
	return db
}

func createTestUser(t *testing.T, db *sqlx.DB) string {
	t.Helper()
	repo, err := repository.NewUserRepository(db, zap.NewNop())
	require.NoError(t, err)

	username := "user-" + uuid.NewString()[:18]
	require.NoError(t, repo.Create(context.Background(), model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         "user",
	}))
	return username
}

func createTestBook(t *testing.T, db *sqlx.DB, copies int) model.Book {
	t.Helper()
	repo, err := repository.NewBookRepository(db, zap.NewNop())
	require.NoError(t, err)

	book, err := repo.CreateBook(context.Background(), model.CreateBookRequest{
		Title:         "t-" + uuid.NewString(),
		Author:        "a",
		ISBN:          uuid.NewString()[:20],
		Category:      model.CategoryFiction,
		TotalQuantity: copies,
	})
	require.NoError(t, err)
	return book
}

func availableCount(t *testing.T, db *sqlx.DB, bookUid string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `select available_quantity from book where book_uid = $1`, bookUid))
	return n
}

// Two goroutines race for the last copy: exactly one borrow commits, the
// other observes the conditional decrement finding zero copies.
func TestLoanRepository_LastCopyRace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	log := zap.NewNop()

	loans, err := repository.NewLoanRepository(db, repository.NewInventoryRepository(log), log)
	require.NoError(t, err)

	book := createTestBook(t, db, 1)
	borrowDate := time.Now().UTC()
	dueDate := borrowDate.AddDate(0, 0, 14)

	const borrowers = 8
	usernames := make([]string, borrowers)
	for i := range usernames {
		usernames[i] = createTestUser(t, db)
	}

	errc := make(chan error, borrowers)
	var wg sync.WaitGroup
	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func(username string) {
			defer wg.Done()
			_, err := loans.Borrow(ctx, username, book.BookUid, borrowDate, dueDate)
			errc <- err
		}(usernames[i])
	}
	wg.Wait()
	close(errc)

	var ok, conflicts int
	for err := range errc {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, errs.ErrNotAvailable)
		conflicts++
	}
	require.Equal(t, 1, ok)
	require.Equal(t, borrowers-1, conflicts)
	require.Equal(t, 0, availableCount(t, db, book.BookUid))
}

// The same user racing against themselves is stopped either by the duplicate
// check or by the partial unique index — never by two committed loans.
func TestLoanRepository_DuplicateBorrowRace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	log := zap.NewNop()

	loans, err := repository.NewLoanRepository(db, repository.NewInventoryRepository(log), log)
	require.NoError(t, err)

	book := createTestBook(t, db, 5)
	username := createTestUser(t, db)
	borrowDate := time.Now().UTC()
	dueDate := borrowDate.AddDate(0, 0, 14)

	const attempts = 4
	errc := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := loans.Borrow(ctx, username, book.BookUid, borrowDate, dueDate)
			errc <- err
		}()
	}
	wg.Wait()
	close(errc)

	var ok int
	for err := range errc {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, errs.ErrDuplicateLoan)
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 4, availableCount(t, db, book.BookUid))
}

// A second return of the same loan reports ErrLoanNotFound and the ledger is
// credited exactly once.
func TestLoanRepository_ReturnIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	log := zap.NewNop()

	loans, err := repository.NewLoanRepository(db, repository.NewInventoryRepository(log), log)
	require.NoError(t, err)

	book := createTestBook(t, db, 2)
	username := createTestUser(t, db)
	borrowDate := time.Now().UTC()
	dueDate := borrowDate.AddDate(0, 0, 14)

	loan, err := loans.Borrow(ctx, username, book.BookUid, borrowDate, dueDate)
	require.NoError(t, err)
	require.Equal(t, 1, availableCount(t, db, book.BookUid))

	returned, err := loans.CompleteLoan(ctx, loan.LoanUid, borrowDate.AddDate(0, 0, 7), 0)
	require.NoError(t, err)
	require.Equal(t, model.LoanStatusReturned, returned.Status)
	require.Equal(t, 2, availableCount(t, db, book.BookUid))

	_, err = loans.CompleteLoan(ctx, loan.LoanUid, borrowDate.AddDate(0, 0, 8), 0)
	require.ErrorIs(t, err, errs.ErrLoanNotFound)
	require.Equal(t, 2, availableCount(t, db, book.BookUid))
}

// Releasing a copy of a vanished book and releasing without a borrower record
// are distinct failures.
func TestInventoryRepository_ReleaseCopyErrors(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inventory := repository.NewInventoryRepository(zap.NewNop())

	err := inventory.ReleaseCopy(ctx, db, 1<<30, createTestUser(t, db))
	require.ErrorIs(t, err, errs.ErrBookNotFound)

	book := createTestBook(t, db, 1)
	err = inventory.ReleaseCopy(ctx, db, book.ID, createTestUser(t, db))
	require.ErrorIs(t, err, errs.ErrNoActiveBorrow)
}

func TestBookRepository_Reviews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	books, err := repository.NewBookRepository(db, zap.NewNop())
	require.NoError(t, err)

	book := createTestBook(t, db, 1)
	require.Zero(t, book.AverageRating)

	alice := createTestUser(t, db)
	bob := createTestUser(t, db)

	_, err = books.AddReview(ctx, book.BookUid, alice, model.CreateReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = books.AddReview(ctx, book.BookUid, bob, model.CreateReviewRequest{Rating: 2})
	require.NoError(t, err)

	got, err := books.GetBook(ctx, book.BookUid)
	require.NoError(t, err)
	require.InDelta(t, 3.5, got.AverageRating, 0.001)

	reviews, err := books.ListReviews(ctx, book.BookUid)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.Equal(t, bob, reviews[0].Username)

	_, err = books.AddReview(ctx, uuid.NewString(), alice, model.CreateReviewRequest{Rating: 4})
	require.ErrorIs(t, err, errs.ErrBookNotFound)
}
