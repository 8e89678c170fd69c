package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/pkg/auth"
)

func TestCalcFine(t *testing.T) {
	t.Parallel()
	due := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		returnAt time.Time
		want     int
	}{
		{
			name:     "on time",
			returnAt: due.AddDate(0, 0, -1),
			want:     0,
		},
		{
			name:     "exactly at due date",
			returnAt: due,
			want:     0,
		},
		{
			name:     "an hour late counts as a day",
			returnAt: due.Add(time.Hour),
			want:     1,
		},
		{
			name:     "two days late",
			returnAt: due.AddDate(0, 0, 2),
			want:     2,
		},
		{
			name:     "two days and a minute late",
			returnAt: due.AddDate(0, 0, 2).Add(time.Minute),
			want:     3,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, CalcFine(due, tt.returnAt))
		})
	}
}

func TestLoan_IsOverdue(t *testing.T) {
	t.Parallel()
	due := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	loan := model.Loan{Status: model.LoanStatusBorrowed, DueDate: due}
	require.False(t, loan.IsOverdue(due))
	require.True(t, loan.IsOverdue(due.Add(time.Second)))

	returned := model.Loan{Status: model.LoanStatusReturned, DueDate: due}
	require.False(t, returned.IsOverdue(due.AddDate(0, 0, 30)))
}

// fakeBook is one catalog row guarded by fakeLoanRepo.mu.
type fakeBook struct {
	uid       string
	total     int
	available int
}

// fakeLoanRepo mimics the transactional loan repository in memory. Borrow
// applies the same guards as the SQL path: one active loan per user and book,
// and a reservation that only succeeds while copies remain.
type fakeLoanRepo struct {
	mu    sync.Mutex
	books map[string]*fakeBook
	loans []model.Loan
}

func newFakeLoanRepo(books ...*fakeBook) *fakeLoanRepo {
	m := make(map[string]*fakeBook, len(books))
	for _, b := range books {
		m[b.uid] = b
	}
	return &fakeLoanRepo{books: m}
}

func (f *fakeLoanRepo) Borrow(_ context.Context, username, bookUid string, borrowDate, dueDate time.Time) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.books[bookUid]
	if !ok {
		return model.Loan{}, errs.ErrBookNotFound
	}
	for _, l := range f.loans {
		if l.Username == username && l.BookUid == bookUid && l.Status == model.LoanStatusBorrowed {
			return model.Loan{}, errs.ErrDuplicateLoan
		}
	}
	if b.available == 0 {
		return model.Loan{}, errs.ErrNotAvailable
	}
	b.available--

	loan := model.Loan{
		LoanUid:    uuid.NewString(),
		Username:   username,
		BookUid:    bookUid,
		Status:     model.LoanStatusBorrowed,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
	}
	f.loans = append(f.loans, loan)
	return loan, nil
}

func (f *fakeLoanRepo) GetActiveLoan(_ context.Context, loanUid string) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.loans {
		if l.LoanUid == loanUid && l.Status == model.LoanStatusBorrowed {
			return l, nil
		}
	}
	return model.Loan{}, errs.ErrLoanNotFound
}

func (f *fakeLoanRepo) CompleteLoan(_ context.Context, loanUid string, returnDate time.Time, fine int) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.loans {
		l := &f.loans[i]
		if l.LoanUid != loanUid || l.Status != model.LoanStatusBorrowed {
			continue
		}
		l.Status = model.LoanStatusReturned
		l.ReturnDate = &returnDate
		l.Fine = &fine
		f.books[l.BookUid].available++
		return *l, nil
	}
	return model.Loan{}, errs.ErrLoanNotFound
}

func (f *fakeLoanRepo) ListActive(_ context.Context, username string) ([]model.ActiveLoan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []model.ActiveLoan
	for i := len(f.loans) - 1; i >= 0; i-- {
		l := f.loans[i]
		if l.Username == username && l.Status == model.LoanStatusBorrowed {
			items = append(items, model.ActiveLoan{
				LoanUid:    l.LoanUid,
				BookUid:    l.BookUid,
				BorrowDate: l.BorrowDate,
				DueDate:    l.DueDate,
			})
		}
	}
	return items, nil
}

func (f *fakeLoanRepo) ListHistory(_ context.Context, username string) ([]model.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []model.HistoryItem
	for i := len(f.loans) - 1; i >= 0; i-- {
		l := f.loans[i]
		if l.Username != username {
			continue
		}
		items = append(items, model.HistoryItem{
			LoanUid:    l.LoanUid,
			BookUid:    l.BookUid,
			Status:     l.Status,
			BorrowDate: l.BorrowDate,
			DueDate:    l.DueDate,
			ReturnDate: l.ReturnDate,
			Fine:       l.Fine,
		})
	}
	return items, nil
}

func (f *fakeLoanRepo) ListAll(_ context.Context) ([]model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Loan, len(f.loans))
	copy(out, f.loans)
	return out, nil
}

func newTestLoanService(repo *fakeLoanRepo, now time.Time) *LoanService {
	svc := NewLoanService(repo, nil, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestLoanService_BorrowReturn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newFakeLoanRepo(&fakeBook{uid: "b-1", total: 2, available: 2})
	svc := newTestLoanService(repo, start)

	loan, err := svc.Borrow(ctx, "alice", "b-1")
	require.NoError(t, err)
	require.Equal(t, model.LoanStatusBorrowed, loan.Status)
	require.Equal(t, start.AddDate(0, 0, LoanPeriodDays), loan.DueDate)
	require.Equal(t, 1, repo.books["b-1"].available)

	_, err = svc.Borrow(ctx, "alice", "b-1")
	require.ErrorIs(t, err, errs.ErrDuplicateLoan)

	_, err = svc.Borrow(ctx, "alice", "no-such-book")
	require.ErrorIs(t, err, errs.ErrBookNotFound)

	// three days late
	svc.now = func() time.Time { return loan.DueDate.AddDate(0, 0, 3) }
	returned, err := svc.Return(ctx, auth.Identity{Username: "alice"}, loan.LoanUid)
	require.NoError(t, err)
	require.Equal(t, model.LoanStatusReturned, returned.Status)
	require.NotNil(t, returned.Fine)
	require.Equal(t, 3*FinePerDay, *returned.Fine)
	require.Equal(t, 2, repo.books["b-1"].available)

	// the loan is no longer active
	_, err = svc.Return(ctx, auth.Identity{Username: "alice"}, loan.LoanUid)
	require.ErrorIs(t, err, errs.ErrLoanNotFound)

	history, err := svc.ListHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, model.LoanStatusReturned, history[0].Status)
}

func TestLoanService_ReturnOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newFakeLoanRepo(&fakeBook{uid: "b-1", total: 1, available: 1})
	svc := newTestLoanService(repo, start)

	loan, err := svc.Borrow(ctx, "alice", "b-1")
	require.NoError(t, err)

	// another user cannot see or return it
	_, err = svc.Return(ctx, auth.Identity{Username: "bob"}, loan.LoanUid)
	require.ErrorIs(t, err, errs.ErrLoanNotFound)

	// an admin can, and the credit goes back to the shelf
	returned, err := svc.Return(ctx, auth.Identity{Username: "librarian", Role: auth.RoleAdmin}, loan.LoanUid)
	require.NoError(t, err)
	require.Equal(t, "alice", returned.Username)
	require.Equal(t, 1, repo.books["b-1"].available)
}

func TestLoanService_LastCopyRace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newFakeLoanRepo(&fakeBook{uid: "b-1", total: 1, available: 1})
	svc := newTestLoanService(repo, start)

	const borrowers = 8
	errCh := make(chan error, borrowers)
	var wg sync.WaitGroup
	for i := 0; i < borrowers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Borrow(ctx, []string{"u0", "u1", "u2", "u3", "u4", "u5", "u6", "u7"}[i], "b-1")
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	var ok, unavailable int
	for err := range errCh {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, errs.ErrNotAvailable):
			unavailable++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, borrowers-1, unavailable)
	require.Equal(t, 0, repo.books["b-1"].available)
}

func TestLoanService_ListActiveOverdue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newFakeLoanRepo(&fakeBook{uid: "b-1", total: 1, available: 1})
	svc := newTestLoanService(repo, start)

	loan, err := svc.Borrow(ctx, "alice", "b-1")
	require.NoError(t, err)

	active, err := svc.ListActive(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.False(t, active[0].IsOverdue)

	svc.now = func() time.Time { return loan.DueDate.Add(time.Hour) }
	active, err = svc.ListActive(ctx, "alice")
	require.NoError(t, err)
	require.True(t, active[0].IsOverdue)
}
