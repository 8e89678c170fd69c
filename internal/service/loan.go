package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/internal/repository"
	"github.com/bookery/library-service/pkg/auth"
	"github.com/bookery/library-service/pkg/kafka"
)

// Loan policy.
const (
	LoanPeriodDays = 14
	FinePerDay     = 1
)

type LoanService struct {
	log  *zap.Logger
	repo repository.LoanRepository
	enq  Enqueuer
	now  func() time.Time
}

func NewLoanService(repo repository.LoanRepository, enq Enqueuer, log *zap.Logger) *LoanService {
	return &LoanService{
		log:  log,
		repo: repo,
		enq:  enq,
		now:  time.Now,
	}
}

// Borrow creates an active loan for (username, book). Duplicate detection,
// copy reservation and the loan insert are one atomic step in the repository.
func (s *LoanService) Borrow(ctx context.Context, username, bookUid string) (model.Loan, error) {
	now := s.now().UTC()
	loan, err := s.repo.Borrow(ctx, username, bookUid, now, now.AddDate(0, 0, LoanPeriodDays))
	if err != nil {
		return model.Loan{}, err
	}
	s.publish(kafka.EventLoanBorrowed, loan)
	return loan, nil
}

// Return completes an active loan, stamping the return date and fine and
// crediting the inventory. Admins may return any user's loan; the credited
// borrower stays the loan's owner.
func (s *LoanService) Return(ctx context.Context, ident auth.Identity, loanUid string) (model.Loan, error) {
	loan, err := s.repo.GetActiveLoan(ctx, loanUid)
	if err != nil {
		return model.Loan{}, err
	}
	if loan.Username != ident.Username && !ident.IsAdmin() {
		return model.Loan{}, errs.ErrLoanNotFound
	}

	now := s.now().UTC()
	updated, err := s.repo.CompleteLoan(ctx, loanUid, now, CalcFine(loan.DueDate, now))
	if err != nil {
		return model.Loan{}, err
	}
	s.publish(kafka.EventLoanReturned, updated)
	return updated, nil
}

// CalcFine charges FinePerDay per started day past the due date: an hour late
// is a full day.
func CalcFine(dueDate, returnDate time.Time) int {
	if !returnDate.After(dueDate) {
		return 0
	}
	daysLate := int(math.Ceil(returnDate.Sub(dueDate).Hours() / 24))
	return daysLate * FinePerDay
}

func (s *LoanService) ListActive(ctx context.Context, username string) ([]model.ActiveLoan, error) {
	items, err := s.repo.ListActive(ctx, username)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	for i := range items {
		items[i].IsOverdue = now.After(items[i].DueDate)
	}
	return items, nil
}

func (s *LoanService) ListHistory(ctx context.Context, username string) ([]model.HistoryItem, error) {
	items, err := s.repo.ListHistory(ctx, username)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	for i := range items {
		items[i].IsOverdue = items[i].Status == model.LoanStatusBorrowed && now.After(items[i].DueDate)
	}
	return items, nil
}

func (s *LoanService) ListAll(ctx context.Context) ([]model.Loan, error) {
	return s.repo.ListAll(ctx)
}

func (s *LoanService) publish(eventType string, loan model.Loan) {
	if s.enq == nil {
		return
	}
	event := kafka.EventLoan{
		Timestamp: s.now().UTC(),
		Username:  loan.Username,
		LoanUid:   loan.LoanUid,
		BookUid:   loan.BookUid,
		EventType: eventType,
	}
	if err := s.enq.Enqueue(kafka.LoanTopic, event); err != nil {
		s.log.Warn("loan event enqueue", zap.String("type", eventType), zap.Error(err))
	}
}
