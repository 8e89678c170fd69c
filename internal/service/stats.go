package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/internal/repository"
	"github.com/bookery/library-service/pkg/kafka"
)

const (
	dueSoonWindowDays = 3
	popularBooksLimit = 5
	recentEventsLimit = 10
	recommendLimit    = 5
)

type StatsService struct {
	log   *zap.Logger
	repo  repository.StatsRepository
	loans repository.LoanRepository
	now   func() time.Time
}

func NewStatsService(repo repository.StatsRepository, loans repository.LoanRepository, log *zap.Logger) *StatsService {
	return &StatsService{
		log:   log,
		repo:  repo,
		loans: loans,
		now:   time.Now,
	}
}

// Stats records one consumed loan event.
func (s *StatsService) Stats(ctx context.Context, event kafka.EventLoan) error {
	return s.repo.InsertEvent(ctx, model.LoanEvent{
		Timestamp: event.Timestamp,
		Username:  event.Username,
		LoanUid:   event.LoanUid,
		BookUid:   event.BookUid,
		EventType: event.EventType,
	})
}

func (s *StatsService) AdminDashboard(ctx context.Context) (model.AdminDashboard, error) {
	var dash model.AdminDashboard
	now := s.now().UTC()

	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() (err error) {
		dash.TotalBooks, err = s.repo.TotalBooks(ctx)
		return err
	})
	gg.Go(func() (err error) {
		dash.ActiveUsers, err = s.repo.ActiveUsers(ctx)
		return err
	})
	gg.Go(func() (err error) {
		dash.ActiveLoans, err = s.repo.ActiveLoans(ctx)
		return err
	})
	gg.Go(func() (err error) {
		dash.OverdueLoans, err = s.repo.OverdueLoans(ctx, now)
		return err
	})
	gg.Go(func() (err error) {
		dash.RecentEvents, err = s.repo.RecentEvents(ctx, recentEventsLimit)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.AdminDashboard{}, err
	}
	return dash, nil
}

func (s *StatsService) UserDashboard(ctx context.Context, username string) (model.UserDashboard, error) {
	items, err := s.loans.ListActive(ctx, username)
	if err != nil {
		return model.UserDashboard{}, err
	}
	now := s.now().UTC()
	for i := range items {
		items[i].IsOverdue = now.After(items[i].DueDate)
	}
	return model.UserDashboard{BorrowedBooks: items}, nil
}

func (s *StatsService) Report(ctx context.Context) (model.Report, error) {
	var report model.Report
	now := s.now().UTC()

	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() (err error) {
		report.TotalLoans, err = s.repo.TotalLoans(ctx)
		return err
	})
	gg.Go(func() (err error) {
		report.ActiveLoans, err = s.repo.ActiveLoans(ctx)
		return err
	})
	gg.Go(func() (err error) {
		report.OverdueLoans, err = s.repo.OverdueLoans(ctx, now)
		return err
	})
	gg.Go(func() (err error) {
		report.PopularBooks, err = s.repo.PopularBooks(ctx, popularBooksLimit)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.Report{}, err
	}
	return report, nil
}

func (s *StatsService) Notifications(ctx context.Context, username string) (model.Notifications, error) {
	now := s.now().UTC()

	overdue, err := s.repo.Overdue(ctx, username, now)
	if err != nil {
		return model.Notifications{}, err
	}
	for i := range overdue {
		overdue[i].DaysOverdue = int(math.Ceil(now.Sub(overdue[i].DueDate).Hours() / 24))
	}

	upcoming, err := s.repo.DueSoon(ctx, username, now, now.AddDate(0, 0, dueSoonWindowDays))
	if err != nil {
		return model.Notifications{}, err
	}

	return model.Notifications{
		UpcomingDue: upcoming,
		Overdue:     overdue,
	}, nil
}

func (s *StatsService) Recommendations(ctx context.Context, username string) ([]model.Book, error) {
	books, err := s.repo.Recommendations(ctx, username, recommendLimit)
	if err != nil {
		return nil, err
	}
	for i := range books {
		books[i].Status = books[i].ComputeStatus()
	}
	return books, nil
}
