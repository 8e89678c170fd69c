package handler

import (
	"context"

	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/internal/service"
	"github.com/bookery/library-service/pkg/auth"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	ListBooks(ctx context.Context, filter model.BookFilter) (model.ListBooks, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookUid string) error
	AddReview(ctx context.Context, bookUid, username string, req model.CreateReviewRequest) (model.Review, error)
	ListReviews(ctx context.Context, bookUid string) ([]model.Review, error)
}

type LoanService interface {
	Borrow(ctx context.Context, username, bookUid string) (model.Loan, error)
	Return(ctx context.Context, ident auth.Identity, loanUid string) (model.Loan, error)
	ListActive(ctx context.Context, username string) ([]model.ActiveLoan, error)
	ListHistory(ctx context.Context, username string) ([]model.HistoryItem, error)
	ListAll(ctx context.Context) ([]model.Loan, error)
}

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
	Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type StatsService interface {
	AdminDashboard(ctx context.Context) (model.AdminDashboard, error)
	UserDashboard(ctx context.Context, username string) (model.UserDashboard, error)
	Report(ctx context.Context) (model.Report, error)
	Notifications(ctx context.Context, username string) (model.Notifications, error)
	Recommendations(ctx context.Context, username string) ([]model.Book, error)
}

var (
	_ CatalogService = (*service.CatalogService)(nil)
	_ LoanService    = (*service.LoanService)(nil)
	_ AuthService    = (*service.AuthService)(nil)
	_ StatsService   = (*service.StatsService)(nil)
)
