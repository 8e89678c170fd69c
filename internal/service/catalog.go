package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/internal/repository"
)

type CatalogService struct {
	log  *zap.Logger
	repo repository.BookRepository
}

func NewCatalogService(repo repository.BookRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{
		log:  log,
		repo: repo,
	}
}

func (s *CatalogService) ListBooks(ctx context.Context, filter model.BookFilter) (model.ListBooks, error) {
	books, err := s.repo.ListBooks(ctx, filter)
	if err != nil {
		return model.ListBooks{}, err
	}
	for i := range books {
		books[i].Status = books[i].ComputeStatus()
	}
	return model.ListBooks{Items: books}, nil
}

func (s *CatalogService) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	book, err := s.repo.GetBook(ctx, bookUid)
	if err != nil {
		return model.Book{}, err
	}
	book.Status = book.ComputeStatus()
	return book, nil
}

func (s *CatalogService) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	book, err := s.repo.CreateBook(ctx, req)
	if err != nil {
		return model.Book{}, err
	}
	book.Status = book.ComputeStatus()
	return book, nil
}

func (s *CatalogService) UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	book, err := s.repo.UpdateBook(ctx, bookUid, req)
	if err != nil {
		return model.Book{}, err
	}
	book.Status = book.ComputeStatus()
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, bookUid string) error {
	return s.repo.DeleteBook(ctx, bookUid)
}

func (s *CatalogService) AddReview(ctx context.Context, bookUid, username string, req model.CreateReviewRequest) (model.Review, error) {
	return s.repo.AddReview(ctx, bookUid, username, req)
}

func (s *CatalogService) ListReviews(ctx context.Context, bookUid string) ([]model.Review, error) {
	return s.repo.ListReviews(ctx, bookUid)
}
