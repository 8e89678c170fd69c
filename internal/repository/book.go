package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
)

type bookRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookRepository(db *sqlx.DB, log *zap.Logger) (*bookRepository, error) {
	return &bookRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const bookColumns = "id, book_uid, isbn, title, author, category, total_quantity, available_quantity, average_rating"

func (r *bookRepository) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	q := qb.Select("id", "book_uid", "isbn", "title", "author", "category", "total_quantity", "available_quantity", "average_rating").
		From(bookTableName)

	if filter.Category != "" && filter.Category != "all" {
		q = q.Where(sq.Eq{"category": filter.Category})
	}
	switch filter.Availability {
	case "available":
		q = q.Where(sq.Gt{"available_quantity": 0})
	case "borrowed":
		q = q.Where("available_quantity < total_quantity")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"author": pattern},
			sq.ILike{"isbn": pattern},
		})
	}
	switch filter.SortBy {
	case "author":
		q = q.OrderBy("author")
	case "recent":
		q = q.OrderBy("id desc")
	default:
		q = q.OrderBy("title")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, wrapStorage(err)
	}
	return books, nil
}

func (r *bookRepository) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	var book model.Book
	err := r.db.GetContext(ctx, &book,
		`select `+bookColumns+` from book where book_uid = $1`, bookUid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, wrapStorage(err)
	}
	return book, nil
}

func (r *bookRepository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	q, args, err := qb.Insert(bookTableName).
		Columns("book_uid", "isbn", "title", "author", "category", "total_quantity", "available_quantity").
		Values(uuid.New(), req.ISBN, req.Title, req.Author, req.Category, req.TotalQuantity, req.TotalQuantity).
		Suffix("returning " + bookColumns).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Book{}, errs.ErrDuplicateISBN
		}
		r.log.Error("CreateBook", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, wrapStorage(err)
	}
	return book, nil
}

// UpdateBook recomputes the available count from the new total and the copies
// currently out, and refuses a total below that number.
func (r *bookRepository) UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	const q = `
update book
    set title = $2, author = $3, category = $4,
        total_quantity = $5,
        available_quantity = $5 - (total_quantity - available_quantity)
where book_uid = $1 and $5 >= total_quantity - available_quantity
returning ` + bookColumns

	var book model.Book
	err := r.db.GetContext(ctx, &book, q, bookUid, req.Title, req.Author, req.Category, req.TotalQuantity)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Book{}, wrapStorage(err)
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `select exists(select 1 from book where book_uid = $1)`, bookUid); err != nil {
		return model.Book{}, wrapStorage(err)
	}
	if exists {
		return model.Book{}, errs.ErrQuantityBelow
	}
	return model.Book{}, errs.ErrBookNotFound
}

// AddReview stores the review and refreshes the book's average rating in the
// same transaction, so a concurrent reader never sees a rating the stored
// reviews do not support.
func (r *bookRepository) AddReview(ctx context.Context, bookUid, username string, req model.CreateReviewRequest) (model.Review, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Review{}, wrapStorage(err)
	}
	defer tx.Rollback() //nolint:errcheck

	var bookID int
	if err := tx.GetContext(ctx, &bookID, `select id from book where book_uid = $1`, bookUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Review{}, errs.ErrBookNotFound
		}
		return model.Review{}, wrapStorage(err)
	}

	q, args, err := qb.Insert(reviewTableName).
		Columns("book_id", "username", "rating", "comment").
		Values(bookID, username, req.Rating, req.Comment).
		Suffix("returning id, username, rating, comment, created_at").
		ToSql()
	if err != nil {
		return model.Review{}, err
	}

	var review model.Review
	if err := tx.GetContext(ctx, &review, q, args...); err != nil {
		r.log.Error("AddReview", zap.String("q", q), zap.Any("args", args))
		return model.Review{}, wrapStorage(err)
	}

	const refresh = `
update book
    set average_rating = (select round(avg(rating), 2) from review where book_id = $1)
where id = $1`
	if _, err := tx.ExecContext(ctx, refresh, bookID); err != nil {
		return model.Review{}, wrapStorage(err)
	}
	if err := tx.Commit(); err != nil {
		return model.Review{}, wrapStorage(err)
	}
	return review, nil
}

func (r *bookRepository) ListReviews(ctx context.Context, bookUid string) ([]model.Review, error) {
	var bookID int
	if err := r.db.GetContext(ctx, &bookID, `select id from book where book_uid = $1`, bookUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrBookNotFound
		}
		return nil, wrapStorage(err)
	}

	var reviews []model.Review
	err := r.db.SelectContext(ctx, &reviews,
		`select id, username, rating, comment, created_at from review where book_id = $1 order by id desc`,
		bookID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return reviews, nil
}

// DeleteBook refuses to remove a book that active loans still reference.
func (r *bookRepository) DeleteBook(ctx context.Context, bookUid string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapStorage(err)
	}
	defer tx.Rollback() //nolint:errcheck

	var bookID int
	if err := tx.GetContext(ctx, &bookID, `select id from book where book_uid = $1`, bookUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrBookNotFound
		}
		return wrapStorage(err)
	}

	var hasActive bool
	if err := tx.GetContext(ctx, &hasActive,
		`select exists(select 1 from loan where book_id = $1 and status = 'BORROWED')`, bookID); err != nil {
		return wrapStorage(err)
	}
	if hasActive {
		return errs.ErrBookHasLoans
	}

	if _, err := tx.ExecContext(ctx, `delete from book where id = $1`, bookID); err != nil {
		return wrapStorage(err)
	}
	return wrapStorage(tx.Commit())
}
