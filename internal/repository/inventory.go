package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/errs"
)

type inventoryRepository struct {
	log *zap.Logger
}

func NewInventoryRepository(log *zap.Logger) *inventoryRepository {
	return &inventoryRepository{
		log: log.Named("inventory"),
	}
}

// ReserveCopy decrements the available count and records the borrower. The
// decrement is conditional on available_quantity > 0, so two concurrent
// reservations of the last copy resolve to one success and one ErrNotAvailable.
func (r *inventoryRepository) ReserveCopy(ctx context.Context, ec sqlx.ExtContext, bookID int, username string, dueDate time.Time) error {
	const decrement = `
update book
    set available_quantity = available_quantity - 1
where id = $1 and available_quantity > 0`

	res, err := ec.ExecContext(ctx, decrement, bookID)
	if err != nil {
		return wrapStorage(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapStorage(err)
	}
	if n == 0 {
		var exists bool
		if err := sqlx.GetContext(ctx, ec, &exists, `select exists(select 1 from book where id = $1)`, bookID); err != nil {
			return wrapStorage(err)
		}
		if !exists {
			return errs.ErrBookNotFound
		}
		return errs.ErrNotAvailable
	}

	_, err = ec.ExecContext(ctx,
		`insert into book_borrower (book_id, username, due_date) values ($1, $2, $3)`,
		bookID, username, dueDate)
	return wrapStorage(err)
}

// ReleaseCopy removes the borrower record and credits the available count.
// Returning a copy of a book that was deleted from the catalog yields
// ErrBookNotFound. A missing borrower record or a count that would exceed
// total_quantity is a consistency violation: logged and rejected, never
// clamped.
func (r *inventoryRepository) ReleaseCopy(ctx context.Context, ec sqlx.ExtContext, bookID int, username string) error {
	res, err := ec.ExecContext(ctx,
		`delete from book_borrower where book_id = $1 and username = $2`,
		bookID, username)
	if err != nil {
		return wrapStorage(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapStorage(err)
	}
	if n == 0 {
		var exists bool
		if err := sqlx.GetContext(ctx, ec, &exists, `select exists(select 1 from book where id = $1)`, bookID); err != nil {
			return wrapStorage(err)
		}
		if !exists {
			return errs.ErrBookNotFound
		}
		r.log.Error("release without matching borrower record",
			zap.Int("book_id", bookID), zap.String("username", username))
		return errs.ErrNoActiveBorrow
	}

	const increment = `
update book
    set available_quantity = available_quantity + 1
where id = $1 and available_quantity < total_quantity`

	res, err = ec.ExecContext(ctx, increment, bookID)
	if err != nil {
		return wrapStorage(err)
	}
	if n, err = res.RowsAffected(); err != nil {
		return wrapStorage(err)
	}
	if n == 0 {
		r.log.Error("release would exceed total quantity", zap.Int("book_id", bookID))
		return errs.ErrLedgerOverflow
	}
	return nil
}
