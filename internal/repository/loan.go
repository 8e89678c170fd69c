package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
)

type loanRepository struct {
	db        *sqlx.DB
	inventory InventoryRepository
	log       *zap.Logger
}

func NewLoanRepository(db *sqlx.DB, inventory InventoryRepository, log *zap.Logger) (*loanRepository, error) {
	return &loanRepository{
		db:        db,
		inventory: inventory,
		log:       log.Named("repo"),
	}, nil
}

// Borrow runs the whole borrow flow in one transaction: duplicate check,
// inventory reservation, loan insert. A failed insert rolls the reserved copy
// back, so no compensation path is needed.
func (r *loanRepository) Borrow(ctx context.Context, username, bookUid string, borrowDate, dueDate time.Time) (model.Loan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Loan{}, wrapStorage(err)
	}
	defer tx.Rollback() //nolint:errcheck

	var bookID int
	if err := tx.GetContext(ctx, &bookID, `select id from book where book_uid = $1`, bookUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrBookNotFound
		}
		return model.Loan{}, wrapStorage(err)
	}

	var hasActive bool
	if err := tx.GetContext(ctx, &hasActive,
		`select exists(select 1 from loan where username = $1 and book_id = $2 and status = 'BORROWED')`,
		username, bookID); err != nil {
		return model.Loan{}, wrapStorage(err)
	}
	if hasActive {
		return model.Loan{}, errs.ErrDuplicateLoan
	}

	if err := r.inventory.ReserveCopy(ctx, tx, bookID, username, dueDate); err != nil {
		return model.Loan{}, err
	}

	q, args, err := qb.Insert(loanTableName).
		Columns("loan_uid", "book_id", "username", "status", "borrow_date", "due_date").
		Values(uuid.New(), bookID, username, model.LoanStatusBorrowed, borrowDate, dueDate).
		Suffix("returning id, loan_uid, username, status, borrow_date, due_date, return_date, fine").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var loan model.Loan
	if err := tx.GetContext(ctx, &loan, q, args...); err != nil {
		// the partial unique index catches duplicate borrows that raced past
		// the existence check above
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Loan{}, errs.ErrDuplicateLoan
		}
		r.log.Error("Borrow insert", zap.String("q", q), zap.Any("args", args))
		return model.Loan{}, wrapStorage(err)
	}
	loan.BookUid = bookUid

	if err := tx.Commit(); err != nil {
		return model.Loan{}, wrapStorage(err)
	}
	return loan, nil
}

func (r *loanRepository) GetActiveLoan(ctx context.Context, loanUid string) (model.Loan, error) {
	q, args, err := qb.Select("l.id", "loan_uid", "l.username", "book_uid", "status", "borrow_date", "due_date", "return_date", "fine").
		From(loanTableName+" l").
		Join("book b on b.id = l.book_id").
		Where("loan_uid = ?", loanUid).
		Where("status = ?", model.LoanStatusBorrowed).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrLoanNotFound
		}
		return model.Loan{}, wrapStorage(err)
	}
	return loan, nil
}

// CompleteLoan flips an active loan to RETURNED and credits the inventory in
// the same transaction. The status guard makes a second return on the same
// loan report ErrLoanNotFound instead of crediting the ledger twice.
func (r *loanRepository) CompleteLoan(ctx context.Context, loanUid string, returnDate time.Time, fine int) (model.Loan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Loan{}, wrapStorage(err)
	}
	defer tx.Rollback() //nolint:errcheck

	const complete = `
update loan
    set status = 'RETURNED', return_date = $2, fine = $3
where loan_uid = $1 and status = 'BORROWED'
returning id, loan_uid, book_id, username, status, borrow_date, due_date, return_date, fine`

	var loan struct {
		model.Loan
		BookID int `db:"book_id"`
	}
	if err := tx.GetContext(ctx, &loan, complete, loanUid, returnDate, fine); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrLoanNotFound
		}
		return model.Loan{}, wrapStorage(err)
	}

	if err := r.inventory.ReleaseCopy(ctx, tx, loan.BookID, loan.Username); err != nil {
		return model.Loan{}, err
	}

	if err := tx.GetContext(ctx, &loan.Loan.BookUid, `select book_uid from book where id = $1`, loan.BookID); err != nil {
		return model.Loan{}, wrapStorage(err)
	}

	if err := tx.Commit(); err != nil {
		return model.Loan{}, wrapStorage(err)
	}
	return loan.Loan, nil
}

func (r *loanRepository) ListActive(ctx context.Context, username string) ([]model.ActiveLoan, error) {
	q, args, err := qb.Select("loan_uid", "book_uid", "title", "author", "isbn", "borrow_date", "due_date").
		From(loanTableName+" l").
		Join("book b on b.id = l.book_id").
		Where("l.username = ?", username).
		Where("l.status = ?", model.LoanStatusBorrowed).
		OrderBy("l.id desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	var items []model.ActiveLoan
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, wrapStorage(err)
	}
	return items, nil
}

func (r *loanRepository) ListHistory(ctx context.Context, username string) ([]model.HistoryItem, error) {
	// left join: history outlives catalog deletions
	q, args, err := qb.Select("loan_uid", "coalesce(b.book_uid::text, '') as book_uid",
		"coalesce(title, '') as title", "coalesce(author, '') as author", "coalesce(isbn, '') as isbn",
		"status", "borrow_date", "due_date", "return_date", "fine").
		From(loanTableName+" l").
		LeftJoin("book b on b.id = l.book_id").
		Where("l.username = ?", username).
		OrderBy("l.id desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	var items []model.HistoryItem
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, wrapStorage(err)
	}
	return items, nil
}

func (r *loanRepository) ListAll(ctx context.Context) ([]model.Loan, error) {
	q, args, err := qb.Select("l.id", "loan_uid", "l.username", "coalesce(b.book_uid::text, '') as book_uid",
		"status", "borrow_date", "due_date", "return_date", "fine").
		From(loanTableName + " l").
		LeftJoin("book b on b.id = l.book_id").
		OrderBy("l.id desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	var items []model.Loan
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, wrapStorage(err)
	}
	return items, nil
}
