package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/model"
)

type statsRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewStatsRepository(db *sqlx.DB, log *zap.Logger) (*statsRepository, error) {
	return &statsRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

func (r *statsRepository) InsertEvent(ctx context.Context, event model.LoanEvent) error {
	q, args, err := qb.Insert(eventsTableName).
		Columns("timestamp", "username", "loan_uid", "book_uid", "event_type").
		Values(event.Timestamp, event.Username, event.LoanUid, event.BookUid, event.EventType).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		r.log.Error("InsertEvent", zap.String("q", q), zap.Any("args", args))
		return wrapStorage(err)
	}
	return nil
}

func (r *statsRepository) RecentEvents(ctx context.Context, limit int) ([]model.LoanEvent, error) {
	var events []model.LoanEvent
	err := r.db.SelectContext(ctx, &events,
		`select timestamp, username, loan_uid::text as loan_uid, book_uid::text as book_uid, event_type
		from events order by id desc limit $1`, limit)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return events, nil
}

func (r *statsRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, wrapStorage(err)
	}
	return n, nil
}

func (r *statsRepository) TotalBooks(ctx context.Context) (int, error) {
	return r.count(ctx, `select count(*) from book`)
}

func (r *statsRepository) ActiveUsers(ctx context.Context) (int, error) {
	return r.count(ctx, `select count(*) from users where active`)
}

func (r *statsRepository) TotalLoans(ctx context.Context) (int, error) {
	return r.count(ctx, `select count(*) from loan`)
}

func (r *statsRepository) ActiveLoans(ctx context.Context) (int, error) {
	return r.count(ctx, `select count(*) from loan where status = 'BORROWED'`)
}

func (r *statsRepository) OverdueLoans(ctx context.Context, now time.Time) (int, error) {
	return r.count(ctx, `select count(*) from loan where status = 'BORROWED' and due_date < $1`, now)
}

func (r *statsRepository) PopularBooks(ctx context.Context, limit int) ([]model.PopularBook, error) {
	const q = `
	select b.book_uid, b.title, b.author, count(*) as loan_count
	from loan l
	join book b on b.id = l.book_id
	group by b.book_uid, b.title, b.author
	order by loan_count desc
	limit $1`

	var books []model.PopularBook
	if err := r.db.SelectContext(ctx, &books, q, limit); err != nil {
		return nil, wrapStorage(err)
	}
	return books, nil
}

func (r *statsRepository) DueSoon(ctx context.Context, username string, from, to time.Time) ([]model.DueNotice, error) {
	const q = `
	select b.title, l.due_date
	from loan l
	join book b on b.id = l.book_id
	where l.username = $1 and l.status = 'BORROWED' and l.due_date >= $2 and l.due_date <= $3
	order by l.due_date`

	var notices []model.DueNotice
	if err := r.db.SelectContext(ctx, &notices, q, username, from, to); err != nil {
		return nil, wrapStorage(err)
	}
	return notices, nil
}

func (r *statsRepository) Overdue(ctx context.Context, username string, now time.Time) ([]model.OverdueNotice, error) {
	const q = `
	select b.title, l.due_date
	from loan l
	join book b on b.id = l.book_id
	where l.username = $1 and l.status = 'BORROWED' and l.due_date < $2
	order by l.due_date`

	var notices []model.OverdueNotice
	if err := r.db.SelectContext(ctx, &notices, q, username, now); err != nil {
		return nil, wrapStorage(err)
	}
	return notices, nil
}

// Recommendations picks available books from categories the user has borrowed
// before, excluding books the user has already taken out.
func (r *statsRepository) Recommendations(ctx context.Context, username string, limit int) ([]model.Book, error) {
	const q = `
	select ` + bookColumns + `
	from book
	where available_quantity > 0
	  and category in (
	      select distinct b.category from loan l join book b on b.id = l.book_id where l.username = $1)
	  and id not in (select book_id from loan where username = $1)
	order by title
	limit $2`

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, q, username, limit); err != nil {
		return nil, wrapStorage(err)
	}
	return books, nil
}
