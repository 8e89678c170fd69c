package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
)

type userRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUserRepository(db *sqlx.DB, log *zap.Logger) (*userRepository, error) {
	return &userRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) error {
	q, args, err := qb.Insert(usersTableName).
		Columns("username", "email", "password_hash", "role").
		Values(user.Username, user.Email, user.PasswordHash, user.Role).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errs.ErrUserExists
		}
		return wrapStorage(err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user,
		`select id, username, email, password_hash, role, active from users where email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, wrapStorage(err)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.SelectContext(ctx, &users,
		`select id, username, email, password_hash, role, active from users order by username`)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return users, nil
}
