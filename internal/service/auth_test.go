package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/pkg/auth"
)

// fakeUserRepo stores users by email. Create mimics the table default of
// active=true.
type fakeUserRepo struct {
	users map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user model.User) error {
	if _, ok := f.users[user.Email]; ok {
		return errs.ErrUserExists
	}
	user.Active = true
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	user, ok := f.users[email]
	if !ok {
		return model.User{}, errs.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "let-me-in", zap.NewNop())

	resp, err := svc.Register(ctx, model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, auth.RoleUser, resp.Role)

	claims := &auth.Claims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return auth.JWTKey, nil
	})
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Profile.Username)
	require.Equal(t, auth.RoleUser, claims.Profile.Role)

	// a matching admin code elevates the role
	resp, err = svc.Register(ctx, model.RegisterRequest{
		Username:  "librarian",
		Email:     "librarian@example.com",
		Password:  "correct-horse",
		AdminCode: "let-me-in",
	})
	require.NoError(t, err)
	require.Equal(t, auth.RoleAdmin, resp.Role)

	// a wrong code does not
	resp, err = svc.Register(ctx, model.RegisterRequest{
		Username:  "bob",
		Email:     "bob@example.com",
		Password:  "correct-horse",
		AdminCode: "guess",
	})
	require.NoError(t, err)
	require.Equal(t, auth.RoleUser, resp.Role)

	_, err = svc.Register(ctx, model.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.ErrorIs(t, err, errs.ErrUserExists)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "", zap.NewNop())

	_, err := svc.Register(ctx, model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, model.AuthRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, "alice", resp.Username)
	require.NotEmpty(t, resp.AccessToken)
	// expiresIn is the token lifetime in seconds, not an absolute timestamp
	require.Equal(t, int(tokenTTL.Seconds()), resp.ExpiresIn)

	_, err = svc.Login(ctx, model.AuthRequest{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, errs.ErrInvalidCreds)

	// unknown emails are indistinguishable from wrong passwords
	_, err = svc.Login(ctx, model.AuthRequest{Email: "nobody@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, errs.ErrInvalidCreds)

	// deactivated accounts cannot sign in
	user := repo.users["alice@example.com"]
	user.Active = false
	repo.users["alice@example.com"] = user
	_, err = svc.Login(ctx, model.AuthRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, errs.ErrInvalidCreds)
}
