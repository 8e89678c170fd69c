package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookery/library-service/internal/errs"
	"github.com/bookery/library-service/internal/model"
	"github.com/bookery/library-service/internal/repository"
	"github.com/bookery/library-service/pkg/auth"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	log       *zap.Logger
	repo      repository.UserRepository
	adminCode string
}

func NewAuthService(repo repository.UserRepository, adminCode string, log *zap.Logger) *AuthService {
	return &AuthService{
		log:       log,
		repo:      repo,
		adminCode: adminCode,
	}
}

// Register stores a new user. A matching admin code elevates the role.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "hash password")
	}

	role := auth.RoleUser
	if s.adminCode != "" && req.AdminCode == s.adminCode {
		role = auth.RoleAdmin
	}

	user := model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return model.AuthResponse{}, err
	}
	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return model.AuthResponse{}, errs.ErrInvalidCreds
		}
		return model.AuthResponse{}, err
	}
	if !user.Active {
		return model.AuthResponse{}, errs.ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.AuthResponse{}, errs.ErrInvalidCreds
	}
	return s.issueToken(user)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) issueToken(user model.User) (model.AuthResponse, error) {
	expirationTime := time.Now().Add(tokenTTL)
	claims := &auth.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}
	claims.Profile.Username = user.Username
	claims.Profile.Role = user.Role

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(auth.JWTKey)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "sign token")
	}

	return model.AuthResponse{
		Username:    user.Username,
		Role:        user.Role,
		ExpiresIn:   int(tokenTTL.Seconds()),
		AccessToken: tokenString,
	}, nil
}
