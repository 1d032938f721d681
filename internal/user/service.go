package user

import (
	"context"
	"strings"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

type Service interface {
	Register(ctx context.Context, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email = normalizeEmail(email)
	if err := validate.Var(email, "required,email,max=255"); err != nil {
		return "", User{}, ErrInvalidEmail
	}
	if len(password) < 8 || len(password) > 72 {
		return "", User{}, ErrWeakPassword
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed)
	if err != nil {
		log.Warn("failed to create user", zap.String("email", email), zap.Error(err))
		return "", User{}, err
	}

	token, err := auth.GenerateToken(s.jwtSecret, u.ID, u.Email, u.IsStaff)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		log.Info("login rejected: unknown email")
		return "", User{}, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Info("login rejected: password mismatch", zap.Uint("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, u.ID, u.Email, u.IsStaff)
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}
