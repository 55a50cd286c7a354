package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/dto"
	"github.com/sweetshop/api/internal/core/logger"
	"github.com/sweetshop/api/internal/core/port"
	"github.com/sweetshop/api/internal/core/serviceerrors"
)

const bcryptCost = 10

type AuthService struct {
	userRepository port.UserPort
	tokens         port.TokenIssuer
}

func NewAuthService(userRepository port.UserPort, tokens port.TokenIssuer) *AuthService {
	return &AuthService{userRepository: userRepository, tokens: tokens}
}

func (s *AuthService) issue(user *domain.User) (string, error) {
	return s.tokens.Issue(domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
}

func (s *AuthService) Register(ctx context.Context, request *dto.RegisterRequest) (string, *domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcryptCost)
	if err != nil {
		return "", nil, err
	}

	user := domain.NewUser(request.Name, request.Email, string(hash), domain.RoleUser)
	if err := s.userRepository.Create(ctx, user); err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
			return "", nil, serviceerrors.NewConflictError("email already registered")
		}
		logger.Error(ctx, "auth: register failed", err, map[string]any{
			"email": request.Email,
		})
		return "", nil, err
	}

	token, err := s.issue(user)
	if err != nil {
		return "", nil, err
	}

	logger.Info(ctx, "User registered", map[string]any{"user_id": user.ID})
	return token, user, nil
}

func (s *AuthService) Login(ctx context.Context, request *dto.LoginRequest) (string, *domain.User, error) {
	user, err := s.userRepository.GetByEmail(ctx, request.Email)
	if err != nil {
		// unknown email and bad password look the same to the caller
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return "", nil, serviceerrors.NewUnauthorizedError("invalid credentials")
		}
		logger.Error(ctx, "auth: login lookup failed", err, map[string]any{
			"email": request.Email,
		})
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return "", nil, serviceerrors.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.issue(user)
	if err != nil {
		return "", nil, err
	}

	logger.Info(ctx, "User logged in", map[string]any{"user_id": user.ID})
	return token, user, nil
}

// EnsureAdmin seeds the administrative account on startup when it is not
// already present.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.userRepository.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	admin := domain.NewUser(name, email, string(hash), domain.RoleAdmin)
	if err := s.userRepository.Create(ctx, admin); err != nil {
		// a concurrent instance may have seeded it first
		if serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
			return nil
		}
		return err
	}

	logger.Info(ctx, "Admin account seeded", map[string]any{"email": email})
	return nil
}
