package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"libraryapi/internal/api/middleware"
	"libraryapi/internal/api/models"
	"libraryapi/internal/api/repository"
)

// Client-caused auth failures, mapped to 400 by the controller. Anything
// else bubbling out of the service is a server-side failure.
var (
	ErrUsernameTaken      = errors.New("Username already exists")
	ErrInvalidCredentials = errors.New("Invalid username or password")
)

// AuthService defines registration and login business logic.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisteredUser, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
}

type authService struct {
	users     repository.UserRepository
	secret    []byte
	expiresIn time.Duration
}

// NewAuthService creates an AuthService signing tokens with the given
// secret.
func NewAuthService(users repository.UserRepository, secret []byte, expiresIn time.Duration) AuthService {
	return &authService{
		users:     users,
		secret:    secret,
		expiresIn: expiresIn,
	}
}

// Register creates a credentialed user. The username must not be taken.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisteredUser, error) {
	existing, err := s.users.GetAccountByUsername(ctx, *req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.users.CreateAccount(ctx, *req.Username, string(hash), *req.Role)
	if err != nil {
		return nil, err
	}

	return &models.RegisteredUser{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
	}, nil
}

// Login verifies the credentials and returns a signed token. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	account, err := s.users.GetAccountByUsername(ctx, *req.Username)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(*req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := &middleware.Claims{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiresIn)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
