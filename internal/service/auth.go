package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/benknight/cocolist/internal/auth"
	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/repository"
)

// RoleUser is the role given to self-registered reviewers.
const RoleUser = "user"

var (
	ErrMissingCredentials = errors.New("email and password must not be empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	users repository.UsersRepository
	jwt   *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwtManager}
}

// Register creates a reviewer account and returns a JWT for it. A blank name
// falls back to the local part of the email.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, name, string(hashed), RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return "", ErrEmailAlreadyExists
		}
		return "", err
	}

	return s.issue(user)
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issue(user)
}

// TokenTTL reports how long issued tokens stay valid.
func (s *AuthService) TokenTTL() time.Duration { return s.jwt.TTL() }

func (s *AuthService) issue(user *entity.User) (string, error) {
	return s.jwt.GenerateToken(auth.Identity{
		Subject: user.ID.String(),
		Email:   user.Email,
		Name:    user.Name,
		Role:    user.Role,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
