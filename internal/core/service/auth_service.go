package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

const bcryptCost = 12

// emailPattern mirrors the registration contract: word characters with
// single . or - separators in local part and domain, TLD of 2-3 word chars.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register validates the input rule by rule (first failure wins), checks
// email uniqueness, and persists the account with a bcrypt hash in place of
// the raw password. The new user always gets the customer role.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ValidationError("Username is required")
	}
	if email == "" {
		return nil, domain.ValidationError("Email is required")
	}
	if password == "" {
		return nil, domain.ValidationError("Password is required")
	}
	if len(password) < 6 {
		return nil, domain.ValidationError("Password must be at least 6 characters long")
	}
	if len(password) > 20 {
		return nil, domain.ValidationError("Password must be at most 20 characters long")
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.ValidationError("Invalid email")
	}

	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, domain.ValidationError("Username must be at least 3 characters long")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and returns a signed token plus the user
// projection. Unknown email and wrong password are deliberately collapsed
// into the same error so the response reveals neither.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ValidationError("Email and password are required")
	}

	user, err := s.repo.FindByEmailWithPassword(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) signToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"role":   user.Role,
		"exp":    time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
