package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

type stubAuthRepo struct {
	users map[string]*domain.User // keyed by email
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	projection := cloneUser(u)
	projection.PasswordHash = ""
	return projection, nil
}

func (r *stubAuthRepo) FindByEmailWithPassword(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func newAuthService(repo *stubAuthRepo) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected default role customer, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_ValidationOrder(t *testing.T) {
	cases := []struct {
		name     string
		username string
		email    string
		password string
		want     string
	}{
		{"missing username", "", "a@example.com", "pass123", "Username is required"},
		{"missing email", "alice", "", "pass123", "Email is required"},
		{"missing password", "alice", "a@example.com", "", "Password is required"},
		{"short password", "alice", "a@example.com", "12345", "Password must be at least 6 characters long"},
		{"long password", "alice", "a@example.com", "123456789012345678901", "Password must be at most 20 characters long"},
		{"bad email", "alice", "not-an-email", "pass123", "Invalid email"},
		{"bad email before dup check", "alice", "a@b", "pass123", "Invalid email"},
		{"short username", "al", "a@example.com", "pass123", "Username must be at least 3 characters long"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newAuthService(newStubAuthRepo())
			_, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)

			var verr domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Error() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, verr.Error())
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// Different username, same email: still a conflict.
	if _, err := svc.Register(context.Background(), "robert", "bob@example.com", "pass456"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), "carol", "Carol@Example.COM", "pass123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "carol@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret99"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleCustomer {
		t.Fatalf("expected role %s, got %v", domain.RoleCustomer, claims["role"])
	}
	if claims["userId"] != user.ID {
		t.Fatalf("expected userId claim %s, got %v", user.ID, claims["userId"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo)

	_, _ = svc.Register(context.Background(), "dave", "dave@example.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo)

	_, _ = svc.Register(context.Background(), "erin", "erin@example.com", "goodpass")

	_, _, wrongPass := svc.Login(context.Background(), "erin@example.com", "badpass")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.com", "whatever")

	// Wrong password and unknown email must be indistinguishable.
	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) || !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v and %v", wrongPass, unknown)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())

	var verr domain.ValidationError
	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@example.com", ""); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
