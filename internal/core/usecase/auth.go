package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

const minPasswordLength = 6

type AuthUseCase struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
}

func NewAuthUseCase(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: tokens}
}

func (uc *AuthUseCase) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, domain.WrapError(domain.ErrInvalidInput, "register",
			fmt.Errorf("password must be at least %d characters", minPasswordLength))
	}

	if existing, err := uc.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.WrapError(domain.ErrConflict, "register", errors.New("email already registered"))
	} else if err != nil && !domain.IsKind(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Name:         strings.TrimSpace(name),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return user, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.WrapError(domain.ErrInvalidInput, "login", errors.New("email and password are required"))
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			return nil, "", domain.WrapError(domain.ErrUnauthorized, "login", errors.New("invalid credentials"))
		}
		return nil, "", fmt.Errorf("lookup account: %w", err)
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domain.WrapError(domain.ErrUnauthorized, "login", errors.New("invalid credentials"))
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (uc *AuthUseCase) Verify(_ context.Context, token string) (domain.Principal, error) {
	return uc.tokens.Verify(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate email", errors.New("email is required"))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "validate email", err)
	}
	return nil
}
