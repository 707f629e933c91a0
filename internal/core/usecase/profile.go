package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

type ProfileUseCase struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewProfileUseCase(users ports.UserRepository, hasher ports.PasswordHasher) *ProfileUseCase {
	return &ProfileUseCase{users: users, hasher: hasher}
}

func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := uc.users.ProfileByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return profile, nil
}

// Update changes the display name and/or password. A password change
// requires the current password to match.
func (uc *ProfileUseCase) Update(ctx context.Context, userID, name, password, currentPassword string) error {
	name = strings.TrimSpace(name)
	if name == "" && password == "" {
		return domain.WrapError(domain.ErrInvalidInput, "update profile", errors.New("nothing to update"))
	}

	// Validate everything before the first write so a rejected password
	// change cannot leave a half-applied name update behind.
	var newHash string
	if password != "" {
		if len(password) < minPasswordLength {
			return domain.WrapError(domain.ErrInvalidInput, "update profile",
				fmt.Errorf("password must be at least %d characters", minPasswordLength))
		}
		user, err := uc.users.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("fetch account: %w", err)
		}
		if err := uc.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
			return domain.WrapError(domain.ErrUnauthorized, "update profile", errors.New("current password does not match"))
		}
		hash, err := uc.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		newHash = hash
	}

	if name != "" {
		if err := uc.users.UpdateName(ctx, userID, name); err != nil {
			return fmt.Errorf("update name: %w", err)
		}
	}
	if newHash != "" {
		if err := uc.users.UpdatePassword(ctx, userID, newHash); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
	}

	return nil
}
