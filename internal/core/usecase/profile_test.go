package usecase

import (
	"context"
	"testing"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func TestProfileUpdateName(t *testing.T) {
	users := newUserRepoFake()
	ctx := context.Background()
	_ = users.Create(ctx, &domain.User{ID: "u1", Email: "a@b.com", PasswordHash: "hashed:secret12"})

	uc := NewProfileUseCase(users, hasherFake{})
	if err := uc.Update(ctx, "u1", "Apurva K", "", ""); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if users.users["u1"].Name != "Apurva K" {
		t.Fatalf("expected updated name, got %q", users.users["u1"].Name)
	}
}

func TestProfileUpdatePasswordChecksCurrent(t *testing.T) {
	users := newUserRepoFake()
	ctx := context.Background()
	_ = users.Create(ctx, &domain.User{ID: "u1", Email: "a@b.com", PasswordHash: "hashed:secret12"})

	uc := NewProfileUseCase(users, hasherFake{})

	err := uc.Update(ctx, "u1", "", "newsecret", "wrong")
	if !domain.IsKind(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized with wrong current password, got %v", err)
	}

	if err := uc.Update(ctx, "u1", "", "newsecret", "secret12"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if users.users["u1"].PasswordHash != "hashed:newsecret" {
		t.Fatalf("expected rehashed password, got %q", users.users["u1"].PasswordHash)
	}
}

func TestProfileUpdateRejectedPasswordLeavesNameUntouched(t *testing.T) {
	users := newUserRepoFake()
	ctx := context.Background()
	_ = users.Create(ctx, &domain.User{ID: "u1", Email: "a@b.com", Name: "Apurva K", PasswordHash: "hashed:secret12"})

	uc := NewProfileUseCase(users, hasherFake{})

	err := uc.Update(ctx, "u1", "Someone Else", "newsecret", "wrong")
	if !domain.IsKind(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized with wrong current password, got %v", err)
	}
	if users.users["u1"].Name != "Apurva K" {
		t.Fatalf("rejected update must not change the name, got %q", users.users["u1"].Name)
	}
	if users.users["u1"].PasswordHash != "hashed:secret12" {
		t.Fatalf("rejected update must not change the password")
	}
}

func TestProfileUpdateRequiresChanges(t *testing.T) {
	uc := NewProfileUseCase(newUserRepoFake(), hasherFake{})
	err := uc.Update(context.Background(), "u1", "", "", "")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
