package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

// BcryptHasher hashes account passwords with a configurable work factor.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.WrapError(domain.ErrInvalidInput, "hash password", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.WrapError(domain.ErrUnauthorized, "compare password", err)
	}
	return nil
}
