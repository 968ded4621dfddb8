package helpers

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes user passwords with a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher rejects costs bcrypt would refuse instead of silently clamping them.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	return &BcryptHasher{cost: cost}, nil
}

func (h *BcryptHasher) Cost() int { return h.cost }

// Hash hashes the plain text password
func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare compares a bcrypt hash with a plain password
func (h *BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
