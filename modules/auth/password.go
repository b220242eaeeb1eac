package auth

import (
	"log"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances hashing time against brute-force resistance.
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the cost from BCRYPT_COST,
// falling back to the default when unset or out of bcrypt's supported range.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: loadBcryptCost()}
}

// NewPasswordHasherWithCost creates a PasswordHasher with an explicit cost.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

func loadBcryptCost() int {
	raw := os.Getenv("BCRYPT_COST")
	if raw == "" {
		return DefaultBcryptCost
	}
	cost, err := strconv.Atoi(raw)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		log.Printf("[auth] Invalid BCRYPT_COST %q, using default %d", raw, DefaultBcryptCost)
		return DefaultBcryptCost
	}
	return cost
}

// Hash returns the bcrypt hash of password at the configured cost.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
