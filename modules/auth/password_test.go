package auth

import (
	"strings"
	"testing"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher()

	tests := []struct {
		name     string
		password string
	}{
		{"simple", "password123"},
		{"symbols", "P@ssw0rd!#$%"},
		{"unicode", "contraseña123"},
		{"max length", strings.Repeat("a", 72)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == tt.password {
				t.Error("Hash() returned the plaintext")
			}
			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() rejected the correct password")
			}
			if hasher.Verify(tt.password+"x", hash) {
				t.Error("Verify() accepted a wrong password")
			}
		})
	}
}

func TestLoadBcryptCost(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"unset", "", DefaultBcryptCost},
		{"valid", "10", 10},
		{"not a number", "twelve", DefaultBcryptCost},
		{"below minimum", "3", DefaultBcryptCost},
		{"above maximum", "40", DefaultBcryptCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.env)
			if got := loadBcryptCost(); got != tt.want {
				t.Errorf("loadBcryptCost() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPasswordHasher_DistinctSalts(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("expected different hashes for the same password")
	}
}
