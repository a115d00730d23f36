// Package credential turns passwords into the text stored in users.password
// and checks login attempts against it.
package credential

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	ModeBcrypt    = "bcrypt"
	ModePlaintext = "plaintext"
)

// Hasher produces and verifies stored credentials.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// New returns the hasher for mode.
func New(mode string) (Hasher, error) {
	switch mode {
	case ModeBcrypt, "":
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	case ModePlaintext:
		return Plaintext{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}

// Bcrypt stores salted bcrypt hashes.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (Bcrypt) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// Plaintext stores the password as given. It exists so databases written by
// the older desktop client keep working; do not use it for new data.
type Plaintext struct{}

func (Plaintext) Hash(password string) (string, error) {
	return password, nil
}

func (Plaintext) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
