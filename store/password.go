package store

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordModePlain  = "plain"
	PasswordModeBcrypt = "bcrypt"
)

// PasswordHasher decides what goes into the password column and how a
// login attempt is compared against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(stored, given string) bool
}

// PlainPasswords stores passwords verbatim and compares them byte for
// byte. This matches the kiosk's historical user database.
type PlainPasswords struct{}

func (PlainPasswords) Hash(password string) (string, error) { return password, nil }

func (PlainPasswords) Matches(stored, given string) bool { return stored == given }

// BcryptPasswords stores salted bcrypt hashes.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (BcryptPasswords) Matches(stored, given string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
}

// HasherFor maps a PASSWORD_MODE value to a hasher.
func HasherFor(mode string) (PasswordHasher, error) {
	switch mode {
	case "", PasswordModePlain:
		return PlainPasswords{}, nil
	case PasswordModeBcrypt:
		return BcryptPasswords{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}
