package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleGuest = "guest"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of a session token. Subject is the terminal key.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// UserKey is the terminal key of a signed-in user.
func UserKey(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}

// NewGuestKey returns a fresh terminal key for an anonymous kiosk.
func NewGuestKey() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("guest_%d", time.Now().UnixNano())
	}
	return "guest_" + hex.EncodeToString(b)
}

// IssueFor signs a token for s. A session with a user gets a user token,
// anything else a guest token.
func (i *Issuer) IssueFor(s *Session) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)

	claims := Claims{
		UserID: s.UserID(),
		Email:  s.Email(),
		Role:   RoleGuest,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Key(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	if s.IsLoggedIn() {
		claims.Role = RoleUser
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies raw and rebuilds the session it was issued for.
func (i *Issuer) Parse(raw string) (*Session, *Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, nil, ErrInvalidToken
	}

	s := New(claims.Subject)
	if claims.Role == RoleUser && claims.UserID != NoUser {
		s.SetUser(claims.UserID, claims.Email)
	}
	return s, &claims, nil
}
