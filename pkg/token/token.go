package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// LoginExpiry is how long an access token stays valid after issuance.
	LoginExpiry = 7 * 24 * time.Hour
	// VerificationExpiry bounds the email verification token lifetime.
	VerificationExpiry = 24 * time.Hour

	typeEmailVerification = "email_verification"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the access token payload. The user id appears twice, as the
// registered subject (decimal string) and as a numeric user_id claim, to stay
// compatible with consumers expecting either name.
type Claims struct {
	Email  string `json:"email"`
	UserID uint   `json:"user_id,omitempty"`
	Type   string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens with a single shared secret.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Generate issues an access token bound to the user's id and email.
func (m *Manager) Generate(userID uint, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(LoginExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses an access token and returns its claims. Bad signature,
// expiry and malformed input all come back as errors; the caller is expected
// to collapse them into one opaque rejection.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Type != "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateEmailVerification issues a short-lived single-purpose token used to
// confirm ownership of an email address.
func (m *Manager) GenerateEmailVerification(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Type:  typeEmailVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(VerificationExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateEmailVerification returns the email embedded in a verification
// token. Access tokens are rejected here so the two flows cannot be mixed.
func (m *Manager) ValidateEmailVerification(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Type != typeEmailVerification || claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}
