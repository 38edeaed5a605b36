package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is the only error Parse ever returns. Bad signature,
// malformed input and expiry all collapse into it so callers cannot probe
// why a token was refused.
var ErrInvalidCredential = errors.New("credential expired or invalid")

// TokenManager issues and validates signed bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload. Subject is the account email.
type Claims struct {
	jwt.RegisteredClaims
}

// Generate builds and signs a JWT binding the subject to an absolute expiry.
func (tm *TokenManager) Generate(subject string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates the token and returns its claims. Every failure mode
// returns ErrInvalidCredential.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidCredential
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidCredential
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidCredential
	}
	return claims, nil
}

// Subject is a convenience composition of Parse and claim extraction.
func (tm *TokenManager) Subject(tokenStr string) (string, bool) {
	claims, err := tm.Parse(tokenStr)
	if err != nil {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}
