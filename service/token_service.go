package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal kinds carried in session claims.
const (
	KindStudent = "student"
	KindTeacher = "teacher"
)

// SessionTTL is the validity of both the signed token and its cookie.
const SessionTTL = 24 * time.Hour

// SessionClaims is a capability reference only: kind plus id. Authorization
// decisions always re-fetch the current record, never trust a snapshot.
type SessionClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) PrincipalID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(kind string, principalID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry. Expired tokens are reported separately
// from malformed or forged ones.
func (s *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.Kind != KindStudent && claims.Kind != KindTeacher {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
