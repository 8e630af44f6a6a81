package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"cleanic/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "cleanic"

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, wrong signing method, expiry. Callers must not be
// able to tell these apart.
var ErrInvalidToken = errors.New("invalid token")

// TokenService mints and verifies signed session tokens. Tokens are
// immutable once issued and invalidated by expiry only.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Mint signs a token carrying the personnel's id, login and role with
// the fixed expiry.
func (s *TokenService) Mint(p *models.Personnel) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		Login: p.LoginAD,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(p.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims.
func (s *TokenService) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SubjectID parses the personnel id out of the subject claim.
func SubjectID(claims *models.Claims) (int64, error) {
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
