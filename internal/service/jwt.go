package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
)

// minSecretLength guards against weak HMAC keys.
const minSecretLength = 32

// ErrInvalidToken is returned for every verification failure. Tampered
// signatures and passed expiries surface identically so callers cannot be
// used as an oracle to tell the two apart.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the self-contained session credential. The token is not
// persisted server-side; everything needed to authorize a request is in here.
type Claims struct {
	UserID         int64       `json:"user_id"`
	Email          string      `json:"email"`
	Name           string      `json:"name"`
	MembershipTier models.Tier `json:"membershipTier"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies session tokens.
type JWTService interface {
	Issue(user *models.User) (string, error)
	Verify(tokenString string) (*Claims, error)
	SessionExpiry() time.Duration
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a new JWTService instance. The secret must be at
// least 32 bytes.
func NewJWTService(secret string, expiry time.Duration) (JWTService, error) {
	if len(secret) < minSecretLength {
		return nil, errors.New("jwt secret must be at least 32 bytes")
	}
	return &jwtService{
		secret: []byte(secret),
		expiry: expiry,
	}, nil
}

func (s *jwtService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.Name,
		MembershipTier: user.MembershipTier,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *jwtService) SessionExpiry() time.Duration {
	return s.expiry
}
