// Package token issues and verifies the JWTs used for API authentication.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultTTL matches the long-lived session tokens the client expects.
	DefaultTTL = 360000 * time.Second

	issuer   = "devlink-api"
	audience = "devlink-client"
)

var (
	ErrMalformed = errors.New("token is malformed")
	ErrExpired   = errors.New("token is expired")
	ErrInvalid   = errors.New("token is invalid")
)

// Claims is the verified content of a token.
type Claims struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time
}

// Service signs and verifies tokens with a shared HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService returns a token service. A zero ttl selects DefaultTTL.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token for the given user.
func (s *Service) Issue(userID uint) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iss": issuer,
		"aud": audience,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string, returning its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
	)

	token, err := parser.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrInvalid
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalid
	}
	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil || userID == 0 {
		return nil, ErrInvalid
	}

	jti, _ := claims["jti"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalid
	}

	return &Claims{
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: exp.Time,
	}, nil
}
