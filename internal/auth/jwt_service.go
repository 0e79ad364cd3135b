package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"timetrack/internal/model"
)

const (
	// TokenExpiry is the duration for which session tokens are valid.
	TokenExpiry = 7 * 24 * time.Hour
	// TokenScheme prefixes tokens in the Authorization header and in login responses.
	TokenScheme = "JWT"
)

// Claims represents JWT claims. The payload carries the public user projection.
type Claims struct {
	UserID      string `json:"_id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}

// Info returns the user projection carried by the claims.
func (c *Claims) Info() (model.UserInfo, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return model.UserInfo{}, errors.New("invalid subject in token")
	}
	return model.UserInfo{ID: id, DisplayName: c.DisplayName, Email: c.Email}, nil
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GenerateToken signs a session token for the user, valid for TokenExpiry.
func (s *JWTService) GenerateToken(info model.UserInfo) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:      info.ID.String(),
		DisplayName: info.DisplayName,
		Email:       info.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   info.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims. A leading
// "JWT " scheme is accepted and stripped.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = StripScheme(tokenString)
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// StripScheme removes a leading "JWT " from a presented token.
func StripScheme(token string) string {
	return strings.TrimPrefix(token, TokenScheme+" ")
}

// WithScheme returns the token as presented to clients: "JWT <token>".
func WithScheme(token string) string {
	return TokenScheme + " " + token
}
