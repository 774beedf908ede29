package services

import (
	"context"
	"fmt"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

type TokenService struct {
	secretKey []byte
	issuer    string
	users     domain.UserRepository
}

func NewTokenService(secret string, users domain.UserRepository) *TokenService {
	return &TokenService{
		secretKey: []byte(secret),
		issuer:    "meme-vault",
		users:     users,
	}
}

func (s *TokenService) GenerateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iss": s.issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Verify parses and validates the JWT, then resolves the principal behind
// its subject. Signature, expiry and unknown-subject failures all collapse
// to a single denial: no partially verified identity escapes.
func (s *TokenService) Verify(ctx context.Context, tokenStr string) (*domain.Principal, error) {
	if tokenStr == "" {
		return nil, domain.ErrMissingToken
	}
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		// Ensure signing method is HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return nil, domain.ErrInvalidToken
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &domain.Principal{UserID: user.ID, Username: user.Username}, nil
}
