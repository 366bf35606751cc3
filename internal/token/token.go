// Package token issues and checks the signed identity tokens presented in the
// x-auth-token header.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs an HS256 token carrying the user id. Tokens carry no expiry;
// sessions last until the signing secret rotates.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID.String(),
		"iat": time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and returns the embedded identity.
func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	return identityFromClaims(tok.Claims)
}

// Decode extracts the identity without checking the signature. It must only be
// called on a token that already passed Verify (or the JWT middleware) within
// the same request; it is not a trust boundary on its own. Returns uuid.Nil on
// malformed input.
func (s *Service) Decode(tokenString string) uuid.UUID {
	tok, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return uuid.Nil
	}
	id, err := identityFromClaims(tok.Claims)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func identityFromClaims(claims jwt.Claims) (uuid.UUID, error) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	raw, ok := mapClaims["id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
