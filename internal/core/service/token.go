package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// TokenIssuer mints and verifies HS256 bearer tokens.
//
// The role is baked into the token at mint time and is not re-read from the
// store on each request: a role change becomes visible only after the client
// exchanges a fresh confirmation code. This staleness is a deliberate
// property of the design, not an oversight.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Mint produces a signed token carrying the user's id, username and role.
func (t *TokenIssuer) Mint(u *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"role":     u.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

// Authenticate verifies signature and expiry and extracts the actor.
// Any failure maps to domain.ErrInvalidToken.
func (t *TokenIssuer) Authenticate(token string) (domain.Actor, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Actor{}, domain.ErrInvalidToken
	}

	id, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if id == "" || !domain.ValidRole(role) {
		return domain.Actor{}, domain.ErrInvalidToken
	}

	return domain.Actor{ID: id, Username: username, Role: role, Authenticated: true}, nil
}
