package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/techclub/club-portal/internal/models"
)

const TokenDuration = 24 * time.Hour

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingClaims = errors.New("token is missing required claims")
)

// Identity is the caller as asserted by the identity provider's session
// token. Handlers trust these fields verbatim and never the request body.
type Identity struct {
	UserID string
	Email  string
	Role   models.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Verifier validates identity-provider session tokens signed with the
// shared HS256 secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" || email == "" {
		return nil, ErrMissingClaims
	}

	role := models.RoleStudent
	if r, _ := claims["role"].(string); r == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	return &Identity{UserID: sub, Email: email, Role: role}, nil
}

// GenerateToken issues a token the Verifier accepts. The real tokens come
// from the identity provider; this mirrors its claim layout for tests and
// local development.
func (v *Verifier) GenerateToken(identity Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.UserID,
		"email": identity.Email,
		"role":  string(identity.Role),
		"exp":   time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
