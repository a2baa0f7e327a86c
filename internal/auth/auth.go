// Package auth resolves the learner's identity from a token issued by the
// hosted identity provider. MathForge never manages accounts itself; it only
// verifies a token it is handed.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Identity is the signed-in learner, or the zero value for anonymous use.
type Identity struct {
	UserID string
	Email  string
}

// Anonymous returns an identity that is not signed in.
func Anonymous() Identity { return Identity{} }

// SignedIn reports whether the identity belongs to a user.
func (i Identity) SignedIn() bool { return i.UserID != "" }

// DisplayName returns a short label for headers.
func (i Identity) DisplayName() string {
	switch {
	case !i.SignedIn():
		return "guest"
	case i.Email != "":
		return i.Email
	default:
		return i.UserID
	}
}

// Verifier checks HS256 tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier returns a verifier for tokens signed with secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify parses the token and returns the identity in its claims.
func (v *Verifier) Verify(token string) (Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.secret, nil
	},
		jwt.WithTimeFunc(v.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidClaims
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, fmt.Errorf("%w: missing sub claim", ErrInvalidClaims)
	}
	id := Identity{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	return id, nil
}

// Issue signs a token for id that expires after ttl. Tests use it to mint
// tokens the hosted provider would otherwise issue.
func (v *Verifier) Issue(id Identity, ttl time.Duration) (string, error) {
	now := v.now()
	claims := jwt.MapClaims{
		"sub":   id.UserID,
		"email": id.Email,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Resolve returns the identity for a configured token. An empty token means
// anonymous use and is not an error.
func Resolve(token, secret string) (Identity, error) {
	if token == "" {
		return Anonymous(), nil
	}
	if secret == "" {
		return Identity{}, fmt.Errorf("%w: no verification secret configured", ErrInvalidToken)
	}
	return NewVerifier(secret).Verify(token)
}
