package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Session identifies the caller for card ownership and listing.
type Session struct {
	UserID   string
	Nickname string
}

// Resolver validates bearer tokens issued by the auth provider.
// Requests without a valid token are treated as anonymous, not rejected.
type Resolver struct {
	secret []byte
}

func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

// Resolve extracts the session from the Authorization header.
// Returns nil for missing, malformed, or expired tokens.
func (r *Resolver) Resolve(req *http.Request) *Session {
	header := req.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil
	}
	return r.ResolveToken(raw)
}

// ResolveToken validates a raw JWT and maps its claims to a session.
func (r *Resolver) ResolveToken(raw string) *Session {
	if len(r.secret) == 0 {
		return nil
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil
	}

	session := &Session{UserID: sub}
	if nickname, ok := claims["nickname"].(string); ok {
		session.Nickname = nickname
	}
	return session
}

// IssueToken signs a session token. Used by tests and local tooling.
func (r *Resolver) IssueToken(session Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":      session.UserID,
		"nickname": session.Nickname,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}
