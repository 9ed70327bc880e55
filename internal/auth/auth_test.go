package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestResolveRoundTrip(t *testing.T) {
	r := NewResolver("test-secret")

	token, err := r.IssueToken(Session{UserID: "user-1", Nickname: "Mina"})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	req := httptest.NewRequest("GET", "/v1/cards", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	session := r.Resolve(req)
	if session == nil {
		t.Fatal("expected a session")
	}
	if session.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", session.UserID)
	}
	if session.Nickname != "Mina" {
		t.Errorf("expected nickname Mina, got %q", session.Nickname)
	}
}

func TestResolveAnonymous(t *testing.T) {
	r := NewResolver("test-secret")

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/cards", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if session := r.Resolve(req); session != nil {
				t.Errorf("expected anonymous, got %+v", session)
			}
		})
	}
}

func TestResolveRejectsWrongSecret(t *testing.T) {
	issuer := NewResolver("right-secret")
	verifier := NewResolver("wrong-secret")

	token, err := issuer.IssueToken(Session{UserID: "user-1"})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if session := verifier.ResolveToken(token); session != nil {
		t.Errorf("token signed with another secret must not resolve, got %+v", session)
	}
}

func TestResolveRejectsUnsignedToken(t *testing.T) {
	r := NewResolver("test-secret")

	// alg=none tokens must never resolve.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	if session := r.ResolveToken(raw); session != nil {
		t.Errorf("unsigned token must not resolve, got %+v", session)
	}
}

func TestResolveRejectsMissingSubject(t *testing.T) {
	r := NewResolver("test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"nickname": "Mina"})
	raw, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if session := r.ResolveToken(raw); session != nil {
		t.Errorf("token without sub must not resolve, got %+v", session)
	}
}
