package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// mintToken builds a signed token the way the backend does. The
// signature key is irrelevant here: decoding is unverified.
func mintToken(t *testing.T, authorities []string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         "user@doistemposcafe.com.br",
		"authorities": authorities,
		"iat":         time.Now().Unix(),
		"exp":         exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeToken(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	raw := mintToken(t, []string{"ADMIN", "client"}, exp)

	claims, err := DecodeToken(raw)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if claims.Subject != "user@doistemposcafe.com.br" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if got := claims.ExpiresAt.Unix(); got != exp.Unix() {
		t.Errorf("exp = %d, want %d", got, exp.Unix())
	}

	roles := claims.Roles()
	if len(roles) != 2 || roles[0] != RoleAdmin || roles[1] != RoleClient {
		t.Errorf("Roles() = %v, want [ADMIN CLIENT]", roles)
	}
}

func TestDecodeTokenMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "not.a.jwt"} {
		if _, err := DecodeToken(raw); err == nil {
			t.Errorf("DecodeToken(%q) should fail", raw)
		}
	}
}

func TestClaimsIsExpired(t *testing.T) {
	tests := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{"future", time.Now().Add(time.Hour), false},
		{"past by one second", time.Now().Add(-time.Second), true},
		{"far past", time.Now().Add(-24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := DecodeToken(mintToken(t, nil, tt.exp))
			if err != nil {
				t.Fatalf("DecodeToken: %v", err)
			}
			if got := claims.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("missing exp claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
		raw, err := token.SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		claims, err := DecodeToken(raw)
		if err != nil {
			t.Fatalf("DecodeToken: %v", err)
		}
		if !claims.IsExpired() {
			t.Error("a token without exp should count as expired")
		}
	})
}

func TestTokenFingerprint(t *testing.T) {
	a := TokenFingerprint("token-a")
	b := TokenFingerprint("token-b")

	if a == b {
		t.Error("different tokens should fingerprint differently")
	}
	if a != TokenFingerprint("token-a") {
		t.Error("fingerprint should be stable")
	}
	if len(a) != 16 {
		t.Errorf("fingerprint length = %d, want 16 hex chars", len(a))
	}
}
