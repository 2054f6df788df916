package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("squat-day-1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "squat-day-1" {
		t.Fatalf("expected a hash, got the plain password")
	}
	if !CheckPassword("squat-day-1", hash) {
		t.Errorf("expected the original password to match")
	}
	if CheckPassword("squat-day-2", hash) {
		t.Errorf("expected a different password not to match")
	}
	if CheckPassword("squat-day-1", "not-a-bcrypt-hash") {
		t.Errorf("expected a malformed hash not to match")
	}
}

func TestTokenCarriesCaller(t *testing.T) {
	token, err := GenerateToken("lifter-1", RoleUser, "gym-secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token, "gym-secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "lifter-1" || claims.Subject != "lifter-1" {
		t.Errorf("expected user and subject lifter-1, got %q / %q", claims.UserID, claims.Subject)
	}
	if claims.Role != RoleUser {
		t.Errorf("expected role %q, got %q", RoleUser, claims.Role)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != tokenTTL {
		t.Errorf("expected lifetime %s, got %s", tokenTTL, got)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Errorf("expected a token signed with another secret to fail")
	}
}

func TestValidateTokenRejects(t *testing.T) {
	sign := func(claims *Claims, method jwt.SigningMethod, key any) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("SignedString: %v", err)
		}
		return token
	}

	expired := sign(&Claims{
		UserID: "lifter-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, jwt.SigningMethodHS256, []byte("gym-secret"))
	anonymous := sign(&Claims{Role: RoleUser}, jwt.SigningMethodHS256, []byte("gym-secret"))
	unsigned := sign(&Claims{UserID: "lifter-1"}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)

	for name, token := range map[string]string{
		"expired":   expired,
		"no user":   anonymous,
		"alg none":  unsigned,
		"malformed": "abc.def",
	} {
		if _, err := ValidateToken(token, "gym-secret"); err == nil {
			t.Errorf("%s: expected ValidateToken to fail", name)
		}
	}
}
