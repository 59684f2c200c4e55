package auth

import (
	"testing"
	"time"

	"sparetime/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestParseBearerRoundTrip(t *testing.T) {
	token, err := IssueToken(testSecret, "user-42")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	userID, err := ParseBearer(testSecret, "Bearer "+token)
	if err != nil {
		t.Fatalf("ParseBearer error: %v", err)
	}
	if userID != "user-42" {
		t.Fatalf("got user %q, want user-42", userID)
	}
}

func TestParseBearerMalformedShapes(t *testing.T) {
	cases := []string{
		"",
		"Bearer",
		"Bearer ",
		"Basic abc123",
		"bearer lowercase-scheme",
	}
	for _, header := range cases {
		if _, err := ParseBearer(testSecret, header); !domain.IsMalformedCredential(err) {
			t.Errorf("header %q: got %v, want MalformedCredentialError", header, err)
		}
	}
}

func TestParseBearerWrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("other-secret"), "user-42")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if _, err := ParseBearer(testSecret, "Bearer "+token); !domain.IsInvalidCredential(err) {
		t.Fatalf("got %v, want InvalidCredentialError", err)
	}
}

func TestParseBearerExpired(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-42",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseBearer(testSecret, "Bearer "+signed); !domain.IsInvalidCredential(err) {
		t.Fatalf("got %v, want InvalidCredentialError", err)
	}
}

func TestParseBearerMissingIdentityClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseBearer(testSecret, "Bearer "+signed); !domain.IsInvalidCredential(err) {
		t.Fatalf("got %v, want InvalidCredentialError", err)
	}
}

func TestParseBearerRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-42",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseBearer(testSecret, "Bearer "+signed); !domain.IsInvalidCredential(err) {
		t.Fatalf("got %v, want InvalidCredentialError", err)
	}
}
