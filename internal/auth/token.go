package auth

import (
	"fmt"
	"strings"
	"time"

	"sparetime/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL matches the legacy login session length.
const TokenTTL = 24 * time.Hour

// IssueToken signs a bearer token carrying the user identity.
func IssueToken(secret []byte, userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(secret)
}

// ParseBearer validates an Authorization header value and derives the user
// identity from the verified token. This is the only place a user id may come
// from; it is never read from client-supplied body or query data.
//
// Shape failures yield MalformedCredentialError, verification failures
// (signature, expiry, missing claim) yield InvalidCredentialError.
func ParseBearer(secret []byte, header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.MalformedCredentialError{Msg: "authorization header missing"}
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", domain.MalformedCredentialError{Msg: "authorization header must be 'Bearer <token>'"}
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return "", domain.InvalidCredentialError{Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.InvalidCredentialError{Err: fmt.Errorf("unexpected claims type")}
	}

	userID, _ := claims["user_id"].(string)
	if strings.TrimSpace(userID) == "" {
		return "", domain.InvalidCredentialError{Err: fmt.Errorf("user_id claim missing")}
	}
	return userID, nil
}
