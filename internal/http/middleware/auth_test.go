package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sparetime/internal/auth"

	"github.com/gin-gonic/gin"
)

func newAuthTestRouter(secret []byte, reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(secret), func(c *gin.Context) {
		*reached = true
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c)})
	})
	return r
}

func TestRequireAuthPassesIdentityDownstream(t *testing.T) {
	secret := []byte("secret")
	token, err := auth.IssueToken(secret, "user-9")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	reached := false
	r := newAuthTestRouter(secret, &reached)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if !reached {
		t.Fatalf("handler should run for a valid token")
	}
}

func TestRequireAuthShortCircuitsInvalidToken(t *testing.T) {
	secret := []byte("secret")
	otherToken, err := auth.IssueToken([]byte("other"), "user-9")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"wrong secret", "Bearer " + otherToken},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		reached := false
		r := newAuthTestRouter(secret, &reached)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tc.name, w.Code)
		}
		if reached {
			t.Errorf("%s: no component beyond the extractor may execute", tc.name)
		}
	}
}
