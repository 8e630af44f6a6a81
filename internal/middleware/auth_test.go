package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cleanic/internal/models"
	"cleanic/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const testSecret = "middleware-test-secret-32-chars!!"

func newProtectedRouter(t *testing.T, tokens *service.TokenService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(tokens, zap.NewNop()), func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"login": ident.Login, "role": string(ident.Role), "id": ident.ID})
	})
	return r
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	r := newProtectedRouter(t, tokens)

	w := doRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	r := newProtectedRouter(t, tokens)

	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", "some-token"},
		{"wrong scheme", "Basic dXNlcjpwdw=="},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doRequest(r, tt.header); w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	r := newProtectedRouter(t, tokens)

	if w := doRequest(r, "Bearer not.a.jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	expired := service.NewTokenService(testSecret, -time.Minute)
	signed, err := expired.Mint(&models.Personnel{ID: 1, LoginAD: "bob", Role: models.RoleNurse})
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	r := newProtectedRouter(t, service.NewTokenService(testSecret, time.Hour))
	if w := doRequest(r, "Bearer "+signed); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	other := service.NewTokenService("a-completely-different-secret!!!", time.Hour)
	signed, err := other.Mint(&models.Personnel{ID: 1, LoginAD: "bob", Role: models.RoleNurse})
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	r := newProtectedRouter(t, service.NewTokenService(testSecret, time.Hour))
	if w := doRequest(r, "Bearer "+signed); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	signed, err := tokens.Mint(&models.Personnel{ID: 42, LoginAD: "alice", Role: models.RoleClinician})
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	r := newProtectedRouter(t, tokens)
	w := doRequest(r, "Bearer "+signed)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, want := range []string{`"login":"alice"`, `"role":"clinician"`, `"id":42`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}
}

func TestIdentityFromUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := IdentityFrom(c); ok {
		t.Error("IdentityFrom() should report absence on an unauthenticated context")
	}
}
