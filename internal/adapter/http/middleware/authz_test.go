package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dpak2002/go-ecommerce-api/configs"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testAuthz() *Authz {
	cfg := configs.Config{}
	cfg.Security.JWTSecret = testSecret
	return NewAuthz(cfg)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authzRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", testAuthz().Require(roles...), func(c *gin.Context) {
		id := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "name": id.Name, "role": id.Role})
	})
	return r
}

func TestRequireMissingToken(t *testing.T) {
	r := authzRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "invalid_request")
}

func TestRequireBadSignature(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": float64(1), "role": RoleCustomer,
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	r := authzRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": float64(1), "role": RoleCustomer,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	r := authzRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireWrongRole(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": float64(1), "role": RoleCustomer})

	r := authzRouter(RoleAdmin)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireSetsIdentity(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": float64(42), "name": "alice", "role": RoleAdmin,
	})

	r := authzRouter(RoleAdmin)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"name":"alice","role":"admin"}`, w.Body.String())
}

func TestRequireQueryTokenFallback(t *testing.T) {
	// websocket clients cannot set headers on the upgrade request
	token := signToken(t, jwt.MapClaims{"sub": float64(7), "role": RoleCustomer})

	r := authzRouter(RoleCustomer)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireMissingSubject(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"role": RoleCustomer})

	r := authzRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentityIsAdmin(t *testing.T) {
	assert.True(t, Identity{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{Role: RoleCustomer}.IsAdmin())
}
