package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store/storetest"
	"flashfit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(accounts *storetest.Accounts) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(accounts), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	r.GET("/brand-only", AuthRequired(accounts), RequireRoles(models.RoleBrand), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"brandId": c.MustGet("brand_id")})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejections(t *testing.T) {
	accounts := storetest.NewAccounts()
	r := newTestRouter(accounts)

	noHeader := get(r, "/protected", "")
	garbage := get(r, "/protected", "not.a.jwt")

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   gocql.TimeUUID().String(),
		"role": models.RoleCustomer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := wrongKey.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	badSignature := get(r, "/protected", signed)

	expiredTok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   gocql.TimeUUID().String(),
		"role": models.RoleCustomer,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	signed, err = expiredTok.SignedString(utils.JWTSecret())
	require.NoError(t, err)
	expired := get(r, "/protected", signed)

	// every failure mode gets the identical response
	for _, w := range []*httptest.ResponseRecorder{noHeader, garbage, badSignature, expired} {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Authentication required"}`, w.Body.String())
	}
}

func TestAuthRequiredCustomerTrustedFromToken(t *testing.T) {
	// no account row exists, customers are not re-checked
	r := newTestRouter(storetest.NewAccounts())

	token, err := utils.GenerateJWT(gocql.TimeUUID(), models.RoleCustomer)
	require.NoError(t, err)

	w := get(r, "/protected", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.RoleCustomer)
}

func TestAuthRequiredBrandExistenceCheck(t *testing.T) {
	accounts := storetest.NewAccounts()
	brand := models.Account{ID: gocql.TimeUUID(), Role: models.RoleBrand, Name: "Zara Couture", IsVerified: true}
	accounts.Add(brand)
	r := newTestRouter(accounts)

	token, err := utils.GenerateJWT(brand.ID, models.RoleBrand)
	require.NoError(t, err)

	w := get(r, "/brand-only", token)
	assert.Equal(t, http.StatusOK, w.Code)

	// a token for a brand that no longer exists is dead, however valid
	ghost, err := utils.GenerateJWT(gocql.TimeUUID(), models.RoleBrand)
	require.NoError(t, err)
	w = get(r, "/brand-only", ghost)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Authentication required"}`, w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	r := newTestRouter(storetest.NewAccounts())

	token, err := utils.GenerateJWT(gocql.TimeUUID(), models.RoleCustomer)
	require.NoError(t, err)

	// authenticated but wrong role: 403, not 401
	w := get(r, "/brand-only", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "permission")

	rider, err := utils.GenerateJWT(gocql.TimeUUID(), models.RoleRider)
	require.NoError(t, err)
	w = get(r, "/brand-only", rider)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
