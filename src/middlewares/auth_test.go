package middlewares

import (
	"bookify/src/db/dbtest"
	"bookify/src/models"
	"bookify/src/types"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

const testSecret = "middleware-secret"

func signToken(t *testing.T, sub, role string, ttl time.Duration) string {
	claims := types.Claims{
		Email: "guest@example.com",
		Name:  "Guest",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func newRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Setenv("JWT_SECRET", testSecret)
	gin.SetMode(gin.TestMode)
	gdb := dbtest.Open(t, &models.User{})
	r := gin.New()
	r.Use(SecureHeaders)
	whoami := func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"id": ctx.GetUint("id"), "role": ctx.GetString("role")})
	}
	r.GET("/private", AuthMiddleware, whoami)
	r.GET("/maybe", OptionalAuth, whoami)
	r.GET("/admin", AuthMiddleware, AdminOnly, whoami)
	r.GET("/cart", CartSession, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString("cart_session"))
	})
	return r, gdb
}

func do(r *gin.Engine, path, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, gdb := newRouter(t)

	w := do(r, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = do(r, "/private", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/private", signToken(t, "42", types.ROLE_CUSTOMER, -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/private", signToken(t, "abc", types.ROLE_CUSTOMER, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/private", signToken(t, "42", types.ROLE_CUSTOMER, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), gjson.Get(w.Body.String(), "id").Int())

	var user models.User
	assert.NoError(t, gdb.First(&user, 42).Error)
	assert.Equal(t, "guest@example.com", user.Email)

	w = do(r, "/private", signToken(t, "42", "superuser", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.ROLE_CUSTOMER, gjson.Get(w.Body.String(), "role").String())
}

func TestOptionalAuth(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, "/maybe", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), gjson.Get(w.Body.String(), "id").Int())

	w = do(r, "/maybe", signToken(t, "7", types.ROLE_CUSTOMER, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), gjson.Get(w.Body.String(), "id").Int())

	w = do(r, "/maybe", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, "/admin", signToken(t, "1", types.ROLE_CUSTOMER, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, "/admin", signToken(t, "1", types.ROLE_ADMIN, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.ROLE_ADMIN, gjson.Get(w.Body.String(), "role").String())
}

func TestCartSession(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, "/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, CartCookie, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, w.Body.String())

	w = do(r, "/cart", "", &http.Cookie{Name: CartCookie, Value: cookies[0].Value})
	assert.Equal(t, cookies[0].Value, w.Body.String())
	assert.Empty(t, w.Result().Cookies())

	w = do(r, "/cart", "", &http.Cookie{Name: CartCookie, Value: "forged"})
	assert.NotEqual(t, "forged", w.Body.String())
}
