package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tillpoint/services/access"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func guardRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AccessGuard(access.DefaultPolicy()))
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusOK, "rendered")
	})
	return r
}

func request(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func sessionCookies(token, role string) []*http.Cookie {
	return []*http.Cookie{
		{Name: SessionTokenCookie, Value: token},
		{Name: SessionRoleCookie, Value: role},
	}
}

func TestAccessGuard_PublicPathAnonymous(t *testing.T) {
	rr := request(guardRouter(), "/login")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAccessGuard_PublicPathAuthenticatedRedirectsHome(t *testing.T) {
	rr := request(guardRouter(), "/login", sessionCookies("tok", "cashier")...)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/cashier/dashboard", rr.Header().Get("Location"))
}

func TestAccessGuard_AnonymousRedirectsToLogin(t *testing.T) {
	rr := request(guardRouter(), "/dashboard")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestAccessGuard_AllowedPrefixProceeds(t *testing.T) {
	rr := request(guardRouter(), "/cashier/pos", sessionCookies("tok", "cashier")...)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rendered", rr.Body.String())
}

func TestAccessGuard_DisallowedPathRedirectsRoleHome(t *testing.T) {
	rr := request(guardRouter(), "/dashboard", sessionCookies("tok", "cashier")...)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/cashier/dashboard", rr.Header().Get("Location"))
}

func TestAccessGuard_UnknownRoleTreatedAsGuest(t *testing.T) {
	rr := request(guardRouter(), "/dashboard", sessionCookies("tok", "intruder")...)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestAccessGuard_BearerHeaderFallback(t *testing.T) {
	r := guardRouter()
	req := httptest.NewRequest(http.MethodGet, "/kitchen/orders", nil)
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set("role", "kitchen")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
