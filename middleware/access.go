package middleware

import (
	"net/http"

	"tillpoint/services/access"

	"github.com/gin-gonic/gin"
)

// Session cookies set by the dashboard clients at sign-in.
const (
	SessionTokenCookie = "tp_token"
	SessionRoleCookie  = "tp_role"
)

// sessionFromRequest reads the caller's session fresh on every navigation.
// Cookies are the primary carrier; the Authorization bearer and the "role"
// header are the API fallback.
func sessionFromRequest(c *gin.Context) access.Session {
	token, _ := c.Cookie(SessionTokenCookie)
	if token == "" {
		if auth := c.GetHeader("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
			token = auth[7:]
		}
	}

	role, _ := c.Cookie(SessionRoleCookie)
	if role == "" {
		role = c.GetHeader("role")
	}

	return access.Session{Token: token, Role: access.ParseRole(role)}
}

// AccessGuard evaluates the route policy once per navigation and either lets
// the request render or redirects. Pure decision, no shared state.
func AccessGuard(policy *access.RoutePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFromRequest(c)

		decision := access.Decide(sess, c.Request.URL.Path, policy)
		if !decision.Proceed {
			c.Redirect(http.StatusFound, decision.Redirect)
			c.Abort()
			return
		}

		c.Set("sessionRole", string(sess.Role))
		c.Next()
	}
}
