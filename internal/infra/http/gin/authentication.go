package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"prorent/internal/domain/access"
)

const (
	principalContextKey = "prorent.principal"
	RoleHeader          = "X-User-Role"
)

// SessionMiddleware resolves the opaque session from the cookie pair, or from
// a bearer token plus role header for non-browser clients. Tokens are not
// verified here; the backend does that when they are forwarded.
type SessionMiddleware struct {
	SessionCookie string
	RoleCookie    string
}

func (m SessionMiddleware) Handle(c *gin.Context) {
	if p, ok := m.resolve(c); ok {
		setPrincipal(c, p)
	}
	c.Next()
}

func (m SessionMiddleware) resolve(c *gin.Context) (*access.Principal, bool) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	role := c.GetHeader(RoleHeader)
	if token == "" {
		token = cookieValue(c, m.SessionCookie)
		role = cookieValue(c, m.RoleCookie)
	}
	p := &access.Principal{Token: token, Role: access.NormalizeRole(access.Role(role))}
	if !p.Authenticated() {
		return nil, false
	}
	return p, true
}

func cookieValue(c *gin.Context, name string) string {
	if name == "" {
		return ""
	}
	v, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func setPrincipal(c *gin.Context, p *access.Principal) {
	c.Set(principalContextKey, p)
	c.Request = c.Request.WithContext(access.ContextWithPrincipal(c.Request.Context(), p))
}

func currentPrincipal(c *gin.Context) *access.Principal {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return nil
	}
	p, _ := val.(*access.Principal)
	return p
}

// RequireRoles guards a route group with the access guard. No roles admits any
// authenticated session.
func RequireRoles(guard access.Guard, roles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.CheckAccess(currentPrincipal(c), roles)
		if decision.Allowed() {
			c.Next()
			return
		}
		status := http.StatusForbidden
		message := "insufficient permissions"
		if decision.Kind == access.RedirectLogin {
			status = http.StatusUnauthorized
			message = "auth required"
		}
		c.AbortWithStatusJSON(status, gin.H{"error": message, "redirect": decision.Target})
	}
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func sessionToken(c *gin.Context) string {
	if p := currentPrincipal(c); p != nil {
		return p.Token
	}
	return ""
}
