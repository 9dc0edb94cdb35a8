package ginserver

import (
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"prorent/internal/app/dto"
	"prorent/internal/domain/access"
)

// SessionHandler reports the current session and evaluates page guards for
// the browser before it renders a route.
type SessionHandler struct {
	Guard   access.Guard
	Routes  access.RouteTable
	Cookies SessionMiddleware
	Secure  bool
	MaxAge  time.Duration
}

type sessionRequest struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (h SessionHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, h.describe(currentPrincipal(c)))
}

// Store writes the cookie pair for a token the backend issued at login.
func (h SessionHandler) Store(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		respondError(c, nil, fieldError("token", "required"))
		return
	}
	role, err := access.ParseRole(req.Role)
	if err != nil {
		respondError(c, nil, fieldError("role", "oneof=USER OWNER"))
		return
	}
	maxAge := int(h.MaxAge / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookies.SessionCookie, token, maxAge, "/", "", h.Secure, true)
	c.SetCookie(h.Cookies.RoleCookie, string(role), maxAge, "/", "", h.Secure, false)
	c.JSON(http.StatusOK, h.describe(&access.Principal{Token: token, Role: role}))
}

func (h SessionHandler) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookies.SessionCookie, "", -1, "/", "", h.Secure, true)
	c.SetCookie(h.Cookies.RoleCookie, "", -1, "/", "", h.Secure, false)
	c.Status(http.StatusNoContent)
}

func (h SessionHandler) CheckPage(c *gin.Context) {
	path := c.Query("path")
	if strings.TrimSpace(path) == "" {
		respondError(c, nil, fieldError("path", "required"))
		return
	}
	decision := h.Guard.CheckPath(h.Routes, currentPrincipal(c), path)
	c.JSON(http.StatusOK, dto.GuardDecision{
		Path:     path,
		Decision: decisionLabel(decision.Kind),
		Target:   decision.Target,
	})
}

func (h SessionHandler) describe(p *access.Principal) dto.Session {
	if !p.Authenticated() {
		return dto.Session{Home: access.DefaultHome}
	}
	role := access.NormalizeRole(p.Role)
	return dto.Session{Authenticated: true, Role: string(role), Home: h.Guard.HomeFor(role)}
}

func decisionLabel(kind access.DecisionKind) string {
	if kind == access.Allow {
		return "allow"
	}
	return "redirect"
}

var _ SessionHTTP = SessionHandler{}
