package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rehabfolio/portfolio-api/internal/modules/serializer"
	"github.com/rehabfolio/portfolio-api/internal/telemetry"
)

// ProtectedRoute matches request paths case-insensitively, either by prefix
// or, when Exact is set, as the whole path.
type ProtectedRoute struct {
	Path  string
	Exact bool
}

// AdminRoutes are the paths that require the admin role.
var AdminRoutes = []ProtectedRoute{
	{Path: "/api/manage"},
	{Path: "/api/dashboard", Exact: true},
}

func (r ProtectedRoute) Matches(path string) bool {
	path = strings.ToLower(path)
	want := strings.ToLower(r.Path)
	if r.Exact {
		return path == want || path == want+"/"
	}
	return strings.HasPrefix(path, want)
}

func isProtected(routes []ProtectedRoute, path string) bool {
	for _, r := range routes {
		if r.Matches(path) {
			return true
		}
	}
	return false
}

// Authorize requires role on every protected route: 401 when the caller is
// anonymous, 403 when the role is missing. Other paths always pass.
func Authorize(routes []ProtectedRoute, role string, tel telemetry.Client, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isProtected(routes, c.Request.URL.Path) {
			c.Next()
			return
		}

		p := PrincipalFromContext(c)
		if !p.IsAuthenticated() {
			deny(c, tel, log, http.StatusUnauthorized, serializer.AuthRequired(), "unauthenticated")
			return
		}
		if !p.HasRole(role) {
			deny(c, tel, log, http.StatusForbidden, serializer.AuthForbidden(), "missing role "+role)
			return
		}
		c.Next()
	}
}

func deny(c *gin.Context, tel telemetry.Client, log *zap.Logger, status int, body serializer.ErrorResponse, reason string) {
	userID := "anonymous"
	if p := PrincipalFromContext(c); p.IsAuthenticated() {
		userID = p.UserID
	}

	tel.TrackEvent(c.Request.Context(), "AuthorizationDenied", map[string]string{
		"userId": userID,
		"route":  c.Request.URL.Path,
		"method": c.Request.Method,
		"reason": reason,
	})
	log.Sugar().Warnw("authorization denied",
		"userId", userID,
		"route", c.Request.URL.Path,
		"method", c.Request.Method,
		"reason", reason,
		"status", status,
	)

	serializer.Abort(c, status, body)
}
