package middleware

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rehabfolio/portfolio-api/internal/modules/model"
)

const principalKey = "principal"

// PrincipalSource extracts the caller identity from a request. It returns
// nil, nil when the request carries no identity.
type PrincipalSource interface {
	Principal(r *http.Request) (*model.ClientPrincipal, error)
}

// HeaderPrincipalSource reads a base64 encoded JSON principal from Header.
// The header must be set by a trusted edge that strips any client-supplied copy.
type HeaderPrincipalSource struct {
	Header string
}

func (s HeaderPrincipalSource) Principal(r *http.Request) (*model.ClientPrincipal, error) {
	raw := strings.TrimSpace(r.Header.Get(s.Header))
	if raw == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Header, err)
	}

	var p model.ClientPrincipal
	if err := sonic.Unmarshal(decoded, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Header, err)
	}
	return &p, nil
}

// Authenticate attaches the decoded principal to the context. A malformed
// identity is logged and the request continues as anonymous.
func Authenticate(src PrincipalSource, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := src.Principal(c.Request)
		switch {
		case err != nil:
			log.Sugar().Warnw("ignoring malformed client principal",
				"path", c.Request.URL.Path,
				"err", err,
			)
		case p != nil:
			c.Set(principalKey, p)

			span := trace.SpanFromContext(c.Request.Context())
			if span.SpanContext().IsValid() && p.UserID != "" {
				span.SetAttributes(attribute.String("user_id", p.UserID))
			}
		}
		c.Next()
	}
}

// PrincipalFromContext returns nil for anonymous requests.
func PrincipalFromContext(c *gin.Context) *model.ClientPrincipal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*model.ClientPrincipal)
	return p
}
