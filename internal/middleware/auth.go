package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hms-api/internal/policy"
	authsvc "github.com/jwalitptl/hms-api/internal/service/auth"
	"github.com/jwalitptl/hms-api/pkg/auth"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/httputil"
)

const ContextPrincipal = "principal"

type AuthMiddleware struct {
	jwtSvc  auth.JWTService
	authSvc *authsvc.Service
}

func NewAuthMiddleware(jwtSvc auth.JWTService, authSvc *authsvc.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc, authSvc: authSvc}
}

// Authenticate validates the bearer token and resolves the caller's
// principal, profile included, exactly once per request.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httputil.RespondWithError(c, apperrors.Authentication())
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httputil.RespondWithError(c, apperrors.Authentication())
			c.Abort()
			return
		}

		claims, err := m.jwtSvc.ValidateAccessToken(parts[1])
		if err != nil {
			httputil.RespondWithError(c, apperrors.Authentication())
			c.Abort()
			return
		}

		principal, err := m.authSvc.ResolvePrincipal(c.Request.Context(), claims.UserID)
		if err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, *principal)
		c.Next()
	}
}

// PrincipalFrom extracts the authenticated principal set by Authenticate.
func PrincipalFrom(c *gin.Context) (policy.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return policy.Principal{}, false
	}
	p, ok := v.(policy.Principal)
	return p, ok
}
