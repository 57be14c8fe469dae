// Package handler holds helpers shared by the per-entity HTTP handlers.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/middleware"
	"github.com/jwalitptl/hms-api/internal/policy"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/httputil"
)

// PathID parses the :id path parameter.
func PathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("id", "invalid identifier")
	}
	return id, nil
}

// Principal returns the authenticated principal, or writes a 401 and
// reports false when the auth middleware did not run.
func Principal(c *gin.Context) (policy.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Authentication())
		c.Abort()
	}
	return p, ok
}

// QueryUUID parses an optional UUID query parameter.
func QueryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.Validation(name, "invalid identifier")
	}
	return &id, nil
}
