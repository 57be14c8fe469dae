package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hms-api/internal/handler"
	dashboardsvc "github.com/jwalitptl/hms-api/internal/service/dashboard"
	"github.com/jwalitptl/hms-api/pkg/httputil"
)

type Handler struct {
	svc *dashboardsvc.Service
}

func NewHandler(svc *dashboardsvc.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/stats", h.Stats)
}

func (h *Handler) Stats(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, stats)
}
