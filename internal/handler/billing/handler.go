package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hms-api/internal/handler"
	"github.com/jwalitptl/hms-api/internal/model"
	billingsvc "github.com/jwalitptl/hms-api/internal/service/billing"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/httputil"
)

type Handler struct {
	svc *billingsvc.Service
}

func NewHandler(svc *billingsvc.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	billings := r.Group("/billing")
	{
		billings.GET("", h.List)
		billings.GET("/:id", h.Get)
		billings.POST("", h.Create)
		billings.PUT("/:id", h.Update)
		billings.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	var filters model.BillingFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", err.Error()))
		return
	}

	billings, err := h.svc.List(c.Request.Context(), p, &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, billings)
}

func (h *Handler) Get(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}
	id, err := handler.PathID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	billing, err := h.svc.Get(c.Request.Context(), p, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, billing)
}

func (h *Handler) Create(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	var req model.CreateBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", err.Error()))
		return
	}

	billing, err := h.svc.Create(c.Request.Context(), p, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, billing)
}

func (h *Handler) Update(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}
	id, err := handler.PathID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", err.Error()))
		return
	}

	billing, err := h.svc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, billing)
}

func (h *Handler) Delete(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}
	id, err := handler.PathID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), p, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, nil)
}
