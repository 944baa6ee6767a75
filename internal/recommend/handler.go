package recommend

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
	"career-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the recommendation endpoint; extra handlers (rate limiting) run first.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.recommend)
	rg.POST("/recommend", handlers...)
}

func (h *Handler) recommend(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req users.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid profile", users.ValidationDetails(err))
		return
	}

	rec, err := h.Svc.Recommend(c.Request.Context(), req.Profile())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// client went away; nothing useful to write
			c.Abort()
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate recommendation", nil)
		return
	}
	respond.OK(c, rec)
}
