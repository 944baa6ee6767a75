package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.createUser)
}

// createUser returns the existing record for the email or creates a new one.
func (h *Handler) createUser(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid profile", ValidationDetails(err))
		return
	}

	user, backend, err := h.Svc.ResolveOrCreate(c.Request.Context(), req.Profile())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save user", nil)
		return
	}
	c.Set("storageBackend", backend.String())
	respond.JSON(c, http.StatusCreated, user)
}
