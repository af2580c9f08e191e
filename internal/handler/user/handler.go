package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teame/hospital-api/internal/handler"
	"github.com/teame/hospital-api/internal/middleware"
	"github.com/teame/hospital-api/internal/service/user"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/users")
	g.GET("/profile", h.Profile)
}

func (h *Handler) Profile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}
