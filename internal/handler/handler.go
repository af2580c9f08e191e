package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler carries handlers that do not belong to a single domain.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
