package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service string
}

func NewHandler(service string) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)
	r.GET("/ready", h.health)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"service": h.service,
	})
}
